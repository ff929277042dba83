package config

// Default returns the configuration used when no file is given. It reproduces
// the January 2024 TVMaze web-schedule run.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://api.tvmaze.com",
			TimeoutSeconds: 30,
		},
		Collect: CollectConfig{
			Start:   "2024-01-01",
			End:     "2024-01-31",
			DataDir: "json",
		},
		Cleaning: DefaultCleaning(),
		Sink: SinkConfig{
			ParquetPath: "data/shows.parquet",
			Tables:      DefaultTables(),
			Countries: []CountryPaths{
				{
					Code:     "_embedded.show.webChannel.country.code",
					Name:     "_embedded.show.webChannel.country.name",
					Timezone: "_embedded.show.webChannel.country.timezone",
				},
				{
					Code:     "_embedded.show.network.country.code",
					Name:     "_embedded.show.network.country.name",
					Timezone: "_embedded.show.network.country.timezone",
				},
			},
			Genres: GenrePaths{
				Names:     "_embedded.show.genres",
				Separator: ", ",
				ShowID:    "_embedded.show.id",
			},
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "db/tv_shows.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Profile: ProfileConfig{
			Path: "profiling/data_profiling.json",
			TopK: 5,
		},
	}
}

// DefaultCleaning is the stage configuration paired with the original test
// suite: the network column is joined, not dropped, and only the show type is
// one-hot encoded.
func DefaultCleaning() CleaningConfig {
	return CleaningConfig{
		DropColumns: []string{
			"rating.average",
			"_embedded.show.dvdCountry",
			"_embedded.show.externals.tvrage",
			"image",
			"_embedded.show.image",
			"_embedded.show.webChannel",
			"_embedded.show.webChannel.country",
			"_embedded.show.dvdCountry.name",
			"_embedded.show.dvdCountry.code",
			"_embedded.show.dvdCountry.timezone",
			"_embedded.show.schedule.time",
			"_embedded.show.rating.average",
			"_embedded.show.externals.thetvdb",
			"_embedded.show.externals.imdb",
			"_embedded.show.updated",
			"_links.self.href",
			"_links.show.name",
			"_embedded.show._links.self.href",
			"_embedded.show._links.previousepisode.href",
			"_embedded.show._links.previousepisode.name",
			"_embedded.show._links.nextepisode.href",
			"_embedded.show._links.nextepisode.name",
			"image.medium",
			"Image.original",
			"-embedded.show.webChannel.country.timezone",
		},
		SentinelColumn: "season",
		SentinelValue:  2024,
		ListColumns: []string{
			"_embedded.show.genres",
			"_embedded.show.network",
			"_embedded.show.schedule.days",
		},
		ListSeparator:  ", ",
		WeekdayColumn:  "_embedded.show.schedule.days",
		MaxNullRatio:   0.2,
		MedianColumns:  []string{"runtime", "_embedded.show.averageRuntime"},
		BucketColumn:   "type",
		BucketMaxCount: 10,
		BucketLabel:    "Other",
		OneHotColumns:  []string{"_embedded.show.type"},
	}
}

// DefaultTables maps the shows, episodes, web_channels and networks tables.
func DefaultTables() []TableMapping {
	return []TableMapping{
		{
			Table: "shows",
			Key:   "id",
			Columns: []ColumnMapping{
				{"id", "_embedded.show.id"},
				{"url", "_embedded.show.url"},
				{"name", "_embedded.show.name"},
				{"type", "_embedded.show.type"},
				{"language", "_embedded.show.language"},
				{"status", "_embedded.show.status"},
				{"runtime", "_embedded.show.runtime"},
				{"average_runtime", "_embedded.show.averageRuntime"},
				{"premiered", "_embedded.show.premiered"},
				{"ended", "_embedded.show.ended"},
				{"official_site", "_embedded.show.officialSite"},
				{"weight", "_embedded.show.weight"},
				{"web_channel_id", "_embedded.show.webChannel.id"},
				{"network_id", "_embedded.show.network.id"},
				{"image_medium", "_embedded.show.image.medium"},
				{"image_original", "_embedded.show.image.original"},
				{"summary", "_embedded.show.summary"},
				{"days", "_embedded.show.schedule.days"},
			},
		},
		{
			Table: "episodes",
			Key:   "id",
			Columns: []ColumnMapping{
				{"id", "id"},
				{"show_id", "_embedded.show.id"},
				{"url", "url"},
				{"name", "name"},
				{"season", "season"},
				{"number", "number"},
				{"type", "type"},
				{"airdate", "airdate"},
				{"airtime", "airtime"},
				{"airstamp", "airstamp"},
				{"runtime", "runtime"},
				{"summary", "summary"},
			},
		},
		{
			Table: "web_channels",
			Key:   "id",
			Columns: []ColumnMapping{
				{"id", "_embedded.show.webChannel.id"},
				{"name", "_embedded.show.webChannel.name"},
				{"official_site", "_embedded.show.webChannel.officialSite"},
				{"country_code", "_embedded.show.webChannel.country.code"},
			},
		},
		{
			Table: "networks",
			Key:   "id",
			Columns: []ColumnMapping{
				{"id", "_embedded.show.network.id"},
				{"name", "_embedded.show.network.name"},
				{"official_site", "_embedded.show.network.officialSite"},
				{"country_code", "_embedded.show.network.country.code"},
			},
		},
	}
}
