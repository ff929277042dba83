package store

// schema is portable between SQLite and PostgreSQL. Keys carry the
// insert-if-absent semantics; there are no foreign keys so that rows may
// arrive in any table order.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS shows (
		id BIGINT PRIMARY KEY,
		url TEXT,
		name TEXT,
		type TEXT,
		language TEXT,
		status TEXT,
		runtime DOUBLE PRECISION,
		average_runtime DOUBLE PRECISION,
		premiered TEXT,
		ended TEXT,
		official_site TEXT,
		weight BIGINT,
		web_channel_id BIGINT,
		network_id BIGINT,
		image_medium TEXT,
		image_original TEXT,
		summary TEXT,
		days TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS episodes (
		id BIGINT PRIMARY KEY,
		show_id BIGINT,
		url TEXT,
		name TEXT,
		season BIGINT,
		number BIGINT,
		type TEXT,
		airdate TEXT,
		airtime TEXT,
		airstamp TEXT,
		runtime DOUBLE PRECISION,
		summary TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS web_channels (
		id BIGINT PRIMARY KEY,
		name TEXT,
		official_site TEXT,
		country_code TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS networks (
		id BIGINT PRIMARY KEY,
		name TEXT,
		official_site TEXT,
		country_code TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS country (
		code TEXT PRIMARY KEY,
		name TEXT,
		timezone TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id BIGINT PRIMARY KEY,
		name TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS show_genre (
		show_id BIGINT NOT NULL,
		genre_id BIGINT NOT NULL,
		PRIMARY KEY (show_id, genre_id)
	)`,
}
