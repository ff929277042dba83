package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"

	"github.com/wdm0006/tvetl/pkg/config"
	j "github.com/wdm0006/tvetl/pkg/janitor"
)

const (
	savepoint    = "tvetl_row"
	genreIDMod   = 1000000
	countrySQL   = `INSERT INTO country (code, name, timezone) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`
	genreSQL     = `INSERT INTO genres (id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`
	showGenreSQL = `INSERT INTO show_genre (show_id, genre_id) VALUES (?, ?) ON CONFLICT DO NOTHING`
)

// Result counts the rows processed by Insert and those rolled back.
type Result struct {
	Rows   int
	Failed int
}

// GenreID derives the surrogate key of a genre from its name.
func GenreID(name string) int64 {
	return int64(xxh3.HashString(name) % genreIDMod)
}

type tableInsert struct {
	table   string
	keyPath string
	paths   []string
	query   string
}

func buildInserts(db *sqlx.DB, tables []config.TableMapping) []tableInsert {
	out := make([]tableInsert, 0, len(tables))
	for _, t := range tables {
		cols := make([]string, len(t.Columns))
		paths := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cols[i] = c.Column
			paths[i] = c.Path
		}
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING", t.Table, strings.Join(cols, ", "), marks)
		out = append(out, tableInsert{table: t.Table, keyPath: t.KeyPath(), paths: paths, query: db.Rebind(q)})
	}
	return out
}

// Insert writes every row of f inside one transaction. Each row runs under
// its own savepoint; a failing row is rolled back, logged and counted, and
// the batch continues. The transaction commits once at the end.
func (s *Store) Insert(ctx context.Context, f *j.Frame) (Result, error) {
	var res Result
	inserts := buildInserts(s.db, s.sink.Tables)
	src := newRowSource(f)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin transaction: %w", err)
	}
	for r := 0; r < f.Rows(); r++ {
		if _, err := tx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
			_ = tx.Rollback()
			return res, fmt.Errorf("savepoint row %d: %w", r, err)
		}
		res.Rows++
		if err := s.insertRow(ctx, tx, inserts, src, r); err != nil {
			res.Failed++
			s.logger.Warn("row insert failed", zap.Int("row", r), zap.Error(err))
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
				_ = tx.Rollback()
				return res, fmt.Errorf("rollback row %d: %w", r, rbErr)
			}
		}
		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
			_ = tx.Rollback()
			return res, fmt.Errorf("release row %d: %w", r, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("commit: %w", err)
	}
	s.logger.Info("database insert complete", zap.Int("rows", res.Rows), zap.Int("failed", res.Failed))
	return res, nil
}

func (s *Store) insertRow(ctx context.Context, tx *sqlx.Tx, inserts []tableInsert, src *rowSource, r int) error {
	for _, ti := range inserts {
		if src.value(r, ti.keyPath) == nil {
			continue
		}
		args := make([]any, len(ti.paths))
		for i, p := range ti.paths {
			args[i] = dbValue(src.value(r, p))
		}
		if _, err := tx.ExecContext(ctx, ti.query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", ti.table, err)
		}
	}

	for _, cp := range s.sink.Countries {
		code, okCode := nonBlank(src.value(r, cp.Code))
		name, okName := nonBlank(src.value(r, cp.Name))
		tz, okTZ := nonBlank(src.value(r, cp.Timezone))
		if !okCode || !okName || !okTZ {
			continue
		}
		if _, err := tx.ExecContext(ctx, s.db.Rebind(countrySQL), code, name, tz); err != nil {
			return fmt.Errorf("insert country: %w", err)
		}
	}

	showID := src.value(r, s.sink.Genres.ShowID)
	for _, g := range genreNames(src.value(r, s.sink.Genres.Names), s.sink.Genres.Separator) {
		id := GenreID(g)
		if _, err := tx.ExecContext(ctx, s.db.Rebind(genreSQL), id, g); err != nil {
			return fmt.Errorf("insert genre: %w", err)
		}
		if showID == nil {
			continue
		}
		if _, err := tx.ExecContext(ctx, s.db.Rebind(showGenreSQL), dbValue(showID), id); err != nil {
			return fmt.Errorf("insert show_genre: %w", err)
		}
	}
	return nil
}

func genreNames(v any, sep string) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		for _, e := range t {
			raw = append(raw, j.FormatValue(e))
		}
	default:
		if sep == "" {
			sep = ","
		}
		raw = strings.Split(j.FormatValue(t), strings.TrimSpace(sep))
	}
	var out []string
	for _, g := range raw {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func nonBlank(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func dbValue(v any) any {
	switch v.(type) {
	case nil, string, int64, float64, bool:
		return v
	default:
		return j.FormatValue(v)
	}
}
