// Package store loads cleaned schedule rows into the relational tables.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/wdm0006/tvetl/pkg/config"
	"github.com/wdm0006/tvetl/pkg/io/ioutils"
)

const sqliteBusyTimeout = "PRAGMA busy_timeout = 5000"

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

type Store struct {
	db     *sqlx.DB
	sink   config.SinkConfig
	logger *zap.Logger
}

// Open connects to the configured database and creates missing tables.
func Open(ctx context.Context, db config.DatabaseConfig, sink config.SinkConfig, logger *zap.Logger) (*Store, error) {
	if db.Driver == "sqlite" && db.DSN != ":memory:" && !strings.HasPrefix(db.DSN, "file:") {
		if err := ioutils.EnsureDir(db.DSN); err != nil {
			return nil, err
		}
	}
	conn, err := sqlx.Open(db.Driver, db.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", db.Driver, err)
	}
	// One connection: the whole batch runs in a single transaction.
	conn.SetMaxOpenConns(1)
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s database: %w", db.Driver, err)
	}
	if db.Driver == "sqlite" {
		if _, err := conn.ExecContext(ctx, sqliteBusyTimeout); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	s := New(conn, sink, logger)
	if err := s.EnsureSchema(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open connection without touching the schema.
func New(db *sqlx.DB, sink config.SinkConfig, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, sink: sink, logger: logger}
}

// EnsureSchema creates the relational tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
