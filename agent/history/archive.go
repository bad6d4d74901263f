// Package history archives answered exchanges to Postgres for offline
// analysis. Archiving is optional; when no DSN is configured the rest of
// the agent runs without it.
package history

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
)

var ErrArchiveDisabled = errors.New("exchange archive is not configured")

// Config holds the Postgres connection settings for the archive.
type Config struct {
	DSN          string        `envconfig:"DSN" split_words:"true"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" split_words:"true" default:"5s"`
	MaxOpenConns int           `envconfig:"MAX_OPEN_CONNS" split_words:"true" default:"4"`
}

// Enabled reports whether a DSN was provided.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.DSN) != ""
}

// ExchangeRecord is one archived question and answer pair.
type ExchangeRecord struct {
	bun.BaseModel `bun:"table:exchanges,alias:e"`

	ID         int64     `bun:"id,pk,autoincrement"`
	SessionID  string    `bun:"session_id,notnull"`
	Query      string    `bun:"query,notnull"`
	Response   string    `bun:"response,notnull"`
	Sources    []string  `bun:"sources,array"`
	Confidence float64   `bun:"confidence,notnull"`
	AskedAt    time.Time `bun:"asked_at,notnull"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// PostgresArchive persists exchanges with bun over pgdriver.
type PostgresArchive struct {
	db  *bun.DB
	now func() time.Time
}

// NewPostgresArchive opens the connection pool and ensures the exchanges
// table exists.
func NewPostgresArchive(ctx context.Context, cfg Config) (*PostgresArchive, error) {
	if !cfg.Enabled() {
		return nil, ErrArchiveDisabled
	}

	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(strings.TrimSpace(cfg.DSN)),
		pgdriver.WithTimeout(cfg.DialTimeout),
	)
	sqldb := sql.OpenDB(connector)
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	archive := &PostgresArchive{
		db:  db,
		now: time.Now,
	}
	if err := archive.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return archive, nil
}

func (a *PostgresArchive) migrate(ctx context.Context) error {
	_, err := a.db.NewCreateTable().
		Model((*ExchangeRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Record stores one answered exchange.
func (a *PostgresArchive) Record(ctx context.Context, sessionID string, answer contractx.AgentAnswer) error {
	if a == nil || a.db == nil {
		return ErrArchiveDisabled
	}
	if strings.TrimSpace(sessionID) == "" {
		return errors.New("session id is empty")
	}

	record := &ExchangeRecord{
		SessionID:  sessionID,
		Query:      answer.Query,
		Response:   answer.Response,
		Sources:    answer.Sources,
		Confidence: answer.Confidence,
		AskedAt:    answer.Timestamp.UTC(),
		CreatedAt:  a.now().UTC(),
	}
	_, err := a.db.NewInsert().Model(record).Exec(ctx)
	return err
}

// RecentForSession returns the latest archived exchanges for a session,
// newest first.
func (a *PostgresArchive) RecentForSession(ctx context.Context, sessionID string, limit int) ([]ExchangeRecord, error) {
	if a == nil || a.db == nil {
		return nil, ErrArchiveDisabled
	}
	if limit <= 0 {
		limit = 20
	}

	var records []ExchangeRecord
	err := a.db.NewSelect().
		Model(&records).
		Where("session_id = ?", sessionID).
		Order("asked_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Close releases the connection pool.
func (a *PostgresArchive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// NopArchive satisfies the archive contract when persistence is disabled.
type NopArchive struct{}

func (NopArchive) Record(context.Context, string, contractx.AgentAnswer) error { return nil }

var (
	_ contractx.ExchangeArchive = (*PostgresArchive)(nil)
	_ contractx.ExchangeArchive = NopArchive{}
)
