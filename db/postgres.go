package db

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/mww/fantasy_analysis/model"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

var (
	ErrPlayerNotFound  error = errors.New("player not found")
	ErrRankingNotFound error = errors.New("no ranking with specified id found")
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func New(ctx context.Context, connString string, clock clock.Clock, logger zerolog.Logger) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger = logger.With().Str("component", "db").Logger()
	if err := runMigrations(pool, logger); err != nil {
		pool.Close()
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock, logger: logger}, nil
}

func runMigrations(pool *pgxpool.Pool, logger zerolog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	logger.Info().Msg("migrations completed successfully")
	return nil
}

type postgresDB struct {
	pool   *pgxpool.Pool
	clock  clock.Clock
	logger zerolog.Logger
}

func (db *postgresDB) Close() {
	db.pool.Close()
}

type DBPosition struct {
	position model.Position
}

func (p *DBPosition) ScanText(v pgtype.Text) error {
	p.position = model.ParsePosition(v.String)
	return nil
}

func (p *DBPosition) TextValue() (pgtype.Text, error) {
	return pgtype.Text{
		String: string(p.position),
		Valid:  true,
	}, nil
}
