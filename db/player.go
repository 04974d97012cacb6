package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/fantasy_analysis/model"
)

const playerColumns = `id, name_first, name_last, position, team, active, updated`

func (db *postgresDB) SavePlayers(ctx context.Context, players []model.Player) (int, error) {
	// Only rows that actually changed are updated, so the number of affected
	// rows is the number of new or changed players.
	const upsert = `INSERT INTO players (id, name_first, name_last, position, team, active)
		VALUES (@id, @nameFirst, @nameLast, @position, @team, @active)
		ON CONFLICT (id) DO UPDATE
			SET name_first=EXCLUDED.name_first,
				name_last=EXCLUDED.name_last,
				position=EXCLUDED.position,
				team=EXCLUDED.team,
				active=EXCLUDED.active,
				updated=@updated
			WHERE (players.name_first, players.name_last, players.position, players.team, players.active)
				IS DISTINCT FROM
				(EXCLUDED.name_first, EXCLUDED.name_last, EXCLUDED.position, EXCLUDED.team, EXCLUDED.active)`

	if len(players) == 0 {
		return 0, nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updated := pgtype.Timestamptz{
		Time:             db.clock.Now().UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}

	batch := &pgx.Batch{}
	for _, p := range players {
		if p.ID == "" {
			return 0, errors.New("player id must be provided")
		}
		batch.Queue(upsert, pgx.NamedArgs{
			"id":        p.ID,
			"nameFirst": p.FirstName,
			"nameLast":  p.LastName,
			"position":  &DBPosition{position: p.Position},
			"team":      p.Team,
			"active":    p.Active,
			"updated":   updated,
		})
	}

	changed := 0
	br := tx.SendBatch(ctx, batch)
	for _, p := range players {
		ct, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, fmt.Errorf("error saving player %s: %w", p.ID, err)
		}
		changed += int(ct.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("error closing batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error commiting players: %w", err)
	}

	db.logger.Info().Int("players", len(players)).Int("changed", changed).Msg("saved players")
	return changed, nil
}

func (db *postgresDB) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player %s: %w", id, err)
	}
	return p, nil
}

func (db *postgresDB) GetPlayers(ctx context.Context, ids []string) (map[string]model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ANY(@ids)`

	result := make(map[string]model.Player, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("error querying players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning player: %w", err)
		}
		result[p.ID] = *p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}
	return result, nil
}

func (db *postgresDB) ListPlayers(ctx context.Context, pos model.Position) ([]model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE position ILIKE @pos ORDER BY id`

	posQ := "%"
	if pos != model.POS_UNKNOWN {
		posQ = string(pos)
	}

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"pos": posQ})
	if err != nil {
		return nil, fmt.Errorf("error listing players: %w", err)
	}
	defer rows.Close()

	results := make([]model.Player, 0, 512)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}
	return results, nil
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var result model.Player
	var pos DBPosition
	var updated pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.FirstName,
		&result.LastName,
		&pos,
		&result.Team,
		&result.Active,
		&updated)
	if err != nil {
		return nil, err
	}

	result.Position = pos.position
	result.Updated = updated.Time
	return &result, nil
}
