package db

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/fantasy_analysis/model"
)

func (db *postgresDB) ListRankings(ctx context.Context) ([]model.Ranking, error) {
	const query = `SELECT id, ranking_date FROM rankings ORDER BY ranking_date DESC, id DESC`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing rankings: %w", err)
	}
	defer rows.Close()

	results := make([]model.Ranking, 0, 16)
	for rows.Next() {
		var r model.Ranking
		var date pgtype.Date
		if err := rows.Scan(&r.ID, &date); err != nil {
			return nil, fmt.Errorf("error scanning ranking: %w", err)
		}
		r.Date = date.Time
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}
	return results, nil
}

func (db *postgresDB) GetRanking(ctx context.Context, id int32) (*model.Ranking, error) {
	const query = `SELECT ranking_date FROM rankings WHERE id=@id`

	var date pgtype.Date
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(&date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRankingNotFound
		}
		return nil, fmt.Errorf("error getting ranking %d: %w", id, err)
	}

	result := &model.Ranking{ID: id, Date: date.Time}
	players, err := db.rankingPlayers(ctx, id)
	if err != nil {
		return nil, err
	}
	result.Players = players[id]
	if result.Players == nil {
		result.Players = make(map[string]model.RankingPlayer)
	}
	return result, nil
}

func (db *postgresDB) AddRanking(ctx context.Context, date time.Time, rankings map[string]int32) (*model.Ranking, error) {
	const insertRanking = `INSERT INTO rankings (ranking_date) VALUES (@date) RETURNING id`
	const insertPlayer = `INSERT INTO ranking_players (ranking_id, player_id, ranking)
		VALUES (@rankingID, @playerID, @ranking)`

	if date.IsZero() {
		return nil, errors.New("rankings date must be provided")
	}
	if len(rankings) == 0 {
		return nil, errors.New("rankings cannot be empty")
	}

	ids := make([]string, 0, len(rankings))
	for id := range rankings {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	known, err := db.GetPlayers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, found := known[id]; !found {
			return nil, fmt.Errorf("no player with id: %s", id)
		}
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	d := pgtype.Date{Time: date, Valid: true}
	var rankingID int32
	if err := tx.QueryRow(ctx, insertRanking, pgx.NamedArgs{"date": d}).Scan(&rankingID); err != nil {
		return nil, fmt.Errorf("error inserting ranking: %w", err)
	}

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(insertPlayer, pgx.NamedArgs{
			"rankingID": rankingID,
			"playerID":  id,
			"ranking":   rankings[id],
		})
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("error inserting ranking players: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error commiting ranking: %w", err)
	}

	result := &model.Ranking{
		ID:      rankingID,
		Date:    d.Time,
		Players: make(map[string]model.RankingPlayer, len(rankings)),
	}
	for _, id := range ids {
		p := known[id]
		result.Players[id] = model.RankingPlayer{
			Rank:      rankings[id],
			ID:        id,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Position:  p.Position,
			Team:      p.Team,
		}
	}

	db.logger.Info().Int32("ranking", rankingID).Str("date", date.Format(time.DateOnly)).Int("players", len(ids)).Msg("added ranking")
	return result, nil
}

func (db *postgresDB) DeleteRanking(ctx context.Context, id int32) error {
	const query = `DELETE FROM rankings WHERE id=@id`

	ct, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting ranking %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRankingNotFound
	}
	return nil
}

func (db *postgresDB) LoadRankings(ctx context.Context) ([]model.Ranking, error) {
	list, err := db.ListRankings(ctx)
	if err != nil {
		return nil, err
	}

	players, err := db.rankingPlayers(ctx, 0)
	if err != nil {
		return nil, err
	}

	slices.Reverse(list)
	for i := range list {
		list[i].Players = players[list[i].ID]
	}
	return list, nil
}

// rankingPlayers loads the players of one ranking, or of every ranking when
// id is 0.
func (db *postgresDB) rankingPlayers(ctx context.Context, id int32) (map[int32]map[string]model.RankingPlayer, error) {
	const query = `SELECT rp.ranking_id, rp.ranking, p.id, p.name_first, p.name_last, p.position, p.team
		FROM ranking_players AS rp
		INNER JOIN players AS p ON rp.player_id=p.id
		WHERE @id=0 OR rp.ranking_id=@id
		ORDER BY rp.ranking_id, rp.ranking`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("error querying ranking players: %w", err)
	}
	defer rows.Close()

	result := make(map[int32]map[string]model.RankingPlayer)
	for rows.Next() {
		var rankingID int32
		var p model.RankingPlayer
		var pos DBPosition
		if err := rows.Scan(&rankingID, &p.Rank, &p.ID, &p.FirstName, &p.LastName, &pos, &p.Team); err != nil {
			return nil, fmt.Errorf("error scanning ranking player: %w", err)
		}
		p.Position = pos.position

		m, found := result[rankingID]
		if !found {
			m = make(map[string]model.RankingPlayer)
			result[rankingID] = m
		}
		m[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}
	return result, nil
}
