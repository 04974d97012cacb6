package controller

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mww/fantasy_analysis/model"
	"github.com/mww/fantasy_analysis/rankings"
)

func (c *controller) AddRanking(ctx context.Context, r io.Reader, date time.Time) (int32, error) {
	playerRankings, err := c.getPlayerRankingMap(ctx, r)
	if err != nil {
		return 0, err
	}

	ranking, err := c.db.AddRanking(ctx, date, playerRankings)
	if err != nil {
		return 0, err
	}

	return ranking.ID, nil
}

func (c *controller) GetRanking(ctx context.Context, id int32) (*model.Ranking, error) {
	return c.db.GetRanking(ctx, id)
}

func (c *controller) DeleteRanking(ctx context.Context, id int32) error {
	return c.db.DeleteRanking(ctx, id)
}

func (c *controller) ListRankings(ctx context.Context) ([]model.Ranking, error) {
	return c.db.ListRankings(ctx)
}

// getPlayerRankingMap parses a FantasyPros export and matches every row to a
// player in the universe.
func (c *controller) getPlayerRankingMap(ctx context.Context, r io.Reader) (map[string]int32, error) {
	rows, err := rankings.ParseFantasyPros(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	players, err := c.db.ListPlayers(ctx, model.POS_UNKNOWN)
	if err != nil {
		return nil, fmt.Errorf("error loading players: %w", err)
	}

	matched, skipped, err := rankings.NewMatcher(players).MatchAll(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	for _, s := range skipped {
		c.logger.Info().Str("row", s.String()).Msg("no match found for low ranked player, skipping")
	}
	return matched, nil
}
