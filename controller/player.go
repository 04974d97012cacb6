package controller

import (
	"context"
	"fmt"

	"github.com/mww/fantasy_analysis/model"
)

func (c *controller) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	return c.db.GetPlayer(ctx, id)
}

func (c *controller) UpdatePlayers(ctx context.Context) (int, error) {
	start := c.clock.Now()
	c.logger.Info().Msg("update players starting")

	players, err := c.sleeper.LoadPlayers(ctx)
	if err != nil {
		return 0, err
	}

	changed, err := c.db.SavePlayers(ctx, players)
	if err != nil {
		return 0, fmt.Errorf("error saving players: %w", err)
	}

	c.logger.Info().Int("players", len(players)).Int("changed", changed).Dur("took", c.clock.Since(start)).Msg("update players finished")
	return changed, nil
}
