package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/mww/fantasy_analysis/model"
)

func (c *controller) GetLeaguesForUser(ctx context.Context, username, season string) ([]model.LeagueSummary, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username must be provided", ErrInvalidArgument)
	}
	if !seasonRegex.MatchString(season) {
		return nil, fmt.Errorf("%w: season must be in the YYYY format, got '%s'", ErrInvalidArgument, season)
	}

	userID, err := c.sleeper.GetUserID(ctx, username)
	if err != nil {
		return nil, err
	}
	return c.sleeper.GetLeaguesForUser(ctx, userID, season)
}
