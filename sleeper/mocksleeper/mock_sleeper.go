package mocksleeper

import (
	"context"

	"github.com/mww/fantasy_analysis/model"
	"github.com/mww/fantasy_analysis/sleeper"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) LoadPlayers(ctx context.Context) ([]model.Player, error) {
	args := c.Called(ctx)

	var res []model.Player
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Player)
	}

	return res, args.Error(1)
}

func (c *Client) GetUserID(ctx context.Context, username string) (string, error) {
	args := c.Called(ctx, username)
	return args.String(0), args.Error(1)
}

func (c *Client) GetLeaguesForUser(ctx context.Context, userID, season string) ([]model.LeagueSummary, error) {
	args := c.Called(ctx, userID, season)

	var res []model.LeagueSummary
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeagueSummary)
	}

	return res, args.Error(1)
}

func (c *Client) GetNFLState(ctx context.Context) (*sleeper.NFLState, error) {
	args := c.Called(ctx)

	var res *sleeper.NFLState
	if args.Get(0) != nil {
		res = args.Get(0).(*sleeper.NFLState)
	}

	return res, args.Error(1)
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (*sleeper.League, error) {
	args := c.Called(ctx, leagueID)

	var res *sleeper.League
	if args.Get(0) != nil {
		res = args.Get(0).(*sleeper.League)
	}

	return res, args.Error(1)
}

func (c *Client) GetUsers(ctx context.Context, leagueID string) ([]sleeper.User, error) {
	args := c.Called(ctx, leagueID)

	var res []sleeper.User
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.User)
	}

	return res, args.Error(1)
}

func (c *Client) GetRosters(ctx context.Context, leagueID string) ([]sleeper.Roster, error) {
	args := c.Called(ctx, leagueID)

	var res []sleeper.Roster
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.Roster)
	}

	return res, args.Error(1)
}

func (c *Client) GetMatchups(ctx context.Context, leagueID string, week int) ([]sleeper.Matchup, error) {
	args := c.Called(ctx, leagueID, week)

	var res []sleeper.Matchup
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.Matchup)
	}

	return res, args.Error(1)
}

func (c *Client) GetTransactions(ctx context.Context, leagueID string, week int) ([]model.Transaction, error) {
	args := c.Called(ctx, leagueID, week)

	var res []model.Transaction
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Transaction)
	}

	return res, args.Error(1)
}
