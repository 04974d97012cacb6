package mockcontroller

import (
	"context"
	"io"
	"time"

	"github.com/mww/fantasy_analysis/analysis"
	"github.com/mww/fantasy_analysis/model"
	"github.com/mww/fantasy_analysis/store"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) RunAnalysis(ctx context.Context, leagueID, season string) (*analysis.Result, error) {
	args := c.Called(ctx, leagueID, season)

	var r *analysis.Result
	if args.Get(0) != nil {
		r = args.Get(0).(*analysis.Result)
	}
	return r, args.Error(1)
}

func (c *C) StartAnalysis(ctx context.Context, leagueID, season string) (model.Job, error) {
	args := c.Called(ctx, leagueID, season)
	return args.Get(0).(model.Job), args.Error(1)
}

func (c *C) GetJob(ctx context.Context, id string) (model.Job, error) {
	args := c.Called(ctx, id)
	return args.Get(0).(model.Job), args.Error(1)
}

func (c *C) CancelJob(ctx context.Context, id string) (model.Job, error) {
	args := c.Called(ctx, id)
	return args.Get(0).(model.Job), args.Error(1)
}

func (c *C) ListJobs(ctx context.Context) []model.Job {
	args := c.Called(ctx)

	var r []model.Job
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Job)
	}
	return r
}

func (c *C) PruneJobs(maxAge time.Duration) int {
	args := c.Called(maxAge)
	return args.Int(0)
}

func (c *C) GetResults(ctx context.Context, leagueID, season string) (*analysis.Result, *store.Summary, error) {
	args := c.Called(ctx, leagueID, season)

	var r *analysis.Result
	if args.Get(0) != nil {
		r = args.Get(0).(*analysis.Result)
	}
	var s *store.Summary
	if args.Get(1) != nil {
		s = args.Get(1).(*store.Summary)
	}
	return r, s, args.Error(2)
}

func (c *C) GetArtifact(ctx context.Context, leagueID, season string, category store.Category) ([]byte, error) {
	args := c.Called(ctx, leagueID, season, category)

	var b []byte
	if args.Get(0) != nil {
		b = args.Get(0).([]byte)
	}
	return b, args.Error(1)
}

func (c *C) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	args := c.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}

	return p, args.Error(1)
}

func (c *C) UpdatePlayers(ctx context.Context) (int, error) {
	args := c.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (c *C) AddRanking(ctx context.Context, r io.Reader, date time.Time) (int32, error) {
	args := c.Called(ctx, r, date)
	return args.Get(0).(int32), args.Error(1)
}

func (c *C) GetRanking(ctx context.Context, id int32) (*model.Ranking, error) {
	args := c.Called(ctx, id)

	var r *model.Ranking
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Ranking)
	}
	return r, args.Error(1)
}

func (c *C) DeleteRanking(ctx context.Context, id int32) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}

func (c *C) ListRankings(ctx context.Context) ([]model.Ranking, error) {
	args := c.Called(ctx)

	var r []model.Ranking
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Ranking)
	}
	return r, args.Error(1)
}

func (c *C) GetLeaguesForUser(ctx context.Context, username, season string) ([]model.LeagueSummary, error) {
	args := c.Called(ctx, username, season)

	var r []model.LeagueSummary
	if args.Get(0) != nil {
		r = args.Get(0).([]model.LeagueSummary)
	}
	return r, args.Error(1)
}

func (c *C) Shutdown(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}
