package controller

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_analysis/analysis"
	"github.com/mww/fantasy_analysis/db"
	"github.com/mww/fantasy_analysis/jobs"
	"github.com/mww/fantasy_analysis/league"
	"github.com/mww/fantasy_analysis/model"
	"github.com/mww/fantasy_analysis/sleeper"
	"github.com/mww/fantasy_analysis/store"
	"github.com/rs/zerolog"
)

var ErrInvalidArgument error = errors.New("invalid argument")

// C encapsulates business logic without worrying about any web layers
type C interface {
	// Run a full analysis of the league season and wait for the result. The
	// artifacts are saved before returning.
	RunAnalysis(ctx context.Context, leagueID, season string) (*analysis.Result, error)
	// Start an analysis in the background and return the pending job.
	StartAnalysis(ctx context.Context, leagueID, season string) (model.Job, error)
	GetJob(ctx context.Context, id string) (model.Job, error)
	CancelJob(ctx context.Context, id string) (model.Job, error)
	ListJobs(ctx context.Context) []model.Job
	// Forget finished jobs older than maxAge. Returns how many were removed.
	PruneJobs(maxAge time.Duration) int
	// The artifacts of the latest completed run for the league season.
	GetResults(ctx context.Context, leagueID, season string) (*analysis.Result, *store.Summary, error)
	GetArtifact(ctx context.Context, leagueID, season string, category store.Category) ([]byte, error)

	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	// Refresh the player universe from sleeper. Returns the number of new or
	// changed players.
	UpdatePlayers(ctx context.Context) (int, error)

	// Add a new rankings for players. This will parse the data from the reader (in CSV format) and
	// create a new rankings data point. Returns the id of the new rankings and an error if there
	// was one.
	AddRanking(ctx context.Context, r io.Reader, date time.Time) (int32, error)
	GetRanking(ctx context.Context, id int32) (*model.Ranking, error)
	DeleteRanking(ctx context.Context, id int32) error
	ListRankings(ctx context.Context) ([]model.Ranking, error)

	GetLeaguesForUser(ctx context.Context, username, season string) ([]model.LeagueSummary, error)

	// Cancel running jobs and wait for them to stop.
	Shutdown(ctx context.Context) error
}

// Config holds the controller settings that come from the environment.
type Config struct {
	Params  analysis.Params
	MaxWeek int
}

type controller struct {
	clock   clock.Clock
	sleeper sleeper.Client
	db      db.DB
	store   *store.Store
	builder *league.Builder
	jobs    *jobs.Manager
	params  analysis.Params
	logger  zerolog.Logger
}

func New(clock clock.Clock, sleeper sleeper.Client, db db.DB, store *store.Store, cfg Config, logger zerolog.Logger) (C, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	c := &controller{
		clock:   clock,
		sleeper: sleeper,
		db:      db,
		store:   store,
		builder: league.NewBuilder(sleeper, db, cfg.MaxWeek, logger),
		params:  cfg.Params,
		logger:  logger.With().Str("component", "controller").Logger(),
	}
	c.jobs = jobs.NewManager(c.runJob, clock, logger)
	return c, nil
}

func (c *controller) Shutdown(ctx context.Context) error {
	return c.jobs.Shutdown(ctx)
}
