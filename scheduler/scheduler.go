package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/mww/fantasy_analysis/config"
	"github.com/mww/fantasy_analysis/model"
	"github.com/rs/zerolog"
)

const playerRefreshTimeout = 2 * time.Minute

// Controller is the part of the controller the background tasks use.
type Controller interface {
	UpdatePlayers(ctx context.Context) (int, error)
	StartAnalysis(ctx context.Context, leagueID, season string) (model.Job, error)
	PruneJobs(maxAge time.Duration) int
}

type Scheduler struct {
	s       gocron.Scheduler
	ctrl    Controller
	cfg     config.Schedule
	leagues []config.League
	logger  zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func New(ctrl Controller, cfg config.Schedule, leagues []config.League, logger zerolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		s:       s,
		ctrl:    ctrl,
		cfg:     cfg,
		leagues: leagues,
		logger:  logger.With().Str("component", "scheduler").Logger(),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Start registers the tasks that have a non-zero interval and starts running
// them. The player refresh also runs right away so a new database gets its
// player universe.
func (s *Scheduler) Start() error {
	if s.cfg.PlayerRefresh > 0 {
		_, err := s.s.NewJob(
			gocron.DurationJob(s.cfg.PlayerRefresh),
			gocron.NewTask(s.refreshPlayers),
			gocron.WithStartAt(gocron.WithStartImmediately()),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create player refresh job: %w", err)
		}
	}

	if s.cfg.Analysis > 0 && len(s.leagues) > 0 {
		_, err := s.s.NewJob(
			gocron.DurationJob(s.cfg.Analysis),
			gocron.NewTask(s.analyzeLeagues),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create league analysis job: %w", err)
		}
	}

	if s.cfg.JobPrune > 0 {
		_, err := s.s.NewJob(
			gocron.DurationJob(s.cfg.JobPrune),
			gocron.NewTask(s.pruneJobs),
		)
		if err != nil {
			return fmt.Errorf("failed to create job prune job: %w", err)
		}
	}

	s.s.Start()
	s.logger.Info().Int("tasks", len(s.s.Jobs())).Msg("scheduler started")
	return nil
}

// Stop cancels any running task and waits for the scheduler to shut down.
func (s *Scheduler) Stop() error {
	s.cancel()
	return s.s.Shutdown()
}

func (s *Scheduler) refreshPlayers() {
	ctx, cancel := context.WithTimeout(s.ctx, playerRefreshTimeout)
	defer cancel()

	changed, err := s.ctrl.UpdatePlayers(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to refresh players")
		return
	}
	s.logger.Info().Int("changed", changed).Msg("players refreshed")
}

// analyzeLeagues starts a job per league. The jobs run in the background so
// this returns as soon as they are queued.
func (s *Scheduler) analyzeLeagues() {
	for _, l := range s.leagues {
		job, err := s.ctrl.StartAnalysis(s.ctx, l.ID, l.Season)
		if err != nil {
			s.logger.Error().Err(err).Str("league", l.ID).Str("season", l.Season).Msg("failed to start analysis")
			continue
		}
		s.logger.Info().Str("league", l.ID).Str("season", l.Season).Str("job", job.ID).Msg("analysis started")
	}
}

func (s *Scheduler) pruneJobs() {
	if n := s.ctrl.PruneJobs(s.cfg.JobRetention); n > 0 {
		s.logger.Info().Int("pruned", n).Msg("pruned finished jobs")
	}
}
