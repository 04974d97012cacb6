package jobs

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_analysis/model"
	"github.com/rs/zerolog"
)

var (
	ErrJobNotFound error = errors.New("job not found")
	ErrJobFinished error = errors.New("job already finished")
)

const CauseCancelled = "cancelled"

// Runner does the work of a job. It reports progress as it goes and returns
// the number of warnings from the run. It must not write anything once ctx is
// cancelled.
type Runner func(ctx context.Context, leagueID, season string, progress func(fraction float64, stage string)) (int, error)

type entry struct {
	job    model.Job
	cancel context.CancelFunc
}

// Manager runs analysis jobs in the background and tracks their state.
type Manager struct {
	runner Runner
	clock  clock.Clock
	logger zerolog.Logger

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
	mu   sync.Mutex
	jobs map[string]*entry
}

func NewManager(runner Runner, clock clock.Clock, logger zerolog.Logger) *Manager {
	ctx, stop := context.WithCancel(context.Background())
	return &Manager{
		runner: runner,
		clock:  clock,
		logger: logger.With().Str("component", "jobs").Logger(),
		ctx:    ctx,
		stop:   stop,
		jobs:   make(map[string]*entry),
	}
}

// Start creates a pending job and runs it in the background. The job is not
// tied to the caller's context, it keeps running until it finishes or is
// cancelled.
func (m *Manager) Start(leagueID, season string) (model.Job, error) {
	if err := m.ctx.Err(); err != nil {
		return model.Job{}, fmt.Errorf("job manager is shut down: %w", err)
	}

	ctx, cancel := context.WithCancel(m.ctx)
	e := &entry{
		job: model.Job{
			ID:       uuid.NewString(),
			LeagueID: leagueID,
			Season:   season,
			Status:   model.JOB_PENDING,
			Created:  m.clock.Now().UTC(),
		},
		cancel: cancel,
	}

	m.mu.Lock()
	m.jobs[e.job.ID] = e
	job := e.job
	m.mu.Unlock()

	m.logger.Info().Str("job", job.ID).Str("league", leagueID).Str("season", season).Msg("starting analysis job")

	m.wg.Add(1)
	go m.run(ctx, e)
	return job, nil
}

func (m *Manager) run(ctx context.Context, e *entry) {
	defer m.wg.Done()
	defer e.cancel()

	m.mu.Lock()
	// cancelled before it got a chance to start
	if e.job.Status.IsTerminal() {
		m.mu.Unlock()
		return
	}
	if err := e.job.Transition(model.JOB_RUNNING, m.clock.Now().UTC()); err != nil {
		m.mu.Unlock()
		m.logger.Error().Err(err).Str("job", e.job.ID).Msg("error starting job")
		return
	}
	id, leagueID, season := e.job.ID, e.job.LeagueID, e.job.Season
	m.mu.Unlock()

	progress := func(fraction float64, stage string) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if e.job.Status != model.JOB_RUNNING {
			return
		}
		// the last step belongs to the completed transition
		fraction = min(max(fraction, e.job.Progress), 0.99)
		e.job.Progress = fraction
		e.job.Stage = stage
	}

	warnings, err := m.runner(ctx, leagueID, season, progress)

	m.mu.Lock()
	defer m.mu.Unlock()
	if e.job.Status.IsTerminal() {
		return
	}

	now := m.clock.Now().UTC()
	if err != nil {
		cause := err.Error()
		if ctx.Err() != nil {
			cause = CauseCancelled
		}
		e.job.Cause = cause
		if terr := e.job.Transition(model.JOB_FAILED, now); terr != nil {
			m.logger.Error().Err(terr).Str("job", id).Msg("error failing job")
		}
		m.logger.Warn().Err(err).Str("job", id).Str("league", leagueID).Msg("analysis job failed")
		return
	}

	e.job.Warnings = warnings
	if terr := e.job.Transition(model.JOB_COMPLETED, now); terr != nil {
		m.logger.Error().Err(terr).Str("job", id).Msg("error completing job")
	}
	m.logger.Info().Str("job", id).Str("league", leagueID).Int("warnings", warnings).Msg("analysis job completed")
}

// Get returns a copy of the job.
func (m *Manager) Get(id string) (model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, found := m.jobs[id]
	if !found {
		return model.Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return e.job, nil
}

// List returns every tracked job, oldest first.
func (m *Manager) List() []model.Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]model.Job, 0, len(m.jobs))
	for _, e := range m.jobs {
		result = append(result, e.job)
	}
	slices.SortFunc(result, func(a, b model.Job) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		} else if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return result
}

// Cancel stops a pending or running job. The job fails right away with the
// cancelled cause, the runner sees its context cancelled and stops on its own.
func (m *Manager) Cancel(id string) (model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, found := m.jobs[id]
	if !found {
		return model.Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if e.job.Status.IsTerminal() {
		return e.job, fmt.Errorf("%w: %s is %s", ErrJobFinished, id, e.job.Status)
	}

	e.cancel()
	e.job.Cause = CauseCancelled
	if err := e.job.Transition(model.JOB_FAILED, m.clock.Now().UTC()); err != nil {
		return e.job, err
	}
	m.logger.Info().Str("job", id).Msg("cancelled analysis job")
	return e.job, nil
}

// Prune forgets finished jobs that ended more than maxAge ago and returns how
// many were removed.
func (m *Manager) Prune(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.clock.Now().UTC().Add(-maxAge)
	removed := 0
	for id, e := range m.jobs {
		if e.job.Status.IsTerminal() && e.job.Finished.Before(cutoff) {
			delete(m.jobs, id)
			removed++
		}
	}
	return removed
}

// Wait blocks until every started job has returned from its runner.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Shutdown cancels every job that is still going and waits for the runners
// to return, or for ctx to be done.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	for id, e := range m.jobs {
		if e.job.Status.IsTerminal() {
			continue
		}
		e.cancel()
		e.job.Cause = CauseCancelled
		if err := e.job.Transition(model.JOB_FAILED, m.clock.Now().UTC()); err != nil {
			m.logger.Error().Err(err).Str("job", id).Msg("error cancelling job")
		}
	}
	m.mu.Unlock()
	m.stop()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
