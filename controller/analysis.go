package controller

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mww/fantasy_analysis/analysis"
	"github.com/mww/fantasy_analysis/model"
	"github.com/mww/fantasy_analysis/rankings"
	"github.com/mww/fantasy_analysis/store"
)

var (
	leagueIDRegex = regexp.MustCompile(`^\d+$`)
	seasonRegex   = regexp.MustCompile(`^\d{4}$`)
)

func (c *controller) RunAnalysis(ctx context.Context, leagueID, season string) (*analysis.Result, error) {
	leagueID, season, err := validateLeague(leagueID, season)
	if err != nil {
		return nil, err
	}
	return c.runAnalysis(ctx, leagueID, season, nil)
}

func (c *controller) StartAnalysis(ctx context.Context, leagueID, season string) (model.Job, error) {
	leagueID, season, err := validateLeague(leagueID, season)
	if err != nil {
		return model.Job{}, err
	}
	return c.jobs.Start(leagueID, season)
}

func (c *controller) GetJob(ctx context.Context, id string) (model.Job, error) {
	return c.jobs.Get(id)
}

func (c *controller) CancelJob(ctx context.Context, id string) (model.Job, error) {
	return c.jobs.Cancel(id)
}

func (c *controller) ListJobs(ctx context.Context) []model.Job {
	return c.jobs.List()
}

func (c *controller) PruneJobs(maxAge time.Duration) int {
	return c.jobs.Prune(maxAge)
}

func (c *controller) GetResults(ctx context.Context, leagueID, season string) (*analysis.Result, *store.Summary, error) {
	leagueID, season, err := validateLeague(leagueID, season)
	if err != nil {
		return nil, nil, err
	}
	return c.store.Load(leagueID, season)
}

func (c *controller) GetArtifact(ctx context.Context, leagueID, season string, category store.Category) ([]byte, error) {
	leagueID, season, err := validateLeague(leagueID, season)
	if err != nil {
		return nil, err
	}
	return c.store.Raw(leagueID, season, category)
}

func (c *controller) runJob(ctx context.Context, leagueID, season string, progress func(float64, string)) (int, error) {
	result, err := c.runAnalysis(ctx, leagueID, season, progress)
	if err != nil {
		return 0, err
	}
	return len(result.Warnings), nil
}

// runAnalysis builds the league snapshot, runs every analysis on it and saves
// the artifacts. Nothing is saved if ctx is cancelled along the way.
func (c *controller) runAnalysis(ctx context.Context, leagueID, season string, progress func(float64, string)) (*analysis.Result, error) {
	if progress == nil {
		progress = func(float64, string) {}
	}
	start := c.clock.Now()

	loaded, err := c.db.LoadRankings(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading rankings: %w", err)
	}
	history := rankings.NewHistory(loaded)
	if history.Len() == 0 {
		return nil, fmt.Errorf("%w: no player rankings have been added", model.ErrDataUnavailable)
	}
	progress(0.05, "rankings")

	l, warnings, err := c.builder.Build(ctx, leagueID, season, func(f float64, stage string) {
		progress(0.05+0.75*f, stage)
	})
	if err != nil {
		return nil, err
	}

	result, err := analysis.Run(ctx, l, history, c.params, warnings)
	if err != nil {
		return nil, err
	}
	progress(0.9, "analysis")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.store.Save(ctx, result, c.clock.Now()); err != nil {
		return nil, fmt.Errorf("error saving artifacts: %w", err)
	}

	c.logger.Info().
		Str("league", result.LeagueID).
		Str("season", result.Season).
		Int("weeks", len(result.Weeks)).
		Int("warnings", len(result.Warnings)).
		Dur("took", c.clock.Since(start)).
		Msg("analysis complete")
	return result, nil
}

// validateLeague checks the ids before they are used in urls and file paths.
// An empty season means the league's own season.
func validateLeague(leagueID, season string) (string, string, error) {
	leagueID = strings.TrimSpace(leagueID)
	season = strings.TrimSpace(season)
	if !leagueIDRegex.MatchString(leagueID) {
		return "", "", fmt.Errorf("%w: league id must be numeric, got '%s'", ErrInvalidArgument, leagueID)
	}
	if season != "" && !seasonRegex.MatchString(season) {
		return "", "", fmt.Errorf("%w: season must be in the YYYY format, got '%s'", ErrInvalidArgument, season)
	}
	return leagueID, season, nil
}
