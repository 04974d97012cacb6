package analysis

import (
	"context"
	"fmt"

	"github.com/mww/fantasy_analysis/model"
	"golang.org/x/sync/errgroup"
)

// Result holds every derived dataset from one analysis run.
type Result struct {
	LeagueID      string               `json:"leagueId"`
	LeagueName    string               `json:"leagueName"`
	Season        string               `json:"season"`
	Weeks         []int                `json:"weeks"`
	Rosters       []model.RosterGrade  `json:"rosters"`
	PowerRankings []model.WeeklyRating `json:"powerRankings"`
	MedianRecords []model.MedianRecord `json:"medianRecords"`
	Trades        []model.TradeResult  `json:"trades"`
	Waivers       []model.WaiverClaim  `json:"waivers"`
	ReportCards   []model.ReportCard   `json:"reportCards"`
	Warnings      []model.Warning      `json:"warnings"`
}

// Run computes every dataset for the league. The league is only read, so the
// independent analyses run concurrently and the report cards are built from
// their output. Warnings from building the league can be passed in so they
// are kept with the rest of the run's warnings.
func Run(ctx context.Context, l *model.League, feed ValueFeed, params Params, warnings []model.Warning) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis params: %w", err)
	}
	if len(l.Weeks) == 0 || len(l.Teams) == 0 {
		return nil, fmt.Errorf("%w: league %s has no completed weeks or teams", model.ErrDataUnavailable, l.ID)
	}

	result := &Result{
		LeagueID:   l.ID,
		LeagueName: l.Name,
		Season:     l.Season,
		Weeks:      l.Weeks,
	}

	var rosterWarnings, tradeWarnings, waiverWarnings []model.Warning

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.Rosters, rosterWarnings = GradeRosters(l, feed, params)
		return gctx.Err()
	})
	g.Go(func() error {
		result.PowerRankings = PowerRankings(l, params)
		return gctx.Err()
	})
	g.Go(func() error {
		result.MedianRecords = MedianRecords(l)
		return gctx.Err()
	})
	g.Go(func() error {
		result.Trades, tradeWarnings = AnalyzeTrades(l, feed, params)
		return gctx.Err()
	})
	g.Go(func() error {
		result.Waivers, waiverWarnings = AnalyzeWaivers(l, feed)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	addPowerImpact(result.Trades, result.Waivers, result.PowerRankings, params.TrailingWindow)

	cards, cardWarnings := ReportCards(l, result.Rosters, result.PowerRankings, result.MedianRecords, result.Trades, result.Waivers, params)
	result.ReportCards = cards

	all := make([]model.Warning, 0, len(warnings)+len(rosterWarnings)+len(tradeWarnings)+len(waiverWarnings)+len(cardWarnings))
	all = append(all, warnings...)
	all = append(all, rosterWarnings...)
	all = append(all, tradeWarnings...)
	all = append(all, waiverWarnings...)
	all = append(all, cardWarnings...)
	model.SortWarnings(all)
	result.Warnings = all

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
