package analysis

import (
	"cmp"
	"slices"

	"github.com/mww/fantasy_analysis/model"
)

// ReportCards rolls every category up into one composite grade per manager.
// A manager with no trades or no waiver claims gets the neutral midpoint for
// that category instead of a zero. The roster trend is graded against the rest
// of the league and luck moves LuckScale points away from the midpoint for
// every win above or below the median record.
func ReportCards(l *model.League, rosters []model.RosterGrade, ratings []model.WeeklyRating, records []model.MedianRecord,
	trades []model.TradeResult, claims []model.WaiverClaim, params Params) ([]model.ReportCard, []model.Warning) {
	warnings := make([]model.Warning, 0)

	rosterByTeam := make(map[string]model.RosterGrade, len(rosters))
	for _, r := range rosters {
		rosterByTeam[r.TeamID] = r
	}
	recordByTeam := make(map[string]model.MedianRecord, len(records))
	for _, r := range records {
		recordByTeam[r.TeamID] = r
	}

	latest := latestRatings(ratings)
	powerValues := make([]float64, len(latest))
	for i, r := range latest {
		powerValues[i] = r.Rating
	}
	powerGrades, err := normalize(powerValues)
	if err != nil && len(latest) > 0 {
		warnings = append(warnings, model.NewWarning("report_cards", "power", err))
	}
	powerByTeam := make(map[string]float64, len(latest))
	for i, r := range latest {
		powerByTeam[r.TeamID] = powerGrades[i]
	}

	trends := make([]float64, len(rosters))
	for i, r := range rosters {
		trends[i] = r.Trend
	}
	trendGrades, trendErr := normalize(trends)
	if trendErr != nil && len(rosters) > 0 {
		warnings = append(warnings, model.NewWarning("report_cards", "trend", trendErr))
	}
	trendByTeam := make(map[string]float64, len(rosters))
	for i, r := range rosters {
		trendByTeam[r.TeamID] = trendGrades[i]
	}

	tradeSummaries := TradeSummaries(trades)
	waiverNet, waiverCount := WaiverTotals(claims)

	w := params.Weights
	weightSum := w.Sum()

	cards := make([]model.ReportCard, 0, len(l.Teams))
	for _, t := range l.Teams {
		roster := rosterByTeam[t.ID]
		record := recordByTeam[t.ID]
		summary := tradeSummaries[t.ID]

		power, found := powerByTeam[t.ID]
		if !found {
			power = neutral
		}

		tradeScore := neutral
		if summary.Trades > 0 {
			tradeScore = clamp(neutral+summary.NetValue*params.TradeScale, 0, 100)
		}
		trend, trendFound := trendByTeam[t.ID]
		if !trendFound {
			trend = neutral
		}
		luckScore := neutral
		if record.Weeks > 0 {
			luckScore = clamp(neutral+record.Luck*params.LuckScale, 0, 100)
		}

		waiverScore := neutral
		if waiverCount[t.ID] > 0 {
			waiverScore = clamp(neutral+waiverNet[t.ID]*params.WaiverScale, 0, 100)
		}

		categories := []model.CategoryScore{
			category(model.CAT_ROSTER, roster.Grade, w.Roster, false),
			category(model.CAT_TREND, trend, w.Trend, !trendFound || trendErr != nil),
			category(model.CAT_POWER, power, w.Power, !found),
			category(model.CAT_TRADES, tradeScore, w.Trades, summary.Trades == 0),
			category(model.CAT_WAIVERS, waiverScore, w.Waivers, waiverCount[t.ID] == 0),
			category(model.CAT_RECORD, record.MedianWinPct()*100, w.Record, record.Weeks == 0),
			category(model.CAT_LUCK, luckScore, w.Luck, record.Weeks == 0),
		}

		composite := 0.0
		for _, c := range categories {
			composite += c.Score * c.Weight
		}
		composite = round(composite / weightSum)

		cards = append(cards, model.ReportCard{
			ManagerID:   t.ManagerID,
			ManagerName: t.ManagerName,
			TeamID:      t.ID,
			TeamName:    t.DisplayName(),
			Composite:   composite,
			Letter:      model.Letter(composite),
			Categories:  categories,
			Luck:        record.Luck,
			RosterTrend: roster.Trend,
			Trades:      summary,
			WaiverNet:   waiverNet[t.ID],
			Claims:      waiverCount[t.ID],
		})
	}

	slices.SortStableFunc(cards, func(a, b model.ReportCard) int {
		return cmp.Or(
			cmp.Compare(b.Composite, a.Composite),
			cmp.Compare(a.ManagerID, b.ManagerID),
			model.CompareIDs(a.TeamID, b.TeamID),
		)
	})
	for i := range cards {
		cards[i].Rank = i + 1
	}

	return cards, warnings
}

func category(c model.ReportCategory, score, weight float64, neutral bool) model.CategoryScore {
	score = round(score)
	return model.CategoryScore{
		Category: c,
		Score:    score,
		Weight:   weight,
		Letter:   model.Letter(score),
		Neutral:  neutral,
	}
}
