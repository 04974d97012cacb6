package analysis

import "github.com/mww/fantasy_analysis/model"

// ratingHistory is each team's power rating by week.
type ratingHistory map[string]map[int]float64

func newRatingHistory(ratings []model.WeeklyRating) ratingHistory {
	h := make(ratingHistory)
	for _, r := range ratings {
		if h[r.TeamID] == nil {
			h[r.TeamID] = make(map[int]float64)
		}
		h[r.TeamID][r.Week] = r.Rating
	}
	return h
}

// tradeImpact is the change in the team's power rating from the week before
// the trade to the week of the trade, or 0 when either week has no rating.
func (h ratingHistory) tradeImpact(teamID string, week int) float64 {
	byWeek := h[teamID]
	before, foundBefore := byWeek[week-1]
	after, foundAfter := byWeek[week]
	if !foundBefore || !foundAfter {
		return 0
	}
	return round(after - before)
}

// claimImpact compares the team's average power rating over the weeks after
// the claim with the weeks before it, using up to window weeks on each side.
// Both sides need at least 2 rated weeks, otherwise the impact is 0.
func (h ratingHistory) claimImpact(teamID string, week, window int) float64 {
	byWeek := h[teamID]
	before := make([]float64, 0, window)
	for w := week - 1; w >= 1 && len(before) < window; w-- {
		if r, found := byWeek[w]; found {
			before = append(before, r)
		}
	}
	after := make([]float64, 0, window)
	for w := week + 1; len(after) < window; w++ {
		r, found := byWeek[w]
		if !found {
			break
		}
		after = append(after, r)
	}

	need := min(2, window)
	if len(before) < need || len(after) < need {
		return 0
	}
	return round(mean(after) - mean(before))
}

// addPowerImpact fills in how each trade side's and each claim's team power
// rating moved around the week of the transaction.
func addPowerImpact(trades []model.TradeResult, claims []model.WaiverClaim, ratings []model.WeeklyRating, window int) {
	h := newRatingHistory(ratings)
	for i := range trades {
		for j := range trades[i].Sides {
			s := &trades[i].Sides[j]
			s.PowerImpact = h.tradeImpact(s.TeamID, trades[i].Week)
		}
	}
	for i := range claims {
		claims[i].PowerImpact = h.claimImpact(claims[i].TeamID, claims[i].Week, window)
	}
}
