package analysis

import (
	"context"
	"testing"

	"github.com/mww/fantasy_analysis/model"
)

func ratingsFor(teamID string, byWeek ...float64) []model.WeeklyRating {
	result := make([]model.WeeklyRating, 0, len(byWeek))
	for i, r := range byWeek {
		result = append(result, model.WeeklyRating{TeamID: teamID, Week: i + 1, Rating: r})
	}
	return result
}

func TestAddPowerImpact(t *testing.T) {
	ratings := append(ratingsFor("1", 100, 110, 130, 125, 140), ratingsFor("2", 90, 95, 80, 70, 60)...)

	trades := []model.TradeResult{
		{Week: 3, Sides: []model.TradeSide{{TeamID: "1"}, {TeamID: "2"}}},
		// no rating the week before week 1
		{Week: 1, Sides: []model.TradeSide{{TeamID: "1"}, {TeamID: "2"}}},
	}
	claims := []model.WaiverClaim{
		{TeamID: "1", Week: 3},
		{TeamID: "2", Week: 3},
		// only one week after the claim
		{TeamID: "1", Week: 4},
		{TeamID: "3", Week: 3},
	}

	addPowerImpact(trades, claims, ratings, 3)

	tests := []struct {
		name     string
		actual   float64
		expected float64
	}{
		{"trade week 3, team 1", trades[0].Sides[0].PowerImpact, 20},
		{"trade week 3, team 2", trades[0].Sides[1].PowerImpact, -15},
		{"trade week 1", trades[1].Sides[0].PowerImpact, 0},
		// (125 + 140) / 2 - (110 + 100) / 2
		{"claim week 3, team 1", claims[0].PowerImpact, 27.5},
		// (70 + 60) / 2 - (95 + 90) / 2
		{"claim week 3, team 2", claims[1].PowerImpact, -27.5},
		{"claim week 4", claims[2].PowerImpact, 0},
		{"unknown team", claims[3].PowerImpact, 0},
	}
	for _, tc := range tests {
		if tc.actual != tc.expected {
			t.Errorf("%s: expected %f, got %f", tc.name, tc.expected, tc.actual)
		}
	}
}

func TestAddPowerImpact_window(t *testing.T) {
	ratings := ratingsFor("1", 10, 20, 30, 40, 50, 60, 70)
	claims := []model.WaiverClaim{{TeamID: "1", Week: 4}}

	addPowerImpact(nil, claims, ratings, 2)
	// (50 + 60) / 2 - (30 + 20) / 2
	if claims[0].PowerImpact != 30 {
		t.Errorf("expected 30, got %f", claims[0].PowerImpact)
	}

	addPowerImpact(nil, claims, ratings, 1)
	if claims[0].PowerImpact != 20 {
		t.Errorf("expected 20 with a one week window, got %f", claims[0].PowerImpact)
	}
}

func TestRun_powerImpact(t *testing.T) {
	l, warnings, feed := buildFakeLeague(t)

	result, err := Run(context.Background(), l, feed, DefaultParams(), warnings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := newRatingHistory(result.PowerRankings)
	for _, tr := range result.Trades {
		for _, s := range tr.Sides {
			if expected := h.tradeImpact(s.TeamID, tr.Week); s.PowerImpact != expected {
				t.Errorf("trade %s team %s: expected a power impact of %f, got %f", tr.TransactionID, s.TeamID, expected, s.PowerImpact)
			}
		}
	}
}
