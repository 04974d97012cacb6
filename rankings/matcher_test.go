package rankings

import (
	"reflect"
	"testing"

	"github.com/mww/fantasy_analysis/model"
)

var matcherPlayers = []model.Player{
	{ID: "6794", FirstName: "Justin", LastName: "Jefferson", Position: model.POS_WR, Team: "MIN", Active: true},
	{ID: "4034", FirstName: "Christian", LastName: "McCaffrey", Position: model.POS_RB, Team: "SF", Active: true},
	{ID: "7564", FirstName: "Ja'Marr", LastName: "Chase", Position: model.POS_WR, Team: "CIN", Active: true},
	{ID: "1466", FirstName: "Travis", LastName: "Kelce", Position: model.POS_TE, Team: "KC", Active: true},
	{ID: "11632", FirstName: "Marvin", LastName: "Harrison", Position: model.POS_WR, Team: "ARI", Active: true},
	{ID: "1000", FirstName: "Marvin", LastName: "Harrison", Position: model.POS_WR, Team: "", Active: false},
	{ID: "8112", FirstName: "Kenneth", LastName: "Walker", Position: model.POS_RB, Team: "SEA", Active: true},
	{ID: "5859", FirstName: "A.J.", LastName: "Brown", Position: model.POS_WR, Team: "PHI", Active: true},
	{ID: "17", FirstName: "Justin", LastName: "Tucker", Position: model.POS_K, Team: "", Active: true},
}

func TestMatch(t *testing.T) {
	m := NewMatcher(matcherPlayers)

	tests := map[string]struct {
		row      Row
		expected string
		found    bool
	}{
		"exact":             {row: Row{Name: "Justin Jefferson", Team: "MIN", Position: model.POS_WR}, expected: "6794", found: true},
		"punctuation":       {row: Row{Name: "AJ Brown", Team: "PHI", Position: model.POS_WR}, expected: "5859", found: true},
		"apostrophe":        {row: Row{Name: "JaMarr Chase", Team: "CIN", Position: model.POS_WR}, expected: "7564", found: true},
		"prefer team match": {row: Row{Name: "Marvin Harrison", Team: "ARI", Position: model.POS_WR}, expected: "11632", found: true},
		"short first name":  {row: Row{Name: "Ken Walker", Team: "SEA", Position: model.POS_RB}, expected: "8112", found: true},
		"free agent":        {row: Row{Name: "Justin Tucker", Team: "", Position: model.POS_K}, expected: "17", found: true},
		"wrong position":    {row: Row{Name: "Travis Kelce", Team: "KC", Position: model.POS_WR}, found: false},
		"unknown player":    {row: Row{Name: "Nobody Special", Team: "KC", Position: model.POS_TE}, found: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			id, found := m.Match(tc.row)
			if found != tc.found {
				t.Fatalf("expected found=%v, got %v (%s)", tc.found, found, id)
			}
			if id != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, id)
			}
		})
	}
}

func TestMatchAll(t *testing.T) {
	m := NewMatcher(matcherPlayers)

	rows := []Row{
		{Rank: 1, Name: "Justin Jefferson", Team: "MIN", Position: model.POS_WR},
		{Rank: 2, Name: "Christian McCaffrey", Team: "SF", Position: model.POS_RB},
		{Rank: 400, Name: "Deep Sleeper", Team: "NYJ", Position: model.POS_WR},
	}

	result, unmatched, err := m.MatchAll(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := map[string]int32{"6794": 1, "4034": 2}
	if !reflect.DeepEqual(expected, result) {
		t.Errorf("expected %v, got %v", expected, result)
	}
	if len(unmatched) != 1 || unmatched[0].Name != "Deep Sleeper" {
		t.Errorf("expected Deep Sleeper to be unmatched, got %v", unmatched)
	}

	// A top ranked player that cannot be matched fails the whole ranking
	_, _, err = m.MatchAll([]Row{{Rank: 10, Name: "Deep Sleeper", Team: "NYJ", Position: model.POS_WR}})
	if err == nil {
		t.Errorf("expected an error for an unmatched top 300 player")
	}
}
