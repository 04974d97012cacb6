package analysis

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mww/fantasy_analysis/model"
)

// fakeFeed returns the same value for a player no matter the date unless a
// dated value is set.
type fakeFeed struct {
	current map[string]float64
	dated   map[string]map[string]float64
}

func (f *fakeFeed) ValueAt(id string, at time.Time) (float64, bool) {
	if byDate, found := f.dated[at.Format(time.DateOnly)]; found {
		v, found := byDate[id]
		return v, found
	}
	return f.Current(id)
}

func (f *fakeFeed) Current(id string) (float64, bool) {
	v, found := f.current[id]
	return v, found
}

// newLeague builds a league with one team per entry in scores. scores[i][w]
// is team i+1's score in week w+1. Teams are paired 1v2, 3v4, ...
func newLeague(scores [][]float64) *model.League {
	l := &model.League{
		ID:              "L1",
		Name:            "Test",
		Season:          "2024",
		RosterPositions: []string{"QB", "RB", "WR", "TE", "FLEX", "BN"},
		Players:         make(map[string]model.Player),
	}

	weeks := len(scores[0])
	for w := 1; w <= weeks; w++ {
		l.Weeks = append(l.Weeks, w)
	}

	for i := range scores {
		l.Teams = append(l.Teams, &model.Team{
			ID:          strconv.Itoa(i + 1),
			ManagerID:   fmt.Sprintf("m%d", i+1),
			ManagerName: fmt.Sprintf("manager %d", i+1),
		})
	}

	for i, t := range l.Teams {
		oppIdx := i + 1
		if i%2 == 1 {
			oppIdx = i - 1
		}
		for w := 1; w <= weeks; w++ {
			r := model.WeekResult{
				Week:         w,
				MatchupID:    i/2 + 1,
				Score:        scores[i][w-1],
				OptimalScore: scores[i][w-1],
			}
			if oppIdx < len(scores) {
				r.OpponentID = l.Teams[oppIdx].ID
				r.OpponentScore = scores[oppIdx][w-1]
				switch {
				case r.Score > r.OpponentScore:
					r.Outcome = model.OUTCOME_WIN
				case r.Score < r.OpponentScore:
					r.Outcome = model.OUTCOME_LOSS
				default:
					r.Outcome = model.OUTCOME_TIE
				}
			}
			t.Results = append(t.Results, r)
		}
	}
	return l
}

func addPlayer(l *model.League, id string, pos model.Position) {
	l.Players[id] = model.Player{ID: id, FirstName: "Player", LastName: id, Position: pos}
}
