package rankings

import (
	"math"
	"slices"
	"time"

	"github.com/mww/fantasy_analysis/model"
)

// PlayerValue uses an exponential decay function in the form of y = a(1-b)^x
// to calculate a player value for a given rank. The values picked for a and b
// give the top 250 players a value greater than 1 and a distinct value for
// every rank. Unranked players have no value.
func PlayerValue(rank int32) float64 {
	if rank <= 0 {
		return 0
	}
	return model.RoundTo(100*math.Pow(0.983, float64(rank)), 2)
}

// History is the player value feed: every ranking that has been loaded, keyed
// by its effective date. It is read-only once built so it can be shared by
// concurrent analysis runs.
type History struct {
	rankings []model.Ranking
}

// NewHistory builds a History from rankings in any order. Rankings without
// player data are ignored.
func NewHistory(rankings []model.Ranking) *History {
	h := &History{rankings: make([]model.Ranking, 0, len(rankings))}
	for _, r := range rankings {
		if len(r.Players) == 0 {
			continue
		}
		h.rankings = append(h.rankings, r)
	}
	slices.SortStableFunc(h.rankings, func(a, b model.Ranking) int {
		return a.Date.Compare(b.Date)
	})
	return h
}

func (h *History) Len() int {
	return len(h.rankings)
}

// ValueAt returns the value of the player from the ranking in effect at t,
// which is the latest ranking dated on or before t. When every ranking is
// newer than t the earliest ranking is used. The bool is false when the player
// is not ranked.
func (h *History) ValueAt(playerID string, t time.Time) (float64, bool) {
	r := h.rankingAt(t)
	if r == nil {
		return 0, false
	}
	return valueIn(r, playerID)
}

// Current returns the player's value from the most recent ranking.
func (h *History) Current(playerID string) (float64, bool) {
	if len(h.rankings) == 0 {
		return 0, false
	}
	return valueIn(&h.rankings[len(h.rankings)-1], playerID)
}

func (h *History) rankingAt(t time.Time) *model.Ranking {
	if len(h.rankings) == 0 {
		return nil
	}
	idx := -1
	for i := range h.rankings {
		if h.rankings[i].Date.After(t) {
			break
		}
		idx = i
	}
	if idx < 0 {
		idx = 0
	}
	return &h.rankings[idx]
}

func valueIn(r *model.Ranking, playerID string) (float64, bool) {
	p, found := r.Players[playerID]
	if !found {
		return 0, false
	}
	return PlayerValue(p.Rank), true
}
