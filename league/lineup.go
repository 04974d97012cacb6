package league

import (
	"cmp"
	"slices"

	"github.com/mww/fantasy_analysis/model"
	"github.com/mww/fantasy_analysis/sleeper"
)

// optimalScore is the best score the team could have put up that week with
// the players on its roster.
func optimalScore(m sleeper.Matchup, lineup []model.RosterSpot, players map[string]model.Player) float64 {
	type scored struct {
		id     string
		pos    model.Position
		points float64
	}

	roster := make([]scored, 0, len(m.Players))
	for _, id := range m.Players {
		pos := model.POS_UNKNOWN
		if p, found := players[id]; found {
			pos = p.Position
		}
		roster = append(roster, scored{id: id, pos: pos, points: m.PlayersPoints[id]})
	}
	slices.SortFunc(roster, func(a, b scored) int {
		if c := cmp.Compare(b.points, a.points); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	positions := make([]model.Position, len(roster))
	points := make([]float64, len(roster))
	for i, p := range roster {
		positions[i] = p.pos
		points[i] = p.points
	}

	total := 0.0
	for _, idx := range model.BestLineup(lineup, positions, points) {
		if idx >= 0 {
			total += points[idx]
		}
	}

	// the actual lineup can never beat the best one, but the players points can
	// be missing for started players that were dropped mid week
	return model.RoundTo(max(total, m.Points), 2)
}
