package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mww/fantasy_analysis/model"
)

// ValueFeed provides player values. ValueAt is the value from the ranking in
// effect at a point in time and Current is the latest value.
type ValueFeed interface {
	ValueAt(playerID string, at time.Time) (float64, bool)
	Current(playerID string) (float64, bool)
}

type rosterTotal struct {
	total      float64
	starters   []model.PlayerRef
	bench      []model.PlayerRef
	byPosition map[model.Position]float64
	tiers      map[model.Tier]int
	// unvalued holds the players that count as 0 because the feed has no
	// value for them.
	unvalued []string
}

// Position grades at or above strongGrade make a strong position and below
// weakGrade a weak one.
const (
	strongGrade = 70.0
	weakGrade   = 30.0
)

// GradeRosters grades every team's current roster. Starters are the most
// valuable lineup the roster can field, and the rest of the roster counts at
// the bench weight. Players without a value count as 0 and each one gets a
// warning.
func GradeRosters(l *model.League, feed ValueFeed, params Params) ([]model.RosterGrade, []model.Warning) {
	lineup := l.Lineup()
	warnings := make([]model.Warning, 0)

	grades := make([]model.RosterGrade, 0, len(l.Teams))
	for _, t := range l.Teams {
		current := calculateRosterTotal(l, t.Roster, lineup, feed, params.BenchWeight)
		initial := calculateRosterTotal(l, t.InitialRoster, lineup, feed, params.BenchWeight)

		unvalued := slices.Concat(current.unvalued, initial.unvalued)
		slices.Sort(unvalued)
		for _, id := range slices.Compact(unvalued) {
			err := fmt.Errorf("%w: no current value for player %s, counted as 0", model.ErrDataUnavailable, id)
			warnings = append(warnings, model.NewWarning("rosters", t.ID, err))
		}

		grades = append(grades, model.RosterGrade{
			TeamID:     t.ID,
			TeamName:   t.DisplayName(),
			Total:      round(current.total),
			ByPosition: current.byPosition,
			Starters:   current.starters,
			Bench:      current.bench,
			Trend:      round(current.total - initial.total),
			Tiers:      current.tiers,
		})
	}

	slices.SortStableFunc(grades, func(a, b model.RosterGrade) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return model.CompareIDs(a.TeamID, b.TeamID)
	})

	totals := make([]float64, len(grades))
	for i := range grades {
		totals[i] = grades[i].Total
	}
	normalized, err := normalize(totals)
	if err != nil {
		warnings = append(warnings, model.NewWarning("rosters", l.ID, err))
	}

	for i := range grades {
		grades[i].Rank = i + 1
		grades[i].Grade = round(normalized[i])
		grades[i].Letter = model.Letter(grades[i].Grade)
	}

	gradePositions(grades, lineupPositions(lineup))
	for i := range grades {
		grades[i].Notes = rosterNotes(&grades[i])
	}

	return grades, warnings
}

// lineupPositions lists the positions that can start in the lineup.
func lineupPositions(lineup []model.RosterSpot) []model.Position {
	result := make([]model.Position, 0, len(model.Positions))
	for _, pos := range model.Positions {
		if slices.ContainsFunc(lineup, func(s model.RosterSpot) bool { return s.IsAllowed(pos) }) {
			result = append(result, pos)
		}
	}
	return result
}

// gradePositions grades each position against the rest of the league. When
// every team has the same value at a position they all get the neutral grade.
func gradePositions(grades []model.RosterGrade, positions []model.Position) {
	for i := range grades {
		grades[i].PositionGrades = make(map[model.Position]float64, len(positions))
		grades[i].Strong = make([]model.Position, 0)
		grades[i].Weak = make([]model.Position, 0)
	}

	for _, pos := range positions {
		values := make([]float64, len(grades))
		for i, g := range grades {
			values[i] = g.ByPosition[pos]
		}
		normalized, _ := normalize(values)
		for i := range grades {
			g := round(normalized[i])
			grades[i].PositionGrades[pos] = g
			switch {
			case g >= strongGrade:
				grades[i].Strong = append(grades[i].Strong, pos)
			case g < weakGrade:
				grades[i].Weak = append(grades[i].Weak, pos)
			}
		}
	}
}

func rosterNotes(g *model.RosterGrade) []string {
	notes := make([]string, 0)
	if len(g.Strong) > 0 {
		notes = append(notes, "Strong at: "+joinPositions(g.Strong))
	}
	if len(g.Weak) > 0 {
		notes = append(notes, "Weak at: "+joinPositions(g.Weak))
	}
	if g.Tiers[model.TIER_ELITE] >= 3 {
		notes = append(notes, "Elite-heavy roster")
	}
	if g.Tiers[model.TIER_SOLID] >= 6 {
		notes = append(notes, "Deep and consistent")
	}
	if g.Tiers[model.TIER_UNRANKED] >= 5 {
		notes = append(notes, "Many unproven players")
	}
	if len(notes) == 0 {
		notes = append(notes, "Balanced roster construction")
	}
	return notes
}

func joinPositions(positions []model.Position) string {
	s := make([]string, len(positions))
	for i, p := range positions {
		s[i] = string(p)
	}
	return strings.Join(s, ", ")
}

func calculateRosterTotal(l *model.League, ids []string, lineup []model.RosterSpot, feed ValueFeed, benchWeight float64) rosterTotal {
	var unvalued []string
	players := make([]model.PlayerRef, 0, len(ids))
	for _, id := range ids {
		p := playerRef(l, id, feed.Current)
		if p.Tier == model.TIER_UNRANKED {
			unvalued = append(unvalued, id)
		}
		players = append(players, p)
	}
	// Sort the roster by value, so that the most valuable players will come first.
	slices.SortFunc(players, func(a, b model.PlayerRef) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	result := rosterTotal{
		starters:   make([]model.PlayerRef, 0, len(lineup)),
		bench:      make([]model.PlayerRef, 0, len(players)),
		byPosition: make(map[model.Position]float64),
		tiers:      make(map[model.Tier]int),
		unvalued:   unvalued,
	}
	for _, p := range players {
		result.tiers[p.Tier]++
	}

	positions := make([]model.Position, len(players))
	values := make([]float64, len(players))
	for i, p := range players {
		positions[i] = p.Position
		values[i] = p.Value
	}

	used := make(map[string]bool, len(lineup))
	for _, idx := range model.BestLineup(lineup, positions, values) {
		if idx < 0 {
			continue
		}
		p := players[idx]
		used[p.ID] = true
		result.starters = append(result.starters, p)
		result.total += p.Value
		result.byPosition[p.Position] += p.Value
	}

	// Once all the starters are selected, put the rest of the players on the bench
	for _, p := range players {
		if used[p.ID] {
			continue
		}
		v := p.Value * benchWeight
		result.bench = append(result.bench, p)
		result.total += v
		if p.Position != model.POS_UNKNOWN {
			result.byPosition[p.Position] += v
		}
	}

	for pos, v := range result.byPosition {
		result.byPosition[pos] = round(v)
	}
	return result
}

func playerRef(l *model.League, id string, value func(string) (float64, bool)) model.PlayerRef {
	p := l.Player(id)
	v, found := value(id)
	return model.PlayerRef{
		ID:       id,
		Name:     p.FullName(),
		Position: p.Position,
		Value:    v,
		Tier:     model.TierFor(v, found),
	}
}
