package rankings

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mww/fantasy_analysis/model"
)

// Players ranked past this point are dropped quietly when no match is found.
const strictRankLimit = 300

// Matcher finds the sleeper player for a ranking row by fuzzy matching the
// name against players that play the same position.
type Matcher struct {
	byPosition map[model.Position][]model.Player
}

func NewMatcher(players []model.Player) *Matcher {
	m := &Matcher{byPosition: make(map[model.Position][]model.Player)}
	for _, p := range players {
		m.byPosition[p.Position] = append(m.byPosition[p.Position], p)
	}
	for pos := range m.byPosition {
		slices.SortFunc(m.byPosition[pos], func(a, b model.Player) int {
			return strings.Compare(a.ID, b.ID)
		})
	}
	return m
}

// Match returns the id of the best match for the row. Candidates on the same
// NFL team are preferred, then the smallest edit distance, then inactive
// players are pushed behind active ones.
func (m *Matcher) Match(row Row) (string, bool) {
	type candidate struct {
		id       string
		sameTeam bool
		active   bool
		distance int
	}

	target := normalizeName(row.Name)
	var best *candidate
	for _, p := range m.byPosition[row.Position] {
		name := normalizeName(p.FullName())
		d := fuzzy.RankMatchNormalizedFold(target, name)
		if d < 0 {
			d = fuzzy.RankMatchNormalizedFold(name, target)
		}
		if d < 0 || d > 4 {
			continue
		}

		c := &candidate{id: p.ID, sameTeam: row.Team != "" && row.Team == p.Team, active: p.Active, distance: d}
		if best == nil || better(c.sameTeam, best.sameTeam, c.distance, best.distance, c.active, best.active) {
			best = c
		}
	}

	if best == nil {
		return "", false
	}
	return best.id, true
}

func better(sameTeam, bestSameTeam bool, distance, bestDistance int, active, bestActive bool) bool {
	if sameTeam != bestSameTeam {
		return sameTeam
	}
	if distance != bestDistance {
		return distance < bestDistance
	}
	return active && !bestActive
}

// MatchAll converts ranking rows into a map of player id to rank. Rows that
// cannot be matched are returned so the caller can report them. A highly
// ranked row without a match is an error since the ranking would be missing
// a player that matters.
func (m *Matcher) MatchAll(rows []Row) (map[string]int32, []Row, error) {
	result := make(map[string]int32, len(rows))
	unmatched := make([]Row, 0)
	for _, r := range rows {
		id, ok := m.Match(r)
		if !ok {
			if r.Rank <= strictRankLimit {
				return nil, nil, fmt.Errorf("did not find a player for %s", r.String())
			}
			unmatched = append(unmatched, r)
			continue
		}
		// a player listed twice keeps the better rank
		if existing, found := result[id]; found && existing <= r.Rank {
			continue
		}
		result[id] = r.Rank
	}
	return result, unmatched, nil
}

func normalizeName(n string) string {
	n = model.TrimNameSuffix(n)
	n = strings.ReplaceAll(n, ".", "")
	n = strings.ReplaceAll(n, "'", "")
	return strings.ToLower(strings.TrimSpace(n))
}
