package model

import "math"

// emptySpot is the cost of leaving a lineup spot open. It dwarfs any player
// value so a spot is only left open when nobody eligible is left for it.
const emptySpot = 1e9

// BestLineup picks the starters that give the lineup the highest total value.
// Candidates are described by index in positions and values and should be
// sorted best first, since ties go to the lower index. The result has one
// entry per spot with the index of the player starting there, or -1 when no
// eligible player is left for the spot.
//
// Spots are assigned with the Hungarian method rather than filled in order,
// since mixed flex spots like REC_FLEX and WRRB_FLEX can both want the same WR.
func BestLineup(lineup []RosterSpot, positions []Position, values []float64) []int {
	n := len(lineup)
	result := make([]int, n)
	if n == 0 {
		return result
	}

	// one column per player plus one open column per spot
	k := len(positions)
	m := k + n
	cost := func(spot, col int) float64 {
		if col < k && lineup[spot].IsAllowed(positions[col]) {
			return -values[col]
		}
		return emptySpot
	}

	u := make([]float64, n+1)
	v := make([]float64, m+1)
	p := make([]int, m+1)
	way := make([]int, m+1)
	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		used := make([]bool, m+1)
		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := cost(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	for i := range result {
		result[i] = -1
	}
	for j := 1; j <= k; j++ {
		if p[j] != 0 && lineup[p[j]-1].IsAllowed(positions[j-1]) {
			result[p[j]-1] = j - 1
		}
	}

	settleLineup(lineup, positions, values, result)
	return result
}

// settleLineup makes equal lineups come out the same. A starter is swapped for
// an unused player that is listed earlier and worth as much, and better players
// move into earlier spots when both players can play either spot. Neither
// changes the total.
func settleLineup(lineup []RosterSpot, positions []Position, values []float64, result []int) {
	inUse := make(map[int]bool, len(result))
	for _, idx := range result {
		if idx >= 0 {
			inUse[idx] = true
		}
	}
	for i, a := range result {
		if a < 0 {
			continue
		}
		for c := 0; c < a; c++ {
			if inUse[c] || values[c] < values[a] || !lineup[i].IsAllowed(positions[c]) {
				continue
			}
			delete(inUse, a)
			inUse[c] = true
			result[i] = c
			break
		}
	}

	for changed := true; changed; {
		changed = false
		for i := range result {
			for j := i + 1; j < len(result); j++ {
				a, b := result[i], result[j]
				if b < 0 || (a >= 0 && a < b) {
					continue
				}
				if !lineup[i].IsAllowed(positions[b]) {
					continue
				}
				if a >= 0 && !lineup[j].IsAllowed(positions[a]) {
					continue
				}
				result[i], result[j] = b, a
				changed = true
			}
		}
	}
}
