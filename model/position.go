package model

import (
	"cmp"
	"slices"
	"strings"
)

type Position string

const (
	POS_UNKNOWN Position = "UNK"
	POS_QB      Position = "QB"
	POS_RB      Position = "RB"
	POS_WR      Position = "WR"
	POS_TE      Position = "TE"
	POS_K       Position = "K"
	POS_DEF     Position = "DEF"
)

// Positions lists every position that can hold a value, in display order.
var Positions = []Position{POS_QB, POS_RB, POS_WR, POS_TE, POS_K, POS_DEF}

func ParsePosition(pos string) Position {
	pos = strings.ToLower(pos)
	switch pos {
	case "qb":
		return POS_QB
	case "rb", "fb":
		return POS_RB
	case "wr":
		return POS_WR
	case "te":
		return POS_TE
	case "k", "pk":
		return POS_K
	case "def", "dst", "d/st":
		return POS_DEF
	default:
		return POS_UNKNOWN
	}
}

// RosterSpot is one starting lineup slot and the positions that may fill it.
type RosterSpot struct {
	Name    string
	Allowed []Position
}

// GetRosterSpot maps a sleeper roster_positions entry to a lineup slot. Returns
// false for slots that are not part of the starting lineup (BN, IR, TAXI).
func GetRosterSpot(slot string) (RosterSpot, bool) {
	slot = strings.ToUpper(slot)
	switch slot {
	case "FLEX":
		return RosterSpot{Name: slot, Allowed: []Position{POS_RB, POS_WR, POS_TE}}, true
	case "REC_FLEX":
		return RosterSpot{Name: slot, Allowed: []Position{POS_WR, POS_TE}}, true
	case "WRRB_FLEX":
		return RosterSpot{Name: slot, Allowed: []Position{POS_RB, POS_WR}}, true
	case "SUPER_FLEX":
		return RosterSpot{Name: slot, Allowed: []Position{POS_QB, POS_RB, POS_WR, POS_TE}}, true
	case "BN", "IR", "TAXI":
		return RosterSpot{}, false
	}

	pos := ParsePosition(slot)
	if pos == POS_UNKNOWN {
		return RosterSpot{}, false
	}
	return RosterSpot{Name: slot, Allowed: []Position{pos}}, true
}

func (rs *RosterSpot) IsAllowed(pos Position) bool {
	return slices.Contains(rs.Allowed, pos)
}

// IsFlex is true when more than one position can fill the spot.
func (rs *RosterSpot) IsFlex() bool {
	return len(rs.Allowed) > 1
}

// StartingLineup converts the league's roster positions into lineup spots with
// the single-position spots first, then the flex spots from narrowest to
// widest.
func StartingLineup(rosterPositions []string) []RosterSpot {
	strict := make([]RosterSpot, 0, len(rosterPositions))
	flex := make([]RosterSpot, 0, 2)
	for _, p := range rosterPositions {
		spot, ok := GetRosterSpot(p)
		if !ok {
			continue
		}
		if spot.IsFlex() {
			flex = append(flex, spot)
		} else {
			strict = append(strict, spot)
		}
	}
	slices.SortStableFunc(flex, func(a, b RosterSpot) int {
		return cmp.Compare(len(a.Allowed), len(b.Allowed))
	})
	return append(strict, flex...)
}
