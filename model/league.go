package model

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// League is the snapshot of one season that every analysis reads from. It is
// built once per run and never modified afterwards.
type League struct {
	ID              string
	Name            string
	Season          string
	Weeks           []int
	RosterPositions []string
	Teams           []*Team
	Transactions    []Transaction
	Players         map[string]Player
}

// Lineup is the league's starting lineup with flex spots last.
func (l *League) Lineup() []RosterSpot {
	return StartingLineup(l.RosterPositions)
}

func (l *League) Team(id string) *Team {
	for _, t := range l.Teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (l *League) LastWeek() int {
	if len(l.Weeks) == 0 {
		return 0
	}
	return l.Weeks[len(l.Weeks)-1]
}

// Player returns the player with the id, or a placeholder with an unknown
// position when the player is not part of the universe.
func (l *League) Player(id string) Player {
	if p, found := l.Players[id]; found {
		return p
	}
	return Player{ID: id, Position: POS_UNKNOWN}
}

// LeagueSummary is a league as listed for a user.
type LeagueSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Season string `json:"season"`
	Teams  int    `json:"teams"`
}

type Outcome string

const (
	OUTCOME_NONE Outcome = ""
	OUTCOME_WIN  Outcome = "W"
	OUTCOME_LOSS Outcome = "L"
	OUTCOME_TIE  Outcome = "T"
)

type Team struct {
	// ID is the sleeper roster id.
	ID          string
	ManagerID   string
	ManagerName string
	TeamName    string
	Roster      []string
	// InitialRoster is the roster before any transaction in the season was
	// applied, reconstructed from the current roster and the transaction log.
	InitialRoster []string
	// Results holds one entry per completed week, in the same order as
	// League.Weeks.
	Results []WeekResult
}

// WeekResult is a team's matchup for one week, from the team's point of view.
type WeekResult struct {
	Week          int
	MatchupID     int
	Score         float64
	OptimalScore  float64
	OpponentID    string
	OpponentScore float64
	Outcome       Outcome
}

func (t *Team) Result(week int) (WeekResult, bool) {
	idx := slices.IndexFunc(t.Results, func(r WeekResult) bool { return r.Week == week })
	if idx < 0 {
		return WeekResult{}, false
	}
	return t.Results[idx], true
}

// DisplayName prefers the team name and falls back to the manager.
func (t *Team) DisplayName() string {
	if t.TeamName != "" {
		return t.TeamName
	}
	return t.ManagerName
}

// CompareIDs orders ids numerically when both are numbers, like sleeper roster
// ids, and lexically otherwise.
func CompareIDs(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return cmp.Compare(ai, bi)
	}
	return strings.Compare(a, b)
}
