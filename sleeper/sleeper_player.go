package sleeper

import (
	"strings"

	"github.com/mww/fantasy_analysis/model"
)

type sleeperPlayer struct {
	ID        string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
	Active    bool   `json:"active"`
}

func (p *sleeperPlayer) toPlayer() *model.Player {
	return &model.Player{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Position:  model.ParsePosition(p.Position),
		Team:      parseTeam(p.Team),
		Active:    p.Active,
	}
}

// skip is true for entries in the player dump that can never be rostered in a
// standard league.
func (p *sleeperPlayer) skip() bool {
	return model.ParsePosition(p.Position) == model.POS_UNKNOWN ||
		(p.FirstName == "Player" && p.LastName == "Invalid")
}

// Sleeper returns some legacy team abbreviations, normalize them to the ones
// used by the ranking feeds.
func parseTeam(t string) string {
	t = strings.ToUpper(strings.TrimSpace(t))
	switch t {
	case "", "FA", "NULL":
		return ""
	case "JAC":
		return "JAX"
	case "WSH":
		return "WAS"
	case "LA":
		return "LAR"
	case "OAK":
		return "LV"
	case "SD":
		return "LAC"
	}
	return t
}
