package model

import (
	"fmt"
	"strings"
	"time"
)

// Player is a member of the player universe. Team is the NFL team abbreviation,
// empty for free agents.
type Player struct {
	ID        string
	FirstName string
	LastName  string
	Position  Position
	Team      string
	Active    bool
	Updated   time.Time
}

func (p *Player) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", p.FirstName, p.LastName))
}

func (p *Player) FormattedUpdatedTime() string {
	if p.Updated.IsZero() {
		return "unknown"
	}
	return p.Updated.Format(time.DateTime)
}

// PlayerRef is how a player shows up inside derived datasets.
type PlayerRef struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Value    float64  `json:"value"`
	Tier     Tier     `json:"tier"`
}

// Take a full name, like "Deebo Samuel Sr."" and return "Deebo Samuel".
func TrimNameSuffix(fullName string) string {
	suffixList := []string{
		"Jr.",
		"Sr.",
		"III",
		"II",
		"IV",
		"V",
	}

	fullName = strings.TrimSpace(fullName)
	for _, s := range suffixList {
		fullName = strings.TrimSuffix(fullName, " "+s)
	}

	return strings.TrimSpace(fullName)
}
