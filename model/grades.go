package model

import "math"

// Letter converts a 0-100 grade into a letter grade.
func Letter(grade float64) string {
	switch {
	case grade >= 97:
		return "A+"
	case grade >= 93:
		return "A"
	case grade >= 90:
		return "A-"
	case grade >= 87:
		return "B+"
	case grade >= 83:
		return "B"
	case grade >= 80:
		return "B-"
	case grade >= 77:
		return "C+"
	case grade >= 73:
		return "C"
	case grade >= 70:
		return "C-"
	case grade >= 67:
		return "D+"
	case grade >= 63:
		return "D"
	case grade >= 60:
		return "D-"
	default:
		return "F"
	}
}

// RoundTo rounds v to the given number of decimal places. Derived values are
// rounded before they are stored so serialized output stays stable.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

type Tier string

const (
	TIER_ELITE    Tier = "elite"
	TIER_SOLID    Tier = "solid"
	TIER_FLEX     Tier = "flex"
	TIER_STREAMER Tier = "streamer"
	TIER_UNRANKED Tier = "unranked"
)

// TierFor buckets a player value. With the ranking value curve elite is about
// the top 6 ranked players, solid the top 20 and flex the top 40.
func TierFor(value float64, ranked bool) Tier {
	switch {
	case !ranked:
		return TIER_UNRANKED
	case value >= 90:
		return TIER_ELITE
	case value >= 70:
		return TIER_SOLID
	case value >= 50:
		return TIER_FLEX
	default:
		return TIER_STREAMER
	}
}

type RosterGrade struct {
	TeamID     string               `json:"teamId"`
	TeamName   string               `json:"teamName"`
	Rank       int                  `json:"rank"`
	Total      float64              `json:"total"`
	Grade      float64              `json:"grade"`
	Letter     string               `json:"letter"`
	ByPosition map[Position]float64 `json:"byPosition"`
	Starters   []PlayerRef          `json:"starters"`
	Bench      []PlayerRef          `json:"bench"`
	// Trend is the current roster total minus the total of the roster the team
	// started the season with, both at current values.
	Trend float64      `json:"trend"`
	Tiers map[Tier]int `json:"tiers"`
	// PositionGrades grades each lineup position's value against the rest of
	// the league on 0-100.
	PositionGrades map[Position]float64 `json:"positionGrades"`
	Strong         []Position           `json:"strong"`
	Weak           []Position           `json:"weak"`
	Notes          []string             `json:"notes"`
}

type ReportCategory string

const (
	CAT_ROSTER  ReportCategory = "roster"
	CAT_POWER   ReportCategory = "power"
	CAT_TRADES  ReportCategory = "trades"
	CAT_WAIVERS ReportCategory = "waivers"
	CAT_RECORD  ReportCategory = "record"
	CAT_TREND   ReportCategory = "trend"
	CAT_LUCK    ReportCategory = "luck"
)

var ReportCategories = []ReportCategory{CAT_ROSTER, CAT_TREND, CAT_POWER, CAT_TRADES, CAT_WAIVERS, CAT_RECORD, CAT_LUCK}

type CategoryScore struct {
	Category ReportCategory `json:"category"`
	Score    float64        `json:"score"`
	Weight   float64        `json:"weight"`
	Letter   string         `json:"letter"`
	// Neutral is set when the manager had no activity in the category.
	Neutral bool `json:"neutral"`
}

type ReportCard struct {
	Rank        int             `json:"rank"`
	ManagerID   string          `json:"managerId"`
	ManagerName string          `json:"managerName"`
	TeamID      string          `json:"teamId"`
	TeamName    string          `json:"teamName"`
	Composite   float64         `json:"composite"`
	Letter      string          `json:"letter"`
	Categories  []CategoryScore `json:"categories"`
	Luck        float64         `json:"luck"`
	RosterTrend float64         `json:"rosterTrend"`
	Trades      TradeSummary    `json:"trades"`
	WaiverNet   float64         `json:"waiverNet"`
	Claims      int             `json:"claims"`
}
