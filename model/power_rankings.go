package model

// WeeklyRating is one team's power rating for one week along with the signals
// that produced it.
type WeeklyRating struct {
	TeamID      string  `json:"teamId"`
	TeamName    string  `json:"teamName"`
	Week        int     `json:"week"`
	Rank        int     `json:"rank"`
	Rating      float64 `json:"rating"`
	Score       float64 `json:"score"`
	Efficiency  float64 `json:"efficiency"`
	Signal      float64 `json:"signal"`
	Trailing    float64 `json:"trailing"`
	Wins        float64 `json:"wins"`
	TotalPoints float64 `json:"totalPoints"`
}
