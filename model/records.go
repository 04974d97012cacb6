package model

// MedianRecord compares a team's head to head record with the record it would
// have had playing against the league median every week.
type MedianRecord struct {
	TeamID       string  `json:"teamId"`
	TeamName     string  `json:"teamName"`
	Weeks        int     `json:"weeks"`
	Wins         float64 `json:"wins"`
	Losses       float64 `json:"losses"`
	MedianWins   float64 `json:"medianWins"`
	MedianLosses float64 `json:"medianLosses"`
	// Combined is the head to head record plus the median record.
	CombinedWins   float64      `json:"combinedWins"`
	CombinedLosses float64      `json:"combinedLosses"`
	Luck           float64      `json:"luck"`
	PointsFor      float64      `json:"pointsFor"`
	ByWeek         []MedianWeek `json:"byWeek"`
}

type MedianWeek struct {
	Week   int     `json:"week"`
	Score  float64 `json:"score"`
	Median float64 `json:"median"`
	// Credit is 1 for a win against the median, 0.5 for a tie and 0 for a loss.
	Credit float64 `json:"credit"`
}

func (r *MedianRecord) MedianWinPct() float64 {
	if r.Weeks == 0 {
		return 0
	}
	return r.MedianWins / float64(r.Weeks)
}
