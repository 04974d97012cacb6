package analysis

import (
	"cmp"
	"slices"

	"github.com/mww/fantasy_analysis/model"
)

// PowerRankings rates every team for every completed week. The weekly signal
// blends the actual score with how close the team got to its best possible
// lineup, and from week 2 on it is blended with the trailing average of the
// signal to smooth out single week variance. Output is ordered by week, then
// rank, since each week depends on the weeks before it.
func PowerRankings(l *model.League, params Params) []model.WeeklyRating {
	type running struct {
		signals []float64
		wins    float64
		points  float64
	}
	state := make(map[string]*running, len(l.Teams))
	for _, t := range l.Teams {
		state[t.ID] = &running{signals: make([]float64, 0, len(l.Weeks))}
	}

	result := make([]model.WeeklyRating, 0, len(l.Weeks)*len(l.Teams))
	for i, w := range l.Weeks {
		week := make([]model.WeeklyRating, 0, len(l.Teams))
		for _, t := range l.Teams {
			r, _ := t.Result(w)
			s := state[t.ID]

			efficiency := 1.0
			if r.OptimalScore > 0 {
				efficiency = r.Score / r.OptimalScore
			}
			signal := params.ScoreWeight*r.Score + params.EfficiencyWeight*efficiency*100
			s.signals = append(s.signals, signal)
			s.wins += outcomeCredit(r.Outcome)
			s.points += r.Score

			start := max(0, len(s.signals)-params.TrailingWindow)
			trailing := mean(s.signals[start:])

			rating := signal
			if i > 0 {
				rating = (params.SignalWeight*signal + params.TrailingWeight*trailing) / (params.SignalWeight + params.TrailingWeight)
			}

			week = append(week, model.WeeklyRating{
				TeamID:      t.ID,
				TeamName:    t.DisplayName(),
				Week:        w,
				Rating:      round(rating),
				Score:       round(r.Score),
				Efficiency:  model.RoundTo(efficiency, 4),
				Signal:      round(signal),
				Trailing:    round(trailing),
				Wins:        s.wins,
				TotalPoints: round(s.points),
			})
		}

		sortRatings(week)
		for j := range week {
			week[j].Rank = j + 1
		}
		result = append(result, week...)
	}

	return result
}

// Ties in rating go to the team with more wins, then more total points.
func sortRatings(ratings []model.WeeklyRating) {
	slices.SortStableFunc(ratings, func(a, b model.WeeklyRating) int {
		return cmp.Or(
			cmp.Compare(b.Rating, a.Rating),
			cmp.Compare(b.Wins, a.Wins),
			cmp.Compare(b.TotalPoints, a.TotalPoints),
			model.CompareIDs(a.TeamID, b.TeamID),
		)
	})
}

func outcomeCredit(o model.Outcome) float64 {
	switch o {
	case model.OUTCOME_WIN:
		return 1
	case model.OUTCOME_TIE:
		return 0.5
	default:
		return 0
	}
}

// latestRatings returns the ratings for the last week in the slice.
func latestRatings(ratings []model.WeeklyRating) []model.WeeklyRating {
	if len(ratings) == 0 {
		return nil
	}
	last := ratings[len(ratings)-1].Week
	idx := slices.IndexFunc(ratings, func(r model.WeeklyRating) bool { return r.Week == last })
	return ratings[idx:]
}
