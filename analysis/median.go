package analysis

import (
	"cmp"
	"slices"

	"github.com/mww/fantasy_analysis/model"
)

// MedianRecords compares each team's head to head record with its record
// against the league median. Scoring above the median is a win, below is a
// loss and an exact tie is half of each. Luck is actual wins minus median
// wins, so a positive luck means the schedule helped.
func MedianRecords(l *model.League) []model.MedianRecord {
	records := make(map[string]*model.MedianRecord, len(l.Teams))
	for _, t := range l.Teams {
		records[t.ID] = &model.MedianRecord{
			TeamID:   t.ID,
			TeamName: t.DisplayName(),
			ByWeek:   make([]model.MedianWeek, 0, len(l.Weeks)),
		}
	}

	for _, w := range l.Weeks {
		scores := make([]float64, 0, len(l.Teams))
		for _, t := range l.Teams {
			r, _ := t.Result(w)
			scores = append(scores, r.Score)
		}
		m := median(scores)

		for _, t := range l.Teams {
			r, _ := t.Result(w)
			rec := records[t.ID]

			credit := medianCredit(r.Score, m)
			rec.Weeks++
			rec.MedianWins += credit
			rec.MedianLosses += 1 - credit
			rec.PointsFor += r.Score
			rec.ByWeek = append(rec.ByWeek, model.MedianWeek{
				Week:   w,
				Score:  round(r.Score),
				Median: round(m),
				Credit: credit,
			})

			switch r.Outcome {
			case model.OUTCOME_WIN:
				rec.Wins++
			case model.OUTCOME_LOSS:
				rec.Losses++
			case model.OUTCOME_TIE:
				rec.Wins += 0.5
				rec.Losses += 0.5
			}
		}
	}

	result := make([]model.MedianRecord, 0, len(records))
	for _, t := range l.Teams {
		rec := records[t.ID]
		rec.CombinedWins = rec.Wins + rec.MedianWins
		rec.CombinedLosses = rec.Losses + rec.MedianLosses
		rec.Luck = rec.Wins - rec.MedianWins
		rec.PointsFor = round(rec.PointsFor)
		result = append(result, *rec)
	}

	slices.SortStableFunc(result, func(a, b model.MedianRecord) int {
		return cmp.Or(
			cmp.Compare(b.CombinedWins, a.CombinedWins),
			cmp.Compare(b.PointsFor, a.PointsFor),
			model.CompareIDs(a.TeamID, b.TeamID),
		)
	})
	return result
}

func medianCredit(score, median float64) float64 {
	switch {
	case score > median:
		return 1
	case score < median:
		return 0
	default:
		return 0.5
	}
}
