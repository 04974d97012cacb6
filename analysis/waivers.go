package analysis

import (
	"slices"

	"github.com/mww/fantasy_analysis/model"
)

// AnalyzeWaivers scores every waiver claim and free agent pickup by the value
// of the players added at the time of the claim, less the value of anyone the
// same team dropped in that transaction. Claims in the top quartile of the
// league are flagged good and the bottom quartile bad.
func AnalyzeWaivers(l *model.League, feed ValueFeed) ([]model.WaiverClaim, []model.Warning) {
	claims := make([]model.WaiverClaim, 0)
	warnings := make([]model.Warning, 0)

	for _, tx := range l.Transactions {
		if tx.Kind != model.TX_WAIVER && tx.Kind != model.TX_FREE_AGENT {
			continue
		}

		valueAt := func(id string) (float64, bool) {
			v, found := feed.ValueAt(id, tx.Timestamp)
			if !found {
				warnings = append(warnings, missingValue("waivers", tx, id))
			}
			return v, found
		}

		parties := slices.Clone(tx.Parties)
		slices.SortFunc(parties, model.CompareIDs)
		for _, party := range parties {
			added := tx.PlayersAddedTo(party)
			// a drop without an add is roster churn, not a claim
			if len(added) == 0 {
				continue
			}

			c := model.WaiverClaim{
				TransactionID: tx.ID,
				Kind:          tx.Kind,
				Week:          tx.Week,
				Timestamp:     tx.Timestamp,
				TeamID:        party,
				Bid:           tx.WaiverBid,
			}
			if t := l.Team(party); t != nil {
				c.TeamName = t.DisplayName()
			}
			for _, id := range added {
				p := playerRef(l, id, valueAt)
				c.Added = append(c.Added, p)
				c.AddedValue += p.Value
			}
			for _, id := range tx.PlayersDroppedBy(party) {
				p := playerRef(l, id, valueAt)
				c.Dropped = append(c.Dropped, p)
				c.DroppedValue += p.Value
			}
			c.Net = round(c.AddedValue - c.DroppedValue)
			c.AddedValue = round(c.AddedValue)
			c.DroppedValue = round(c.DroppedValue)
			claims = append(claims, c)
		}
	}

	flagClaims(claims)
	return claims, warnings
}

func flagClaims(claims []model.WaiverClaim) {
	nets := make([]float64, len(claims))
	for i, c := range claims {
		nets[i] = c.Net
	}
	q1, q3 := quantile(nets, 0.25), quantile(nets, 0.75)

	for i := range claims {
		switch {
		case q1 == q3:
			claims[i].Flag = model.WAIVER_NEUTRAL
		case claims[i].Net >= q3:
			claims[i].Flag = model.WAIVER_GOOD
		case claims[i].Net <= q1:
			claims[i].Flag = model.WAIVER_BAD
		default:
			claims[i].Flag = model.WAIVER_NEUTRAL
		}
	}
}

// WaiverTotals sums the net value and number of claims per team.
func WaiverTotals(claims []model.WaiverClaim) (map[string]float64, map[string]int) {
	net := make(map[string]float64)
	count := make(map[string]int)
	for _, c := range claims {
		net[c.TeamID] = round(net[c.TeamID] + c.Net)
		count[c.TeamID]++
	}
	return net, count
}
