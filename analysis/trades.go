package analysis

import (
	"fmt"
	"slices"
	"time"

	"github.com/mww/fantasy_analysis/model"
)

// AnalyzeTrades scores every trade with player values from the ranking in
// effect on the day of the trade. Each side's net is what it received minus
// what it sent. The margin is half the spread between the best and worst net,
// which for a two team trade is the difference in value each side received.
// Trades with a margin under the fairness threshold are draws.
func AnalyzeTrades(l *model.League, feed ValueFeed, params Params) ([]model.TradeResult, []model.Warning) {
	results := make([]model.TradeResult, 0)
	warnings := make([]model.Warning, 0)

	for _, tx := range l.Transactions {
		if tx.Kind != model.TX_TRADE {
			continue
		}
		r, w := scoreTrade(l, tx, feed, params.FairnessThreshold)
		results = append(results, r)
		warnings = append(warnings, w...)
	}
	return results, warnings
}

func scoreTrade(l *model.League, tx model.Transaction, feed ValueFeed, threshold float64) (model.TradeResult, []model.Warning) {
	warnings := make([]model.Warning, 0)
	valueAt := func(id string) (float64, bool) {
		v, found := feed.ValueAt(id, tx.Timestamp)
		if !found {
			warnings = append(warnings, missingValue("trades", tx, id))
		}
		return v, found
	}
	// sent players are received by another side, only warn about them once
	quiet := func(id string) (float64, bool) {
		return feed.ValueAt(id, tx.Timestamp)
	}

	parties := slices.Clone(tx.Parties)
	slices.SortFunc(parties, model.CompareIDs)

	result := model.TradeResult{
		TransactionID: tx.ID,
		Week:          tx.Week,
		Timestamp:     tx.Timestamp,
		Sides:         make([]model.TradeSide, 0, len(parties)),
	}

	for _, party := range parties {
		side := model.TradeSide{TeamID: party, Outcome: model.TRADE_DRAW}
		if t := l.Team(party); t != nil {
			side.TeamName = t.DisplayName()
		}
		for _, id := range tx.PlayersAddedTo(party) {
			p := playerRef(l, id, valueAt)
			side.Received = append(side.Received, p)
			side.IncomingValue += p.Value
		}
		for _, id := range tx.PlayersDroppedBy(party) {
			p := playerRef(l, id, quiet)
			side.Sent = append(side.Sent, p)
			side.OutgoingValue += p.Value
		}
		for _, pick := range tx.DraftPicks {
			if pick.NewOwner == party {
				side.PicksReceived = append(side.PicksReceived, pick)
			}
		}
		side.Net = round(side.IncomingValue - side.OutgoingValue)
		side.IncomingValue = round(side.IncomingValue)
		side.OutgoingValue = round(side.OutgoingValue)
		result.Sides = append(result.Sides, side)
	}

	if len(result.Sides) < 2 {
		result.Draw = true
		result.Significance = significance(0)
		return result, warnings
	}

	winner, loser := 0, 0
	for i, s := range result.Sides {
		if s.Net > result.Sides[winner].Net {
			winner = i
		}
		if s.Net < result.Sides[loser].Net {
			loser = i
		}
	}
	result.Margin = round((result.Sides[winner].Net - result.Sides[loser].Net) / 2)
	result.Significance = significance(result.Margin)

	if result.Margin == 0 || result.Margin < threshold {
		result.Draw = true
		return result, warnings
	}

	result.Winner = result.Sides[winner].TeamID
	result.Loser = result.Sides[loser].TeamID
	for i := range result.Sides {
		switch i {
		case winner:
			result.Sides[i].Outcome = model.TRADE_WIN
		case loser:
			result.Sides[i].Outcome = model.TRADE_LOSS
		default:
			result.Sides[i].Outcome = model.TRADE_EVEN
		}
	}
	return result, warnings
}

func significance(margin float64) string {
	switch {
	case margin >= 15:
		return "critical"
	case margin >= 8:
		return "major"
	case margin >= 3:
		return "moderate"
	case margin >= 1:
		return "minor"
	default:
		return "negligible"
	}
}

// TradeSummaries totals up each team's trades.
func TradeSummaries(trades []model.TradeResult) map[string]model.TradeSummary {
	result := make(map[string]model.TradeSummary)
	for _, t := range trades {
		for _, s := range t.Sides {
			sum := result[s.TeamID]
			sum.Trades++
			sum.NetValue = round(sum.NetValue + s.Net)
			switch s.Outcome {
			case model.TRADE_WIN:
				sum.Wins++
			case model.TRADE_LOSS:
				sum.Losses++
			case model.TRADE_DRAW:
				sum.Draws++
			}
			result[s.TeamID] = sum
		}
	}
	return result
}

func missingValue(component string, tx model.Transaction, playerID string) model.Warning {
	err := fmt.Errorf("%w: no value for player %s on %s", model.ErrDataUnavailable, playerID, tx.Timestamp.Format(time.DateOnly))
	return model.NewWarning(component, tx.ID, err)
}
