package sleeper

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mww/fantasy_analysis/model"
)

type League struct {
	ID              string         `json:"league_id"`
	Name            string         `json:"name"`
	Season          string         `json:"season"`
	Status          string         `json:"status"`
	TotalRosters    int            `json:"total_rosters"`
	RosterPositions []string       `json:"roster_positions"`
	Settings        LeagueSettings `json:"settings"`
}

type LeagueSettings struct {
	PlayoffWeekStart int `json:"playoff_week_start"`
	LastScoredLeg    int `json:"last_scored_leg"`
	Leg              int `json:"leg"`
}

func (l *League) toSummary() model.LeagueSummary {
	return model.LeagueSummary{
		ID:     l.ID,
		Name:   l.Name,
		Season: l.Season,
		Teams:  l.TotalRosters,
	}
}

type User struct {
	ID          string       `json:"user_id"`
	Username    string       `json:"username"`
	DisplayName string       `json:"display_name"`
	Metadata    UserMetadata `json:"metadata"`
}

type UserMetadata struct {
	TeamName string `json:"team_name"`
}

type Roster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
}

func (r *Roster) ID() string {
	return strconv.Itoa(r.RosterID)
}

type Matchup struct {
	RosterID      int                `json:"roster_id"`
	MatchupID     *int               `json:"matchup_id"`
	Points        float64            `json:"points"`
	Starters      []string           `json:"starters"`
	Players       []string           `json:"players"`
	PlayersPoints map[string]float64 `json:"players_points"`
}

type NFLState struct {
	Season     string `json:"season"`
	SeasonType string `json:"season_type"`
	Week       int    `json:"week"`
	Display    int    `json:"display_week"`
}

type sleeperTransaction struct {
	ID            string             `json:"transaction_id"`
	Type          string             `json:"type"`
	Status        string             `json:"status"`
	Leg           int                `json:"leg"`
	Created       int64              `json:"created"`
	StatusUpdated int64              `json:"status_updated"`
	RosterIDs     []int              `json:"roster_ids"`
	Adds          map[string]int     `json:"adds"`
	Drops         map[string]int     `json:"drops"`
	DraftPicks    []sleeperPick      `json:"draft_picks"`
	WaiverBudget  []sleeperFAAB      `json:"waiver_budget"`
	Settings      *sleeperTxSettings `json:"settings"`
}

type sleeperPick struct {
	Season          string `json:"season"`
	Round           int    `json:"round"`
	RosterID        int    `json:"roster_id"`
	PreviousOwnerID int    `json:"previous_owner_id"`
	OwnerID         int    `json:"owner_id"`
}

type sleeperFAAB struct {
	Sender   int `json:"sender"`
	Receiver int `json:"receiver"`
	Amount   int `json:"amount"`
}

type sleeperTxSettings struct {
	WaiverBid int `json:"waiver_bid"`
}

func parseTransactionKind(t string) (model.TransactionKind, error) {
	switch t {
	case "trade":
		return model.TX_TRADE, nil
	case "waiver":
		return model.TX_WAIVER, nil
	case "free_agent":
		return model.TX_FREE_AGENT, nil
	case "commissioner":
		return model.TX_COMMISSIONER, nil
	}
	return "", fmt.Errorf("unknown transaction type '%s'", t)
}

func (t *sleeperTransaction) toTransaction() (*model.Transaction, error) {
	kind, err := parseTransactionKind(t.Type)
	if err != nil {
		return nil, err
	}

	ts := t.StatusUpdated
	if ts == 0 {
		ts = t.Created
	}

	tx := &model.Transaction{
		ID:        t.ID,
		Kind:      kind,
		Week:      t.Leg,
		Timestamp: time.UnixMilli(ts).UTC(),
		Parties:   make([]string, 0, len(t.RosterIDs)),
		Adds:      make(map[string]string, len(t.Adds)),
		Drops:     make(map[string]string, len(t.Drops)),
	}

	for _, r := range t.RosterIDs {
		tx.Parties = append(tx.Parties, strconv.Itoa(r))
	}
	for p, r := range t.Adds {
		tx.Adds[p] = strconv.Itoa(r)
	}
	for p, r := range t.Drops {
		tx.Drops[p] = strconv.Itoa(r)
	}
	for _, p := range t.DraftPicks {
		tx.DraftPicks = append(tx.DraftPicks, model.DraftPick{
			Season:        p.Season,
			Round:         p.Round,
			OriginalOwner: strconv.Itoa(p.RosterID),
			PreviousOwner: strconv.Itoa(p.PreviousOwnerID),
			NewOwner:      strconv.Itoa(p.OwnerID),
		})
	}
	for _, b := range t.WaiverBudget {
		tx.FAAB = append(tx.FAAB, model.FAABTransfer{
			Sender:   strconv.Itoa(b.Sender),
			Receiver: strconv.Itoa(b.Receiver),
			Amount:   b.Amount,
		})
	}
	if t.Settings != nil {
		tx.WaiverBid = t.Settings.WaiverBid
	}

	return tx, nil
}
