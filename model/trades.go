package model

import "time"

type TradeOutcome string

const (
	TRADE_WIN  TradeOutcome = "win"
	TRADE_LOSS TradeOutcome = "loss"
	TRADE_DRAW TradeOutcome = "draw"
	// TRADE_EVEN is a side of a multi team trade that was neither the winner
	// nor the loser.
	TRADE_EVEN TradeOutcome = "even"
)

type TradeResult struct {
	TransactionID string      `json:"transactionId"`
	Week          int         `json:"week"`
	Timestamp     time.Time   `json:"timestamp"`
	Sides         []TradeSide `json:"sides"`
	Winner        string      `json:"winner,omitempty"`
	Loser         string      `json:"loser,omitempty"`
	Draw          bool        `json:"draw"`
	Margin        float64     `json:"margin"`
	Significance  string      `json:"significance"`
}

type TradeSide struct {
	TeamID        string       `json:"teamId"`
	TeamName      string       `json:"teamName"`
	Received      []PlayerRef  `json:"received"`
	Sent          []PlayerRef  `json:"sent"`
	PicksReceived []DraftPick  `json:"picksReceived,omitempty"`
	IncomingValue float64      `json:"incomingValue"`
	OutgoingValue float64      `json:"outgoingValue"`
	Net           float64      `json:"net"`
	Outcome       TradeOutcome `json:"outcome"`
	// PowerImpact is the team's power rating in the week of the trade minus
	// its rating the week before.
	PowerImpact float64 `json:"powerImpact"`
}

// TradeSummary aggregates a team's trades for the season.
type TradeSummary struct {
	Trades   int     `json:"trades"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Draws    int     `json:"draws"`
	NetValue float64 `json:"netValue"`
}

type WaiverFlag string

const (
	WAIVER_GOOD    WaiverFlag = "good"
	WAIVER_NEUTRAL WaiverFlag = "neutral"
	WAIVER_BAD     WaiverFlag = "bad"
)

type WaiverClaim struct {
	TransactionID string          `json:"transactionId"`
	Kind          TransactionKind `json:"kind"`
	Week          int             `json:"week"`
	Timestamp     time.Time       `json:"timestamp"`
	TeamID        string          `json:"teamId"`
	TeamName      string          `json:"teamName"`
	Added         []PlayerRef     `json:"added"`
	Dropped       []PlayerRef     `json:"dropped"`
	AddedValue    float64         `json:"addedValue"`
	DroppedValue  float64         `json:"droppedValue"`
	Net           float64         `json:"net"`
	Bid           int             `json:"bid"`
	Flag          WaiverFlag      `json:"flag"`
	// PowerImpact is the team's average power rating in the weeks after the
	// claim minus its average in the weeks before.
	PowerImpact float64 `json:"powerImpact"`
}
