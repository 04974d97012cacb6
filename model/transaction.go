package model

import (
	"slices"
	"time"
)

type TransactionKind string

const (
	TX_TRADE        TransactionKind = "trade"
	TX_WAIVER       TransactionKind = "waiver"
	TX_FREE_AGENT   TransactionKind = "free_agent"
	TX_COMMISSIONER TransactionKind = "commissioner"
)

// Transaction is an immutable record from the league's transaction log.
// Adds and Drops map a player id to the roster id that gained or lost the player.
type Transaction struct {
	ID         string
	Kind       TransactionKind
	Week       int
	Timestamp  time.Time
	Parties    []string
	Adds       map[string]string
	Drops      map[string]string
	DraftPicks []DraftPick
	FAAB       []FAABTransfer
	WaiverBid  int
}

type DraftPick struct {
	Season        string `json:"season"`
	Round         int    `json:"round"`
	OriginalOwner string `json:"originalOwner"`
	PreviousOwner string `json:"previousOwner"`
	NewOwner      string `json:"newOwner"`
}

type FAABTransfer struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Amount   int    `json:"amount"`
}

// PlayersAddedTo returns the ids of the players that the roster received, sorted.
func (t *Transaction) PlayersAddedTo(rosterID string) []string {
	return playersFor(t.Adds, rosterID)
}

// PlayersDroppedBy returns the ids of the players that the roster gave up, sorted.
func (t *Transaction) PlayersDroppedBy(rosterID string) []string {
	return playersFor(t.Drops, rosterID)
}

func playersFor(m map[string]string, rosterID string) []string {
	result := make([]string, 0, len(m))
	for playerID, r := range m {
		if r == rosterID {
			result = append(result, playerID)
		}
	}
	slices.Sort(result)
	return result
}

// SortTransactions orders transactions chronologically, using the id to keep
// the order stable for transactions processed at the same instant.
func SortTransactions(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		if a.Week != b.Week {
			return a.Week - b.Week
		}
		if a.ID < b.ID {
			return -1
		} else if a.ID > b.ID {
			return 1
		}
		return 0
	})
}
