package league

import (
	"fmt"
	"slices"

	"github.com/mww/fantasy_analysis/model"
)

// reconcile walks the transaction log backwards from the current rosters,
// undoing each transaction, to rebuild the rosters at every point in the
// season. Walking backwards, the state before undoing a transaction is the
// state right after it happened, so every player the transaction added must
// be on the receiving roster at that point. Transactions that fail that check
// reference players neither party had and are skipped.
//
// Returns the valid transactions in chronological order and the rosters as
// they were before the first transaction.
func reconcile(l *model.League, txs []model.Transaction) ([]model.Transaction, map[string][]string, []model.Warning) {
	state := make(map[string]map[string]bool, len(l.Teams))
	for _, t := range l.Teams {
		state[t.ID] = make(map[string]bool, len(t.Roster))
		for _, p := range t.Roster {
			state[t.ID][p] = true
		}
	}

	valid := make([]model.Transaction, 0, len(txs))
	warnings := make([]model.Warning, 0)

	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]
		if err := validate(tx, state, l.Players); err != nil {
			warnings = append(warnings, model.NewWarning("league", tx.ID, err))
			continue
		}

		for p, r := range tx.Adds {
			delete(state[r], p)
		}
		for p, r := range tx.Drops {
			state[r][p] = true
		}
		valid = append(valid, tx)
	}

	slices.Reverse(valid)

	initial := make(map[string][]string, len(state))
	for id, players := range state {
		roster := make([]string, 0, len(players))
		for p := range players {
			roster = append(roster, p)
		}
		slices.Sort(roster)
		initial[id] = roster
	}

	model.SortWarnings(warnings)
	return valid, initial, warnings
}

func validate(tx model.Transaction, state map[string]map[string]bool, players map[string]model.Player) error {
	for _, party := range tx.Parties {
		if _, found := state[party]; !found {
			return fmt.Errorf("%w: %s transaction references unknown roster %s", model.ErrInconsistentRoster, tx.Kind, party)
		}
	}

	for _, p := range sortedKeys(tx.Drops) {
		r := tx.Drops[p]
		if _, found := state[r]; !found {
			return fmt.Errorf("%w: player %s dropped by unknown roster %s", model.ErrInconsistentRoster, p, r)
		}
		if _, found := players[p]; !found {
			return fmt.Errorf("%w: player %s dropped by roster %s is not a known player", model.ErrInconsistentRoster, p, r)
		}
	}

	for _, p := range sortedKeys(tx.Adds) {
		r := tx.Adds[p]
		roster, found := state[r]
		if !found {
			return fmt.Errorf("%w: player %s added to unknown roster %s", model.ErrInconsistentRoster, p, r)
		}
		if _, found := players[p]; !found {
			return fmt.Errorf("%w: player %s added to roster %s is not a known player", model.ErrInconsistentRoster, p, r)
		}
		if !roster[p] {
			return fmt.Errorf("%w: player %s added to roster %s in week %d is not on that roster afterwards", model.ErrInconsistentRoster, p, r, tx.Week)
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
