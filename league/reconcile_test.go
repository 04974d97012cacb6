package league

import (
	"reflect"
	"testing"
	"time"

	"github.com/mww/fantasy_analysis/model"
)

func TestReconcile(t *testing.T) {
	players := map[string]model.Player{}
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		players[id] = model.Player{ID: id}
	}

	l := &model.League{
		Teams: []*model.Team{
			{ID: "1", Roster: []string{"a", "d"}},
			{ID: "2", Roster: []string{"b", "e"}},
		},
		Players: players,
	}

	ts := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	txs := []model.Transaction{
		// team 1 picks up d for c
		{ID: "t1", Kind: model.TX_WAIVER, Week: 1, Timestamp: ts, Parties: []string{"1"}, Adds: map[string]string{"d": "1"}, Drops: map[string]string{"c": "1"}},
		// team 1 sends c to team 2 for e, but c was dropped in t1 so team 2 gets a player that is never on its roster
		{ID: "t2", Kind: model.TX_TRADE, Week: 2, Timestamp: ts.Add(time.Hour), Parties: []string{"1", "2"}, Adds: map[string]string{"c": "2", "f": "1"}, Drops: map[string]string{"c": "1", "f": "2"}},
		// team 2 trades a to team 1 for b
		{ID: "t3", Kind: model.TX_TRADE, Week: 3, Timestamp: ts.Add(2 * time.Hour), Parties: []string{"1", "2"}, Adds: map[string]string{"a": "1", "b": "2"}, Drops: map[string]string{"a": "2", "b": "1"}},
		// references a roster that isn't in the league
		{ID: "t4", Kind: model.TX_FREE_AGENT, Week: 3, Timestamp: ts.Add(3 * time.Hour), Parties: []string{"9"}, Adds: map[string]string{"e": "9"}},
	}

	valid, initial, warnings := reconcile(l, txs)

	ids := make([]string, 0, len(valid))
	for _, tx := range valid {
		ids = append(ids, tx.ID)
	}
	if !reflect.DeepEqual([]string{"t1", "t3"}, ids) {
		t.Errorf("expected t1 and t3 to be valid, got %v", ids)
	}

	if len(warnings) != 2 || warnings[0].Subject != "t2" || warnings[1].Subject != "t4" {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	expected := map[string][]string{
		"1": {"b", "c"},
		"2": {"a", "e"},
	}
	if !reflect.DeepEqual(expected, initial) {
		t.Errorf("expected initial rosters %v, got %v", expected, initial)
	}
}

func TestReconcile_unknownPlayer(t *testing.T) {
	l := &model.League{
		Teams:   []*model.Team{{ID: "1", Roster: []string{"x"}}},
		Players: map[string]model.Player{},
	}
	txs := []model.Transaction{
		{ID: "t1", Kind: model.TX_FREE_AGENT, Parties: []string{"1"}, Adds: map[string]string{"x": "1"}},
	}

	valid, initial, warnings := reconcile(l, txs)
	if len(valid) != 0 {
		t.Errorf("expected no valid transactions, got %d", len(valid))
	}
	if len(warnings) != 1 || warnings[0].Kind != "inconsistent_roster" {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if !reflect.DeepEqual([]string{"x"}, initial["1"]) {
		t.Errorf("expected the skipped transaction to leave the roster alone, got %v", initial["1"])
	}
}
