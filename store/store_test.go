package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mww/fantasy_analysis/analysis"
	"github.com/mww/fantasy_analysis/model"
	"github.com/rs/zerolog"
)

func testResult() *analysis.Result {
	return &analysis.Result{
		LeagueID:   "1000",
		LeagueName: "Test League",
		Season:     "2024",
		Weeks:      []int{1, 2},
		Rosters: []model.RosterGrade{
			{TeamID: "1", Rank: 1, Total: 80, Grade: 100, Letter: "A+"},
			{TeamID: "2", Rank: 2, Total: 40, Grade: 0, Letter: "F"},
		},
		PowerRankings: []model.WeeklyRating{{TeamID: "1", Week: 1, Rank: 1, Rating: 90}},
		MedianRecords: []model.MedianRecord{{TeamID: "1", Weeks: 2, MedianWins: 1.5, MedianLosses: 0.5}},
		Trades:        []model.TradeResult{{TransactionID: "t1", Draw: true, Significance: "minor"}},
		Waivers:       []model.WaiverClaim{{TransactionID: "w1", TeamID: "2", Net: 5, Flag: model.WAIVER_GOOD}},
		ReportCards:   []model.ReportCard{{Rank: 1, TeamID: "1", Composite: 75.5, Letter: "C"}},
		Warnings:      []model.Warning{{Kind: "computation", Component: "rosters", Subject: "1000", Message: "x"}},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s, err := New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("error creating store: %v", err)
	}

	if s.Exists("1000", "2024") {
		t.Errorf("artifacts should not exist before the first save")
	}

	r := testResult()
	generated := time.Date(2024, 10, 1, 8, 0, 0, 0, time.UTC)
	if err := s.Save(context.Background(), r, generated); err != nil {
		t.Fatalf("error saving: %v", err)
	}
	if !s.Exists("1000", "2024") {
		t.Errorf("artifacts should exist after saving")
	}

	dir, _ := s.Dir("1000", "2024")
	for _, c := range Categories {
		if _, err := os.Stat(filepath.Join(dir, string(c)+".json")); err != nil {
			t.Errorf("missing artifact %s: %v", c, err)
		}
	}

	loaded, summary, err := s.Load("1000", "2024")
	if err != nil {
		t.Fatalf("error loading: %v", err)
	}
	if !reflect.DeepEqual(r, loaded) {
		t.Errorf("loaded result does not match saved result\nexpected: %+v\ngot: %+v", r, loaded)
	}
	if summary.Teams != 1 || summary.Trades != 1 || summary.Claims != 1 || summary.Warnings != 1 || !summary.Generated.Equal(generated) {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestSave_overwrites(t *testing.T) {
	root := t.TempDir()
	s, err := New(root, zerolog.Nop())
	if err != nil {
		t.Fatalf("error creating store: %v", err)
	}

	r := testResult()
	if err := s.Save(context.Background(), r, time.Now()); err != nil {
		t.Fatalf("error saving: %v", err)
	}

	r.Trades = nil
	r.ReportCards[0].Composite = 10
	if err := s.Save(context.Background(), r, time.Now()); err != nil {
		t.Fatalf("error saving: %v", err)
	}

	b, err := s.Raw("1000", "2024", CAT_REPORT_CARDS)
	if err != nil {
		t.Fatalf("error reading report cards: %v", err)
	}
	var cards []model.ReportCard
	if err := json.Unmarshal(b, &cards); err != nil {
		t.Fatalf("error parsing report cards: %v", err)
	}
	if cards[0].Composite != 10 {
		t.Errorf("expected the second run's report cards, got composite %f", cards[0].Composite)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("error reading root: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "1000_2024" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the league directory to remain, got %v", names)
	}
}

func TestSave_deterministic(t *testing.T) {
	s, err := New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("error creating store: %v", err)
	}

	generated := time.Now()
	if err := s.Save(context.Background(), testResult(), generated); err != nil {
		t.Fatalf("error saving: %v", err)
	}
	first, _ := s.Raw("1000", "2024", CAT_ROSTERS)
	if err := s.Save(context.Background(), testResult(), generated); err != nil {
		t.Fatalf("error saving: %v", err)
	}
	second, _ := s.Raw("1000", "2024", CAT_ROSTERS)

	if string(first) != string(second) {
		t.Errorf("saving the same result twice produced different files")
	}
}

func TestRaw_notFound(t *testing.T) {
	s, err := New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("error creating store: %v", err)
	}

	if _, err := s.Raw("1000", "2024", CAT_TRADES); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := s.Load("1000", "2024"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDir_rejectsPaths(t *testing.T) {
	s, err := New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("error creating store: %v", err)
	}

	tests := []struct {
		leagueID string
		season   string
	}{
		{leagueID: "../etc", season: "2024"},
		{leagueID: "1000", season: "2024/x"},
		{leagueID: "", season: "2024"},
	}
	for _, tc := range tests {
		if _, err := s.Dir(tc.leagueID, tc.season); err == nil {
			t.Errorf("expected an error for league '%s' season '%s'", tc.leagueID, tc.season)
		}
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := ParseCategory("report_cards"); err != nil || c != CAT_REPORT_CARDS {
		t.Errorf("expected report_cards, got %s (%v)", c, err)
	}
	if _, err := ParseCategory("secrets"); err == nil {
		t.Errorf("expected an error for an unknown category")
	}
}

func TestSave_cancelled(t *testing.T) {
	root := t.TempDir()
	s, err := New(root, zerolog.Nop())
	if err != nil {
		t.Fatalf("error creating store: %v", err)
	}

	r := testResult()
	if err := s.Save(context.Background(), r, time.Now()); err != nil {
		t.Fatalf("error saving: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.ReportCards[0].Composite = 10
	err = s.Save(ctx, r, time.Now())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected a cancelled error, got %v", err)
	}

	loaded, _, err := s.Load("1000", "2024")
	if err != nil {
		t.Fatalf("error loading: %v", err)
	}
	if loaded.ReportCards[0].Composite != 75.5 {
		t.Errorf("expected the previous artifacts to be kept, got composite %f", loaded.ReportCards[0].Composite)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("error reading root: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected the temp dir of the cancelled save to be removed, got %d entries", len(entries))
	}
}

func TestSave_cancelledFirstRun(t *testing.T) {
	s, err := New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("error creating store: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(ctx, testResult(), time.Now()); err == nil {
		t.Fatalf("expected an error saving with a cancelled context")
	}
	if s.Exists("1000", "2024") {
		t.Errorf("a cancelled save should not leave artifacts behind")
	}
}
