package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mww/fantasy_analysis/analysis"
)

func TestLoad_defaults(t *testing.T) {
	t.Setenv("FA_POSTGRES_CONN_STR", "postgres://localhost/fa")

	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", c.Port)
	}
	if c.ArtifactDir != "artifacts" || c.LogLevel != "info" || c.MaxWeek != 18 {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.Schedule.PlayerRefresh != 24*time.Hour || c.Schedule.Analysis != 6*time.Hour {
		t.Errorf("unexpected schedule defaults: %+v", c.Schedule)
	}

	p, err := c.AnalysisParams()
	if err != nil {
		t.Fatalf("error getting params: %v", err)
	}
	if !reflect.DeepEqual(p, analysis.DefaultParams()) {
		t.Errorf("expected default params to match, got %+v, wanted %+v", p, analysis.DefaultParams())
	}
}

func TestLoad_env(t *testing.T) {
	t.Setenv("FA_POSTGRES_CONN_STR", "postgres://localhost/fa")
	t.Setenv("FA_PORT", "8080")
	t.Setenv("FA_ANALYSIS_FAIRNESS_THRESHOLD", "5")
	t.Setenv("FA_ANALYSIS_TRADES_WEIGHT", "0")
	t.Setenv("FA_ANALYSIS_LUCK_WEIGHT", "0.5")
	t.Setenv("FA_ANALYSIS_LUCK_SCALE", "4")
	t.Setenv("FA_SCHEDULE_LEAGUES", "1000:2024, 2000")
	t.Setenv("FA_SCHEDULE_ANALYSIS", "0")

	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Port != 8080 {
		t.Errorf("expected port 8080, got %d", c.Port)
	}
	if c.Schedule.Analysis != 0 {
		t.Errorf("expected the analysis schedule to be off, got %v", c.Schedule.Analysis)
	}

	p, _ := c.AnalysisParams()
	if p.FairnessThreshold != 5 || p.Weights.Trades != 0 || p.Weights.Luck != 0.5 || p.LuckScale != 4 {
		t.Errorf("expected env overrides to be used, got %+v", p)
	}

	leagues, err := c.Leagues()
	if err != nil {
		t.Fatalf("error getting leagues: %v", err)
	}
	expected := []League{{ID: "1000", Season: "2024"}, {ID: "2000"}}
	if !reflect.DeepEqual(leagues, expected) {
		t.Errorf("expected leagues %v, got %v", expected, leagues)
	}
}

func TestLoad_dotenv(t *testing.T) {
	t.Setenv("FA_POSTGRES_CONN_STR", "")
	f := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(f, []byte("FA_POSTGRES_CONN_STR=postgres://db/fa\nFA_LOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("error writing .env: %v", err)
	}
	// godotenv does not override variables that are already set
	os.Unsetenv("FA_POSTGRES_CONN_STR")
	t.Cleanup(func() { os.Unsetenv("FA_LOG_LEVEL") })

	c, err := Load(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.DBConnStr != "postgres://db/fa" || c.LogLevel != "debug" {
		t.Errorf("expected values from the .env file, got %+v", c)
	}
}

func TestLoad_errors(t *testing.T) {
	tests := map[string]map[string]string{
		"missing conn string": {"FA_POSTGRES_CONN_STR": ""},
		"bad port":            {"FA_PORT": "70000"},
		"bad number":          {"FA_ANALYSIS_BENCH_WEIGHT": "lots"},
		"bad params":          {"FA_ANALYSIS_BENCH_WEIGHT": "2"},
		"no weights": {
			"FA_ANALYSIS_ROSTER_WEIGHT":  "0",
			"FA_ANALYSIS_POWER_WEIGHT":   "0",
			"FA_ANALYSIS_TRADES_WEIGHT":  "0",
			"FA_ANALYSIS_WAIVERS_WEIGHT": "0",
			"FA_ANALYSIS_RECORD_WEIGHT":  "0",
			"FA_ANALYSIS_TREND_WEIGHT":   "0",
			"FA_ANALYSIS_LUCK_WEIGHT":    "0",
		},
		"negative luck scale": {"FA_ANALYSIS_LUCK_SCALE": "-1"},
		"bad league":          {"FA_SCHEDULE_LEAGUES": ":2024"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("FA_POSTGRES_CONN_STR", "postgres://localhost/fa")
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info().Msg("hidden")
	logger.Warn().Str("league", "1000").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("expected a json log line: %v", err)
	}
	if entry["message"] != "shown" || entry["league"] != "1000" || entry["level"] != "warn" {
		t.Errorf("unexpected log entry: %v", entry)
	}
	if _, found := entry["time"]; !found {
		t.Errorf("expected a timestamp in the log entry")
	}

	if _, err := NewLogger(&buf, "loud"); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
}
