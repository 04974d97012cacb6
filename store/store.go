package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sync"
	"time"

	"github.com/mww/fantasy_analysis/analysis"
	"github.com/rs/zerolog"
)

var ErrNotFound error = errors.New("artifacts not found")

// Category is one artifact file written for an analysis run.
type Category string

const (
	CAT_SUMMARY        Category = "summary"
	CAT_ROSTERS        Category = "rosters"
	CAT_POWER_RANKINGS Category = "power_rankings"
	CAT_MEDIAN_RECORDS Category = "median_records"
	CAT_TRADES         Category = "trades"
	CAT_WAIVERS        Category = "waivers"
	CAT_REPORT_CARDS   Category = "report_cards"
	CAT_WARNINGS       Category = "warnings"
)

var Categories = []Category{
	CAT_SUMMARY,
	CAT_ROSTERS,
	CAT_POWER_RANKINGS,
	CAT_MEDIAN_RECORDS,
	CAT_TRADES,
	CAT_WAIVERS,
	CAT_REPORT_CARDS,
	CAT_WARNINGS,
}

func ParseCategory(c string) (Category, error) {
	if slices.Contains(Categories, Category(c)) {
		return Category(c), nil
	}
	return "", fmt.Errorf("unknown artifact category '%s'", c)
}

func (c Category) file() string {
	return string(c) + ".json"
}

// Summary describes the run that produced a set of artifacts.
type Summary struct {
	LeagueID   string    `json:"leagueId"`
	LeagueName string    `json:"leagueName"`
	Season     string    `json:"season"`
	Weeks      []int     `json:"weeks"`
	Teams      int       `json:"teams"`
	Trades     int       `json:"trades"`
	Claims     int       `json:"claims"`
	Warnings   int       `json:"warnings"`
	Generated  time.Time `json:"generated"`
}

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Store keeps the artifacts of the latest analysis run for each league season
// as JSON files under <root>/<leagueID>_<season>/.
type Store struct {
	root   string
	mu     sync.Mutex
	logger zerolog.Logger
}

func New(root string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("error creating artifact dir %s: %w", root, err)
	}
	return &Store{
		root:   root,
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

func (s *Store) Dir(leagueID, season string) (string, error) {
	if !validID.MatchString(leagueID) || !validID.MatchString(season) {
		return "", fmt.Errorf("invalid league '%s' or season '%s'", leagueID, season)
	}
	return filepath.Join(s.root, fmt.Sprintf("%s_%s", leagueID, season)), nil
}

func (s *Store) Exists(leagueID, season string) bool {
	dir, err := s.Dir(leagueID, season)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(dir, CAT_SUMMARY.file()))
	return err == nil
}

// Save writes every artifact of the result. The files are written to a temp
// directory first and swapped in with a rename so readers never see a mix of
// two runs. The context is checked right before the swap, a cancelled save
// leaves the previous artifacts in place.
func (s *Store) Save(ctx context.Context, r *analysis.Result, generated time.Time) error {
	dir, err := s.Dir(r.LeagueID, r.Season)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.MkdirTemp(s.root, ".tmp-")
	if err != nil {
		return fmt.Errorf("error creating temp dir: %w", err)
	}
	// no-op once the temp dir has been renamed
	defer os.RemoveAll(tmp)

	summary := Summary{
		LeagueID:   r.LeagueID,
		LeagueName: r.LeagueName,
		Season:     r.Season,
		Weeks:      r.Weeks,
		Teams:      len(r.ReportCards),
		Trades:     len(r.Trades),
		Claims:     len(r.Waivers),
		Warnings:   len(r.Warnings),
		Generated:  generated.UTC(),
	}

	files := map[Category]any{
		CAT_SUMMARY:        summary,
		CAT_ROSTERS:        r.Rosters,
		CAT_POWER_RANKINGS: r.PowerRankings,
		CAT_MEDIAN_RECORDS: r.MedianRecords,
		CAT_TRADES:         r.Trades,
		CAT_WAIVERS:        r.Waivers,
		CAT_REPORT_CARDS:   r.ReportCards,
		CAT_WARNINGS:       r.Warnings,
	}
	for _, c := range Categories {
		if err := writeJSON(filepath.Join(tmp, c.file()), files[c]); err != nil {
			return fmt.Errorf("error writing %s: %w", c, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("not saving artifacts for league %s: %w", r.LeagueID, err)
	}

	old := ""
	if _, err := os.Stat(dir); err == nil {
		old = tmp + "-old"
		if err := os.Rename(dir, old); err != nil {
			return fmt.Errorf("error moving previous artifacts aside: %w", err)
		}
	}
	if err := os.Rename(tmp, dir); err != nil {
		if old != "" {
			if rerr := os.Rename(old, dir); rerr != nil {
				s.logger.Error().Err(rerr).Str("dir", dir).Msg("error restoring previous artifacts")
			}
		}
		return fmt.Errorf("error moving artifacts into place: %w", err)
	}
	if old != "" {
		if err := os.RemoveAll(old); err != nil {
			s.logger.Warn().Err(err).Str("dir", old).Msg("error removing previous artifacts")
		}
	}

	s.logger.Info().Str("dir", dir).Msg("saved analysis artifacts")
	return nil
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}

// Raw returns the JSON of a single artifact.
func (s *Store) Raw(leagueID, season string, c Category) ([]byte, error) {
	dir, err := s.Dir(leagueID, season)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(dir, c.file()))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s for league %s season %s", ErrNotFound, c, leagueID, season)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", c, err)
	}
	return b, nil
}

// Load reads every artifact back into a result.
func (s *Store) Load(leagueID, season string) (*analysis.Result, *Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &analysis.Result{}
	summary := &Summary{}

	targets := map[Category]any{
		CAT_SUMMARY:        summary,
		CAT_ROSTERS:        &result.Rosters,
		CAT_POWER_RANKINGS: &result.PowerRankings,
		CAT_MEDIAN_RECORDS: &result.MedianRecords,
		CAT_TRADES:         &result.Trades,
		CAT_WAIVERS:        &result.Waivers,
		CAT_REPORT_CARDS:   &result.ReportCards,
		CAT_WARNINGS:       &result.Warnings,
	}
	for _, c := range Categories {
		b, err := s.Raw(leagueID, season, c)
		if err != nil {
			return nil, nil, err
		}
		if err := json.Unmarshal(b, targets[c]); err != nil {
			return nil, nil, fmt.Errorf("error parsing %s: %w", c, err)
		}
	}

	result.LeagueID = summary.LeagueID
	result.LeagueName = summary.LeagueName
	result.Season = summary.Season
	result.Weeks = summary.Weeks
	return result, summary, nil
}
