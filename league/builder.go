package league

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/mww/fantasy_analysis/model"
	"github.com/mww/fantasy_analysis/sleeper"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxWeek is the last week of the fantasy season that is fetched.
const DefaultMaxWeek = 18

// PlayerSource looks up players in the player universe.
type PlayerSource interface {
	GetPlayers(ctx context.Context, ids []string) (map[string]model.Player, error)
}

// Progress is called as the snapshot is assembled with the fraction of the
// work that is done.
type Progress func(fraction float64, stage string)

func noProgress(float64, string) {}

type Builder struct {
	sleeper sleeper.Client
	players PlayerSource
	maxWeek int
	logger  zerolog.Logger
}

func NewBuilder(s sleeper.Client, players PlayerSource, maxWeek int, logger zerolog.Logger) *Builder {
	if maxWeek <= 0 {
		maxWeek = DefaultMaxWeek
	}
	return &Builder{
		sleeper: s,
		players: players,
		maxWeek: maxWeek,
		logger:  logger.With().Str("component", "league").Logger(),
	}
}

// Build fetches everything needed to analyze one league season and assembles
// it into a consistent snapshot. Transactions that do not line up with the
// rosters are dropped and reported as warnings.
func (b *Builder) Build(ctx context.Context, leagueID, season string, progress Progress) (*model.League, []model.Warning, error) {
	if progress == nil {
		progress = noProgress
	}

	l, err := b.sleeper.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting league %s: %w", leagueID, err)
	}
	if season != "" && l.Season != season {
		return nil, nil, fmt.Errorf("%w: league %s is for season %s, not %s", model.ErrDataUnavailable, leagueID, l.Season, season)
	}

	users, err := b.sleeper.GetUsers(ctx, leagueID)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting users for league %s: %w", leagueID, err)
	}
	rosters, err := b.sleeper.GetRosters(ctx, leagueID)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting rosters for league %s: %w", leagueID, err)
	}
	if len(rosters) == 0 {
		return nil, nil, fmt.Errorf("%w: league %s has no rosters", model.ErrDataUnavailable, leagueID)
	}
	progress(0.1, "rosters")

	weeks, matchups, err := b.completedWeeks(ctx, leagueID, progress)
	if err != nil {
		return nil, nil, err
	}
	if len(weeks) == 0 {
		return nil, nil, fmt.Errorf("%w: league %s has no completed weeks", model.ErrDataUnavailable, leagueID)
	}

	txs, err := b.transactions(ctx, leagueID)
	if err != nil {
		return nil, nil, err
	}
	progress(0.8, "transactions")

	universe, err := b.players.GetPlayers(ctx, playerIDs(rosters, matchups, txs))
	if err != nil {
		return nil, nil, fmt.Errorf("error loading players: %w", err)
	}
	progress(0.9, "players")

	result := &model.League{
		ID:              l.ID,
		Name:            l.Name,
		Season:          l.Season,
		Weeks:           weeks,
		RosterPositions: l.RosterPositions,
		Players:         universe,
	}
	result.Teams = buildTeams(rosters, users)

	lineup := result.Lineup()
	for _, w := range weeks {
		addWeekResults(result, w, matchups[w], lineup)
	}

	valid, initial, warnings := reconcile(result, txs)
	result.Transactions = valid
	for _, t := range result.Teams {
		t.InitialRoster = initial[t.ID]
	}
	for _, w := range warnings {
		b.logger.Warn().Str("league", leagueID).Str("subject", w.Subject).Msg(w.Message)
	}

	progress(1, "league")
	return result, warnings, nil
}

// completedWeeks fetches matchups week by week until it finds a week that has
// not been played yet.
func (b *Builder) completedWeeks(ctx context.Context, leagueID string, progress Progress) ([]int, map[int][]sleeper.Matchup, error) {
	weeks := make([]int, 0, b.maxWeek)
	matchups := make(map[int][]sleeper.Matchup)
	for w := 1; w <= b.maxWeek; w++ {
		m, err := b.sleeper.GetMatchups(ctx, leagueID, w)
		if err != nil {
			return nil, nil, fmt.Errorf("error getting matchups for league %s, week %d: %w", leagueID, w, err)
		}
		if !isComplete(m) {
			break
		}
		weeks = append(weeks, w)
		matchups[w] = m
		progress(0.1+0.5*float64(w)/float64(b.maxWeek), fmt.Sprintf("week %d", w))
	}
	return weeks, matchups, nil
}

func isComplete(matchups []sleeper.Matchup) bool {
	for _, m := range matchups {
		if m.Points > 0 {
			return true
		}
	}
	return false
}

// transactions loads the full transaction log. Weeks are fetched concurrently
// since they do not depend on each other.
func (b *Builder) transactions(ctx context.Context, leagueID string) ([]model.Transaction, error) {
	var mu sync.Mutex
	result := make([]model.Transaction, 0, 64)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for w := 1; w <= b.maxWeek; w++ {
		g.Go(func() error {
			txs, err := b.sleeper.GetTransactions(gctx, leagueID, w)
			if err != nil {
				return fmt.Errorf("error getting transactions for league %s, week %d: %w", leagueID, w, err)
			}
			mu.Lock()
			defer mu.Unlock()
			result = append(result, txs...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	model.SortTransactions(result)
	return result, nil
}

func playerIDs(rosters []sleeper.Roster, matchups map[int][]sleeper.Matchup, txs []model.Transaction) []string {
	seen := make(map[string]bool)
	for _, r := range rosters {
		for _, p := range r.Players {
			seen[p] = true
		}
	}
	for _, week := range matchups {
		for _, m := range week {
			for _, p := range m.Players {
				seen[p] = true
			}
		}
	}
	for _, t := range txs {
		for p := range t.Adds {
			seen[p] = true
		}
		for p := range t.Drops {
			seen[p] = true
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func buildTeams(rosters []sleeper.Roster, users []sleeper.User) []*model.Team {
	byID := make(map[string]sleeper.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	teams := make([]*model.Team, 0, len(rosters))
	for _, r := range rosters {
		t := &model.Team{
			ID:        r.ID(),
			ManagerID: r.OwnerID,
			Roster:    slices.Sorted(slices.Values(r.Players)),
		}
		if u, found := byID[r.OwnerID]; found {
			t.ManagerName = u.DisplayName
			t.TeamName = u.Metadata.TeamName
		}
		if t.ManagerName == "" {
			t.ManagerName = fmt.Sprintf("Team %d", r.RosterID)
		}
		teams = append(teams, t)
	}

	slices.SortFunc(teams, func(a, b *model.Team) int {
		return model.CompareIDs(a.ID, b.ID)
	})
	return teams
}

func addWeekResults(l *model.League, week int, matchups []sleeper.Matchup, lineup []model.RosterSpot) {
	byMatchup := make(map[int][]sleeper.Matchup)
	byRoster := make(map[string]sleeper.Matchup, len(matchups))
	for _, m := range matchups {
		byRoster[strconv.Itoa(m.RosterID)] = m
		if m.MatchupID != nil {
			byMatchup[*m.MatchupID] = append(byMatchup[*m.MatchupID], m)
		}
	}

	for _, t := range l.Teams {
		m, found := byRoster[t.ID]
		r := model.WeekResult{Week: week}
		if found {
			r.Score = m.Points
			r.OptimalScore = optimalScore(m, lineup, l.Players)
			if m.MatchupID != nil {
				r.MatchupID = *m.MatchupID
				for _, o := range byMatchup[*m.MatchupID] {
					if o.RosterID == m.RosterID {
						continue
					}
					r.OpponentID = strconv.Itoa(o.RosterID)
					r.OpponentScore = o.Points
					r.Outcome = outcome(r.Score, r.OpponentScore)
				}
			}
		}
		t.Results = append(t.Results, r)
	}
}

func outcome(score, opponent float64) model.Outcome {
	switch {
	case score > opponent:
		return model.OUTCOME_WIN
	case score < opponent:
		return model.OUTCOME_LOSS
	default:
		return model.OUTCOME_TIE
	}
}
