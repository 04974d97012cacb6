package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mww/fantasy_analysis/model"
	"github.com/rs/zerolog"
)

const SleeperURL = "https://api.sleeper.app"

var ErrUserNotFound error = errors.New("sleeper user not found")

// Client reads league data from the sleeper API. Every method returns an
// error wrapping model.ErrExternalFetch when sleeper cannot be reached or the
// response cannot be parsed.
type Client interface {
	LoadPlayers(ctx context.Context) ([]model.Player, error)
	GetUserID(ctx context.Context, username string) (string, error)
	GetLeaguesForUser(ctx context.Context, userID, season string) ([]model.LeagueSummary, error)
	GetNFLState(ctx context.Context) (*NFLState, error)

	GetLeague(ctx context.Context, leagueID string) (*League, error)
	GetUsers(ctx context.Context, leagueID string) ([]User, error)
	GetRosters(ctx context.Context, leagueID string) ([]Roster, error)
	GetMatchups(ctx context.Context, leagueID string, week int) ([]Matchup, error)
	GetTransactions(ctx context.Context, leagueID string, week int) ([]model.Transaction, error)
}

type client struct {
	url        string
	httpClient *http.Client
	retryDelay time.Duration
	logger     zerolog.Logger
}

func New(logger zerolog.Logger) (Client, error) {
	c := &client{
		url: SleeperURL,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
		retryDelay: 500 * time.Millisecond,
		logger:     logger.With().Str("component", "sleeper").Logger(),
	}
	return c, nil
}

func NewForTest(url string) Client {
	return &client{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     zerolog.Nop(),
	}
}

func (c *client) LoadPlayers(ctx context.Context) ([]model.Player, error) {
	parsed, err := get[map[string]sleeperPlayer](ctx, c, "/v1/players/nfl")
	if err != nil {
		return nil, err
	}

	// Convert the players into model.Players
	result := make([]model.Player, 0, len(parsed))
	for _, p := range parsed {
		if p.skip() {
			continue
		}
		result = append(result, *p.toPlayer())
	}

	return result, nil
}

func (c *client) GetUserID(ctx context.Context, username string) (string, error) {
	// requesting a user that doesn't exist returns a 200 with "null" as the body
	u, err := get[*User](ctx, c, fmt.Sprintf("/v1/user/%s", username))
	if err != nil {
		return "", err
	}
	if u == nil || u.ID == "" {
		return "", fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return u.ID, nil
}

func (c *client) GetLeaguesForUser(ctx context.Context, userID, season string) ([]model.LeagueSummary, error) {
	leagues, err := get[[]League](ctx, c, fmt.Sprintf("/v1/user/%s/leagues/nfl/%s", userID, season))
	if err != nil {
		return nil, err
	}

	result := make([]model.LeagueSummary, 0, len(leagues))
	for _, l := range leagues {
		result = append(result, l.toSummary())
	}
	return result, nil
}

func (c *client) GetNFLState(ctx context.Context) (*NFLState, error) {
	return get[*NFLState](ctx, c, "/v1/state/nfl")
}

func (c *client) GetLeague(ctx context.Context, leagueID string) (*League, error) {
	l, err := get[*League](ctx, c, fmt.Sprintf("/v1/league/%s", leagueID))
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("%w: league %s not found", model.ErrDataUnavailable, leagueID)
	}
	return l, nil
}

func (c *client) GetUsers(ctx context.Context, leagueID string) ([]User, error) {
	return get[[]User](ctx, c, fmt.Sprintf("/v1/league/%s/users", leagueID))
}

func (c *client) GetRosters(ctx context.Context, leagueID string) ([]Roster, error) {
	return get[[]Roster](ctx, c, fmt.Sprintf("/v1/league/%s/rosters", leagueID))
}

func (c *client) GetMatchups(ctx context.Context, leagueID string, week int) ([]Matchup, error) {
	return get[[]Matchup](ctx, c, fmt.Sprintf("/v1/league/%s/matchups/%d", leagueID, week))
}

func (c *client) GetTransactions(ctx context.Context, leagueID string, week int) ([]model.Transaction, error) {
	parsed, err := get[[]sleeperTransaction](ctx, c, fmt.Sprintf("/v1/league/%s/transactions/%d", leagueID, week))
	if err != nil {
		return nil, err
	}

	result := make([]model.Transaction, 0, len(parsed))
	for _, t := range parsed {
		// failed waiver claims and pending trades are not part of the history
		if t.Status != "complete" {
			continue
		}
		tx, err := t.toTransaction()
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %s: %v", model.ErrExternalFetch, t.ID, err)
		}
		result = append(result, *tx)
	}
	return result, nil
}

// get performs a GET request against sleeper and decodes the JSON response
// into T. A transient failure is retried once.
func get[T any](ctx context.Context, c *client, path string) (T, error) {
	var result T

	url := fmt.Sprintf("%s%s", c.url, path)
	resp, err := c.do(ctx, url)
	if err != nil && isTransient(ctx, err) {
		c.logger.Warn().Err(err).Str("url", url).Msg("transient error from sleeper, retrying")
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %v", model.ErrExternalFetch, ctx.Err())
		case <-time.After(c.retryDelay):
		}
		resp, err = c.do(ctx, url)
	}
	if err != nil {
		return result, fmt.Errorf("%w: %s: %v", model.ErrExternalFetch, path, err)
	}
	defer resp.Body.Close()

	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return result, fmt.Errorf("%w: error parsing response from sleeper for %s: %v", model.ErrExternalFetch, path, err)
	}
	return result, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.code)
}

func (c *client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &statusError{code: resp.StatusCode}
	}
	return resp, nil
}

func isTransient(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}
	// anything else is a network level failure
	return true
}
