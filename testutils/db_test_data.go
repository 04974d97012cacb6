package testutils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_analysis/containers"
	"github.com/mww/fantasy_analysis/db"
	"github.com/mww/fantasy_analysis/model"
	"github.com/rs/zerolog"
)

// The date of the ranking inserted into the test db.
var FakeRankingDate = time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
	Ranking   *model.Ranking
}

// NewTestDB starts a postgres container and fills it with the players of the
// fake sleeper league and a single ranking over them.
func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.NewMock()
	clock.Set(time.Date(2024, time.December, 1, 12, 0, 0, 0, time.UTC))

	db, err := db.New(context.Background(), container.ConnectionString(), clock, zerolog.Nop())
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	ranking, err := InsertTestData(db)
	if err != nil {
		log.Fatalf("error populating db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
		Ranking:   ranking,
	}
}

func (db *TestDB) Shutdown() {
	db.DB.Close()
	db.container.Shutdown()
}

// InsertTestData saves the fake sleeper players and ranks them in player id
// order.
func InsertTestData(db db.DB) (*model.Ranking, error) {
	players, err := FakePlayers()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.SavePlayers(ctx, players); err != nil {
		return nil, err
	}
	return db.AddRanking(ctx, FakeRankingDate, FakeRanks(players))
}

// FakePlayers is the player universe served by the fake sleeper server, sorted
// by id.
func FakePlayers() ([]model.Player, error) {
	b, err := sleeperdata.ReadFile("sleeperdata/players.json")
	if err != nil {
		return nil, err
	}

	var parsed map[string]struct {
		ID        string `json:"player_id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Position  string `json:"position"`
		Team      string `json:"team"`
		Active    bool   `json:"active"`
	}
	if err := json.Unmarshal(b, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing players.json: %w", err)
	}

	result := make([]model.Player, 0, len(parsed))
	for _, p := range parsed {
		result = append(result, model.Player{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Position:  model.ParsePosition(p.Position),
			Team:      p.Team,
			Active:    p.Active,
		})
	}
	slices.SortFunc(result, func(a, b model.Player) int {
		return model.CompareIDs(a.ID, b.ID)
	})
	return result, nil
}

// FakeRanks ranks the players in the order given, starting at 1.
func FakeRanks(players []model.Player) map[string]int32 {
	ranks := make(map[string]int32, len(players))
	for i, p := range players {
		ranks[p.ID] = int32(i + 1)
	}
	return ranks
}
