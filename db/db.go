package db

import (
	"context"
	"time"

	"github.com/mww/fantasy_analysis/model"
)

type DB interface {
	// Insert new players and update the ones that changed. Returns the number
	// of players that were inserted or updated.
	SavePlayers(ctx context.Context, players []model.Player) (int, error)
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	// Look up a set of players by id. Ids that are not in the database are
	// left out of the result.
	GetPlayers(ctx context.Context, ids []string) (map[string]model.Player, error)
	// List all the players at a position, or all players for POS_UNKNOWN.
	ListPlayers(ctx context.Context, pos model.Position) ([]model.Player, error)

	// Lists the rankings in the system, the most recent ranking is returned first.
	// Only the ranking metadata, the ID and date, are returned. The actual ranking
	// data is returned with GetRanking().
	ListRankings(ctx context.Context) ([]model.Ranking, error)
	GetRanking(ctx context.Context, id int32) (*model.Ranking, error)
	AddRanking(ctx context.Context, date time.Time, rankings map[string]int32) (*model.Ranking, error)
	DeleteRanking(ctx context.Context, id int32) error
	// Load every ranking with its player data, oldest first.
	LoadRankings(ctx context.Context) ([]model.Ranking, error)

	Close()
}
