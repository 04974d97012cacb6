package mockdb

import (
	"context"
	"time"

	"github.com/mww/fantasy_analysis/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) SavePlayers(ctx context.Context, players []model.Player) (int, error) {
	args := db.Called(ctx, players)
	return args.Int(0), args.Error(1)
}

func (db *DB) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	args := db.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}

	return p, args.Error(1)
}

func (db *DB) GetPlayers(ctx context.Context, ids []string) (map[string]model.Player, error) {
	args := db.Called(ctx, ids)

	var r map[string]model.Player
	if args.Get(0) != nil {
		r = args.Get(0).(map[string]model.Player)
	}
	return r, args.Error(1)
}

func (db *DB) ListPlayers(ctx context.Context, pos model.Position) ([]model.Player, error) {
	args := db.Called(ctx, pos)

	var r []model.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Player)
	}
	return r, args.Error(1)
}

func (db *DB) ListRankings(ctx context.Context) ([]model.Ranking, error) {
	args := db.Called(ctx)

	var r []model.Ranking
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Ranking)
	}
	return r, args.Error(1)
}

func (db *DB) GetRanking(ctx context.Context, id int32) (*model.Ranking, error) {
	args := db.Called(ctx, id)

	var r *model.Ranking
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Ranking)
	}
	return r, args.Error(1)
}

func (db *DB) AddRanking(ctx context.Context, date time.Time, rankings map[string]int32) (*model.Ranking, error) {
	args := db.Called(ctx, date, rankings)

	var r *model.Ranking
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Ranking)
	}
	return r, args.Error(1)
}

func (db *DB) DeleteRanking(ctx context.Context, id int32) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) LoadRankings(ctx context.Context) ([]model.Ranking, error) {
	args := db.Called(ctx)

	var r []model.Ranking
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Ranking)
	}
	return r, args.Error(1)
}

func (db *DB) Close() {
	db.Called()
}
