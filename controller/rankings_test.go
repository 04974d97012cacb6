package controller

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mww/fantasy_analysis/db/mockdb"
	"github.com/mww/fantasy_analysis/model"
	"github.com/mww/fantasy_analysis/testutils"
	"github.com/stretchr/testify/mock"
)

const rankingsCSV = `"RK",TIERS,"PLAYER NAME",TEAM,"POS","BEST","WORST","AVG.","STD.DEV","ECR VS. ADP"
"1",1,"Jalen Hurts",PHI,"QB1","1","3","1.6","0.7","0"
"2",1,"Fred Warner",SF,"LB1","1","4","1.8","0.9","0"
"3",1,"Patrick Mahomes II",KC,"QB2","2","6","3.2","1.1","+1"
"400",30,"Nobody Special",FA,"WR200","300","450","400.0","20.0","0"
`

func TestAddRanking(t *testing.T) {
	date := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	players := []model.Player{
		{ID: "6904", FirstName: "Jalen", LastName: "Hurts", Position: model.POS_QB, Team: "PHI", Active: true},
		{ID: "4046", FirstName: "Patrick", LastName: "Mahomes", Position: model.POS_QB, Team: "KC", Active: true},
	}
	expected := map[string]int32{"6904": 1, "4046": 3}

	db := &mockdb.DB{}
	db.On("ListPlayers", mock.Anything, model.POS_UNKNOWN).Return(players, nil)
	db.On("AddRanking", mock.Anything, date, expected).Return(&model.Ranking{ID: 7, Date: date}, nil)

	ctrl, _ := newTestController(t, db)
	id, err := ctrl.AddRanking(context.Background(), strings.NewReader(rankingsCSV), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("expected ranking id 7, got %d", id)
	}
	db.AssertExpectations(t)
}

func TestAddRanking_errors(t *testing.T) {
	date := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		csv     string
		players []model.Player
	}{
		"bad header": {
			csv: "name,rank\nJalen Hurts,1\n",
		},
		"top player missing": {
			csv:     rankingsCSV,
			players: []model.Player{{ID: "6904", FirstName: "Jalen", LastName: "Hurts", Position: model.POS_QB, Team: "PHI"}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			db := &mockdb.DB{}
			db.On("ListPlayers", mock.Anything, model.POS_UNKNOWN).Return(tc.players, nil).Maybe()

			ctrl, _ := newTestController(t, db)
			_, err := ctrl.AddRanking(context.Background(), strings.NewReader(tc.csv), date)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			db.AssertNotCalled(t, "AddRanking", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRankings_db(t *testing.T) {
	ctrl, _ := newTestController(t, nil)
	ctx := context.Background()

	rankings, err := ctrl.ListRankings(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, r := range rankings {
		if r.ID == testDB.Ranking.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ranking %d to be listed", testDB.Ranking.ID)
	}

	r, err := ctrl.GetRanking(ctx, testDB.Ranking.ID)
	if err != nil {
		t.Fatalf("error getting ranking: %v", err)
	}
	if !r.Date.Equal(testutils.FakeRankingDate) {
		t.Errorf("expected ranking date %v, got %v", testutils.FakeRankingDate, r.Date)
	}
	if len(r.Players) != len(testDB.Ranking.Players) {
		t.Errorf("expected %d ranked players, got %d", len(testDB.Ranking.Players), len(r.Players))
	}
}

func TestAddAndDeleteRanking(t *testing.T) {
	ctrl, _ := newTestController(t, nil)
	ctx := context.Background()
	date := time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)

	id, err := ctrl.AddRanking(ctx, strings.NewReader(rankingsCSV), date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, err := ctrl.GetRanking(ctx, id)
	if err != nil {
		t.Fatalf("error getting ranking: %v", err)
	}
	if r.Players["6904"].Rank != 1 || r.Players["4046"].Rank != 3 {
		t.Errorf("unexpected ranks: %v", r.Players)
	}

	if err := ctrl.DeleteRanking(ctx, id); err != nil {
		t.Fatalf("error deleting ranking: %v", err)
	}
	if _, err := ctrl.GetRanking(ctx, id); err == nil {
		t.Errorf("expected an error getting a deleted ranking")
	}
}
