package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/mww/fantasy_analysis/db"
	"github.com/mww/fantasy_analysis/db/mockdb"
	"github.com/mww/fantasy_analysis/model"
	"github.com/mww/fantasy_analysis/sleeper/mocksleeper"
	"github.com/stretchr/testify/mock"
)

func newMockController(t *testing.T, s *mocksleeper.Client, d *mockdb.DB) *controller {
	t.Helper()
	ctrl, _ := newTestController(t, d)
	ctrl.sleeper = s
	return ctrl
}

func TestUpdatePlayers(t *testing.T) {
	players := []model.Player{
		{ID: "6904", FirstName: "Jalen", LastName: "Hurts", Position: model.POS_QB, Team: "PHI", Active: true},
		{ID: "4046", FirstName: "Patrick", LastName: "Mahomes", Position: model.POS_QB, Team: "KC", Active: true},
	}

	sleeper := &mocksleeper.Client{}
	db := &mockdb.DB{}
	sleeper.On("LoadPlayers", mock.Anything).Return(players, nil)
	db.On("SavePlayers", mock.Anything, players).Return(1, nil)

	ctrl := newMockController(t, sleeper, db)
	changed, err := ctrl.UpdatePlayers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed != 1 {
		t.Errorf("expected 1 changed player, got %d", changed)
	}

	sleeper.AssertExpectations(t)
	db.AssertExpectations(t)
}

func TestUpdatePlayers_errors(t *testing.T) {
	fetchErr := errors.Join(model.ErrExternalFetch, errors.New("sleeper is down"))
	saveErr := errors.New("db is down")

	tests := map[string]struct {
		loadErr error
		saveErr error
		err     error
	}{
		"sleeper error": {loadErr: fetchErr, err: fetchErr},
		"db error":      {saveErr: saveErr, err: errors.New("error saving players: db is down")},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			sleeper := &mocksleeper.Client{}
			db := &mockdb.DB{}
			sleeper.On("LoadPlayers", mock.Anything).Return([]model.Player{{ID: "1"}}, tc.loadErr)
			if tc.loadErr == nil {
				db.On("SavePlayers", mock.Anything, mock.Anything).Return(0, tc.saveErr)
			}

			ctrl := newMockController(t, sleeper, db)
			_, err := ctrl.UpdatePlayers(context.Background())
			if !errorsEqual(err, tc.err) {
				t.Errorf("expected error %v, got %v", tc.err, err)
			}

			sleeper.AssertExpectations(t)
			db.AssertExpectations(t)
		})
	}
}

func TestGetPlayer(t *testing.T) {
	ctrl, _ := newTestController(t, nil)
	ctx := context.Background()

	p, err := ctrl.GetPlayer(ctx, "6904")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FullName() != "Jalen Hurts" {
		t.Errorf("expected Jalen Hurts, got %s", p.FullName())
	}

	if _, err := ctrl.GetPlayer(ctx, "0"); !errors.Is(err, db.ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}
}
