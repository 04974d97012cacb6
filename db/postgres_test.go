package db

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_analysis/containers"
	"github.com/mww/fantasy_analysis/model"
	"github.com/rs/zerolog"
)

var (
	// A test global db instance to use for all of the tests instead of setting up a new one each time.
	testDB DB

	// The clock used by testDB, tests move it forward to check updated times.
	testClock = clock.NewMock()

	// a counter to generate new player ids for each test. To help keep them separated.
	idCtr = int32(0)
)

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	container := containers.NewDBContainer()

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if container != nil {
				container.Shutdown()
			}
			fmt.Println("panic")
		}
	}()

	testClock.Set(time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC))

	var err error
	testDB, err = New(context.Background(), container.ConnectionString(), testClock, zerolog.Nop())
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	testDB.Close()
	container.Shutdown()
	os.Exit(code)
}

func getPlayer() model.Player {
	id := atomic.AddInt32(&idCtr, 1)

	return model.Player{
		ID:        fmt.Sprintf("%d", id),
		FirstName: "Tyler",
		LastName:  "Lockett",
		Position:  model.POS_WR,
		Team:      "SEA",
		Active:    true,
	}
}

func getPlayerWithName(first, last string) model.Player {
	p := getPlayer()
	p.FirstName = first
	p.LastName = last
	p.Team = "DET"
	return p
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	t.Helper()
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}

func assertTrue(t *testing.T, field string, cond bool) {
	t.Helper()
	if !cond {
		t.Errorf("%s - expected to be true but it was false", field)
	}
}

func assertError(t *testing.T, tcName string, e1, e2 error) {
	t.Helper()
	if e1 == nil && e2 == nil {
		return
	}
	if (e1 != nil && e2 == nil) || (e1 == nil && e2 != nil) {
		t.Errorf("unexpected error in %s, expected: %v, got: %v", tcName, e1, e2)
		return
	}
	if e1.Error() != e2.Error() {
		t.Errorf("errors are not equal in %s, expected: %v, got: %v", tcName, e1, e2)
	}
}
