package controller

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/mww/fantasy_analysis/analysis"
	"github.com/mww/fantasy_analysis/db"
	"github.com/mww/fantasy_analysis/sleeper"
	"github.com/mww/fantasy_analysis/store"
	"github.com/mww/fantasy_analysis/testutils"
	"github.com/rs/zerolog"
)

// A global testDB instance to use for all of the tests instead of setting up a new one each time.
var testDB *testutils.TestDB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	// Setup the global testDB variable
	testDB = testutils.NewTestDB()
	defer testDB.Shutdown()
	code := m.Run()
	os.Exit(code)
}

// newTestController builds a controller against the fake sleeper server. The
// test db is used unless d is given.
func newTestController(t *testing.T, d db.DB) (*controller, *testutils.TestController) {
	t.Helper()
	tc := testutils.NewTestController(t.TempDir())
	t.Cleanup(tc.Close)

	if d == nil {
		d = testDB.DB
	}
	s, err := store.New(tc.ArtifactDir, zerolog.Nop())
	if err != nil {
		t.Fatalf("error creating store: %v", err)
	}

	cfg := Config{Params: analysis.DefaultParams()}
	ctrl, err := New(tc.Clock, sleeper.NewForTest(tc.SleeperURL()), d, s, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	t.Cleanup(func() { ctrl.Shutdown(context.Background()) })
	return ctrl.(*controller), tc
}

func errorsEqual(e1, e2 error) bool {
	if e1 == nil && e2 == nil {
		return true
	}
	if (e1 != nil && e2 == nil) || (e1 == nil && e2 != nil) {
		return false
	}
	return e1.Error() == e2.Error()
}
