package testutils

import (
	"time"

	"github.com/itbasis/go-clock"
)

// TestController holds the fakes a controller needs in tests.
type TestController struct {
	Clock       *clock.Mock
	ArtifactDir string
	fakeSleeper *FakeSleeperServer
}

func (c *TestController) Close() {
	c.fakeSleeper.Close()
}

func (c *TestController) SleeperURL() string {
	return c.fakeSleeper.URL()
}

func (c *TestController) FakeSleeper() *FakeSleeperServer {
	return c.fakeSleeper
}

// NewTestController starts a fake sleeper server. Artifacts are written to
// artifactDir, usually from t.TempDir().
func NewTestController(artifactDir string) *TestController {
	clock := clock.NewMock()
	clock.Set(time.Date(2024, time.December, 1, 12, 0, 0, 0, time.UTC))

	return &TestController{
		Clock:       clock,
		ArtifactDir: artifactDir,
		fakeSleeper: NewFakeSleeperServer(),
	}
}
