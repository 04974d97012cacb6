package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mww/fantasy_analysis/analysis"
	"github.com/rs/zerolog"
)

// Prefix is put in front of every environment variable, FA_PORT, FA_LOG_LEVEL
// and so on.
const Prefix = "FA"

type Config struct {
	Port        int    `envconfig:"PORT" default:"3000"`
	DBConnStr   string `envconfig:"POSTGRES_CONN_STR" required:"true"`
	ArtifactDir string `envconfig:"ARTIFACT_DIR" default:"artifacts"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	// The /admin routes are only served when a password is set.
	AdminUser     string `envconfig:"ADMIN_USER" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	// MaxWeek is the last week of the fantasy season that is fetched.
	MaxWeek int `envconfig:"MAX_WEEK" default:"18"`

	Schedule Schedule `envconfig:"SCHEDULE"`
	Analysis Analysis `envconfig:"ANALYSIS"`
}

// Schedule controls the background work. A zero interval turns the task off.
type Schedule struct {
	PlayerRefresh time.Duration `envconfig:"PLAYER_REFRESH" default:"24h"`
	Analysis      time.Duration `envconfig:"ANALYSIS" default:"6h"`
	JobPrune      time.Duration `envconfig:"JOB_PRUNE" default:"1h"`
	JobRetention  time.Duration `envconfig:"JOB_RETENTION" default:"24h"`
	// Leagues are re-analyzed on the analysis interval. Each entry is a league
	// id, optionally followed by a season like 1000:2024.
	Leagues []string `envconfig:"LEAGUES"`
}

type Analysis struct {
	FairnessThreshold float64 `envconfig:"FAIRNESS_THRESHOLD" default:"10"`
	BenchWeight       float64 `envconfig:"BENCH_WEIGHT" default:"0.4"`
	ScoreWeight       float64 `envconfig:"SCORE_WEIGHT" default:"0.7"`
	EfficiencyWeight  float64 `envconfig:"EFFICIENCY_WEIGHT" default:"0.3"`
	TrailingWindow    int     `envconfig:"TRAILING_WINDOW" default:"3"`
	SignalWeight      float64 `envconfig:"SIGNAL_WEIGHT" default:"0.5"`
	TrailingWeight    float64 `envconfig:"TRAILING_WEIGHT" default:"0.5"`
	TradeScale        float64 `envconfig:"TRADE_SCALE" default:"2"`
	WaiverScale       float64 `envconfig:"WAIVER_SCALE" default:"1"`
	LuckScale         float64 `envconfig:"LUCK_SCALE" default:"10"`

	RosterWeight  float64 `envconfig:"ROSTER_WEIGHT" default:"0.15"`
	TrendWeight   float64 `envconfig:"TREND_WEIGHT" default:"0.15"`
	PowerWeight   float64 `envconfig:"POWER_WEIGHT" default:"0.20"`
	TradesWeight  float64 `envconfig:"TRADES_WEIGHT" default:"0.15"`
	WaiversWeight float64 `envconfig:"WAIVERS_WEIGHT" default:"0.10"`
	RecordWeight  float64 `envconfig:"RECORD_WEIGHT" default:"0.10"`
	LuckWeight    float64 `envconfig:"LUCK_WEIGHT" default:"0.15"`
}

// League is a league season from the schedule config. An empty season means
// the league's current season.
type League struct {
	ID     string
	Season string
}

// Load reads the .env files, if any, and then the environment.
func Load(filenames ...string) (*Config, error) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.DBConnStr) == "" {
		return nil, errors.New("postgres connection string must be provided")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := c.AnalysisParams(); err != nil {
		return nil, err
	}
	if _, err := c.Leagues(); err != nil {
		return nil, err
	}
	return &c, nil
}

// AnalysisParams converts the config into analysis params and validates them.
func (c *Config) AnalysisParams() (analysis.Params, error) {
	a := c.Analysis
	p := analysis.Params{
		FairnessThreshold: a.FairnessThreshold,
		BenchWeight:       a.BenchWeight,
		ScoreWeight:       a.ScoreWeight,
		EfficiencyWeight:  a.EfficiencyWeight,
		TrailingWindow:    a.TrailingWindow,
		SignalWeight:      a.SignalWeight,
		TrailingWeight:    a.TrailingWeight,
		TradeScale:        a.TradeScale,
		WaiverScale:       a.WaiverScale,
		LuckScale:         a.LuckScale,
		Weights: analysis.Weights{
			Roster:  a.RosterWeight,
			Trend:   a.TrendWeight,
			Power:   a.PowerWeight,
			Trades:  a.TradesWeight,
			Waivers: a.WaiversWeight,
			Record:  a.RecordWeight,
			Luck:    a.LuckWeight,
		},
	}
	if err := p.Validate(); err != nil {
		return analysis.Params{}, fmt.Errorf("invalid analysis config: %w", err)
	}
	return p, nil
}

// Leagues parses the scheduled leagues.
func (c *Config) Leagues() ([]League, error) {
	result := make([]League, 0, len(c.Schedule.Leagues))
	for _, l := range c.Schedule.Leagues {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		id, season, _ := strings.Cut(l, ":")
		if id == "" {
			return nil, fmt.Errorf("invalid league in schedule: '%s'", l)
		}
		result = append(result, League{ID: id, Season: season})
	}
	return result, nil
}

// NewLogger builds the JSON logger used by every component.
func NewLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level '%s': %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(lvl)
	return logger, nil
}
