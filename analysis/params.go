package analysis

import (
	"errors"
	"fmt"
)

// Params holds every tunable constant used by an analysis run. It is passed
// into Run explicitly so runs for different leagues never share settings.
type Params struct {
	// FairnessThreshold is the smallest value margin that makes a trade a
	// win for one side instead of a draw.
	FairnessThreshold float64
	// BenchWeight is how much a bench player's value counts toward the roster
	// total compared to a starter.
	BenchWeight float64

	ScoreWeight      float64
	EfficiencyWeight float64
	TrailingWindow   int
	SignalWeight     float64
	TrailingWeight   float64

	// TradeScale and WaiverScale convert net value into report card points
	// away from the neutral midpoint of 50. LuckScale does the same for each
	// win above or below the median record.
	TradeScale  float64
	WaiverScale float64
	LuckScale   float64

	Weights Weights
}

// Weights are the report card category weights. They are normalized by their
// sum so they do not need to add up to 1.
type Weights struct {
	Roster  float64
	Trend   float64
	Power   float64
	Trades  float64
	Waivers float64
	Record  float64
	Luck    float64
}

func (w Weights) Sum() float64 {
	return w.Roster + w.Trend + w.Power + w.Trades + w.Waivers + w.Record + w.Luck
}

func DefaultParams() Params {
	return Params{
		FairnessThreshold: 10,
		BenchWeight:       0.4,
		ScoreWeight:       0.7,
		EfficiencyWeight:  0.3,
		TrailingWindow:    3,
		SignalWeight:      0.5,
		TrailingWeight:    0.5,
		TradeScale:        2,
		WaiverScale:       1,
		LuckScale:         10,
		Weights: Weights{
			Roster:  0.15,
			Trend:   0.15,
			Power:   0.20,
			Trades:  0.15,
			Waivers: 0.10,
			Record:  0.10,
			Luck:    0.15,
		},
	}
}

func (p Params) Validate() error {
	var errs []error
	if p.FairnessThreshold < 0 {
		errs = append(errs, fmt.Errorf("fairness threshold must not be negative: %f", p.FairnessThreshold))
	}
	if p.BenchWeight < 0 || p.BenchWeight > 1 {
		errs = append(errs, fmt.Errorf("bench weight must be between 0 and 1: %f", p.BenchWeight))
	}
	if p.TrailingWindow < 1 {
		errs = append(errs, fmt.Errorf("trailing window must be at least 1 week: %d", p.TrailingWindow))
	}
	if p.ScoreWeight < 0 || p.EfficiencyWeight < 0 || p.ScoreWeight+p.EfficiencyWeight == 0 {
		errs = append(errs, errors.New("score and efficiency weights must not be negative and must not both be 0"))
	}
	if p.SignalWeight < 0 || p.TrailingWeight < 0 || p.SignalWeight+p.TrailingWeight == 0 {
		errs = append(errs, errors.New("signal and trailing weights must not be negative and must not both be 0"))
	}
	if p.TradeScale < 0 || p.WaiverScale < 0 || p.LuckScale < 0 {
		errs = append(errs, errors.New("trade, waiver and luck scales must not be negative"))
	}
	w := p.Weights
	if w.Roster < 0 || w.Trend < 0 || w.Power < 0 || w.Trades < 0 || w.Waivers < 0 || w.Record < 0 || w.Luck < 0 {
		errs = append(errs, errors.New("report card weights must not be negative"))
	} else if w.Sum() == 0 {
		errs = append(errs, errors.New("report card weights must not all be 0"))
	}
	return errors.Join(errs...)
}
