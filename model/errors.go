package model

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDataUnavailable means the league has nothing to analyze yet, for
	// example no completed weeks.
	ErrDataUnavailable error = errors.New("data unavailable")
	// ErrInconsistentRoster means a transaction references players that are not
	// tracked by either party at the time of the transaction.
	ErrInconsistentRoster error = errors.New("inconsistent roster")
	// ErrExternalFetch means the league data source could not be reached or
	// returned something that could not be parsed.
	ErrExternalFetch error = errors.New("external fetch error")
	// ErrComputation covers degenerate math, like normalizing a category where
	// every entry has the same value.
	ErrComputation error = errors.New("computation error")
)

// Warning is an entity level problem that was skipped during an analysis run.
// Warnings are kept in the run output so every skip can be audited.
type Warning struct {
	Kind      string `json:"kind"`
	Component string `json:"component"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

func NewWarning(component, subject string, err error) Warning {
	kind := "unknown"
	switch {
	case errors.Is(err, ErrInconsistentRoster):
		kind = "inconsistent_roster"
	case errors.Is(err, ErrComputation):
		kind = "computation"
	case errors.Is(err, ErrDataUnavailable):
		kind = "data_unavailable"
	case errors.Is(err, ErrExternalFetch):
		kind = "external_fetch"
	}
	return Warning{Kind: kind, Component: component, Subject: subject, Message: err.Error()}
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s %s: %s", w.Component, w.Kind, w.Subject, w.Message)
}

func SortWarnings(w []Warning) {
	slices.SortStableFunc(w, func(a, b Warning) int {
		return cmp.Or(
			cmp.Compare(a.Component, b.Component),
			cmp.Compare(a.Subject, b.Subject),
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.Message, b.Message),
		)
	})
}
