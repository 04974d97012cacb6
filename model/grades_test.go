package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestLetter(t *testing.T) {
	tests := []struct {
		grade    float64
		expected string
	}{
		{grade: 100, expected: "A+"},
		{grade: 95, expected: "A"},
		{grade: 90, expected: "A-"},
		{grade: 85.5, expected: "B"},
		{grade: 77, expected: "C+"},
		{grade: 61, expected: "D-"},
		{grade: 59.99, expected: "F"},
		{grade: 0, expected: "F"},
	}

	for _, tc := range tests {
		if a := Letter(tc.grade); a != tc.expected {
			t.Errorf("grade %f: expected %s, got %s", tc.grade, tc.expected, a)
		}
	}
}

func TestRoundTo(t *testing.T) {
	if a := RoundTo(12.34567, 2); a != 12.35 {
		t.Errorf("expected 12.35, got %f", a)
	}
	if a := RoundTo(-0.125, 1); a != -0.1 {
		t.Errorf("expected -0.1, got %f", a)
	}
}

func TestNewWarning(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{err: fmt.Errorf("player 123 not on roster 4: %w", ErrInconsistentRoster), kind: "inconsistent_roster"},
		{err: fmt.Errorf("all totals equal: %w", ErrComputation), kind: "computation"},
		{err: errors.New("something else"), kind: "unknown"},
	}

	for _, tc := range tests {
		w := NewWarning("trades", "tx1", tc.err)
		if w.Kind != tc.kind {
			t.Errorf("expected kind %s, got %s", tc.kind, w.Kind)
		}
		if w.Message != tc.err.Error() {
			t.Errorf("expected message %s, got %s", tc.err.Error(), w.Message)
		}
	}
}

func TestSortWarnings(t *testing.T) {
	w := []Warning{
		{Component: "waivers", Subject: "b"},
		{Component: "league", Subject: "z"},
		{Component: "waivers", Subject: "a"},
	}
	SortWarnings(w)

	expected := []string{"league/z", "waivers/a", "waivers/b"}
	for i, e := range expected {
		a := fmt.Sprintf("%s/%s", w[i].Component, w[i].Subject)
		if a != e {
			t.Errorf("warning %d: expected %s, got %s", i, e, a)
		}
	}
}
