package model

import (
	"reflect"
	"testing"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input    string
		expected Position
	}{
		{input: "QB", expected: POS_QB},
		{input: "qb", expected: POS_QB},
		{input: "WR", expected: POS_WR},
		{input: "wr", expected: POS_WR},
		{input: "RB", expected: POS_RB},
		{input: "rb", expected: POS_RB},
		{input: "TE", expected: POS_TE},
		{input: "te", expected: POS_TE},
		{input: "K", expected: POS_K},
		{input: "DEF", expected: POS_DEF},
		{input: "DST", expected: POS_DEF},
		{input: "FB", expected: POS_RB},
		{input: "UNKNOWN", expected: POS_UNKNOWN},
		{input: "LB", expected: POS_UNKNOWN},
	}

	for _, tc := range tests {
		a := ParsePosition(tc.input)
		if a != tc.expected {
			t.Errorf("input: '%s', expected: '%s', got '%s'", tc.input, tc.expected, a)
		}
	}
}

func TestGetRosterSpot(t *testing.T) {
	tests := []struct {
		slot     string
		ok       bool
		allowed  []Position
		disallow Position
	}{
		{slot: "QB", ok: true, allowed: []Position{POS_QB}, disallow: POS_RB},
		{slot: "FLEX", ok: true, allowed: []Position{POS_RB, POS_WR, POS_TE}, disallow: POS_QB},
		{slot: "SUPER_FLEX", ok: true, allowed: []Position{POS_QB, POS_RB, POS_WR, POS_TE}, disallow: POS_K},
		{slot: "REC_FLEX", ok: true, allowed: []Position{POS_WR, POS_TE}, disallow: POS_RB},
		{slot: "DEF", ok: true, allowed: []Position{POS_DEF}, disallow: POS_K},
		{slot: "BN", ok: false},
		{slot: "IR", ok: false},
		{slot: "IDP_FLEX", ok: false},
	}

	for _, tc := range tests {
		spot, ok := GetRosterSpot(tc.slot)
		if ok != tc.ok {
			t.Errorf("%s: expected ok=%v, got %v", tc.slot, tc.ok, ok)
			continue
		}
		if !ok {
			continue
		}
		if !reflect.DeepEqual(tc.allowed, spot.Allowed) {
			t.Errorf("%s: expected allowed %v, got %v", tc.slot, tc.allowed, spot.Allowed)
		}
		if spot.IsAllowed(tc.disallow) {
			t.Errorf("%s: expected %s to not be allowed", tc.slot, tc.disallow)
		}
	}
}

func TestStartingLineup(t *testing.T) {
	lineup := StartingLineup([]string{"QB", "FLEX", "RB", "RB", "WR", "SUPER_FLEX", "TE", "BN", "BN", "IR"})

	names := make([]string, 0, len(lineup))
	for _, s := range lineup {
		names = append(names, s.Name)
	}

	expected := []string{"QB", "RB", "RB", "WR", "TE", "FLEX", "SUPER_FLEX"}
	if !reflect.DeepEqual(expected, names) {
		t.Errorf("expected lineup %v, got %v", expected, names)
	}
}

func TestStartingLineup_flexNarrowestFirst(t *testing.T) {
	lineup := StartingLineup([]string{"SUPER_FLEX", "QB", "FLEX", "REC_FLEX", "RB", "WRRB_FLEX", "WR", "TE", "BN"})

	names := make([]string, 0, len(lineup))
	for _, s := range lineup {
		names = append(names, s.Name)
	}

	expected := []string{"QB", "RB", "WR", "TE", "REC_FLEX", "WRRB_FLEX", "FLEX", "SUPER_FLEX"}
	if !reflect.DeepEqual(expected, names) {
		t.Errorf("expected lineup %v, got %v", expected, names)
	}
}
