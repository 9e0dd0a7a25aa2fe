package services

import (
	"regexp"
	"testing"
)

func TestFormatTicketCodeKnownValues(t *testing.T) {
	cases := []struct {
		scheme string
		index  int
		want   string
	}{
		{"1", 1, "AB00001A"},
		{"1", 10000, "AB10000A"},
		{"2", 42, "CD00042B"},
		{"3", 999, "EF00999C"},
		{"4", 12345, "GH12345D"},
		{"9", 7, "9-00007"},
	}
	for _, tc := range cases {
		if got := FormatTicketCode(tc.scheme, tc.index); got != tc.want {
			t.Errorf("FormatTicketCode(%q, %d) = %q, want %q", tc.scheme, tc.index, got, tc.want)
		}
	}
}

func TestFormatTicketCodeUniqueAndFixedWidth(t *testing.T) {
	for _, scheme := range Schemes() {
		pattern := regexp.MustCompile("^" + scheme.Prefix + `\d{5}` + scheme.Suffix + "$")
		seen := make(map[string]int, scheme.TotalTickets)
		for i := 1; i <= scheme.TotalTickets; i++ {
			code := FormatTicketCode(scheme.ID, i)
			if !pattern.MatchString(code) {
				t.Fatalf("scheme %s index %d: %q does not match %s", scheme.ID, i, code, pattern)
			}
			if prev, dup := seen[code]; dup {
				t.Fatalf("scheme %s: %q produced by both %d and %d", scheme.ID, code, prev, i)
			}
			seen[code] = i
			if code != FormatTicketCode(scheme.ID, i) {
				t.Fatalf("scheme %s index %d: formatting is not deterministic", scheme.ID, i)
			}
		}
	}
}

func TestParseTicketIndex(t *testing.T) {
	cases := []struct {
		code   string
		want   int
		wantOK bool
	}{
		{"AB00001A", 1, true},
		{"gh12345d", 12345, true},
		{"9-00007", 7, true},
		{"AB1A", 0, false},
		{"", 0, false},
		{"not-a-code", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseTicketIndex(tc.code)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ParseTicketIndex(%q) = (%d, %v), want (%d, %v)", tc.code, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestParseTicketIndexRoundTrip(t *testing.T) {
	for _, scheme := range Schemes() {
		for _, i := range []int{1, 50, scheme.TotalTickets} {
			got, ok := ParseTicketIndex(FormatTicketCode(scheme.ID, i))
			if !ok || got != i {
				t.Fatalf("scheme %s index %d: round trip gave (%d, %v)", scheme.ID, i, got, ok)
			}
		}
	}
}
