package domain

import "testing"

func TestParseVisitCookies(t *testing.T) {
	cases := []struct {
		name      string
		visited   string
		visitorID string
		returning bool
		id        int64
	}{
		{name: "both present", visited: "1700000000000", visitorID: "7", returning: true, id: 7},
		{name: "no cookies", visited: "", visitorID: ""},
		{name: "marker only", visited: "1700000000000", visitorID: ""},
		{name: "non numeric marker", visited: "yesterday", visitorID: "7"},
		{name: "non numeric id", visited: "1700000000000", visitorID: "abc"},
		{name: "zero id", visited: "1700000000000", visitorID: "0"},
		{name: "negative id", visited: "1700000000000", visitorID: "-3"},
		{name: "negative marker", visited: "-1", visitorID: "7"},
		{name: "minimum int marker", visited: "-9223372036854775808", visitorID: "7"},
		{name: "marker past year 9999", visited: "253402300800000", visitorID: "7"},
		{name: "marker at year 9999", visited: "253402300799999", visitorID: "7", returning: true, id: 7},
		{name: "zero marker", visited: "0", visitorID: "7", returning: true, id: 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseVisitCookies(tc.visited, tc.visitorID)
			if got.Returning() != tc.returning {
				t.Fatalf("expected returning=%v, got %v", tc.returning, got.Returning())
			}
			if got.VisitorID != tc.id {
				t.Fatalf("expected id %d, got %d", tc.id, got.VisitorID)
			}
		})
	}
}

func TestElapsedSecondsRounds(t *testing.T) {
	if got := ElapsedSeconds(10_499, 0); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := ElapsedSeconds(10_500, 0); got != 11 {
		t.Fatalf("expected 11, got %d", got)
	}
	if got := ElapsedSeconds(1_000, 1_000); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestElapsedSecondsFutureMarker(t *testing.T) {
	cases := []struct {
		now, previous int64
		want          int64
	}{
		{now: 0, previous: 499, want: 0},
		{now: 0, previous: 500, want: 0},
		{now: 0, previous: 501, want: -1},
		{now: 0, previous: 1_500, want: -1},
		{now: 0, previous: 2_500, want: -2},
		{now: 1_000, previous: 31_000, want: -30},
	}
	for _, tc := range cases {
		if got := ElapsedSeconds(tc.now, tc.previous); got != tc.want {
			t.Fatalf("ElapsedSeconds(%d, %d): expected %d, got %d", tc.now, tc.previous, tc.want, got)
		}
	}
}
