package analysis

import (
	"testing"
	"time"
)

func TestResolveExplicitQuarter(t *testing.T) {
	cases := []struct {
		quarter   string
		year      int
		wantMonth time.Month
	}{
		{"Q1", 2024, time.January},
		{"Q2", 2024, time.April},
		{"Q3", 2023, time.July},
		{"Q4", 2022, time.October},
		{"q2", 2024, time.April}, // lowercase token normalized
	}

	for _, tc := range cases {
		identity := ResolveCallIdentity(tc.quarter, tc.year, "")

		if identity.CallDate == nil {
			t.Fatalf("%s %d: expected a call date", tc.quarter, tc.year)
		}
		if identity.CallDate.Month() != tc.wantMonth || identity.CallDate.Day() != 1 {
			t.Errorf("%s %d: expected first day of %v, got %v", tc.quarter, tc.year, tc.wantMonth, identity.CallDate)
		}
		if identity.CallDate.Year() != tc.year {
			t.Errorf("%s %d: expected year %d, got %d", tc.quarter, tc.year, tc.year, identity.CallDate.Year())
		}
		if identity.Year == nil || *identity.Year != tc.year {
			t.Errorf("%s %d: expected Year field %d, got %v", tc.quarter, tc.year, tc.year, identity.Year)
		}

		// Round-trip: the quarter derived from the resolved date must
		// match the normalized input quarter.
		derived := "Q" + string(rune('0'+(int(identity.CallDate.Month())-1)/3+1))
		if identity.Quarter != derived {
			t.Errorf("%s %d: quarter %s does not round-trip (derived %s)", tc.quarter, tc.year, identity.Quarter, derived)
		}
	}
}

func TestResolveFromURL(t *testing.T) {
	url := "https://www.fool.com/earnings/call-transcripts/2024/01/25/apple-aapl-q1-2024-earnings-call-transcript/"

	identity := ResolveCallIdentity("", 0, url)

	if identity.CallDate == nil {
		t.Fatal("expected a call date from URL")
	}
	want := time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC)
	if !identity.CallDate.Equal(want) {
		t.Errorf("expected call date %v, got %v", want, identity.CallDate)
	}
	if identity.Quarter != "Q1" {
		t.Errorf("expected quarter Q1, got %s", identity.Quarter)
	}
	if identity.Year == nil || *identity.Year != 2024 {
		t.Errorf("expected year 2024, got %v", identity.Year)
	}
}

func TestResolveNonMatchingURL(t *testing.T) {
	identity := ResolveCallIdentity("", 0, "https://www.fool.com/investing/2024/01/25/some-market-commentary/")

	if identity.CallDate != nil {
		t.Errorf("expected nil call date, got %v", identity.CallDate)
	}
	if identity.Quarter != "Unknown" {
		t.Errorf("expected quarter Unknown, got %s", identity.Quarter)
	}
	if identity.Year != nil {
		t.Errorf("expected nil year, got %v", identity.Year)
	}
}

func TestResolveInvalidExplicitQuarterFallsThrough(t *testing.T) {
	url := "https://www.fool.com/earnings/call-transcripts/2023/11/02/acme-q3-2023-earnings-call-transcript/"

	identity := ResolveCallIdentity("Q5", 2023, url)

	if identity.CallDate == nil {
		t.Fatal("expected fallback to URL extraction")
	}
	if identity.Quarter != "Q3" {
		t.Errorf("expected quarter Q3 from URL, got %s", identity.Quarter)
	}
}

func TestResolveInvalidURLDate(t *testing.T) {
	// Month 13 matches the textual pattern but is not a real date.
	url := "https://www.fool.com/earnings/call-transcripts/2023/13/02/acme-q3-2023-earnings-call-transcript/"

	identity := ResolveCallIdentity("", 0, url)

	if identity.CallDate != nil {
		t.Errorf("expected nil call date for month 13, got %v", identity.CallDate)
	}
	if identity.Quarter != "Unknown" {
		t.Errorf("expected quarter Unknown, got %s", identity.Quarter)
	}
}

func TestResolveExplicitBeatsURL(t *testing.T) {
	url := "https://www.fool.com/earnings/call-transcripts/2023/11/02/acme-q3-2023-earnings-call-transcript/"

	identity := ResolveCallIdentity("Q4", 2022, url)

	if identity.Quarter != "Q4" {
		t.Errorf("expected explicit quarter Q4 to win, got %s", identity.Quarter)
	}
	if identity.CallDate == nil || identity.CallDate.Year() != 2022 {
		t.Errorf("expected explicit year 2022 call date, got %v", identity.CallDate)
	}
}
