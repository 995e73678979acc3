package planning

import (
	"math"
	"testing"
	"time"
)

const tolerance = 1e-6 // hours

// sampleByMinute is the reference oracle: the minute-by-minute accumulation
// the closed-form Classify must agree with.
func sampleByMinute(iv Interval) Breakdown {
	var b Breakdown
	for cur := iv.Start; cur.Before(iv.End); cur = cur.Add(time.Minute) {
		b.Total += 1.0 / 60

		h := cur.Hour()
		if h >= 21 || h < 6 {
			b.Night += 1.0 / 60
		}
		if cur.Weekday() == time.Sunday {
			b.Sunday += 1.0 / 60
		}
		if IsPublicHoliday(cur) {
			b.Holiday += 1.0 / 60
		}
	}
	return b
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestClassifyDayShiftHasNoPremiums(t *testing.T) {
	b := Classify(mustResolve(t, "2025-12-08", "08:00", "16:00")) // a Monday

	if !closeTo(b.Total, 8) {
		t.Fatalf("expected total 8h, got %v", b.Total)
	}
	if b.Night != 0 || b.Sunday != 0 || b.Holiday != 0 {
		t.Fatalf("expected no premium hours, got %+v", b)
	}
}

func TestClassifyNightWindow(t *testing.T) {
	// 20:00-06:00 spans the whole 21:00-06:00 night window
	b := Classify(mustResolve(t, "2025-12-08", "20:00", "06:00"))

	if !closeTo(b.Total, 10) {
		t.Fatalf("expected total 10h, got %v", b.Total)
	}
	if !closeTo(b.Night, 9) {
		t.Fatalf("expected 9 night hours, got %v", b.Night)
	}
}

func TestClassifySunday(t *testing.T) {
	b := Classify(mustResolve(t, "2025-12-07", "08:00", "18:00")) // a Sunday

	if !closeTo(b.Sunday, 10) || !closeTo(b.Total, 10) {
		t.Fatalf("expected 10 sunday hours out of 10, got %+v", b)
	}
}

func TestClassifyHoliday(t *testing.T) {
	b := Classify(mustResolve(t, "2025-12-25", "08:00", "12:00"))

	if !closeTo(b.Holiday, 4) {
		t.Fatalf("expected 4 holiday hours, got %v", b.Holiday)
	}
}

func TestClassifyHolidayMidnightBoundary(t *testing.T) {
	// Shift starts on Christmas, ends on the 26th: only the portion before
	// midnight counts as holiday.
	b := Classify(mustResolve(t, "2025-12-25", "20:00", "02:00"))

	if !closeTo(b.Total, 6) {
		t.Fatalf("expected total 6h, got %v", b.Total)
	}
	if !closeTo(b.Holiday, 4) {
		t.Fatalf("expected 4 holiday hours before midnight, got %v", b.Holiday)
	}
}

func TestClassifyNewYearBoundary(t *testing.T) {
	// Dec 31 22:00 -> Jan 1 04:00: the holiday list is recomputed for the
	// year of each cell, so the Jan 1 portion counts.
	b := Classify(mustResolve(t, "2025-12-31", "22:00", "04:00"))

	if !closeTo(b.Total, 6) {
		t.Fatalf("expected total 6h, got %v", b.Total)
	}
	if !closeTo(b.Holiday, 4) {
		t.Fatalf("expected 4 holiday hours after midnight, got %v", b.Holiday)
	}
	if !closeTo(b.Night, 6) {
		t.Fatalf("expected 6 night hours, got %v", b.Night)
	}
}

func TestClassifyZeroLengthInterval(t *testing.T) {
	at := time.Date(2025, 12, 8, 8, 0, 0, 0, time.UTC)
	b := Classify(Interval{Start: at, End: at})

	if b.Total != 0 || b.Night != 0 || b.Sunday != 0 || b.Holiday != 0 {
		t.Fatalf("expected all-zero breakdown, got %+v", b)
	}
}

func TestClassifyTotalMatchesDuration(t *testing.T) {
	iv := mustResolve(t, "2025-12-08", "17:30", "03:15")

	if !closeTo(Classify(iv).Total, iv.Duration().Hours()) {
		t.Fatalf("classified total %v != wall-clock %v", Classify(iv).Total, iv.Duration().Hours())
	}
}

// ============================================================
// Closed form vs minute-sampling oracle
// ============================================================

func TestClassifyMatchesMinuteSampling(t *testing.T) {
	cases := []struct {
		name             string
		date, start, end string
	}{
		{"weekday day shift", "2025-12-08", "08:00", "16:00"},
		{"overnight", "2025-12-08", "20:00", "06:00"},
		{"full 24h", "2025-12-08", "07:00", "07:00"},
		{"saturday into sunday", "2025-12-06", "22:00", "06:00"},
		{"sunday into monday", "2025-12-07", "18:00", "02:00"},
		{"christmas overnight", "2025-12-25", "20:00", "02:00"},
		{"new year overnight", "2025-12-31", "22:00", "04:00"},
		{"odd boundaries", "2025-12-08", "05:45", "21:15"},
		{"bastille day", "2025-07-14", "06:00", "18:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			iv := mustResolve(t, tc.date, tc.start, tc.end)
			got := Classify(iv)
			want := sampleByMinute(iv)

			if !closeTo(got.Total, want.Total) {
				t.Errorf("total: closed form %v, oracle %v", got.Total, want.Total)
			}
			if !closeTo(got.Night, want.Night) {
				t.Errorf("night: closed form %v, oracle %v", got.Night, want.Night)
			}
			if !closeTo(got.Sunday, want.Sunday) {
				t.Errorf("sunday: closed form %v, oracle %v", got.Sunday, want.Sunday)
			}
			if !closeTo(got.Holiday, want.Holiday) {
				t.Errorf("holiday: closed form %v, oracle %v", got.Holiday, want.Holiday)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	iv := mustResolve(t, "2025-12-07", "20:00", "06:00")

	a := Classify(iv)
	b := Classify(iv)
	if a != b {
		t.Fatalf("identical inputs classified differently: %+v vs %+v", a, b)
	}
}
