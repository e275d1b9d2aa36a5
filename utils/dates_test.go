package utils

import (
	"testing"
	"time"
)

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2026, 3, 15, 17, 45, 30, 999, time.FixedZone("CET", 3600))
	got := TruncateToDay(in)

	if got.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", got.Location())
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
	// 17:45 CET is 16:45 UTC, still March 15th.
	if got.Day() != 15 {
		t.Fatalf("expected day 15, got %d", got.Day())
	}
}

func TestTruncateToDayIdempotent(t *testing.T) {
	in := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !TruncateToDay(in).Equal(in) {
		t.Fatalf("midnight UTC input should be unchanged")
	}
}
