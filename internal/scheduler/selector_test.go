package scheduler

import (
	"testing"
	"time"
)

func TestDueZonesSelectsZonesAtDeliveryHour(t *testing.T) {
	// 2024-01-15 14:30 UTC: London is 14:30, New York is 09:30, Tokyo is 23:30 (Jan 15).
	now := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	zones := []string{"UTC", "America/New_York", "Europe/London", "Asia/Tokyo"}

	pairs, invalid := DueZones(now, zones, 9)
	if len(invalid) != 0 {
		t.Fatalf("unexpected invalid zones %v", invalid)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %v", pairs)
	}
	if pairs[0].Timezone != "America/New_York" || pairs[0].LocalDate != "2024-01-15" {
		t.Fatalf("unexpected pair %+v", pairs[0])
	}
}

func TestDueZonesHourBoundaries(t *testing.T) {
	zones := []string{"UTC"}

	// 08:59 is outside the delivery hour.
	if pairs, _ := DueZones(time.Date(2024, 1, 15, 8, 59, 0, 0, time.UTC), zones, 9); len(pairs) != 0 {
		t.Fatalf("08:59 must not select, got %v", pairs)
	}
	// Anywhere within 09:00-09:59 selects.
	for _, min := range []int{0, 1, 59} {
		pairs, _ := DueZones(time.Date(2024, 1, 15, 9, min, 0, 0, time.UTC), zones, 9)
		if len(pairs) != 1 {
			t.Fatalf("09:%02d must select, got %v", min, pairs)
		}
	}
	// 10:00 is past the window.
	if pairs, _ := DueZones(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), zones, 9); len(pairs) != 0 {
		t.Fatalf("10:00 must not select, got %v", pairs)
	}
}

func TestDueZonesMidnightDeliveryHour(t *testing.T) {
	zones := []string{"UTC"}

	// Hour 0 is a valid configured hour, not an unset value.
	pairs, _ := DueZones(time.Date(2024, 1, 15, 0, 15, 0, 0, time.UTC), zones, 0)
	if len(pairs) != 1 || pairs[0].LocalDate != "2024-01-15" {
		t.Fatalf("00:15 must select for delivery hour 0, got %v", pairs)
	}
	if pairs, _ := DueZones(time.Date(2024, 1, 15, 1, 0, 0, 0, time.UTC), zones, 0); len(pairs) != 0 {
		t.Fatalf("01:00 must not select for delivery hour 0, got %v", pairs)
	}
	if pairs, _ := DueZones(time.Date(2024, 1, 14, 23, 59, 0, 0, time.UTC), zones, 0); len(pairs) != 0 {
		t.Fatalf("23:59 must not select for delivery hour 0, got %v", pairs)
	}
}

func TestDueZonesLocalDateDiffersFromUTC(t *testing.T) {
	// 2024-01-16 00:30 UTC is 09:30 on Jan 16 in Tokyo.
	now := time.Date(2024, 1, 16, 0, 30, 0, 0, time.UTC)
	pairs, _ := DueZones(now, []string{"Asia/Tokyo"}, 9)
	if len(pairs) != 1 || pairs[0].LocalDate != "2024-01-16" {
		t.Fatalf("unexpected pairs %v", pairs)
	}

	// 2024-01-16 17:30 UTC is 09:30 on Jan 16 in Los Angeles.
	pairs, _ = DueZones(time.Date(2024, 1, 16, 17, 30, 0, 0, time.UTC), []string{"America/Los_Angeles"}, 9)
	if len(pairs) != 1 || pairs[0].LocalDate != "2024-01-16" {
		t.Fatalf("unexpected pairs %v", pairs)
	}
}

func TestDueZonesInvalidZoneIsolated(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	pairs, invalid := DueZones(now, []string{"Not/AZone", "UTC"}, 9)
	if len(invalid) != 1 || invalid[0] != "Not/AZone" {
		t.Fatalf("unexpected invalid %v", invalid)
	}
	if len(pairs) != 1 || pairs[0].Timezone != "UTC" {
		t.Fatalf("valid zone must still be selected, got %v", pairs)
	}
}
