package calendar

import (
	"errors"
	"testing"
)

func TestBuildGrid_Basic(t *testing.T) {
	grid, err := BuildGrid(tod(t, "07:00"), tod(t, "09:00"), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TimeOfDay{tod(t, "07:00"), tod(t, "07:30"), tod(t, "08:00"), tod(t, "08:30")}
	if len(grid) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(grid))
	}
	for i := range want {
		if grid[i] != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], grid[i])
		}
	}
}

func TestBuildGrid_TailDropped(t *testing.T) {
	grid, err := BuildGrid(tod(t, "07:00"), tod(t, "08:10"), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(grid))
	}
}

func TestBuildGrid_Errors(t *testing.T) {
	if _, err := BuildGrid(0, 60, 0); !errors.Is(err, ErrSlotDuration) {
		t.Fatalf("expected ErrSlotDuration, got %v", err)
	}
	if _, err := BuildGrid(0, MinutesPerDay+30, 30); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
	grid, err := BuildGrid(120, 60, 30)
	if err != nil || len(grid) != 0 {
		t.Fatalf("expected empty grid, got %v / %v", grid, err)
	}
}

func TestFindClosestSlotIndex(t *testing.T) {
	grid, err := BuildGrid(tod(t, "07:00"), tod(t, "12:00"), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		at   string
		want int
	}{
		{"07:15", 0},
		{"07:00", 0},
		{"07:30", 1},
		{"07:59", 1},
		{"06:00", 0},
		{"11:45", len(grid) - 1},
		{"13:00", len(grid) - 1},
	}
	for _, c := range cases {
		if got := FindClosestSlotIndex(tod(t, c.at), grid); got != c.want {
			t.Fatalf("FindClosestSlotIndex(%s) = %d, want %d", c.at, got, c.want)
		}
	}
}

func TestFindClosestSlotIndex_EmptyGrid(t *testing.T) {
	if got := FindClosestSlotIndex(tod(t, "10:00"), nil); got != NoSlot {
		t.Fatalf("expected NoSlot, got %d", got)
	}
}

func TestPlace(t *testing.T) {
	grid, _ := BuildGrid(tod(t, "07:00"), tod(t, "21:00"), 30)

	p, err := Place("08:15", "09:20", grid, 30, PolicyStrict)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Index != 2 || p.Span != 3 || p.Fallback {
		t.Fatalf("unexpected placement %+v", p)
	}
}

func TestPlace_StrictRejectsGarbage(t *testing.T) {
	grid, _ := BuildGrid(tod(t, "07:00"), tod(t, "21:00"), 30)

	if _, err := Place("8 am", "09:00", grid, 30, PolicyStrict); !errors.Is(err, ErrInvalidTimeOfDay) {
		t.Fatalf("expected ErrInvalidTimeOfDay, got %v", err)
	}
	if _, err := Place("10:00", "09:00", grid, 30, PolicyStrict); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestPlace_Fallback(t *testing.T) {
	grid, _ := BuildGrid(tod(t, "07:00"), tod(t, "21:00"), 30)

	p, err := Place("??", "09:00", grid, 30, PolicyFallback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != (Placement{Index: 0, Span: 1, Fallback: true}) {
		t.Fatalf("unexpected placement %+v", p)
	}
}

func TestParsePlacementPolicy(t *testing.T) {
	if p, err := ParsePlacementPolicy("Fallback"); err != nil || p != PolicyFallback {
		t.Fatalf("unexpected %v / %v", p, err)
	}
	if p, err := ParsePlacementPolicy(""); err != nil || p != PolicyStrict {
		t.Fatalf("unexpected %v / %v", p, err)
	}
	if _, err := ParsePlacementPolicy("lenient"); err == nil {
		t.Fatalf("expected error")
	}
}
