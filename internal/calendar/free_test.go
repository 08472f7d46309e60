package calendar

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestFreeSlots(t *testing.T) {
	day := day1
	grid, err := BuildGrid(tod(t, "09:00"), tod(t, "12:00"), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meetings := []Meeting{
		{ID: uuid.New(), Date: day, Start: tod(t, "10:00"), End: tod(t, "10:30"), TravelMinutes: 15, Status: StatusUpcoming},
		{ID: uuid.New(), Date: day, Start: tod(t, "09:00"), End: tod(t, "12:00"), Status: StatusCanceled},
		{ID: uuid.New(), Date: Date{Year: 2025, Month: 3, Day: 15}, Start: tod(t, "11:00"), End: tod(t, "12:00"), Status: StatusUpcoming},
	}

	free, err := FreeSlots(meetings, day, grid, 30, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// занято окно 09:45–10:45
	want := []string{"09:00", "11:00", "11:30"}
	if len(free) != len(want) {
		t.Fatalf("expected %d free slots, got %+v", len(want), free)
	}
	for i, w := range want {
		if free[i].Start.String() != w {
			t.Fatalf("slot %d: expected %s, got %s", i, w, free[i].Start)
		}
	}
}

func TestFreeSlots_TravelAndMidnight(t *testing.T) {
	day := day1
	grid, _ := BuildGrid(tod(t, "22:00"), MinutesPerDay, 60)

	free, err := FreeSlots(nil, day, grid, 90, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(free) != 1 || free[0].End.String() != "23:30" || free[0].SlotStart.String() != "21:50" || free[0].Start.String() != "22:00" {
		t.Fatalf("unexpected free slots %+v", free)
	}

	if _, err := FreeSlots(nil, day, grid, 0, 0); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}
