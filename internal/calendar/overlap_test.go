package calendar

import (
	"testing"
)

func TestOverlaps_Symmetric(t *testing.T) {
	ms := []Meeting{
		meeting(t, 1, day1, "09:00", "10:00"),
		meeting(t, 2, day1, "09:30", "10:30"),
		meeting(t, 3, day1, "10:00", "11:00"),
		meeting(t, 4, day1, "08:00", "12:00"),
		meeting(t, 5, Date{Year: 2025, Month: 3, Day: 15}, "09:00", "10:00"),
	}
	for _, a := range ms {
		for _, b := range ms {
			if Overlaps(a, b) != Overlaps(b, a) {
				t.Fatalf("asymmetric overlap for %v / %v", a.ID, b.ID)
			}
		}
	}
}

func TestOverlaps_TouchingBoundaries(t *testing.T) {
	a := meeting(t, 1, day1, "10:00", "11:00")
	b := meeting(t, 2, day1, "11:00", "12:00")
	if Overlaps(a, b) {
		t.Fatalf("touching meetings must not overlap")
	}
}

func TestOverlaps_DifferentDates(t *testing.T) {
	a := meeting(t, 1, day1, "10:00", "11:00")
	b := meeting(t, 2, Date{Year: 2025, Month: 3, Day: 15}, "10:00", "11:00")
	if Overlaps(a, b) {
		t.Fatalf("meetings on different dates must not overlap")
	}
}

func TestOverlaps_Contained(t *testing.T) {
	a := meeting(t, 1, day1, "09:00", "12:00")
	b := meeting(t, 2, day1, "10:00", "10:15")
	if !Overlaps(a, b) {
		t.Fatalf("contained meeting must overlap")
	}
}

func TestFindConflicts_ThreeMeetings(t *testing.T) {
	ms := []Meeting{
		meeting(t, 1, day1, "09:00", "10:00"),
		meeting(t, 2, day1, "09:30", "10:30"),
		meeting(t, 3, day1, "11:00", "12:00"),
	}

	pairs := FindConflicts(ms)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d: %+v", len(pairs), pairs)
	}
	if pairs[0] != NewPair(id(1), id(2)) {
		t.Fatalf("unexpected pair %+v", pairs[0])
	}
	for _, p := range pairs {
		if p.Contains(id(3)) {
			t.Fatalf("third meeting must be conflict-free")
		}
	}
}

func TestFindConflicts_IgnoresCrossDay(t *testing.T) {
	ms := []Meeting{
		meeting(t, 1, day1, "09:00", "10:00"),
		meeting(t, 2, Date{Year: 2025, Month: 3, Day: 15}, "09:00", "10:00"),
	}
	if pairs := FindConflicts(ms); len(pairs) != 0 {
		t.Fatalf("expected no conflicts, got %+v", pairs)
	}
}

func TestFindConflicts_DeterministicOrder(t *testing.T) {
	ms := []Meeting{
		meeting(t, 3, day1, "09:00", "12:00"),
		meeting(t, 1, day1, "09:00", "10:00"),
		meeting(t, 2, day1, "09:30", "10:30"),
	}
	first := FindConflicts(ms)
	second := FindConflicts(ms)
	if len(first) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("non-deterministic output at %d: %+v vs %+v", i, first[i], second[i])
		}
		if lessID(first[i].B, first[i].A) {
			t.Fatalf("pair not normalized: %+v", first[i])
		}
	}
	if first[0] != NewPair(id(1), id(2)) || first[1] != NewPair(id(1), id(3)) || first[2] != NewPair(id(2), id(3)) {
		t.Fatalf("unexpected order: %+v", first)
	}
}

func TestHasConflicts(t *testing.T) {
	ms := []Meeting{
		meeting(t, 1, day1, "09:00", "10:00"),
		meeting(t, 2, day1, "10:00", "11:00"),
	}
	if HasConflicts(ms, day1) {
		t.Fatalf("expected no conflicts for touching meetings")
	}
	ms = append(ms, meeting(t, 3, day1, "10:30", "10:45"))
	if !HasConflicts(ms, day1) {
		t.Fatalf("expected conflicts")
	}
	if HasConflicts(ms, Date{Year: 2025, Month: 3, Day: 15}) {
		t.Fatalf("expected no conflicts on empty day")
	}
}

func TestConflictsWith(t *testing.T) {
	target := meeting(t, 1, day1, "09:00", "10:00")
	others := []Meeting{
		target,
		meeting(t, 2, day1, "09:30", "10:30"),
		meeting(t, 3, day1, "10:00", "10:30"),
	}
	got := ConflictsWith(target, others)
	if len(got) != 1 || got[0].ID != id(2) {
		t.Fatalf("unexpected conflicts: %+v", got)
	}
}
