package calendar

import "fmt"

// Candidate — возможное начало встречи и её окно.
type Candidate struct {
	Start TimeOfDay
	Slot
}

// FreeSlots возвращает точки сетки grid, с которых можно начать встречу
// длительностью durationMinutes с дорогой travelMinutes так, чтобы её окно
// не пересекалось с окнами встреч дня date.
// Окна сравниваются с учётом дороги с обеих сторон; касание границ допустимо.
// Отменённые встречи места не занимают.
func FreeSlots(meetings []Meeting, date Date, grid []TimeOfDay, durationMinutes, travelMinutes int) ([]Candidate, error) {
	if durationMinutes <= 0 || travelMinutes < 0 {
		return nil, fmt.Errorf("%w: duration %d, travel %d", ErrInvalidInterval, durationMinutes, travelMinutes)
	}

	var busy []Slot
	for _, m := range meetingsOn(meetings, date) {
		if m.Status == StatusCanceled {
			continue
		}
		s, err := m.Slot()
		if err != nil {
			continue
		}
		busy = append(busy, s)
	}

	var out []Candidate
	for _, start := range grid {
		candidate, err := ComputeSlot(start, durationMinutes, travelMinutes)
		if err != nil {
			// дальше по сетке встреча тем более не влезает в сутки
			break
		}
		free := true
		for _, b := range busy {
			if rangesOverlap(candidate.SlotStart, candidate.SlotEnd, b.SlotStart, b.SlotEnd) {
				free = false
				break
			}
		}
		if free {
			out = append(out, Candidate{Start: start, Slot: candidate})
		}
	}
	return out, nil
}
