package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrSlotDuration = errors.New("slot duration must be positive")

// NoSlot — индекс для пустой сетки.
const NoSlot = -1

// BuildGrid разбивает окно [from, to) на слоты фиксированной ширины step минут.
// "Хвост" короче step отбрасывается.
func BuildGrid(from, to TimeOfDay, stepMinutes int) ([]TimeOfDay, error) {
	if stepMinutes <= 0 {
		return nil, ErrSlotDuration
	}
	if from < 0 || to > MinutesPerDay {
		return nil, fmt.Errorf("%w: grid window %s–%s", ErrInvalidInterval, from, to)
	}
	if to <= from {
		return []TimeOfDay{}, nil
	}

	step := TimeOfDay(stepMinutes)
	grid := make([]TimeOfDay, 0, int(to-from)/stepMinutes)
	for cur := from; cur+step <= to; cur += step {
		grid = append(grid, cur)
	}
	return grid, nil
}

// FindClosestSlotIndex возвращает индекс слота сетки, в который попадает t:
// grid[i] <= t < grid[i+1]. До начала сетки — 0, в последнем слоте и дальше — последний индекс.
// Сетка должна быть отсортирована по возрастанию.
func FindClosestSlotIndex(t TimeOfDay, grid []TimeOfDay) int {
	if len(grid) == 0 {
		return NoSlot
	}
	// первый слот, начинающийся строго после t
	i := sort.Search(len(grid), func(i int) bool { return grid[i] > t })
	if i == 0 {
		return 0
	}
	return i - 1
}

// ParsePolicy — что делать с битой строкой времени при размещении на сетке.
type ParsePolicy int

const (
	// PolicyStrict — вернуть ошибку разбора.
	PolicyStrict ParsePolicy = iota
	// PolicyFallback — поставить встречу в первый слот высотой в один слот
	// и пометить размещение как Fallback.
	PolicyFallback
)

// ParsePlacementPolicy принимает "strict" или "fallback".
func ParsePlacementPolicy(s string) (ParsePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return PolicyStrict, nil
	case "fallback":
		return PolicyFallback, nil
	default:
		return PolicyStrict, fmt.Errorf("unknown parse policy %q", s)
	}
}

// Placement — положение встречи на сетке.
type Placement struct {
	Index    int
	Span     int
	Fallback bool
}

// Place размещает встречу по сырым строкам "HH:MM" на сетке с шагом step минут.
// Span = ceil(длительность/step), минимум 1.
func Place(startRaw, endRaw string, grid []TimeOfDay, stepMinutes int, policy ParsePolicy) (Placement, error) {
	start, errStart := ParseTimeOfDay(startRaw)
	end, errEnd := ParseTimeOfDay(endRaw)
	if err := errors.Join(errStart, errEnd); err != nil {
		if policy == PolicyFallback {
			return Placement{Index: 0, Span: 1, Fallback: true}, nil
		}
		return Placement{}, err
	}
	if end <= start {
		if policy == PolicyFallback {
			return Placement{Index: 0, Span: 1, Fallback: true}, nil
		}
		return Placement{}, fmt.Errorf("%w: %s–%s", ErrInvalidInterval, start, end)
	}
	return PlaceTimes(start, end, grid, stepMinutes), nil
}

// PlaceTimes — то же, что Place, для уже разобранных значений.
func PlaceTimes(start, end TimeOfDay, grid []TimeOfDay, stepMinutes int) Placement {
	idx := FindClosestSlotIndex(start, grid)
	if idx == NoSlot {
		idx = 0
	}
	span := 1
	if stepMinutes > 0 && end > start {
		span = (int(end-start) + stepMinutes - 1) / stepMinutes
		if span < 1 {
			span = 1
		}
	}
	return Placement{Index: idx, Span: span}
}
