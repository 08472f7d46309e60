package calendar

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// Overlaps проверяет пересечение двух встреч.
// Встречи в разные дни не пересекаются никогда. Интервалы полуоткрытые
// [Start, End): касание концами (10:00–11:00 и 11:00–12:00) пересечением не считается.
func Overlaps(a, b Meeting) bool {
	if a.Date != b.Date {
		return false
	}
	return rangesOverlap(a.Start, a.End, b.Start, b.End)
}

func rangesOverlap(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

// Pair — неупорядоченная пара конфликтующих встреч, A < B.
type Pair struct {
	A uuid.UUID
	B uuid.UUID
}

// NewPair нормализует порядок идентификаторов.
func NewPair(a, b uuid.UUID) Pair {
	if lessID(b, a) {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

func (p Pair) Contains(id uuid.UUID) bool {
	return p.A == id || p.B == id
}

// Other возвращает второго участника пары.
func (p Pair) Other(id uuid.UUID) uuid.UUID {
	if p.A == id {
		return p.B
	}
	return p.A
}

func lessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// FindConflicts возвращает все пересекающиеся пары встреч.
// Перед попарным проходом встречи раскладываются по датам: между днями
// конфликтов не бывает, так что O(n²) считается только внутри одного дня.
// Результат отсортирован по (A, B).
func FindConflicts(meetings []Meeting) []Pair {
	byDate := make(map[Date][]Meeting)
	for _, m := range meetings {
		byDate[m.Date] = append(byDate[m.Date], m)
	}

	var pairs []Pair
	seen := make(map[Pair]struct{})
	for _, day := range byDate {
		for i := 0; i < len(day); i++ {
			for j := i + 1; j < len(day); j++ {
				if day[i].ID == day[j].ID {
					continue
				}
				if !Overlaps(day[i], day[j]) {
					continue
				}
				p := NewPair(day[i].ID, day[j].ID)
				if _, ok := seen[p]; ok {
					continue
				}
				seen[p] = struct{}{}
				pairs = append(pairs, p)
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return lessID(pairs[i].A, pairs[j].A)
		}
		return lessID(pairs[i].B, pairs[j].B)
	})
	return pairs
}

// HasConflicts — флаг «есть конфликты» для одного дня.
func HasConflicts(meetings []Meeting, date Date) bool {
	day := meetingsOn(meetings, date)
	for i := 0; i < len(day); i++ {
		for j := i + 1; j < len(day); j++ {
			if day[i].ID != day[j].ID && Overlaps(day[i], day[j]) {
				return true
			}
		}
	}
	return false
}

// ConflictsWith — встречи того же дня, пересекающиеся с m.
func ConflictsWith(m Meeting, others []Meeting) []Meeting {
	var out []Meeting
	for _, o := range others {
		if o.ID == m.ID {
			continue
		}
		if Overlaps(m, o) {
			out = append(out, o)
		}
	}
	return out
}

func meetingsOn(meetings []Meeting, date Date) []Meeting {
	out := make([]Meeting, 0, len(meetings))
	for _, m := range meetings {
		if m.Date == date {
			out = append(out, m)
		}
	}
	return out
}
