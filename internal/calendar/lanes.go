package calendar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// LaneMode — способ группировки пересекающихся встреч при раскладке по дорожкам.
type LaneMode int

const (
	// LaneModeCluster — связные компоненты графа пересечений; внутри компоненты
	// встреча занимает первую свободную дорожку. LaneCount одинаков у всей компоненты.
	LaneModeCluster LaneMode = iota
	// LaneModeNeighborhood — группа каждой встречи = она сама плюс прямые пересечения;
	// lane = индекс в отсортированной группе, laneCount = размер группы.
	// Для цепочек A–B–C laneCount у участников может расходиться.
	LaneModeNeighborhood
)

func (m LaneMode) String() string {
	switch m {
	case LaneModeNeighborhood:
		return "neighborhood"
	default:
		return "cluster"
	}
}

// ParseLaneMode принимает "cluster" или "neighborhood".
func ParseLaneMode(s string) (LaneMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cluster":
		return LaneModeCluster, nil
	case "neighborhood":
		return LaneModeNeighborhood, nil
	default:
		return LaneModeCluster, fmt.Errorf("unknown lane mode %q", s)
	}
}

// Lane — горизонтальная дорожка встречи в дневной шкале.
type Lane struct {
	Lane      int
	LaneCount int
}

// AssignLanes раскладывает встречи дня date по дорожкам.
// Встречи других дней игнорируются. Порядок: по началу, при равенстве — по id.
func AssignLanes(meetings []Meeting, date Date, mode LaneMode) map[uuid.UUID]Lane {
	day := sortedDay(meetings, date)
	if mode == LaneModeNeighborhood {
		return neighborhoodLanes(day)
	}
	return clusterLanes(day)
}

func sortedDay(meetings []Meeting, date Date) []Meeting {
	day := meetingsOn(meetings, date)
	sort.SliceStable(day, func(i, j int) bool {
		if day[i].Start != day[j].Start {
			return day[i].Start < day[j].Start
		}
		return lessID(day[i].ID, day[j].ID)
	})
	return day
}

func neighborhoodLanes(day []Meeting) map[uuid.UUID]Lane {
	out := make(map[uuid.UUID]Lane, len(day))
	for _, m := range day {
		// day уже отсортирован, поэтому группа тоже получается отсортированной.
		lane, count := 0, 0
		for _, other := range day {
			if other.ID != m.ID && !Overlaps(m, other) {
				continue
			}
			if other.ID == m.ID {
				lane = count
			}
			count++
		}
		out[m.ID] = Lane{Lane: lane, LaneCount: count}
	}
	return out
}

func clusterLanes(day []Meeting) map[uuid.UUID]Lane {
	out := make(map[uuid.UUID]Lane, len(day))

	var (
		cluster    []uuid.UUID
		laneEnds   []TimeOfDay
		clusterEnd TimeOfDay
	)
	flush := func() {
		for _, id := range cluster {
			l := out[id]
			l.LaneCount = len(laneEnds)
			out[id] = l
		}
		cluster = cluster[:0]
		laneEnds = laneEnds[:0]
	}

	for _, m := range day {
		if len(cluster) > 0 && m.Start >= clusterEnd {
			flush()
		}

		lane := -1
		for i, end := range laneEnds {
			if end <= m.Start {
				lane = i
				break
			}
		}
		if lane < 0 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, m.End)
		} else {
			laneEnds[lane] = m.End
		}

		if len(cluster) == 0 || m.End > clusterEnd {
			clusterEnd = m.End
		}
		cluster = append(cluster, m.ID)
		out[m.ID] = Lane{Lane: lane}
	}
	flush()

	return out
}

// LaneGeometry переводит дорожку в горизонтальные проценты для отрисовки:
// ширина 100/laneCount за вычетом зазора, отступ lane*100/laneCount.
func LaneGeometry(l Lane, gapPercent float64) (left, width float64) {
	count := l.LaneCount
	if count <= 0 {
		count = 1
	}
	share := 100.0 / float64(count)
	width = share - gapPercent
	if width < 0 {
		width = 0
	}
	return float64(l.Lane) * share, width
}
