package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidInterval возвращается при попытке создать некорректный интервал
var ErrInvalidInterval = errors.New("domain: invalid time interval")

// TimeInterval represents a half-open [Start, End) time range within a day.
// Both bounds are minutes since midnight, so the arithmetic stays integral.
// The zero value is not a valid interval; construct via NewTimeInterval.
type TimeInterval struct {
	Start int
	End   int
}

// NewTimeInterval creates a validated interval.
// Start must be strictly less than End and both must fit within a day.
func NewTimeInterval(start, end int) (TimeInterval, error) {
	if start < 0 || end > MinutesPerDay {
		return TimeInterval{}, fmt.Errorf("%w: bounds [%d, %d) outside of day", ErrInvalidInterval, start, end)
	}
	if start >= end {
		return TimeInterval{}, fmt.Errorf("%w: start %d >= end %d", ErrInvalidInterval, start, end)
	}
	return TimeInterval{Start: start, End: end}, nil
}

// ParseTimeInterval creates an interval from "HH:MM" bounds.
func ParseTimeInterval(start, end string) (TimeInterval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeInterval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeInterval{}, err
	}
	return NewTimeInterval(s, e)
}

// ParseClock парсит "HH:MM" в минуты с полуночи
// "24:00" допустим как правая граница интервала
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("%w: malformed clock value %q", ErrInvalidInterval, s)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: clock value %q out of range", ErrInvalidInterval, s)
	}
	return h*MinutesPerHour + m, nil
}

// FormatClock форматирует минуты с полуночи в "HH:MM"
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/MinutesPerHour, minutes%MinutesPerHour)
}

// Duration returns the interval length in minutes.
func (i TimeInterval) Duration() int {
	return i.End - i.Start
}

// Overlaps reports whether two half-open intervals share at least one minute.
// Touching bounds (a.End == b.Start) do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Contains reports whether inner lies entirely within i.
func (i TimeInterval) Contains(inner TimeInterval) bool {
	return i.Start <= inner.Start && inner.End <= i.End
}

// String returns the interval as "HH:MM-HH:MM".
func (i TimeInterval) String() string {
	return FormatClock(i.Start) + "-" + FormatClock(i.End)
}

// Subtract returns the fragments of i that remain after removing all of
// removed. Overlapping and adjacent removals are merged first, so the
// result is a sorted list of disjoint intervals.
func (i TimeInterval) Subtract(removed []TimeInterval) []TimeInterval {
	if len(removed) == 0 {
		return []TimeInterval{i}
	}

	merged := MergeIntervals(removed)

	result := make([]TimeInterval, 0, len(merged)+1)
	cursor := i.Start

	for _, r := range merged {
		if r.End <= cursor || r.Start >= i.End {
			continue
		}
		if r.Start > cursor {
			result = append(result, TimeInterval{Start: cursor, End: r.Start})
		}
		if r.End > cursor {
			cursor = r.End
		}
	}

	if cursor < i.End {
		result = append(result, TimeInterval{Start: cursor, End: i.End})
	}

	return result
}

// MergeIntervals объединяет пересекающиеся и смежные интервалы
// Возвращает отсортированный список непересекающихся интервалов
func MergeIntervals(intervals []TimeInterval) []TimeInterval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]TimeInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].Start == sorted[b].Start {
			return sorted[a].End < sorted[b].End
		}
		return sorted[a].Start < sorted[b].Start
	})

	merged := make([]TimeInterval, 0, len(sorted))
	current := sorted[0]

	for _, next := range sorted[1:] {
		// Смежные интервалы (current.End == next.Start) тоже склеиваем
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}

	return append(merged, current)
}
