package domain

import (
	"sort"
	"time"
)

// BusinessHours bounds the bookable portion of a day.
type BusinessHours struct {
	Open        Clock
	Close       Clock
	StepMinutes int
}

// BusyInterval is an occupied stretch of the calendar, labelled so callers
// can show why a slot is unavailable.
type BusyInterval struct {
	Interval
	Label string
}

// Slot is a candidate start time offered to a caller before booking creation.
// Slots are derived on demand and never persisted.
type Slot struct {
	Time      string
	Blocked   bool
	BlockedBy string
}

// BuildDaySchedule enumerates candidate start times for one day. Candidates
// advance from opening time in fixed steps; ones whose interval would not fit
// entirely before closing are dropped. Each remaining candidate is tested
// against the busy set with the half-open overlap rule, and a blocked slot
// carries the label of the earliest-starting blocker. An all-blocked day
// still yields the full list.
func BuildDaySchedule(day Date, hours BusinessHours, durationMinutes int, busy []BusyInterval) []Slot {
	if hours.StepMinutes <= 0 || durationMinutes <= 0 {
		return nil
	}

	sorted := make([]BusyInterval, len(busy))
	copy(sorted, busy)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	opensAt := day.At(hours.Open)
	closesAt := day.At(hours.Close)
	step := time.Duration(hours.StepMinutes) * time.Minute
	duration := time.Duration(durationMinutes) * time.Minute

	var slots []Slot
	for start := opensAt; start.Before(closesAt); start = start.Add(step) {
		end := start.Add(duration)
		if end.After(closesAt) {
			continue
		}

		slot := Slot{Time: Clock{Hour: start.Hour(), Minute: start.Minute()}.String()}
		candidate := Interval{Start: start, End: end}
		for _, b := range sorted {
			if candidate.Overlaps(b.Interval) {
				slot.Blocked = true
				slot.BlockedBy = b.Label
				break
			}
		}
		slots = append(slots, slot)
	}
	return slots
}
