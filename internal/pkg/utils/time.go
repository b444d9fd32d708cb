package utils

import (
	"sort"
	"theramind-service/internal/pkg/constvars"
	"time"
)

// ParseTimeslot parses an RFC3339 timeslot as sent by clients.
func ParseTimeslot(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

func FormatTimeslot(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// IsFutureTimeslot reports whether t is strictly after now. A slot equal to
// "now" is not bookable.
func IsFutureTimeslot(t, now time.Time) bool {
	return t.After(now)
}

func TimeslotEnd(start time.Time) time.Time {
	return start.Add(constvars.AppointmentDuration)
}

// NormalizeTimeslots deduplicates and sorts a doctor's published slots.
// Everything is truncated to the minute and stored in UTC so that equality
// checks against booked slots are exact.
func NormalizeTimeslots(slots []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(slots))
	normalized := make([]time.Time, 0, len(slots))
	for _, slot := range slots {
		key := slot.UTC().Truncate(time.Minute)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, key)
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].Before(normalized[j])
	})
	return normalized
}
