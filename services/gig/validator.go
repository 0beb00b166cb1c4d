package gig

import (
	"sort"

	"dashdine/models"
)

// ValidateSelection checks that the selected slots form a gap-free run on
// every date they touch. A single slot on a date trivially passes. The check
// is pure and is re-run on every booking attempt.
func ValidateSelection(slots []models.TimeSlot) error {
	for date, group := range groupByDate(slots) {
		sort.Slice(group, func(i, j int) bool { return group[i].Start < group[j].Start })
		for i := 0; i+1 < len(group); i++ {
			if group[i].End != group[i+1].Start {
				return &GapError{Date: date}
			}
		}
	}
	return nil
}

// ContiguousRuns partitions a validated selection into one run per date,
// ordered by date then start. Each run becomes one gig.
func ContiguousRuns(slots []models.TimeSlot) [][]models.TimeSlot {
	grouped := groupByDate(slots)

	dates := make([]string, 0, len(grouped))
	for date := range grouped {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	runs := make([][]models.TimeSlot, 0, len(dates))
	for _, date := range dates {
		group := grouped[date]
		sort.Slice(group, func(i, j int) bool { return group[i].Start < group[j].Start })
		runs = append(runs, group)
	}
	return runs
}

func groupByDate(slots []models.TimeSlot) map[string][]models.TimeSlot {
	grouped := make(map[string][]models.TimeSlot)
	for _, s := range slots {
		grouped[s.Date] = append(grouped[s.Date], s)
	}
	return grouped
}
