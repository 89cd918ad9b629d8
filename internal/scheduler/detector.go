package scheduler

import (
	"sort"

	"github.com/campus-kit/timetable-api/internal/models"
)

// Detect finds every pairwise collision in the entry set. Two entries
// collide when their assigned times overlap and they share a blocking
// resource: the same room, or the same non-absent professor. The result
// maps entry id to the sorted ids of colliding entries and is symmetric.
// Input entries are not mutated.
func Detect(entries []models.ScheduleEntry) map[string][]string {
	result := make(map[string][]string, len(entries))
	for _, entry := range entries {
		result[entry.ID] = nil
	}

	ordered := make([]models.ScheduleEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		di, dj := ordered[i].AssignedTime.Day.Order(), ordered[j].AssignedTime.Day.Order()
		if di != dj {
			return di < dj
		}
		si, _, _ := ordered[i].AssignedTime.Bounds()
		sj, _, _ := ordered[j].AssignedTime.Bounds()
		return si < sj
	})

	// Sorting by day groups comparable entries together: once the day
	// changes no later entry can overlap, so the scan resets.
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].AssignedTime.Day != ordered[i].AssignedTime.Day {
				break
			}
			if !blocking(ordered[i], ordered[j]) {
				continue
			}
			if models.Overlaps(ordered[i].AssignedTime, ordered[j].AssignedTime) {
				result[ordered[i].ID] = append(result[ordered[i].ID], ordered[j].ID)
				result[ordered[j].ID] = append(result[ordered[j].ID], ordered[i].ID)
			}
		}
	}

	for id := range result {
		sort.Strings(result[id])
	}
	return result
}

func blocking(a, b models.ScheduleEntry) bool {
	if a.Room != "" && a.Room == b.Room {
		return true
	}
	return a.ProfessorID != "" && a.ProfessorID == b.ProfessorID
}
