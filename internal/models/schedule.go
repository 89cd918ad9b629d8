package models

import "time"

// ScheduleEntry is a placed course: the course data plus its assigned
// slot, room and the ids of entries it collides with. Entry ids reuse the
// course id so repeated generations over the same input stay comparable.
type ScheduleEntry struct {
	ID            string   `json:"id"`
	CourseID      string   `json:"courseId"`
	Name          string   `json:"name"`
	SemesterHours int      `json:"semesterHours"`
	ProfessorID   string   `json:"professorId,omitempty"`
	AssignedTime  TimeSlot `json:"assignedTime"`
	Room          string   `json:"room"`
	Conflicts     []string `json:"conflicts"`
}

// Schedule is one generation result: an entry per input course plus the
// number of unordered conflicting entry pairs. Entries are immutable once
// generated; edits require regeneration.
type Schedule struct {
	ID        string          `json:"id"`
	Entries   []ScheduleEntry `json:"entries"`
	Conflicts int             `json:"conflicts"`
	CreatedAt time.Time       `json:"created_at"`
}

// ConflictPairs derives the unordered pair count from per-entry sets.
// Detection output is symmetric so every pair is counted twice.
func ConflictPairs(entries []ScheduleEntry) int {
	total := 0
	for _, entry := range entries {
		total += len(entry.Conflicts)
	}
	return total / 2
}
