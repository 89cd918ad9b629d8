package models

import "time"

// Professor is a teaching staff member with optional availability windows.
// Empty availability means the professor may be assigned at any time.
type Professor struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Availability []TimeSlot `json:"availability"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Course is a scheduling request: a weekly meeting of a duration derived
// from semester hours, optionally tied to a professor by weak reference.
type Course struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	SemesterHours  int        `json:"semesterHours"`
	ProfessorID    string     `json:"professorId,omitempty"`
	PreferredTimes []TimeSlot `json:"preferredTimes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// MinutesPerSemesterHour maps one semester hour to weekly meeting minutes.
const MinutesPerSemesterHour = 60

// RequiredMinutes returns the weekly meeting duration the course needs.
func (c Course) RequiredMinutes() int {
	return c.SemesterHours * MinutesPerSemesterHour
}
