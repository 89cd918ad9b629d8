package dto

import "github.com/campus-kit/timetable-api/internal/models"

// TimeSlotPayload carries a day plus wall-clock interval over the wire.
type TimeSlotPayload struct {
	Day       string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
}

// Model converts the payload to the domain slot.
func (p TimeSlotPayload) Model() models.TimeSlot {
	return models.TimeSlot{Day: models.Day(p.Day), StartTime: p.StartTime, EndTime: p.EndTime}
}

// Slots converts a payload list to domain slots.
func Slots(payloads []TimeSlotPayload) []models.TimeSlot {
	out := make([]models.TimeSlot, 0, len(payloads))
	for _, payload := range payloads {
		out = append(out, payload.Model())
	}
	return out
}

// CreateProfessorRequest registers a professor with optional availability.
type CreateProfessorRequest struct {
	Name         string            `json:"name" validate:"required,min=1,max=200"`
	Availability []TimeSlotPayload `json:"availability" validate:"omitempty,dive"`
}

// CreateCourseRequest registers a course for scheduling.
type CreateCourseRequest struct {
	Name           string            `json:"name" validate:"required,min=1,max=200"`
	SemesterHours  int               `json:"semesterHours" validate:"required,min=1,max=8"`
	ProfessorID    string            `json:"professorId" validate:"omitempty,uuid4"`
	PreferredTimes []TimeSlotPayload `json:"preferredTimes" validate:"omitempty,dive"`
}

// GenerateScheduleRequest selects the courses to place. An empty list
// schedules every stored course.
type GenerateScheduleRequest struct {
	CourseIDs []string `json:"courseIds" validate:"omitempty,dive,uuid4"`
}

// ScheduleSummary is the list-view projection of a stored schedule.
type ScheduleSummary struct {
	Index     int    `json:"index"`
	ID        string `json:"id"`
	Entries   int    `json:"entries"`
	Conflicts int    `json:"conflicts"`
	CreatedAt string `json:"created_at"`
}

// GeneratedScheduleResponse returns the stored schedule with its index.
type GeneratedScheduleResponse struct {
	Index    int              `json:"index"`
	Schedule *models.Schedule `json:"schedule"`
}
