package scheduler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-kit/timetable-api/internal/models"
	appErrors "github.com/campus-kit/timetable-api/pkg/errors"
)

func newTestScheduler() *Scheduler {
	return New(Config{})
}

func preferred(day models.Day, start, end string) models.TimeSlot {
	return models.TimeSlot{Day: day, StartTime: start, EndTime: end}
}

func course(id, name string, hours int, professorID string, slots ...models.TimeSlot) models.Course {
	return models.Course{
		ID:             id,
		Name:           name,
		SemesterHours:  hours,
		ProfessorID:    professorID,
		PreferredTimes: slots,
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	_, err := newTestScheduler().Generate(nil, nil)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrEmptyInput.Code, appErr.Code)
}

func TestGenerateInvalidPreferredSlot(t *testing.T) {
	courses := []models.Course{
		course("c1", "Algebra", 1, "", preferred(models.Monday, "25:00", "26:00")),
	}
	_, err := newTestScheduler().Generate(courses, nil)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidSlot.Code, appErr.Code)
}

func TestGenerateRejectsStretchPastMidnight(t *testing.T) {
	professors := map[string]models.Professor{
		"p1": {ID: "p1", Name: "Rivera"},
	}
	// Five semester hours starting at 20:00 would run until 25:00, an
	// unrepresentable clock value that the overlap checks cannot compare.
	evening := preferred(models.Monday, "20:00", "21:00")
	courses := []models.Course{
		course("c1", "Astronomy", 5, "p1", evening),
		course("c2", "Observation Lab", 5, "p1", evening),
	}

	_, err := newTestScheduler().Generate(courses, professors)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidSlot.Code, appErr.Code)
}

func TestGenerateRejectsFallbackPastMidnight(t *testing.T) {
	courses := []models.Course{
		course("c1", "Marathon Seminar", 16, ""),
	}

	_, err := newTestScheduler().Generate(courses, nil)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidSlot.Code, appErr.Code)
}

func TestGenerateLateEveningConflictStillDetected(t *testing.T) {
	professors := map[string]models.Professor{
		"p1": {ID: "p1", Name: "Rivera"},
	}
	evening := preferred(models.Monday, "20:00", "21:00")
	courses := []models.Course{
		course("c1", "Astronomy", 3, "p1", evening),
		course("c2", "Observation Lab", 3, "p1", evening),
	}

	schedule, err := newTestScheduler().Generate(courses, professors)
	require.NoError(t, err)
	require.Len(t, schedule.Entries, 2)
	assert.Equal(t, "23:00", schedule.Entries[0].AssignedTime.EndTime)
	assert.Equal(t, 1, schedule.Conflicts, "shared-professor overlap near end of day must count")
}

func TestGenerateTotality(t *testing.T) {
	shared := preferred(models.Monday, "09:00", "10:00")
	courses := make([]models.Course, 0, 15)
	for i := 0; i < 15; i++ {
		courses = append(courses, course(fmt.Sprintf("c%02d", i), fmt.Sprintf("Course %d", i), 1, "", shared))
	}

	schedule, err := newTestScheduler().Generate(courses, nil)
	require.NoError(t, err)
	require.Len(t, schedule.Entries, len(courses), "every course yields exactly one entry")

	seen := make(map[string]bool)
	for _, entry := range schedule.Entries {
		seen[entry.CourseID] = true
	}
	assert.Len(t, seen, len(courses))
}

func TestGenerateEntriesFollowInputOrder(t *testing.T) {
	courses := []models.Course{
		course("c1", "Algebra", 1, "", preferred(models.Monday, "09:00", "10:00"), preferred(models.Tuesday, "09:00", "10:00")),
		course("c2", "Physics", 2, ""),
		course("c3", "History", 1, "", preferred(models.Friday, "11:00", "12:00")),
	}

	schedule, err := newTestScheduler().Generate(courses, nil)
	require.NoError(t, err)
	require.Len(t, schedule.Entries, 3)
	for i, entry := range schedule.Entries {
		assert.Equal(t, courses[i].ID, entry.CourseID)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	professors := map[string]models.Professor{
		"p1": {ID: "p1", Name: "Rivera"},
		"p2": {ID: "p2", Name: "Chen"},
	}
	courses := []models.Course{
		course("c1", "Algebra", 1, "p1", preferred(models.Monday, "09:00", "10:00")),
		course("c2", "Physics", 2, "p2", preferred(models.Monday, "09:00", "11:00"), preferred(models.Wednesday, "09:00", "11:00")),
		course("c3", "History", 1, "p1", preferred(models.Monday, "09:00", "10:00")),
		course("c4", "Drawing", 1, ""),
	}

	s := newTestScheduler()
	first, err := s.Generate(courses, professors)
	require.NoError(t, err)
	second, err := newTestScheduler().Generate(courses, professors)
	require.NoError(t, err)

	require.Equal(t, first.Entries, second.Entries, "identical input must yield identical assignments")
	assert.Equal(t, first.Conflicts, second.Conflicts)
}

func TestGenerateNoConflictWhenFeasible(t *testing.T) {
	professors := map[string]models.Professor{
		"p1": {ID: "p1", Name: "Rivera"},
		"p2": {ID: "p2", Name: "Chen"},
		"p3": {ID: "p3", Name: "Okafor"},
	}
	courses := []models.Course{
		course("c1", "Algebra", 1, "p1", preferred(models.Monday, "09:00", "10:00")),
		course("c2", "Physics", 1, "p2", preferred(models.Tuesday, "10:00", "11:00")),
		course("c3", "History", 1, "p3", preferred(models.Wednesday, "13:00", "14:00")),
	}

	schedule, err := newTestScheduler().Generate(courses, professors)
	require.NoError(t, err)
	assert.Equal(t, 0, schedule.Conflicts)
	for _, entry := range schedule.Entries {
		assert.Empty(t, entry.Conflicts)
		assert.Equal(t, entry.AssignedTime, mustPreferred(t, courses, entry.CourseID), "feasible preferences should be honoured")
	}
}

func mustPreferred(t *testing.T, courses []models.Course, courseID string) models.TimeSlot {
	t.Helper()
	for _, c := range courses {
		if c.ID == courseID {
			return c.PreferredTimes[0]
		}
	}
	t.Fatalf("course %s not in fixture", courseID)
	return models.TimeSlot{}
}

func TestGenerateSameProfessorSameSlot(t *testing.T) {
	professors := map[string]models.Professor{
		"p1": {ID: "p1", Name: "Rivera"},
	}
	shared := preferred(models.Monday, "09:00", "10:00")
	courses := []models.Course{
		course("c1", "Algebra", 1, "p1", shared),
		course("c2", "Geometry", 1, "p1", shared),
	}

	schedule, err := newTestScheduler().Generate(courses, professors)
	require.NoError(t, err)
	require.Len(t, schedule.Entries, 2)
	assert.Equal(t, 1, schedule.Conflicts)
	assert.Equal(t, []string{"c2"}, schedule.Entries[0].Conflicts)
	assert.Equal(t, []string{"c1"}, schedule.Entries[1].Conflicts)
}

func TestGenerateFallbackSlot(t *testing.T) {
	courses := []models.Course{
		course("c1", "Seminar", 2, ""),
	}

	schedule, err := newTestScheduler().Generate(courses, nil)
	require.NoError(t, err)
	require.Len(t, schedule.Entries, 1)
	entry := schedule.Entries[0]
	assert.Equal(t, models.Monday, entry.AssignedTime.Day)
	assert.Equal(t, "09:00", entry.AssignedTime.StartTime)
	assert.Equal(t, "11:00", entry.AssignedTime.EndTime, "fallback stretches to the required duration")
	assert.Equal(t, 0, schedule.Conflicts)
}

func TestGenerateHonoursAvailability(t *testing.T) {
	professors := map[string]models.Professor{
		"p1": {
			ID:   "p1",
			Name: "Rivera",
			Availability: []models.TimeSlot{
				preferred(models.Monday, "08:00", "12:00"),
			},
		},
	}
	courses := []models.Course{
		course("c1", "Algebra", 1, "p1",
			preferred(models.Tuesday, "09:00", "10:00"),
			preferred(models.Monday, "09:00", "10:00"),
		),
	}

	schedule, err := newTestScheduler().Generate(courses, professors)
	require.NoError(t, err)
	entry := schedule.Entries[0]
	assert.Equal(t, models.Monday, entry.AssignedTime.Day, "slot outside availability must be skipped")
	assert.Equal(t, 0, schedule.Conflicts)
}

func TestGenerateDanglingProfessorSchedulesProfessorless(t *testing.T) {
	courses := []models.Course{
		course("c1", "Algebra", 1, "gone", preferred(models.Monday, "09:00", "10:00")),
		course("c2", "Geometry", 1, "gone", preferred(models.Monday, "09:00", "10:00")),
	}

	schedule, err := newTestScheduler().Generate(courses, map[string]models.Professor{})
	require.NoError(t, err)
	for _, entry := range schedule.Entries {
		assert.Empty(t, entry.ProfessorID)
	}
	// Without a shared professor the two courses land in separate rooms.
	assert.Equal(t, 0, schedule.Conflicts)
	assert.NotEqual(t, schedule.Entries[0].Room, schedule.Entries[1].Room)
}

func TestGenerateSpreadsRoomsRoundRobin(t *testing.T) {
	shared := preferred(models.Thursday, "10:00", "11:00")
	courses := []models.Course{
		course("c1", "Algebra", 1, "", shared),
		course("c2", "Physics", 1, "", shared),
		course("c3", "History", 1, "", shared),
	}

	schedule, err := newTestScheduler().Generate(courses, nil)
	require.NoError(t, err)
	rooms := make(map[string]bool)
	for _, entry := range schedule.Entries {
		rooms[entry.Room] = true
	}
	assert.Len(t, rooms, 3, "concurrent courses must not share a room")
	assert.Equal(t, 0, schedule.Conflicts)
}

func TestGenerateRoomExhaustionIsReported(t *testing.T) {
	s := New(Config{Rooms: []string{"101", "102"}})
	shared := preferred(models.Monday, "09:00", "10:00")
	courses := []models.Course{
		course("c1", "Algebra", 1, "", shared),
		course("c2", "Physics", 1, "", shared),
		course("c3", "History", 1, "", shared),
	}

	schedule, err := s.Generate(courses, nil)
	require.NoError(t, err)
	require.Len(t, schedule.Entries, 3, "room exhaustion never drops a course")
	assert.Greater(t, schedule.Conflicts, 0, "the overbooked room must surface as a conflict")
	assert.Equal(t, models.ConflictPairs(schedule.Entries), schedule.Conflicts)
}

func TestGenerateHardestCoursesPlacedFirst(t *testing.T) {
	professors := map[string]models.Professor{
		"p1": {ID: "p1", Name: "Rivera"},
	}
	// c2 has a single option and must win the contested slot even though
	// c1 comes first in input order.
	courses := []models.Course{
		course("c1", "Algebra", 1, "p1",
			preferred(models.Monday, "09:00", "10:00"),
			preferred(models.Tuesday, "09:00", "10:00"),
		),
		course("c2", "Geometry", 1, "p1", preferred(models.Monday, "09:00", "10:00")),
	}

	schedule, err := newTestScheduler().Generate(courses, professors)
	require.NoError(t, err)
	assert.Equal(t, 0, schedule.Conflicts)
	assert.Equal(t, models.Tuesday, schedule.Entries[0].AssignedTime.Day)
	assert.Equal(t, models.Monday, schedule.Entries[1].AssignedTime.Day)
}

func TestGenerateConflictCountConsistency(t *testing.T) {
	professors := map[string]models.Professor{
		"p1": {ID: "p1", Name: "Rivera"},
	}
	shared := preferred(models.Monday, "09:00", "10:00")
	courses := []models.Course{
		course("c1", "Algebra", 1, "p1", shared),
		course("c2", "Geometry", 1, "p1", shared),
		course("c3", "Topology", 1, "p1", shared),
	}

	schedule, err := newTestScheduler().Generate(courses, professors)
	require.NoError(t, err)
	total := 0
	for _, entry := range schedule.Entries {
		total += len(entry.Conflicts)
	}
	assert.Equal(t, total/2, schedule.Conflicts)
	assert.Equal(t, 3, schedule.Conflicts, "three mutually colliding entries form three pairs")
}
