package service

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-kit/timetable-api/internal/dto"
	"github.com/campus-kit/timetable-api/internal/repository"
	"github.com/campus-kit/timetable-api/internal/scheduler"
	"github.com/campus-kit/timetable-api/internal/store"
	appErrors "github.com/campus-kit/timetable-api/pkg/errors"
)

func newServiceFixture() *TimetableService {
	return NewTimetableService(
		store.NewEntityStore(),
		repository.NewScheduleRepository(),
		scheduler.New(scheduler.Config{}),
		30,
		validator.New(),
		NewMetricsService(),
		zap.NewNop(),
	)
}

func slotPayload(day, start, end string) dto.TimeSlotPayload {
	return dto.TimeSlotPayload{Day: day, StartTime: start, EndTime: end}
}

func TestCreateProfessorValidation(t *testing.T) {
	svc := newServiceFixture()

	_, err := svc.CreateProfessor(dto.CreateProfessorRequest{Name: ""})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.CreateProfessor(dto.CreateProfessorRequest{
		Name:         "Rivera",
		Availability: []dto.TimeSlotPayload{slotPayload("Monday", "10:00", "09:00")},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidSlot.Code, appErrors.FromError(err).Code)
}

func TestCreateCourseRejectsUnknownProfessor(t *testing.T) {
	svc := newServiceFixture()

	_, err := svc.CreateCourse(dto.CreateCourseRequest{
		Name:          "Algebra",
		SemesterHours: 1,
		ProfessorID:   "6ba7b810-9dad-41d1-80b4-00c04fd430c8",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateCourseRejectsOffGridSlot(t *testing.T) {
	svc := newServiceFixture()

	_, err := svc.CreateCourse(dto.CreateCourseRequest{
		Name:           "Algebra",
		SemesterHours:  1,
		PreferredTimes: []dto.TimeSlotPayload{slotPayload("Monday", "09:10", "10:10")},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidSlot.Code, appErrors.FromError(err).Code)
}

func TestGenerateStoresSchedule(t *testing.T) {
	svc := newServiceFixture()

	professor, err := svc.CreateProfessor(dto.CreateProfessorRequest{Name: "Rivera"})
	require.NoError(t, err)
	_, err = svc.CreateCourse(dto.CreateCourseRequest{
		Name:           "Algebra",
		SemesterHours:  1,
		ProfessorID:    professor.ID,
		PreferredTimes: []dto.TimeSlotPayload{slotPayload("Monday", "09:00", "10:00")},
	})
	require.NoError(t, err)

	result, err := svc.Generate(dto.GenerateScheduleRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Index)
	require.Len(t, result.Schedule.Entries, 1)
	assert.Equal(t, 0, result.Schedule.Conflicts)

	stored, err := svc.GetSchedule(0)
	require.NoError(t, err)
	assert.Equal(t, result.Schedule.ID, stored.ID)

	summaries := svc.ListSchedules()
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Entries)
}

func TestGenerateEmptyStore(t *testing.T) {
	svc := newServiceFixture()

	_, err := svc.Generate(dto.GenerateScheduleRequest{})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrEmptyInput.Code, appErr.Code)
}

func TestGenerateBySelection(t *testing.T) {
	svc := newServiceFixture()

	first, err := svc.CreateCourse(dto.CreateCourseRequest{Name: "Algebra", SemesterHours: 1})
	require.NoError(t, err)
	_, err = svc.CreateCourse(dto.CreateCourseRequest{Name: "Physics", SemesterHours: 1})
	require.NoError(t, err)

	result, err := svc.Generate(dto.GenerateScheduleRequest{CourseIDs: []string{first.ID}})
	require.NoError(t, err)
	require.Len(t, result.Schedule.Entries, 1)
	assert.Equal(t, first.ID, result.Schedule.Entries[0].CourseID)
}

func TestGenerateDeduplicatesSelection(t *testing.T) {
	svc := newServiceFixture()

	c, err := svc.CreateCourse(dto.CreateCourseRequest{
		Name:           "Algebra",
		SemesterHours:  1,
		PreferredTimes: []dto.TimeSlotPayload{slotPayload("Monday", "09:00", "10:00")},
	})
	require.NoError(t, err)

	result, err := svc.Generate(dto.GenerateScheduleRequest{CourseIDs: []string{c.ID, c.ID, c.ID}})
	require.NoError(t, err)
	require.Len(t, result.Schedule.Entries, 1, "repeated selection must not schedule the course twice")
	assert.Equal(t, 0, result.Schedule.Conflicts, "a course must not conflict with itself")
	assert.Empty(t, result.Schedule.Entries[0].Conflicts)
}

func TestGenerateUnknownCourseSelection(t *testing.T) {
	svc := newServiceFixture()
	_, err := svc.CreateCourse(dto.CreateCourseRequest{Name: "Algebra", SemesterHours: 1})
	require.NoError(t, err)

	_, err = svc.Generate(dto.GenerateScheduleRequest{CourseIDs: []string{"6ba7b810-9dad-41d1-80b4-00c04fd430c8"}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGenerateAfterProfessorDeleted(t *testing.T) {
	svc := newServiceFixture()

	professor, err := svc.CreateProfessor(dto.CreateProfessorRequest{Name: "Rivera"})
	require.NoError(t, err)
	_, err = svc.CreateCourse(dto.CreateCourseRequest{
		Name:          "Algebra",
		SemesterHours: 1,
		ProfessorID:   professor.ID,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProfessor(professor.ID))

	result, err := svc.Generate(dto.GenerateScheduleRequest{})
	require.NoError(t, err)
	assert.Empty(t, result.Schedule.Entries[0].ProfessorID, "course must regenerate professor-less")
}

func TestRemoveSchedule(t *testing.T) {
	svc := newServiceFixture()
	_, err := svc.CreateCourse(dto.CreateCourseRequest{Name: "Algebra", SemesterHours: 1})
	require.NoError(t, err)
	_, err = svc.Generate(dto.GenerateScheduleRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveSchedule(0))
	err = svc.RemoveSchedule(0)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
