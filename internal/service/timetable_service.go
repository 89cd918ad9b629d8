package service

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-kit/timetable-api/internal/dto"
	"github.com/campus-kit/timetable-api/internal/models"
	"github.com/campus-kit/timetable-api/internal/repository"
	"github.com/campus-kit/timetable-api/internal/scheduler"
	"github.com/campus-kit/timetable-api/internal/store"
	appErrors "github.com/campus-kit/timetable-api/pkg/errors"
)

// TimetableService orchestrates entity data entry, schedule generation
// and repository access. Generation itself is pure; the only shared-state
// write is the final repository Add.
type TimetableService struct {
	entities  *store.EntityStore
	schedules *repository.ScheduleRepository
	engine    *scheduler.Scheduler
	grid      int
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewTimetableService wires the service dependencies.
func NewTimetableService(
	entities *store.EntityStore,
	schedules *repository.ScheduleRepository,
	engine *scheduler.Scheduler,
	gridMinutes int,
	validate *validator.Validate,
	metrics *MetricsService,
	logger *zap.Logger,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if gridMinutes <= 0 {
		gridMinutes = 30
	}
	return &TimetableService{
		entities:  entities,
		schedules: schedules,
		engine:    engine,
		grid:      gridMinutes,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
	}
}

// CreateProfessor validates and registers a professor.
func (s *TimetableService) CreateProfessor(req dto.CreateProfessorRequest) (models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Professor{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	availability := dto.Slots(req.Availability)
	if err := s.checkSlots(availability); err != nil {
		return models.Professor{}, err
	}
	professor := s.entities.CreateProfessor(req.Name, availability)
	s.logger.Info("professor created", zap.String("professor_id", professor.ID))
	return professor, nil
}

// GetProfessor returns a professor by id.
func (s *TimetableService) GetProfessor(id string) (models.Professor, error) {
	return s.entities.GetProfessor(id)
}

// ListProfessors returns all professors in creation order.
func (s *TimetableService) ListProfessors() []models.Professor {
	return s.entities.ListProfessors()
}

// DeleteProfessor removes a professor; its courses become professor-less
// on the next generation.
func (s *TimetableService) DeleteProfessor(id string) error {
	return s.entities.DeleteProfessor(id)
}

// CreateCourse validates and registers a course.
func (s *TimetableService) CreateCourse(req dto.CreateCourseRequest) (models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Course{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	preferred := dto.Slots(req.PreferredTimes)
	if err := s.checkSlots(preferred); err != nil {
		return models.Course{}, err
	}
	if req.ProfessorID != "" {
		if _, err := s.entities.GetProfessor(req.ProfessorID); err != nil {
			return models.Course{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("professor %s not found", req.ProfessorID))
		}
	}
	course := s.entities.CreateCourse(req.Name, req.SemesterHours, req.ProfessorID, preferred)
	s.logger.Info("course created", zap.String("course_id", course.ID), zap.Int("semester_hours", course.SemesterHours))
	return course, nil
}

// GetCourse returns a course by id.
func (s *TimetableService) GetCourse(id string) (models.Course, error) {
	return s.entities.GetCourse(id)
}

// ListCourses returns all courses in creation order.
func (s *TimetableService) ListCourses() []models.Course {
	return s.entities.ListCourses()
}

// DeleteCourse removes a course.
func (s *TimetableService) DeleteCourse(id string) error {
	return s.entities.DeleteCourse(id)
}

// Generate runs the scheduler over the requested courses (all stored
// courses when none are named) and stores the result.
func (s *TimetableService) Generate(req dto.GenerateScheduleRequest) (*dto.GeneratedScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generate payload")
	}

	var courses []models.Course
	if len(req.CourseIDs) == 0 {
		courses = s.entities.ListCourses()
	} else {
		courses = make([]models.Course, 0, len(req.CourseIDs))
		seen := make(map[string]struct{}, len(req.CourseIDs))
		for _, id := range req.CourseIDs {
			// A repeated id would schedule the course twice and make it
			// collide with itself; keep the first occurrence only.
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			course, err := s.entities.GetCourse(id)
			if err != nil {
				return nil, err
			}
			courses = append(courses, course)
		}
	}

	started := time.Now()
	schedule, err := s.engine.Generate(courses, s.entities.Professors())
	if err != nil {
		return nil, err
	}
	index := s.schedules.Add(schedule)

	if s.metrics != nil {
		s.metrics.ObserveGeneration(time.Since(started), schedule.Conflicts, s.schedules.Len())
	}
	s.logger.Info("schedule generated",
		zap.String("schedule_id", schedule.ID),
		zap.Int("index", index),
		zap.Int("entries", len(schedule.Entries)),
		zap.Int("conflicts", schedule.Conflicts),
		zap.Duration("took", time.Since(started)),
	)

	return &dto.GeneratedScheduleResponse{Index: index, Schedule: schedule}, nil
}

// ListSchedules returns list-view summaries in insertion order.
func (s *TimetableService) ListSchedules() []dto.ScheduleSummary {
	stored := s.schedules.List()
	out := make([]dto.ScheduleSummary, 0, len(stored))
	for i, schedule := range stored {
		out = append(out, dto.ScheduleSummary{
			Index:     i,
			ID:        schedule.ID,
			Entries:   len(schedule.Entries),
			Conflicts: schedule.Conflicts,
			CreatedAt: schedule.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

// GetSchedule returns the full schedule at index.
func (s *TimetableService) GetSchedule(index int) (*models.Schedule, error) {
	return s.schedules.Get(index)
}

// RemoveSchedule deletes the schedule at index.
func (s *TimetableService) RemoveSchedule(index int) error {
	return s.schedules.Remove(index)
}

// checkSlots enforces structural slot validity at the input boundary.
func (s *TimetableService) checkSlots(slots []models.TimeSlot) error {
	for _, slot := range slots {
		if _, err := models.DurationMinutes(slot, s.grid); err != nil {
			return err
		}
	}
	return nil
}
