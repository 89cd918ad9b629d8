package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campus-kit/timetable-api/internal/models"
	appErrors "github.com/campus-kit/timetable-api/pkg/errors"
)

// EntityStore is the in-memory registry for professors and courses.
// Ids are issued here as UUIDs; uniqueness is enforced at this boundary.
// Professors referenced by courses are weak links: deleting a professor
// leaves its courses in place and they schedule professor-less afterwards.
type EntityStore struct {
	mu             sync.RWMutex
	professors     map[string]models.Professor
	courses        map[string]models.Course
	professorOrder []string
	courseOrder    []string
}

// NewEntityStore builds an empty store.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		professors: make(map[string]models.Professor),
		courses:    make(map[string]models.Course),
	}
}

// CreateProfessor registers a professor and returns it with its new id.
func (s *EntityStore) CreateProfessor(name string, availability []models.TimeSlot) models.Professor {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	professor := models.Professor{
		ID:           s.newID(func(id string) bool { _, ok := s.professors[id]; return ok }),
		Name:         name,
		Availability: append([]models.TimeSlot(nil), availability...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.professors[professor.ID] = professor
	s.professorOrder = append(s.professorOrder, professor.ID)
	return professor
}

// GetProfessor looks up a professor by id.
func (s *EntityStore) GetProfessor(id string) (models.Professor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	professor, ok := s.professors[id]
	if !ok {
		return models.Professor{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("professor %s not found", id))
	}
	return professor, nil
}

// ListProfessors returns professors in creation order.
func (s *EntityStore) ListProfessors() []models.Professor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Professor, 0, len(s.professorOrder))
	for _, id := range s.professorOrder {
		out = append(out, s.professors[id])
	}
	return out
}

// DeleteProfessor removes a professor. Courses keep their dangling
// reference and are treated as professor-less on the next generation.
func (s *EntityStore) DeleteProfessor(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.professors[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("professor %s not found", id))
	}
	delete(s.professors, id)
	s.professorOrder = removeID(s.professorOrder, id)
	return nil
}

// CreateCourse registers a course and returns it with its new id.
func (s *EntityStore) CreateCourse(name string, semesterHours int, professorID string, preferredTimes []models.TimeSlot) models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	course := models.Course{
		ID:             s.newID(func(id string) bool { _, ok := s.courses[id]; return ok }),
		Name:           name,
		SemesterHours:  semesterHours,
		ProfessorID:    professorID,
		PreferredTimes: append([]models.TimeSlot(nil), preferredTimes...),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.courses[course.ID] = course
	s.courseOrder = append(s.courseOrder, course.ID)
	return course
}

// GetCourse looks up a course by id.
func (s *EntityStore) GetCourse(id string) (models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	course, ok := s.courses[id]
	if !ok {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", id))
	}
	return course, nil
}

// ListCourses returns courses in creation order.
func (s *EntityStore) ListCourses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Course, 0, len(s.courseOrder))
	for _, id := range s.courseOrder {
		out = append(out, s.courses[id])
	}
	return out
}

// DeleteCourse removes a course.
func (s *EntityStore) DeleteCourse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", id))
	}
	delete(s.courses, id)
	s.courseOrder = removeID(s.courseOrder, id)
	return nil
}

// Professors snapshots the professor map for generation-time lookups.
func (s *EntityStore) Professors() map[string]models.Professor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.Professor, len(s.professors))
	for id, professor := range s.professors {
		out[id] = professor
	}
	return out
}

// newID issues a UUID, retrying on the astronomically unlikely collision
// so the uniqueness invariant holds unconditionally.
func (s *EntityStore) newID(taken func(string) bool) string {
	for {
		id := uuid.NewString()
		if !taken(id) {
			return id
		}
	}
}

func removeID(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
