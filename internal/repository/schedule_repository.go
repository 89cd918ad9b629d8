package repository

import (
	"fmt"
	"sync"

	"github.com/campus-kit/timetable-api/internal/models"
	appErrors "github.com/campus-kit/timetable-api/pkg/errors"
)

// ScheduleRepository holds generated schedules in insertion order. It is
// process-wide state with an explicit lifecycle: created empty at
// startup, grown via Add, queried by index. A single mutex serialises
// writers so index assignment follows insertion order under contention.
type ScheduleRepository struct {
	mu    sync.Mutex
	items []*models.Schedule
}

// NewScheduleRepository builds an empty repository.
func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{}
}

// Add appends a schedule and returns its index.
func (r *ScheduleRepository) Add(schedule *models.Schedule) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, schedule)
	return len(r.items) - 1
}

// Get returns the schedule at index or NotFound when out of range.
func (r *ScheduleRepository) Get(index int) (*models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.items) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no schedule at index %d", index))
	}
	return r.items[index], nil
}

// List returns all schedules in insertion order.
func (r *ScheduleRepository) List() []*models.Schedule {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Schedule, len(r.items))
	copy(out, r.items)
	return out
}

// Remove deletes the schedule at index. Later schedules shift down one
// position, matching how the UI renumbers its tabs.
func (r *ScheduleRepository) Remove(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.items) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no schedule at index %d", index))
	}
	r.items = append(r.items[:index], r.items[index+1:]...)
	return nil
}

// Len reports the number of stored schedules.
func (r *ScheduleRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
