package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campus-kit/timetable-api/internal/models"
	appErrors "github.com/campus-kit/timetable-api/pkg/errors"
)

// Config tunes the generator. Zero values fall back to a 30 minute
// grid, rooms 101-110 and a Monday 09:00 slot for courses without
// preferences.
type Config struct {
	GridMinutes   int
	Rooms         []string
	FallbackDay   models.Day
	FallbackStart string
}

// Scheduler places courses into a weekly timetable. Placement is greedy
// and deterministic: it minimises conflicts but never rejects a course.
type Scheduler struct {
	grid          int
	rooms         []string
	fallbackDay   models.Day
	fallbackStart int
}

// New builds a Scheduler from config.
func New(cfg Config) *Scheduler {
	if cfg.GridMinutes <= 0 {
		cfg.GridMinutes = 30
	}
	if len(cfg.Rooms) == 0 {
		cfg.Rooms = defaultRooms()
	}
	if !cfg.FallbackDay.Valid() {
		cfg.FallbackDay = models.Monday
	}
	fallbackStart, err := models.ClockMinutes(cfg.FallbackStart)
	if err != nil {
		fallbackStart = 9 * 60
	}
	return &Scheduler{
		grid:          cfg.GridMinutes,
		rooms:         cfg.Rooms,
		fallbackDay:   cfg.FallbackDay,
		fallbackStart: fallbackStart,
	}
}

const minutesPerDay = 24 * 60

func defaultRooms() []string {
	rooms := make([]string, 0, 10)
	for i := 101; i <= 110; i++ {
		rooms = append(rooms, fmt.Sprintf("%d", i))
	}
	return rooms
}

// Generate assigns every course a day, time and room. Courses with fewer
// preferred times are placed first, ties broken by semester hours then
// input order, so identical input always yields identical assignments.
// The returned schedule carries the conflict sets recomputed over the
// final placements, not the partial checks made during placement.
func (s *Scheduler) Generate(courses []models.Course, professors map[string]models.Professor) (*models.Schedule, error) {
	if len(courses) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptyInput, "")
	}
	for _, course := range courses {
		if course.SemesterHours <= 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("course %s semesterHours must be positive", course.ID))
		}
		duration := course.RequiredMinutes()
		if len(course.PreferredTimes) == 0 && s.fallbackStart+duration >= minutesPerDay {
			return nil, appErrors.Clone(appErrors.ErrInvalidSlot, fmt.Sprintf("course %s: fallback slot cannot hold %d minutes before midnight", course.ID, duration))
		}
		for _, slot := range course.PreferredTimes {
			if _, err := models.DurationMinutes(slot, s.grid); err != nil {
				return nil, err
			}
			start, _, err := slot.Bounds()
			if err != nil {
				return nil, err
			}
			// A stretched candidate must still end on the same day or its
			// end time stops being a valid clock value.
			if start+duration >= minutesPerDay {
				return nil, appErrors.Clone(appErrors.ErrInvalidSlot, fmt.Sprintf("course %s: slot starting %s cannot hold %d minutes before midnight", course.ID, slot.StartTime, duration))
			}
		}
	}

	order := make([]int, len(courses))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := courses[order[a]], courses[order[b]]
		if len(ca.PreferredTimes) != len(cb.PreferredTimes) {
			return len(ca.PreferredTimes) < len(cb.PreferredTimes)
		}
		if ca.SemesterHours != cb.SemesterHours {
			return ca.SemesterHours > cb.SemesterHours
		}
		return order[a] < order[b]
	})

	state := newPlacementState(s.rooms)
	entriesByCourse := make(map[string]models.ScheduleEntry, len(courses))

	for _, idx := range order {
		course := courses[idx]
		professorID := resolveProfessor(course, professors)
		candidates := s.candidateSlots(course)

		placedSlot, room, ok := s.tryCandidates(state, candidates, professorID, professors)
		if !ok {
			// Never reject: fall back to the top-ranked candidate and let
			// the final detection pass flag whatever it collides with.
			placedSlot = candidates[0]
			room = state.anyRoom(placedSlot)
		}
		state.occupy(room, professorID, placedSlot)

		entriesByCourse[course.ID] = models.ScheduleEntry{
			ID:            course.ID,
			CourseID:      course.ID,
			Name:          course.Name,
			SemesterHours: course.SemesterHours,
			ProfessorID:   professorID,
			AssignedTime:  placedSlot,
			Room:          room,
		}
	}

	entries := make([]models.ScheduleEntry, 0, len(courses))
	for _, course := range courses {
		entries = append(entries, entriesByCourse[course.ID])
	}

	conflictSets := Detect(entries)
	for i := range entries {
		set := conflictSets[entries[i].ID]
		if set == nil {
			set = []string{}
		}
		entries[i].Conflicts = set
	}

	return &models.Schedule{
		ID:        uuid.NewString(),
		Entries:   entries,
		Conflicts: models.ConflictPairs(entries),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// candidateSlots lists a course's placement options in preference rank
// order. Preferred windows keep their day and start but stretch to the
// required duration so the entry invariant always holds; a course with
// no preferences gets one synthesized fallback slot.
func (s *Scheduler) candidateSlots(course models.Course) []models.TimeSlot {
	duration := course.RequiredMinutes()
	if len(course.PreferredTimes) == 0 {
		return []models.TimeSlot{{
			Day:       s.fallbackDay,
			StartTime: models.MinutesToClock(s.fallbackStart),
			EndTime:   models.MinutesToClock(s.fallbackStart + duration),
		}}
	}
	candidates := make([]models.TimeSlot, 0, len(course.PreferredTimes))
	for _, preferred := range course.PreferredTimes {
		start, _, err := preferred.Bounds()
		if err != nil {
			continue
		}
		candidates = append(candidates, models.TimeSlot{
			Day:       preferred.Day,
			StartTime: preferred.StartTime,
			EndTime:   models.MinutesToClock(start + duration),
		})
	}
	return candidates
}

func (s *Scheduler) tryCandidates(
	state *placementState,
	candidates []models.TimeSlot,
	professorID string,
	professors map[string]models.Professor,
) (models.TimeSlot, string, bool) {
	for _, candidate := range candidates {
		if !professorAvailable(professorID, professors, candidate) {
			continue
		}
		if state.professorBusy(professorID, candidate) {
			continue
		}
		if room, ok := state.freeRoom(candidate); ok {
			return candidate, room, true
		}
	}
	return models.TimeSlot{}, "", false
}

// resolveProfessor dereferences the weak professor link. A dangling id
// means the professor was deleted, so the course schedules professor-less.
func resolveProfessor(course models.Course, professors map[string]models.Professor) string {
	if course.ProfessorID == "" {
		return ""
	}
	if _, ok := professors[course.ProfessorID]; !ok {
		return ""
	}
	return course.ProfessorID
}

// professorAvailable checks the candidate against declared availability
// windows. No declared windows means always available.
func professorAvailable(professorID string, professors map[string]models.Professor, candidate models.TimeSlot) bool {
	if professorID == "" {
		return true
	}
	professor, ok := professors[professorID]
	if !ok || len(professor.Availability) == 0 {
		return true
	}
	for _, window := range professor.Availability {
		if models.Contains(window, candidate) {
			return true
		}
	}
	return false
}

// placementState tracks which rooms and professors are booked while the
// greedy pass runs. Rooms are assigned round-robin so consecutive
// courses spread across the pool.
type placementState struct {
	rooms      []string
	cursor     int
	roomSlots  map[string][]models.TimeSlot
	professors map[string][]models.TimeSlot
}

func newPlacementState(rooms []string) *placementState {
	return &placementState{
		rooms:      rooms,
		roomSlots:  make(map[string][]models.TimeSlot, len(rooms)),
		professors: make(map[string][]models.TimeSlot),
	}
}

func (p *placementState) professorBusy(professorID string, slot models.TimeSlot) bool {
	if professorID == "" {
		return false
	}
	for _, booked := range p.professors[professorID] {
		if models.Overlaps(booked, slot) {
			return true
		}
	}
	return false
}

// freeRoom scans the pool round-robin from the cursor and returns the
// first room with no time overlap against the candidate slot.
func (p *placementState) freeRoom(slot models.TimeSlot) (string, bool) {
	for i := 0; i < len(p.rooms); i++ {
		room := p.rooms[(p.cursor+i)%len(p.rooms)]
		if !p.roomOccupied(room, slot) {
			return room, true
		}
	}
	return "", false
}

// anyRoom prefers a free room but settles for the cursor room when the
// whole pool is booked over the slot.
func (p *placementState) anyRoom(slot models.TimeSlot) string {
	if room, ok := p.freeRoom(slot); ok {
		return room
	}
	return p.rooms[p.cursor]
}

func (p *placementState) roomOccupied(room string, slot models.TimeSlot) bool {
	for _, booked := range p.roomSlots[room] {
		if models.Overlaps(booked, slot) {
			return true
		}
	}
	return false
}

func (p *placementState) occupy(room, professorID string, slot models.TimeSlot) {
	p.roomSlots[room] = append(p.roomSlots[room], slot)
	if professorID != "" {
		p.professors[professorID] = append(p.professors[professorID], slot)
	}
	for i, candidate := range p.rooms {
		if candidate == room {
			p.cursor = (i + 1) % len(p.rooms)
			break
		}
	}
}
