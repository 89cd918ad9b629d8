package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus-kit/timetable-api/internal/dto"
	"github.com/campus-kit/timetable-api/internal/service"
	appErrors "github.com/campus-kit/timetable-api/pkg/errors"
	"github.com/campus-kit/timetable-api/pkg/response"
)

const maxCourseSelection = 256

// ScheduleHandler exposes schedule generation and repository endpoints.
type ScheduleHandler struct {
	service *service.TimetableService
	export  *service.ExportService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc *service.TimetableService, exportSvc *service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{service: svc, export: exportSvc}
}

// Generate godoc
// @Summary Generate a weekly schedule for the selected courses
// @Description Every course is always placed; collisions are reported through the conflict count rather than rejected.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generate payload; omit courseIds to schedule all stored courses"
// @Success 201 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	if len(req.CourseIDs) > maxCourseSelection {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courseIds exceeds supported limit"))
		return
	}
	result, err := h.service.Generate(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List stored schedules in insertion order
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListSchedules())
}

// Get godoc
// @Summary Get the full schedule at an index
// @Tags Schedules
// @Produce json
// @Param index path int true "Schedule index"
// @Success 200 {object} response.Envelope
// @Router /schedules/{index} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	index, err := parseIndex(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	schedule, err := h.service.GetSchedule(index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule)
}

// Remove godoc
// @Summary Remove the schedule at an index
// @Tags Schedules
// @Param index path int true "Schedule index"
// @Success 204
// @Router /schedules/{index} [delete]
func (h *ScheduleHandler) Remove(c *gin.Context) {
	index, err := parseIndex(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.RemoveSchedule(index); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export the schedule at an index as CSV or PDF
// @Tags Schedules
// @Produce text/csv
// @Produce application/pdf
// @Param index path int true "Schedule index"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /schedules/{index}/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	index, err := parseIndex(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	schedule, err := h.service.GetSchedule(index)
	if err != nil {
		response.Error(c, err)
		return
	}

	names := make(map[string]string)
	for _, professor := range h.service.ListProfessors() {
		names[professor.ID] = professor.Name
	}

	result, err := h.export.Render(schedule, c.Query("format"), names)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Body)
}

func parseIndex(c *gin.Context) (int, error) {
	raw := c.Param("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid schedule index %q", raw))
	}
	return index, nil
}
