package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-kit/timetable-api/internal/dto"
	"github.com/campus-kit/timetable-api/internal/service"
	appErrors "github.com/campus-kit/timetable-api/pkg/errors"
	"github.com/campus-kit/timetable-api/pkg/response"
)

// ProfessorHandler exposes professor data-entry endpoints.
type ProfessorHandler struct {
	service *service.TimetableService
}

// NewProfessorHandler constructs the handler.
func NewProfessorHandler(svc *service.TimetableService) *ProfessorHandler {
	return &ProfessorHandler{service: svc}
}

// Create godoc
// @Summary Register a professor with optional availability windows
// @Tags Professors
// @Accept json
// @Produce json
// @Param payload body dto.CreateProfessorRequest true "Professor payload"
// @Success 201 {object} response.Envelope
// @Router /professors [post]
func (h *ProfessorHandler) Create(c *gin.Context) {
	var req dto.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid professor payload"))
		return
	}
	professor, err := h.service.CreateProfessor(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, professor)
}

// List godoc
// @Summary List professors in creation order
// @Tags Professors
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /professors [get]
func (h *ProfessorHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListProfessors())
}

// Get godoc
// @Summary Get a professor by id
// @Tags Professors
// @Produce json
// @Param id path string true "Professor ID"
// @Success 200 {object} response.Envelope
// @Router /professors/{id} [get]
func (h *ProfessorHandler) Get(c *gin.Context) {
	professor, err := h.service.GetProfessor(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, professor)
}

// Delete godoc
// @Summary Delete a professor
// @Description Courses referencing the professor are kept and schedule professor-less afterwards.
// @Tags Professors
// @Param id path string true "Professor ID"
// @Success 204
// @Router /professors/{id} [delete]
func (h *ProfessorHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteProfessor(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
