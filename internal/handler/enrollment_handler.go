package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-enrollment-api/internal/models"
	"github.com/noah-isme/campus-enrollment-api/internal/service"
	appErrors "github.com/noah-isme/campus-enrollment-api/pkg/errors"
	"github.com/noah-isme/campus-enrollment-api/pkg/response"
)

type enrollmentService interface {
	Enroll(ctx context.Context, req service.EnrollStudentRequest) (*models.EnrollmentResult, error)
	Roster(ctx context.Context, query string) (*models.RosterView, error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Stats(ctx context.Context) (*models.EnrollmentStats, error)
	Recent(ctx context.Context, limit int) ([]models.Student, error)
	Options(ctx context.Context) models.EnrollmentOptions
}

// EnrollmentHandler exposes the enrollment form, counter and roster endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Create godoc
// @Summary Enroll student
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.EnrollStudentRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req service.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.enrollments.Enroll(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Roster godoc
// @Summary List enrolled students grouped by batch and academic year, or search them
// @Tags Students
// @Produce json
// @Param q query string false "Case-insensitive match on name, id or email"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *EnrollmentHandler) Roster(c *gin.Context) {
	query := c.Query("q")
	view, err := h.enrollments.Roster(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	mode := "grouped"
	if view.Searching() {
		mode = "search"
	}
	response.JSON(c, http.StatusOK, view, map[string]interface{}{"mode": mode, "total": view.Total})
}

// Get godoc
// @Summary Get enrolled student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	student, err := h.enrollments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Stats godoc
// @Summary Enrollment counter
// @Tags Enrollments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enrollments/stats [get]
func (h *EnrollmentHandler) Stats(c *gin.Context) {
	stats, err := h.enrollments.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Recent godoc
// @Summary Latest enrollments, newest first
// @Tags Enrollments
// @Produce json
// @Param limit query int false "Number of records (default 3)"
// @Success 200 {object} response.Envelope
// @Router /enrollments/recent [get]
func (h *EnrollmentHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}
	students, err := h.enrollments.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Options godoc
// @Summary Selectable batches and academic years
// @Tags Enrollments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enrollments/options [get]
func (h *EnrollmentHandler) Options(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.enrollments.Options(c.Request.Context()))
}
