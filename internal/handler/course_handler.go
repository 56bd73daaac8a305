package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/educamedic-api/internal/dto"
	"github.com/noah-isme/educamedic-api/internal/query"
	appErrors "github.com/noah-isme/educamedic-api/pkg/errors"
	"github.com/noah-isme/educamedic-api/pkg/response"
)

type courseService interface {
	List(ctx context.Context, filter query.CourseFilter, opts query.PageOptions) (*dto.CoursePage, error)
	GetByUUID(ctx context.Context, id string) (*dto.CourseView, error)
	Create(ctx context.Context, req dto.CourseRequest) (*dto.CourseView, error)
	Update(ctx context.Context, id string, patch dto.CoursePatchRequest) (*dto.CourseView, error)
}

// CourseHandler exposes course endpoints.
type CourseHandler struct {
	courses courseService
}

// NewCourseHandler constructs a CourseHandler.
func NewCourseHandler(courses courseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (>= 1)"
// @Param limit query int false "Page size (1-100)"
// @Param sort query string false "Sort keys, '-' prefix for descending (createdDate)"
// @Param search query string false "Full-text search over name and description"
// @Param status query string false "Active or Inactive"
// @Param categoryId query string false "Category UUID"
// @Param courseModeId query string false "Course mode UUID"
// @Param instructorId query string false "Instructor UUID"
// @Param sponsorId query string false "Sponsor UUID"
// @Success 200 {object} response.Envelope{data=[]dto.CourseView}
// @Failure 400 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	var q dto.CourseListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid query parameters"))
		return
	}

	page, err := h.courses.List(c.Request.Context(), q.Filter(), q.PageOptions())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Data, &page.Pagination)
}

// Get godoc
// @Summary Get course by UUID
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course UUID"
// @Success 200 {object} response.Envelope{data=dto.CourseView}
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.GetByUUID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 201 {object} response.Envelope{data=dto.CourseView}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid course payload"))
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course fields
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course UUID"
// @Param payload body dto.CoursePatchRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=dto.CourseView}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /courses/{id} [patch]
func (h *CourseHandler) Update(c *gin.Context) {
	var patch dto.CoursePatchRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid course payload"))
		return
	}
	course, err := h.courses.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}
