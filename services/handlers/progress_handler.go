package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{
		progressSvc: progressSvc,
	}
}

// @Summary Lesson progress for an enrollment
// @Tags lesson-progress
// @Produce json
// @Security BearerAuth
// @Param enrollmentId path string true "Enrollment ID"
// @Success 200 {object} shared.Response{data=dto.LessonProgressCollectionResponse}
// @Router /api/v1/lesson-progress/enrollment/{enrollmentId} [get]
func (h *ProgressHandler) ListForEnrollment(c *fiber.Ctx) error {
	learnerID := c.Locals(shared.UserID).(string)
	resp, err := h.progressSvc.ListForEnrollment(learnerID, c.Params("enrollmentId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Progress records retrieved", resp)
}

// @Summary Create lesson progress record
// @Description Idempotent: a concurrent or repeated create returns the existing record
// @Tags lesson-progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createProgressRequest body dto.CreateLessonProgressRequest true "Progress record"
// @Success 201 {object} shared.Response{data=dto.LessonProgressResponse}
// @Router /api/v1/lesson-progress [post]
func (h *ProgressHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLessonProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	learnerID := c.Locals(shared.UserID).(string)
	resp, err := h.progressSvc.Create(learnerID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Progress record created", resp)
}

// @Summary Update lesson progress record
// @Tags lesson-progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Progress record ID"
// @Param updateProgressRequest body dto.UpdateLessonProgressRequest true "Fields to update"
// @Success 200 {object} shared.Response{data=dto.LessonProgressResponse}
// @Router /api/v1/lesson-progress/{id} [patch]
func (h *ProgressHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateLessonProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	learnerID := c.Locals(shared.UserID).(string)
	resp, err := h.progressSvc.Update(learnerID, c.Params("id"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Progress record updated", resp)
}

// @Summary Aggregate course progress
// @Description Completed/total lesson ratio, the source of truth for the enrollment percentage
// @Tags lesson-progress
// @Produce json
// @Security BearerAuth
// @Param enrollmentId path string true "Enrollment ID"
// @Success 200 {object} shared.Response{data=dto.CourseProgressResponse}
// @Router /api/v1/lesson-progress/course-progress/{enrollmentId} [get]
func (h *ProgressHandler) CourseProgress(c *fiber.Ctx) error {
	learnerID := c.Locals(shared.UserID).(string)
	resp, err := h.progressSvc.CourseProgress(learnerID, c.Params("enrollmentId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Course progress retrieved", resp)
}
