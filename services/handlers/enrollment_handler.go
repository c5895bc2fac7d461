package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/shared"
)

type EnrollmentHandler struct {
	enrollmentSvc EnrollmentServiceInterface
}

func NewEnrollmentHandler(enrollmentSvc EnrollmentServiceInterface) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentSvc: enrollmentSvc,
	}
}

// @Summary Enroll in a course
// @Description Free courses activate immediately; priced courses return a payment link
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param enrollRequest body dto.EnrollRequest true "Course to enroll in"
// @Success 201 {object} shared.Response{data=dto.EnrollResponse}
// @Router /api/v1/enrollments [post]
func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	learnerID := c.Locals(shared.UserID).(string)

	resp, err := h.enrollmentSvc.Enroll(learnerID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Enrolled successfully", resp)
}

// @Summary List a learner's enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param learnerId path string true "Learner ID"
// @Success 200 {object} shared.Response{data=dto.EnrollmentCollectionResponse}
// @Router /api/v1/enrollments/learner/{learnerId} [get]
func (h *EnrollmentHandler) ListByLearner(c *fiber.Ctx) error {
	learnerID := c.Params("learnerId")

	// Learners only see their own enrollments
	userID := c.Locals(shared.UserID).(string)
	role := c.Locals(shared.UserRole).(string)
	if role != shared.RoleAdmin && learnerID != userID {
		return shared.ResponseJSON(c, http.StatusForbidden, "Forbidden", "Cannot view another learner's enrollments")
	}

	resp, err := h.enrollmentSvc.ListByLearner(learnerID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Enrollments retrieved", resp)
}

// @Summary Enrollment details
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Success 200 {object} shared.Response{data=dto.EnrollmentResponse}
// @Router /api/v1/enrollments/{id} [get]
func (h *EnrollmentHandler) GetEnrollment(c *fiber.Ctx) error {
	resp, err := h.enrollmentSvc.GetEnrollment(c.Params("id"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Enrollment retrieved", resp)
}

// @Summary Update enrollment progress percentage
// @Description Persists the server-computed aggregate percentage
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Param updateProgressRequest body dto.UpdateEnrollmentProgressRequest true "Aggregate percentage"
// @Success 200 {object} shared.Response{data=dto.EnrollmentResponse}
// @Router /api/v1/enrollments/{id}/progress [patch]
func (h *EnrollmentHandler) UpdateProgress(c *fiber.Ctx) error {
	var req dto.UpdateEnrollmentProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	learnerID := c.Locals(shared.UserID).(string)

	resp, err := h.enrollmentSvc.UpdateProgress(learnerID, c.Params("id"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Progress updated", resp)
}

// @Summary Update enrollment status
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Param updateStatusRequest body dto.UpdateEnrollmentStatusRequest true "New status"
// @Success 200 {object} shared.Response{data=dto.EnrollmentResponse}
// @Router /api/v1/enrollments/{id}/status [patch]
func (h *EnrollmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateEnrollmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	learnerID := c.Locals(shared.UserID).(string)

	resp, err := h.enrollmentSvc.UpdateStatus(learnerID, c.Params("id"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Status updated", resp)
}
