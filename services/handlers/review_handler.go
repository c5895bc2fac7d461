package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/shared"
)

type ReviewHandler struct {
	reviewSvc ReviewServiceInterface
}

func NewReviewHandler(reviewSvc ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewSvc: reviewSvc,
	}
}

// @Summary Review a course
// @Description One review per learner per course; requires enrollment
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param createReviewRequest body dto.CreateReviewRequest true "Rating and comment"
// @Success 201 {object} shared.Response{data=dto.ReviewResponse}
// @Router /api/v1/courses/{courseId}/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	learnerID := c.Locals(shared.UserID).(string)

	resp, err := h.reviewSvc.Create(learnerID, c.Params("courseId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Review created", resp)
}

// @Summary List course reviews
// @Tags reviews
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.ReviewCollectionResponse}
// @Router /api/v1/courses/{courseId}/reviews [get]
func (h *ReviewHandler) ListByCourse(c *fiber.Ctx) error {
	resp, err := h.reviewSvc.ListByCourse(c.Params("courseId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Reviews retrieved", resp)
}
