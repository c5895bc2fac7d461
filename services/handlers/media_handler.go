package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edube-platform/edube_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// @Summary Upload lesson video
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Param file formData file true "Video file (MP4, MOV, WEBM)"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/lessons/{lessonId}/video [post]
func (h *MediaHandler) UploadVideo(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "Missing file upload")
	}

	userID := c.Locals(shared.UserID).(string)
	role := c.Locals(shared.UserRole).(string)

	resp, err := h.mediaSvc.UploadLessonVideo(userID, role, c.Params("lessonId"), file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Video uploaded", resp)
}

// @Summary Upload lesson document
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Param file formData file true "Document file (PDF, EPUB)"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/lessons/{lessonId}/document [post]
func (h *MediaHandler) UploadDocument(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "Missing file upload")
	}

	userID := c.Locals(shared.UserID).(string)
	role := c.Locals(shared.UserRole).(string)

	resp, err := h.mediaSvc.UploadLessonDocument(userID, role, c.Params("lessonId"), file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Document uploaded", resp)
}

// @Summary Lesson media assets
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonMediaResponse}
// @Router /api/v1/lessons/{lessonId}/media [get]
func (h *MediaHandler) GetLessonMedia(c *fiber.Ctx) error {
	resp, err := h.mediaSvc.GetLessonMedia(c.Params("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Media retrieved", resp)
}
