package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/shared"
)

type CourseHandler struct {
	catalogSvc CatalogServiceInterface
}

func NewCourseHandler(catalogSvc CatalogServiceInterface) *CourseHandler {
	return &CourseHandler{
		catalogSvc: catalogSvc,
	}
}

// @Summary List published courses
// @Tags courses
// @Produce json
// @Success 200 {object} shared.Response{data=dto.CourseCollectionResponse}
// @Router /api/v1/courses [get]
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	resp, err := h.catalogSvc.ListCourses()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Courses retrieved", resp)
}

// @Summary Course details
// @Description Full course tree with sections and lessons
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.CourseResponse}
// @Router /api/v1/courses/{courseId} [get]
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	resp, err := h.catalogSvc.GetCourseDetails(courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Course retrieved", resp)
}

// @Summary Course curriculum
// @Description Flattened, ordered lesson list for a course
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=[]dto.LessonResponse}
// @Router /api/v1/courses/{courseId}/lessons [get]
func (h *CourseHandler) GetCourseLessons(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	resp, err := h.catalogSvc.GetCourseLessons(courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Lessons retrieved", resp)
}

// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createCourseRequest body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} shared.Response{data=dto.CourseResponse}
// @Router /api/v1/courses [post]
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	mentorID := c.Locals(shared.UserID).(string)

	resp, err := h.catalogSvc.CreateCourse(mentorID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Course created", resp)
}

// @Summary Add section to course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param createSectionRequest body dto.CreateSectionRequest true "Section details"
// @Success 201 {object} shared.Response{data=dto.SectionResponse}
// @Router /api/v1/courses/{courseId}/sections [post]
func (h *CourseHandler) CreateSection(c *fiber.Ctx) error {
	var req dto.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID := c.Locals(shared.UserID).(string)
	role := c.Locals(shared.UserRole).(string)

	resp, err := h.catalogSvc.CreateSection(userID, role, c.Params("courseId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Section created", resp)
}

// @Summary Add lesson to section
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sectionId path string true "Section ID"
// @Param createLessonRequest body dto.CreateLessonRequest true "Lesson details"
// @Success 201 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/sections/{sectionId}/lessons [post]
func (h *CourseHandler) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID := c.Locals(shared.UserID).(string)
	role := c.Locals(shared.UserRole).(string)

	resp, err := h.catalogSvc.CreateLesson(userID, role, c.Params("sectionId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Lesson created", resp)
}

// @Summary Publish course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.CourseResponse}
// @Router /api/v1/courses/{courseId}/publish [patch]
func (h *CourseHandler) PublishCourse(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	role := c.Locals(shared.UserRole).(string)

	resp, err := h.catalogSvc.PublishCourse(userID, role, c.Params("courseId"), true)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Course published", resp)
}
