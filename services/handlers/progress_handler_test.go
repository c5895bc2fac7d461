package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/shared"
)

type stubProgressService struct {
	gotLearnerID    string
	gotEnrollmentID string
	gotProgressID   string
}

func (s *stubProgressService) ListForEnrollment(learnerID, enrollmentID string) (*dto.LessonProgressCollectionResponse, error) {
	s.gotLearnerID = learnerID
	s.gotEnrollmentID = enrollmentID
	return &dto.LessonProgressCollectionResponse{}, nil
}

func (s *stubProgressService) Create(learnerID string, req dto.CreateLessonProgressRequest) (*dto.LessonProgressResponse, error) {
	s.gotLearnerID = learnerID
	s.gotEnrollmentID = req.Enrollment.ID
	return &dto.LessonProgressResponse{ID: "lp-1", EnrollmentID: req.Enrollment.ID, LessonID: req.Lesson.ID}, nil
}

func (s *stubProgressService) Update(learnerID, progressID string, req dto.UpdateLessonProgressRequest) (*dto.LessonProgressResponse, error) {
	s.gotLearnerID = learnerID
	s.gotProgressID = progressID
	return &dto.LessonProgressResponse{ID: progressID}, nil
}

func (s *stubProgressService) CourseProgress(learnerID, enrollmentID string) (*dto.CourseProgressResponse, error) {
	s.gotLearnerID = learnerID
	s.gotEnrollmentID = enrollmentID
	return &dto.CourseProgressResponse{EnrollmentID: enrollmentID}, nil
}

func newProgressTestApp(stub *stubProgressService, userID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(shared.UserID, userID)
		c.Locals(shared.UserRole, shared.RoleLearner)
		return c.Next()
	})

	handler := NewProgressHandler(stub)
	app.Get("/lesson-progress/enrollment/:enrollmentId", handler.ListForEnrollment)
	app.Get("/lesson-progress/course-progress/:enrollmentId", handler.CourseProgress)
	app.Post("/lesson-progress", handler.Create)
	app.Patch("/lesson-progress/:id", handler.Update)
	return app
}

func TestProgressRoutesCarryCallerIdentity(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		stub := &stubProgressService{}
		app := newProgressTestApp(stub, "learner-1")

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/lesson-progress/enrollment/e1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "learner-1", stub.gotLearnerID)
		assert.Equal(t, "e1", stub.gotEnrollmentID)
	})

	t.Run("course progress", func(t *testing.T) {
		stub := &stubProgressService{}
		app := newProgressTestApp(stub, "learner-1")

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/lesson-progress/course-progress/e1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "learner-1", stub.gotLearnerID)
		assert.Equal(t, "e1", stub.gotEnrollmentID)
	})

	t.Run("create", func(t *testing.T) {
		stub := &stubProgressService{}
		app := newProgressTestApp(stub, "learner-1")

		body := `{"enrollment":{"id":"e1"},"lesson":{"id":"l1"},"is_completed":false,"completion_percentage":0,"time_spent_minutes":0}`
		req := httptest.NewRequest(http.MethodPost, "/lesson-progress", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "learner-1", stub.gotLearnerID)
		assert.Equal(t, "e1", stub.gotEnrollmentID)
	})

	t.Run("update", func(t *testing.T) {
		stub := &stubProgressService{}
		app := newProgressTestApp(stub, "learner-1")

		req := httptest.NewRequest(http.MethodPatch, "/lesson-progress/lp-1", strings.NewReader(`{"is_completed":true}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "learner-1", stub.gotLearnerID)
		assert.Equal(t, "lp-1", stub.gotProgressID)
	})
}
