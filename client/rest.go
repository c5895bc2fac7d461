package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/shared"
)

// ProgressStore is the remote side of progress reconciliation: per-lesson
// records plus the enrollment-level aggregate and mutations.
type ProgressStore interface {
	ListLessonProgress(ctx context.Context, enrollmentID string) ([]dto.LessonProgressResponse, error)
	CreateLessonProgress(ctx context.Context, req dto.CreateLessonProgressRequest) (*dto.LessonProgressResponse, error)
	UpdateLessonProgress(ctx context.Context, progressID string, req dto.UpdateLessonProgressRequest) (*dto.LessonProgressResponse, error)
	CourseProgress(ctx context.Context, enrollmentID string) (*dto.CourseProgressResponse, error)
	UpdateEnrollmentProgress(ctx context.Context, enrollmentID string, percentage int) (*dto.EnrollmentResponse, error)
	UpdateEnrollmentStatus(ctx context.Context, enrollmentID, status string) (*dto.EnrollmentResponse, error)
	ListEnrollments(ctx context.Context, learnerID string) ([]dto.EnrollmentResponse, error)
}

// ContentProvider exposes the read-only course tree.
type ContentProvider interface {
	CourseLessons(ctx context.Context, courseID string) ([]dto.LessonResponse, error)
}

// RestStore talks to the Edube API. Every call requires a bearer token from
// the session and fails fast with ErrMissingAuth when there is none.
type RestStore struct {
	http    *resty.Client
	session *Session
}

func NewRestStore(baseURL string, session *Session) *RestStore {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")

	return &RestStore{
		http:    httpClient,
		session: session,
	}
}

// ==================== LESSON PROGRESS ====================

func (s *RestStore) ListLessonProgress(ctx context.Context, enrollmentID string) ([]dto.LessonProgressResponse, error) {
	var out dto.LessonProgressCollectionResponse
	err := s.get(ctx, fmt.Sprintf("/api/v1/lesson-progress/enrollment/%s", enrollmentID), &out)
	if err != nil {
		return nil, err
	}
	return out.Records, nil
}

func (s *RestStore) CreateLessonProgress(ctx context.Context, req dto.CreateLessonProgressRequest) (*dto.LessonProgressResponse, error) {
	var out dto.LessonProgressResponse
	err := s.send(ctx, "POST", "/api/v1/lesson-progress", req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RestStore) UpdateLessonProgress(ctx context.Context, progressID string, req dto.UpdateLessonProgressRequest) (*dto.LessonProgressResponse, error) {
	var out dto.LessonProgressResponse
	err := s.send(ctx, "PATCH", fmt.Sprintf("/api/v1/lesson-progress/%s", progressID), req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RestStore) CourseProgress(ctx context.Context, enrollmentID string) (*dto.CourseProgressResponse, error) {
	var out dto.CourseProgressResponse
	err := s.get(ctx, fmt.Sprintf("/api/v1/lesson-progress/course-progress/%s", enrollmentID), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ==================== ENROLLMENTS ====================

func (s *RestStore) UpdateEnrollmentProgress(ctx context.Context, enrollmentID string, percentage int) (*dto.EnrollmentResponse, error) {
	var out dto.EnrollmentResponse
	req := dto.UpdateEnrollmentProgressRequest{ProgressPercentage: &percentage}
	err := s.send(ctx, "PATCH", fmt.Sprintf("/api/v1/enrollments/%s/progress", enrollmentID), req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RestStore) UpdateEnrollmentStatus(ctx context.Context, enrollmentID, status string) (*dto.EnrollmentResponse, error) {
	var out dto.EnrollmentResponse
	req := dto.UpdateEnrollmentStatusRequest{Status: status}
	err := s.send(ctx, "PATCH", fmt.Sprintf("/api/v1/enrollments/%s/status", enrollmentID), req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RestStore) ListEnrollments(ctx context.Context, learnerID string) ([]dto.EnrollmentResponse, error) {
	var out dto.EnrollmentCollectionResponse
	err := s.get(ctx, fmt.Sprintf("/api/v1/enrollments/learner/%s", learnerID), &out)
	if err != nil {
		return nil, err
	}
	return out.Enrollments, nil
}

// ==================== CATALOG ====================

func (s *RestStore) CourseLessons(ctx context.Context, courseID string) ([]dto.LessonResponse, error) {
	var out []dto.LessonResponse
	err := s.get(ctx, fmt.Sprintf("/api/v1/courses/%s/lessons", courseID), &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ==================== TRANSPORT ====================

func (s *RestStore) get(ctx context.Context, path string, out interface{}) error {
	return s.send(ctx, "GET", path, nil, out)
}

func (s *RestStore) send(ctx context.Context, method, path string, body, out interface{}) error {
	token := s.session.Token()
	if token == "" {
		return ErrMissingAuth
	}

	req := s.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}

	return decodeEnvelope(resp, out)
}

// decodeEnvelope unwraps the {code, message, data} response body the API
// wraps every payload in.
func decodeEnvelope(resp *resty.Response, out interface{}) error {
	var envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}

	if err := shared.JSONUnmarshal(resp.Body(), &envelope); err != nil {
		if resp.IsError() {
			return &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
		}
		return err
	}

	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Message: envelope.Message}
	}

	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	return shared.JSONUnmarshal(envelope.Data, out)
}
