// services/enrollment.go
package services

import (
	"errors"
	"fmt"
	"os"

	"github.com/alphabatem/common/context"
	"gorm.io/gorm"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/model"
	"github.com/edube-platform/edube_api/shared"
)

// EnrollmentService manages the learner/course relationship: enrolling,
// listing a learner's enrollments, and the two mutation endpoints the
// progress layer drives (aggregate percentage and status).
type EnrollmentService struct {
	context.DefaultService
	sqlSvc     *PostgresService
	monitorSvc *MonitoringService

	paymentBaseURL string
}

const ENROLLMENT_SVC = "enrollment_svc"

func (svc EnrollmentService) Id() string {
	return ENROLLMENT_SVC
}

func (svc *EnrollmentService) Configure(ctx *context.Context) error {
	svc.paymentBaseURL = os.Getenv("PAYMENT_BASE_URL")
	if svc.paymentBaseURL == "" {
		svc.paymentBaseURL = "https://pay.edube.io"
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *EnrollmentService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.monitorSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

// ==================== ENROLLMENT METHODS ====================

// Enroll creates the enrollment row for a learner. Free courses activate
// immediately; priced courses come back in "saved" status together with a
// payment link the client redirects to.
func (svc *EnrollmentService) Enroll(learnerID string, req dto.EnrollRequest) (*dto.EnrollResponse, error) {
	course, err := svc.sqlSvc.GetCourse(req.CourseID)
	if err != nil {
		return nil, err
	}

	if !course.IsPublished {
		return nil, shared.NewBadRequestError(nil, "Course is not published")
	}

	existing, err := svc.sqlSvc.GetEnrollmentByLearnerAndCourse(learnerID, course.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if existing != nil {
		return nil, shared.NewConflictError(nil, "Already enrolled in this course")
	}

	status := shared.EnrollmentSaved
	if course.PriceCents == 0 {
		status = shared.EnrollmentActive
	}

	enrollment, err := svc.sqlSvc.CreateEnrollment(&model.Enrollment{
		LearnerID: learnerID,
		CourseID:  course.ID,
		Status:    status,
	})
	if err != nil {
		return nil, err
	}

	svc.monitorSvc.RecordEnrollment(status)

	response := &dto.EnrollResponse{
		Enrollment: svc.mapEnrollmentToResponse(enrollment),
	}
	if course.PriceCents > 0 {
		response.PaymentURL = svc.paymentLink(course.ID, enrollment.ID)
	}

	return response, nil
}

func (svc *EnrollmentService) ListByLearner(learnerID string) (*dto.EnrollmentCollectionResponse, error) {
	enrollments, err := svc.sqlSvc.ListEnrollmentsByLearner(learnerID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EnrollmentResponse, len(enrollments))
	for i, enrollment := range enrollments {
		responses[i] = svc.mapEnrollmentToResponse(&enrollment)
	}

	return &dto.EnrollmentCollectionResponse{
		Enrollments: responses,
		Total:       len(responses),
	}, nil
}

func (svc *EnrollmentService) GetEnrollment(enrollmentID string) (*dto.EnrollmentResponse, error) {
	enrollment, err := svc.sqlSvc.GetEnrollment(enrollmentID)
	if err != nil {
		return nil, err
	}

	response := svc.mapEnrollmentToResponse(enrollment)
	return &response, nil
}

// UpdateProgress persists the server-computed aggregate percentage. Clients
// send the value they received from the course-progress endpoint, never a
// locally derived ratio.
func (svc *EnrollmentService) UpdateProgress(learnerID, enrollmentID string, req dto.UpdateEnrollmentProgressRequest) (*dto.EnrollmentResponse, error) {
	enrollment, err := svc.requireOwnEnrollment(learnerID, enrollmentID)
	if err != nil {
		return nil, err
	}

	enrollment.ProgressPercentage = *req.ProgressPercentage
	if err := svc.sqlSvc.UpdateEnrollment(enrollment); err != nil {
		return nil, err
	}

	response := svc.mapEnrollmentToResponse(enrollment)
	return &response, nil
}

func (svc *EnrollmentService) UpdateStatus(learnerID, enrollmentID string, req dto.UpdateEnrollmentStatusRequest) (*dto.EnrollmentResponse, error) {
	enrollment, err := svc.requireOwnEnrollment(learnerID, enrollmentID)
	if err != nil {
		return nil, err
	}

	enrollment.Status = req.Status
	if err := svc.sqlSvc.UpdateEnrollment(enrollment); err != nil {
		return nil, err
	}

	response := svc.mapEnrollmentToResponse(enrollment)
	return &response, nil
}

func (svc *EnrollmentService) requireOwnEnrollment(learnerID, enrollmentID string) (*model.Enrollment, error) {
	enrollment, err := svc.sqlSvc.GetEnrollment(enrollmentID)
	if err != nil {
		return nil, err
	}

	if enrollment.LearnerID != learnerID {
		return nil, shared.NewForbiddenError(errors.New("enrollment owned by another learner"), "Enrollment does not belong to you")
	}

	return enrollment, nil
}

func (svc *EnrollmentService) paymentLink(courseID, enrollmentID string) string {
	return fmt.Sprintf("%s/pay/%s?enrollment=%s", svc.paymentBaseURL, courseID, enrollmentID)
}

func (svc *EnrollmentService) mapEnrollmentToResponse(enrollment *model.Enrollment) dto.EnrollmentResponse {
	return dto.EnrollmentResponse{
		ID:                 enrollment.ID,
		LearnerID:          enrollment.LearnerID,
		CourseID:           enrollment.CourseID,
		Status:             enrollment.Status,
		ProgressPercentage: enrollment.ProgressPercentage,
		CreatedAt:          enrollment.CreatedAt,
		UpdatedAt:          enrollment.UpdatedAt,
	}
}
