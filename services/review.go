// services/review.go
package services

import (
	"errors"

	"github.com/alphabatem/common/context"
	"gorm.io/gorm"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/model"
	"github.com/edube-platform/edube_api/shared"
)

// ReviewService lets enrolled learners rate a course, one review each.
type ReviewService struct {
	context.DefaultService
	sqlSvc *PostgresService
}

const REVIEW_SVC = "review_svc"

func (svc ReviewService) Id() string {
	return REVIEW_SVC
}

func (svc *ReviewService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ReviewService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// ==================== REVIEW METHODS ====================

func (svc *ReviewService) Create(learnerID, courseID string, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if _, err := svc.sqlSvc.GetCourse(courseID); err != nil {
		return nil, err
	}

	if _, err := svc.sqlSvc.GetEnrollmentByLearnerAndCourse(learnerID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewForbiddenError(err, "Only enrolled learners may review a course")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	existing, err := svc.sqlSvc.GetReviewByCourseAndLearner(courseID, learnerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if existing != nil {
		return nil, shared.NewConflictError(nil, "You have already reviewed this course")
	}

	review, err := svc.sqlSvc.CreateReview(&model.Review{
		CourseID:  courseID,
		LearnerID: learnerID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return nil, err
	}

	response := svc.mapReviewToResponse(review)
	return &response, nil
}

func (svc *ReviewService) ListByCourse(courseID string) (*dto.ReviewCollectionResponse, error) {
	if _, err := svc.sqlSvc.GetCourse(courseID); err != nil {
		return nil, err
	}

	reviews, err := svc.sqlSvc.ListReviewsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	rating, count, err := svc.sqlSvc.GetCourseRating(courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = svc.mapReviewToResponse(&review)
	}

	return &dto.ReviewCollectionResponse{
		Reviews:       responses,
		Total:         int(count),
		AverageRating: rating,
	}, nil
}

func (svc *ReviewService) mapReviewToResponse(review *model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        review.ID,
		CourseID:  review.CourseID,
		LearnerID: review.LearnerID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
