// services/progress.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/model"
	"github.com/edube-platform/edube_api/shared"
)

// ProgressService tracks per-lesson completion and derives the per-enrollment
// aggregate. Creation goes through an upsert keyed on (enrollment, lesson) so
// two clients racing to create the same record converge on one row.
type ProgressService struct {
	appContext.DefaultService
	sqlSvc     *PostgresService
	redisSvc   *RedisService
	monitorSvc *MonitoringService
}

const PROGRESS_SVC = "progress_svc"

const courseProgressCacheTTL = 30 * time.Second

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.monitorSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

// ==================== LESSON PROGRESS METHODS ====================

func (svc *ProgressService) ListForEnrollment(learnerID, enrollmentID string) (*dto.LessonProgressCollectionResponse, error) {
	if _, err := svc.requireOwnEnrollment(learnerID, enrollmentID); err != nil {
		return nil, err
	}

	records, err := svc.sqlSvc.ListLessonProgressByEnrollment(enrollmentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LessonProgressResponse, len(records))
	for i, record := range records {
		responses[i] = svc.mapProgressToResponse(&record)
	}

	return &dto.LessonProgressCollectionResponse{
		Records: responses,
		Total:   len(responses),
	}, nil
}

// Create upserts a progress record. When another request created the row
// first the existing row comes back unchanged, so retried and concurrent
// creates are safe.
func (svc *ProgressService) Create(learnerID string, req dto.CreateLessonProgressRequest) (*dto.LessonProgressResponse, error) {
	enrollment, err := svc.requireOwnEnrollment(learnerID, req.Enrollment.ID)
	if err != nil {
		return nil, err
	}

	lesson, err := svc.sqlSvc.GetLesson(req.Lesson.ID)
	if err != nil {
		return nil, err
	}

	section, err := svc.sqlSvc.GetSection(lesson.SectionID)
	if err != nil {
		return nil, err
	}

	if section.CourseID != enrollment.CourseID {
		return nil, shared.NewNotFoundError(errors.New("lesson outside enrolled course"), "Lesson does not belong to the enrolled course")
	}

	completion := req.CompletionPercentage
	if req.IsCompleted {
		completion = 100
	}

	record, err := svc.sqlSvc.UpsertLessonProgress(&model.LessonProgress{
		EnrollmentID:         enrollment.ID,
		LessonID:             lesson.ID,
		IsCompleted:          req.IsCompleted,
		CompletionPercentage: completion,
		TimeSpentMinutes:     req.TimeSpentMinutes,
	})
	if err != nil {
		return nil, err
	}

	svc.invalidateCourseProgress(enrollment.ID)
	if record.IsCompleted {
		svc.monitorSvc.RecordLessonCompletion()
	}

	response := svc.mapProgressToResponse(record)
	return &response, nil
}

func (svc *ProgressService) Update(learnerID, progressID string, req dto.UpdateLessonProgressRequest) (*dto.LessonProgressResponse, error) {
	record, err := svc.sqlSvc.GetLessonProgress(progressID)
	if err != nil {
		return nil, err
	}

	if _, err := svc.requireOwnEnrollment(learnerID, record.EnrollmentID); err != nil {
		return nil, err
	}

	wasCompleted := record.IsCompleted

	if req.IsCompleted != nil {
		record.IsCompleted = *req.IsCompleted
		if record.IsCompleted {
			record.CompletionPercentage = 100
		}
	}
	if req.CompletionPercentage != nil && !record.IsCompleted {
		record.CompletionPercentage = *req.CompletionPercentage
	}
	if req.TimeSpentMinutes != nil {
		record.TimeSpentMinutes = *req.TimeSpentMinutes
	}

	if err := svc.sqlSvc.UpdateLessonProgress(record); err != nil {
		return nil, err
	}

	svc.invalidateCourseProgress(record.EnrollmentID)
	if !wasCompleted && record.IsCompleted {
		svc.monitorSvc.RecordLessonCompletion()
	}

	response := svc.mapProgressToResponse(record)
	return &response, nil
}

// ==================== COURSE PROGRESS METHODS ====================

// CourseProgress computes the completed/total lesson ratio for an enrollment.
// This endpoint is the single source of truth for the aggregate percentage;
// results are cached briefly since the player polls it after every completion.
func (svc *ProgressService) CourseProgress(learnerID, enrollmentID string) (*dto.CourseProgressResponse, error) {
	enrollment, err := svc.requireOwnEnrollment(learnerID, enrollmentID)
	if err != nil {
		return nil, err
	}

	cacheKey := svc.courseProgressCacheKey(enrollmentID)

	var cached dto.CourseProgressResponse
	hit, err := svc.redisSvc.GetJSON(context.Background(), cacheKey, &cached)
	if err != nil {
		log.Printf("Course progress cache read failed: %v", err)
	}
	if hit {
		return &cached, nil
	}

	completed, err := svc.sqlSvc.CountCompletedLessons(enrollmentID)
	if err != nil {
		return nil, err
	}

	total, err := svc.sqlSvc.CountLessonsByCourse(enrollment.CourseID)
	if err != nil {
		return nil, err
	}

	response := &dto.CourseProgressResponse{
		EnrollmentID:       enrollmentID,
		ProgressPercentage: progressPercent(completed, total),
		CompletedLessons:   int(completed),
		TotalLessons:       int(total),
	}

	if data, err := shared.JSONMarshal(response); err == nil {
		if err := svc.redisSvc.Set(context.Background(), cacheKey, string(data), courseProgressCacheTTL); err != nil {
			log.Printf("Course progress cache write failed: %v", err)
		}
	}

	return response, nil
}

// Progress rows are only ever readable and writable by the learner who owns
// the enrollment, same contract as the enrollment mutation endpoints.
func (svc *ProgressService) requireOwnEnrollment(learnerID, enrollmentID string) (*model.Enrollment, error) {
	enrollment, err := svc.sqlSvc.GetEnrollment(enrollmentID)
	if err != nil {
		return nil, err
	}

	if enrollment.LearnerID != learnerID {
		return nil, shared.NewForbiddenError(errors.New("enrollment owned by another learner"), "Enrollment does not belong to you")
	}

	return enrollment, nil
}

func (svc *ProgressService) courseProgressCacheKey(enrollmentID string) string {
	return fmt.Sprintf("course_progress:%s", enrollmentID)
}

func (svc *ProgressService) invalidateCourseProgress(enrollmentID string) {
	if err := svc.redisSvc.Delete(context.Background(), svc.courseProgressCacheKey(enrollmentID)); err != nil {
		log.Printf("Course progress cache invalidation failed: %v", err)
	}
}

// progressPercent rounds to the nearest whole percent; an empty curriculum
// counts as zero progress.
func progressPercent(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func (svc *ProgressService) mapProgressToResponse(record *model.LessonProgress) dto.LessonProgressResponse {
	return dto.LessonProgressResponse{
		ID:                   record.ID,
		EnrollmentID:         record.EnrollmentID,
		LessonID:             record.LessonID,
		IsCompleted:          record.IsCompleted,
		CompletionPercentage: record.CompletionPercentage,
		TimeSpentMinutes:     record.TimeSpentMinutes,
		CreatedAt:            record.CreatedAt,
		UpdatedAt:            record.UpdatedAt,
	}
}
