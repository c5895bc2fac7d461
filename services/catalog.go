// services/catalog.go
package services

import (
	"errors"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/model"
	"github.com/edube-platform/edube_api/shared"
)

// CatalogService owns the course/section/lesson tree. It is the
// CourseContentProvider the progress layer reads from; mentors and admins
// write to it.
type CatalogService struct {
	context.DefaultService
	sqlSvc *PostgresService
}

const CATALOG_SVC = "catalog_svc"

func (svc CatalogService) Id() string {
	return CATALOG_SVC
}

func (svc *CatalogService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *CatalogService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// ==================== BROWSE METHODS ====================

func (svc *CatalogService) ListCourses() (*dto.CourseCollectionResponse, error) {
	courses, err := svc.sqlSvc.ListCourses(true)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, len(courses))
	for i, course := range courses {
		responses[i] = svc.mapCourseToResponse(&course, false)
	}

	return &dto.CourseCollectionResponse{
		Courses: responses,
		Total:   len(responses),
	}, nil
}

func (svc *CatalogService) GetCourseDetails(courseID string) (*dto.CourseResponse, error) {
	course, err := svc.sqlSvc.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	response := svc.mapCourseToResponse(course, true)
	return &response, nil
}

// GetCourseLessons returns the flattened curriculum in order. The progress
// backfill path uses this to know which lessons need a row.
func (svc *CatalogService) GetCourseLessons(courseID string) ([]dto.LessonResponse, error) {
	lessons, err := svc.sqlSvc.GetLessonsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LessonResponse, len(lessons))
	for i, lesson := range lessons {
		responses[i] = svc.mapLessonToResponse(&lesson)
	}

	return responses, nil
}

func (svc *CatalogService) mapCourseToResponse(course *model.Course, withTree bool) dto.CourseResponse {
	response := dto.CourseResponse{
		ID:          course.ID,
		MentorID:    course.MentorID,
		Title:       course.Title,
		Description: course.Description,
		Category:    course.Category,
		PriceCents:  course.PriceCents,
		IsPublished: course.IsPublished,
	}

	count, err := svc.sqlSvc.CountLessonsByCourse(course.ID)
	if err != nil {
		log.Printf("Failed to count lessons for course %s: %v", course.ID, err)
	} else {
		response.LessonCount = int(count)
	}

	rating, reviews, err := svc.sqlSvc.GetCourseRating(course.ID)
	if err != nil {
		log.Printf("Failed to get rating for course %s: %v", course.ID, err)
	} else {
		response.Rating = rating
		response.ReviewCount = int(reviews)
	}

	if withTree {
		sections := make([]dto.SectionResponse, len(course.Sections))
		for i, section := range course.Sections {
			lessons := make([]dto.LessonResponse, len(section.Lessons))
			for j, lesson := range section.Lessons {
				lessons[j] = svc.mapLessonToResponse(&lesson)
			}
			sections[i] = dto.SectionResponse{
				ID:          section.ID,
				CourseID:    section.CourseID,
				Title:       section.Title,
				Description: section.Description,
				Position:    section.Position,
				Lessons:     lessons,
			}
		}
		response.Sections = sections
	}

	return response
}

func (svc *CatalogService) mapLessonToResponse(lesson *model.Lesson) dto.LessonResponse {
	return dto.LessonResponse{
		ID:              lesson.ID,
		SectionID:       lesson.SectionID,
		Title:           lesson.Title,
		ContentType:     lesson.ContentType,
		ContentURL:      lesson.ContentURL,
		ContentText:     lesson.ContentText,
		DurationSeconds: lesson.DurationSeconds,
		Position:        lesson.Position,
	}
}

// ==================== AUTHORING METHODS ====================

func (svc *CatalogService) CreateCourse(mentorID string, req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course, err := svc.sqlSvc.CreateCourse(&model.Course{
		MentorID:    mentorID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		return nil, err
	}

	response := svc.mapCourseToResponse(course, false)
	return &response, nil
}

func (svc *CatalogService) CreateSection(userID, role, courseID string, req dto.CreateSectionRequest) (*dto.SectionResponse, error) {
	course, err := svc.sqlSvc.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	if err := svc.requireCourseOwner(course, userID, role); err != nil {
		return nil, err
	}

	section, err := svc.sqlSvc.CreateSection(&model.Section{
		CourseID:    course.ID,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		return nil, err
	}

	return &dto.SectionResponse{
		ID:          section.ID,
		CourseID:    section.CourseID,
		Title:       section.Title,
		Description: section.Description,
		Position:    section.Position,
		Lessons:     []dto.LessonResponse{},
	}, nil
}

func (svc *CatalogService) CreateLesson(userID, role, sectionID string, req dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	section, err := svc.sqlSvc.GetSection(sectionID)
	if err != nil {
		return nil, err
	}

	course, err := svc.sqlSvc.GetCourse(section.CourseID)
	if err != nil {
		return nil, err
	}

	if err := svc.requireCourseOwner(course, userID, role); err != nil {
		return nil, err
	}

	if err := validateLessonContent(req); err != nil {
		return nil, err
	}

	lesson, err := svc.sqlSvc.CreateLesson(&model.Lesson{
		SectionID:       section.ID,
		Title:           req.Title,
		ContentType:     req.ContentType,
		ContentURL:      req.ContentURL,
		ContentText:     req.ContentText,
		DurationSeconds: req.DurationSeconds,
		Position:        req.Position,
	})
	if err != nil {
		return nil, err
	}

	response := svc.mapLessonToResponse(lesson)
	return &response, nil
}

func (svc *CatalogService) PublishCourse(userID, role, courseID string, published bool) (*dto.CourseResponse, error) {
	course, err := svc.sqlSvc.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	if err := svc.requireCourseOwner(course, userID, role); err != nil {
		return nil, err
	}

	course.IsPublished = published
	if err := svc.sqlSvc.UpdateCourse(course); err != nil {
		return nil, err
	}

	response := svc.mapCourseToResponse(course, false)
	return &response, nil
}

func (svc *CatalogService) requireCourseOwner(course *model.Course, userID, role string) error {
	if role == shared.RoleAdmin || course.MentorID == userID {
		return nil
	}
	return shared.NewForbiddenError(errors.New("not course owner"), "Only the course mentor may modify it")
}

// validateLessonContent checks that the content fields match the declared
// content type: videos need a URL and a duration, documents a URL, readings
// inline text.
func validateLessonContent(req dto.CreateLessonRequest) error {
	switch req.ContentType {
	case shared.ContentTypeVideo:
		if req.ContentURL == "" {
			return shared.NewBadRequestError(nil, "Video lessons require a content URL")
		}
		if req.DurationSeconds <= 0 {
			return shared.NewBadRequestError(nil, "Video lessons require a positive duration")
		}
	case shared.ContentTypeDocument:
		if req.ContentURL == "" {
			return shared.NewBadRequestError(nil, "Document lessons require a content URL")
		}
	case shared.ContentTypeReading:
		if req.ContentText == "" {
			return shared.NewBadRequestError(nil, "Reading lessons require content text")
		}
	default:
		return shared.NewBadRequestError(nil, "Unknown content type")
	}
	return nil
}
