package handlers

import (
	"mime/multipart"

	"github.com/edube-platform/edube_api/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(userID string) (*dto.UserInfo, error)
}

type CatalogServiceInterface interface {
	ListCourses() (*dto.CourseCollectionResponse, error)
	GetCourseDetails(courseID string) (*dto.CourseResponse, error)
	GetCourseLessons(courseID string) ([]dto.LessonResponse, error)
	CreateCourse(mentorID string, req dto.CreateCourseRequest) (*dto.CourseResponse, error)
	CreateSection(userID, role, courseID string, req dto.CreateSectionRequest) (*dto.SectionResponse, error)
	CreateLesson(userID, role, sectionID string, req dto.CreateLessonRequest) (*dto.LessonResponse, error)
	PublishCourse(userID, role, courseID string, published bool) (*dto.CourseResponse, error)
}

type EnrollmentServiceInterface interface {
	Enroll(learnerID string, req dto.EnrollRequest) (*dto.EnrollResponse, error)
	ListByLearner(learnerID string) (*dto.EnrollmentCollectionResponse, error)
	GetEnrollment(enrollmentID string) (*dto.EnrollmentResponse, error)
	UpdateProgress(learnerID, enrollmentID string, req dto.UpdateEnrollmentProgressRequest) (*dto.EnrollmentResponse, error)
	UpdateStatus(learnerID, enrollmentID string, req dto.UpdateEnrollmentStatusRequest) (*dto.EnrollmentResponse, error)
}

type ProgressServiceInterface interface {
	ListForEnrollment(learnerID, enrollmentID string) (*dto.LessonProgressCollectionResponse, error)
	Create(learnerID string, req dto.CreateLessonProgressRequest) (*dto.LessonProgressResponse, error)
	Update(learnerID, progressID string, req dto.UpdateLessonProgressRequest) (*dto.LessonProgressResponse, error)
	CourseProgress(learnerID, enrollmentID string) (*dto.CourseProgressResponse, error)
}

type ReviewServiceInterface interface {
	Create(learnerID, courseID string, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListByCourse(courseID string) (*dto.ReviewCollectionResponse, error)
}

type MediaServiceInterface interface {
	UploadLessonVideo(userID, role, lessonID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	UploadLessonDocument(userID, role, lessonID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	GetLessonMedia(lessonID string) (*dto.LessonMediaResponse, error)
}
