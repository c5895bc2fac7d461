package dto

import "time"

// Lesson progress DTOs. The create body references its parents the way the
// web client always has: nested `{"enrollment":{"id":...},"lesson":{"id":...}}`.
type EntityRef struct {
	ID string `json:"id" validate:"required"`
}

type CreateLessonProgressRequest struct {
	Enrollment           EntityRef `json:"enrollment"`
	Lesson               EntityRef `json:"lesson"`
	IsCompleted          bool      `json:"is_completed"`
	CompletionPercentage float64   `json:"completion_percentage" validate:"gte=0,lte=100"`
	TimeSpentMinutes     int       `json:"time_spent_minutes" validate:"gte=0"`
}

func (r CreateLessonProgressRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UpdateLessonProgressRequest struct {
	IsCompleted          *bool    `json:"is_completed,omitempty"`
	CompletionPercentage *float64 `json:"completion_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	TimeSpentMinutes     *int     `json:"time_spent_minutes,omitempty" validate:"omitempty,gte=0"`
}

func (r UpdateLessonProgressRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LessonProgressResponse struct {
	ID                   string    `json:"id"`
	EnrollmentID         string    `json:"enrollment_id"`
	LessonID             string    `json:"lesson_id"`
	IsCompleted          bool      `json:"is_completed"`
	CompletionPercentage float64   `json:"completion_percentage"`
	TimeSpentMinutes     int       `json:"time_spent_minutes"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type LessonProgressCollectionResponse struct {
	Records []LessonProgressResponse `json:"records"`
	Total   int                      `json:"total"`
}

// CourseProgressResponse is the authoritative aggregate for an enrollment.
// ProgressPercentage is the only value a client may write back onto the
// enrollment.
type CourseProgressResponse struct {
	EnrollmentID       string `json:"enrollment_id"`
	ProgressPercentage int    `json:"progress_percentage"`
	CompletedLessons   int    `json:"completed_lessons"`
	TotalLessons       int    `json:"total_lessons"`
}
