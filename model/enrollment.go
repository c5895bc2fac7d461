// model/enrollment.go
package model

import "time"

// Enrollment ties a learner to a course. ProgressPercentage is always the
// server-computed aggregate over the enrollment's LessonProgress rows; it is
// never derived client-side.
type Enrollment struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	LearnerID          string    `json:"learner_id" gorm:"not null;uniqueIndex:idx_learner_course"`
	CourseID           string    `json:"course_id" gorm:"not null;uniqueIndex:idx_learner_course"`
	Status             string    `json:"status" gorm:"default:saved"` // saved, active, completed
	ProgressPercentage int       `json:"progress_percentage" gorm:"default:0"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// LessonProgress is created lazily the first time a lesson is opened (or via
// backfill), updated in place, and never deleted. The unique index makes the
// store the final arbiter of concurrent create-if-absent attempts.
type LessonProgress struct {
	ID                   string    `json:"id" gorm:"primaryKey"`
	EnrollmentID         string    `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_enrollment_lesson"`
	LessonID             string    `json:"lesson_id" gorm:"not null;uniqueIndex:idx_enrollment_lesson"`
	IsCompleted          bool      `json:"is_completed" gorm:"default:false"`
	CompletionPercentage float64   `json:"completion_percentage" gorm:"default:0"`
	TimeSpentMinutes     int       `json:"time_spent_minutes" gorm:"default:0"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Review holds a learner's course rating, one per (course, learner).
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CourseID  string    `json:"course_id" gorm:"not null;uniqueIndex:idx_course_learner"`
	LearnerID string    `json:"learner_id" gorm:"not null;uniqueIndex:idx_course_learner"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
