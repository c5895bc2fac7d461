// model/course.go
package model

import "time"

// Course is the top of the curriculum tree: ordered sections, each with
// ordered lessons. The tree is read-only from the progress layer's viewpoint.
type Course struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	MentorID    string    `json:"mentor_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category"`
	PriceCents  int64     `json:"price_cents" gorm:"default:0"`
	IsPublished bool      `json:"is_published" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Sections []Section `json:"sections" gorm:"foreignKey:CourseID"`
}

type Section struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	CourseID    string    `json:"course_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Position    int       `json:"position" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Lessons []Lesson `json:"lessons" gorm:"foreignKey:SectionID"`
}

// Lesson content is one of: a video (URL + duration), a document (URL), or an
// inline reading (text).
type Lesson struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	SectionID       string    `json:"section_id" gorm:"not null;index"`
	Title           string    `json:"title" gorm:"not null"`
	ContentType     string    `json:"content_type" gorm:"not null"` // video, document, reading
	ContentURL      string    `json:"content_url"`
	ContentText     string    `json:"content_text" gorm:"type:text"`
	DurationSeconds int       `json:"duration_seconds" gorm:"default:0"`
	Position        int       `json:"position" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MediaAsset tracks files a mentor uploaded for a lesson (videos, documents).
type MediaAsset struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	LessonID    string    `json:"lesson_id" gorm:"not null;index"`
	FileType    string    `json:"file_type"` // video, document
	ObjectName  string    `json:"object_name" gorm:"not null"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
