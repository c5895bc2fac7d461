package dto

// Course DTOs
type CourseResponse struct {
	ID          string  `json:"id"`
	MentorID    string  `json:"mentor_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	PriceCents  int64   `json:"price_cents"`
	IsPublished bool    `json:"is_published"`
	LessonCount int     `json:"lesson_count"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`

	Sections []SectionResponse `json:"sections,omitempty"`
}

type CourseCollectionResponse struct {
	Courses []CourseResponse `json:"courses"`
	Total   int              `json:"total"`
}

type SectionResponse struct {
	ID          string           `json:"id"`
	CourseID    string           `json:"course_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Position    int              `json:"position"`
	Lessons     []LessonResponse `json:"lessons"`
}

type LessonResponse struct {
	ID              string `json:"id"`
	SectionID       string `json:"section_id"`
	Title           string `json:"title"`
	ContentType     string `json:"content_type"`
	ContentURL      string `json:"content_url,omitempty"`
	ContentText     string `json:"content_text,omitempty"`
	DurationSeconds int    `json:"duration_seconds"`
	Position        int    `json:"position"`
}

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
}

func (r CreateCourseRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CreateSectionRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	Position    int    `json:"position" validate:"gte=0"`
}

func (r CreateSectionRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CreateLessonRequest struct {
	Title           string `json:"title" validate:"required,min=1,max=200"`
	ContentType     string `json:"content_type" validate:"required,oneof=video document reading"`
	ContentURL      string `json:"content_url" validate:"omitempty,url"`
	ContentText     string `json:"content_text"`
	DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
	Position        int    `json:"position" validate:"gte=0"`
}

func (r CreateLessonRequest) Validate() error {
	return GetValidator().Struct(r)
}
