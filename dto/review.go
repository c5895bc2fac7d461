package dto

import "time"

// Review DTOs
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (r CreateReviewRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	LearnerID string    `json:"learner_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewCollectionResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	Total         int              `json:"total"`
	AverageRating float64          `json:"average_rating"`
}
