package dto

import "time"

// Enrollment DTOs
type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

func (r EnrollRequest) Validate() error {
	return GetValidator().Struct(r)
}

type EnrollmentResponse struct {
	ID                 string    `json:"id"`
	LearnerID          string    `json:"learner_id"`
	CourseID           string    `json:"course_id"`
	Status             string    `json:"status"`
	ProgressPercentage int       `json:"progress_percentage"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// EnrollResponse carries the payment link for priced courses; the payment
// flow itself lives outside this service, we only hand out the redirect URL.
type EnrollResponse struct {
	Enrollment EnrollmentResponse `json:"enrollment"`
	PaymentURL string             `json:"payment_url,omitempty"`
}

type EnrollmentCollectionResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	Total       int                  `json:"total"`
}

type UpdateEnrollmentProgressRequest struct {
	ProgressPercentage *int `json:"progress_percentage" validate:"required,gte=0,lte=100"`
}

func (r UpdateEnrollmentProgressRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UpdateEnrollmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=saved active completed"`
}

func (r UpdateEnrollmentStatusRequest) Validate() error {
	return GetValidator().Struct(r)
}
