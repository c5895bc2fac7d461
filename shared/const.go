package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleAdmin   = "admin"
	RoleMentor  = "mentor"
	RoleLearner = "learner"

	EnrollmentSaved     = "saved"
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"

	ContentTypeVideo    = "video"
	ContentTypeDocument = "document"
	ContentTypeReading  = "reading"
)
