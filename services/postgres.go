package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edube-platform/edube_api/model"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "edube_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Error),
			TranslateError: true,
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	models := []interface{}{
		&model.User{},

		// Catalog models
		&model.Course{},
		&model.Section{},
		&model.Lesson{},
		&model.MediaAsset{},

		// Progress models
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.Review{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *PostgresService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// ==================== USER METHODS ====================

func (ds *PostgresService) CreateUser(user *model.User) (*model.User, error) {
	id, _ := uuid.NewV7()
	user.ID = id.String()
	if err := ds.db.Create(user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return user, nil
}

func (ds *PostgresService) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByEmailOrUsername(emailOrUsername string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ? OR username = ?", emailOrUsername, emailOrUsername).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *PostgresService) UpdateUser(user *model.User) error {
	if err := ds.db.Save(user).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== CATALOG METHODS ====================

func (ds *PostgresService) CreateCourse(course *model.Course) (*model.Course, error) {
	id, _ := uuid.NewV7()
	course.ID = id.String()
	if err := ds.db.Create(course).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return course, nil
}

// GetCourse loads the full section/lesson tree in curriculum order.
func (ds *PostgresService) GetCourse(id string) (*model.Course, error) {
	var course model.Course
	err := ds.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.position ASC")
		}).
		Preload("Sections.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position ASC")
		}).
		Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &course, nil
}

func (ds *PostgresService) ListCourses(publishedOnly bool) ([]model.Course, error) {
	var courses []model.Course
	q := ds.db.Order("created_at DESC")
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}
	if err := q.Find(&courses).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return courses, nil
}

func (ds *PostgresService) UpdateCourse(course *model.Course) error {
	if err := ds.db.Save(course).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) CreateSection(section *model.Section) (*model.Section, error) {
	id, _ := uuid.NewV7()
	section.ID = id.String()
	if err := ds.db.Create(section).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return section, nil
}

func (ds *PostgresService) GetSection(id string) (*model.Section, error) {
	var section model.Section
	if err := ds.db.Where("id = ?", id).First(&section).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &section, nil
}

func (ds *PostgresService) CreateLesson(lesson *model.Lesson) (*model.Lesson, error) {
	id, _ := uuid.NewV7()
	lesson.ID = id.String()
	if err := ds.db.Create(lesson).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return lesson, nil
}

func (ds *PostgresService) GetLesson(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := ds.db.Where("id = ?", id).First(&lesson).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &lesson, nil
}

func (ds *PostgresService) UpdateLesson(lesson *model.Lesson) error {
	if err := ds.db.Save(lesson).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// GetLessonsByCourse returns the flattened curriculum, ordered by section
// position then lesson position.
func (ds *PostgresService) GetLessonsByCourse(courseID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := ds.db.
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ?", courseID).
		Order("sections.position ASC, lessons.position ASC").
		Find(&lessons).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return lessons, nil
}

func (ds *PostgresService) CountLessonsByCourse(courseID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ?", courseID).
		Count(&count).Error
	if err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

// ==================== ENROLLMENT METHODS ====================

func (ds *PostgresService) CreateEnrollment(enrollment *model.Enrollment) (*model.Enrollment, error) {
	id, _ := uuid.NewV7()
	enrollment.ID = id.String()
	if err := ds.db.Create(enrollment).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return enrollment, nil
}

func (ds *PostgresService) GetEnrollment(id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := ds.db.Where("id = ?", id).First(&enrollment).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &enrollment, nil
}

func (ds *PostgresService) GetEnrollmentByLearnerAndCourse(learnerID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := ds.db.Where("learner_id = ? AND course_id = ?", learnerID, courseID).First(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (ds *PostgresService) ListEnrollmentsByLearner(learnerID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := ds.db.Where("learner_id = ?", learnerID).Order("created_at DESC").Find(&enrollments).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return enrollments, nil
}

func (ds *PostgresService) UpdateEnrollment(enrollment *model.Enrollment) error {
	if err := ds.db.Save(enrollment).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== LESSON PROGRESS METHODS ====================

func (ds *PostgresService) ListLessonProgressByEnrollment(enrollmentID string) ([]model.LessonProgress, error) {
	var records []model.LessonProgress
	if err := ds.db.Where("enrollment_id = ?", enrollmentID).Find(&records).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return records, nil
}

func (ds *PostgresService) GetLessonProgress(id string) (*model.LessonProgress, error) {
	var record model.LessonProgress
	if err := ds.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &record, nil
}

func (ds *PostgresService) GetLessonProgressByEnrollmentAndLesson(enrollmentID, lessonID string) (*model.LessonProgress, error) {
	var record model.LessonProgress
	if err := ds.db.Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// UpsertLessonProgress inserts a row, or returns the existing one when the
// (enrollment, lesson) unique index fires. The database is the final arbiter
// of two clients racing a create-if-absent.
func (ds *PostgresService) UpsertLessonProgress(record *model.LessonProgress) (*model.LessonProgress, error) {
	id, _ := uuid.NewV7()
	record.ID = id.String()

	res := ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "enrollment_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(record)
	if res.Error != nil {
		return nil, ds.HandleError(res.Error)
	}

	if res.RowsAffected == 0 {
		existing, err := ds.GetLessonProgressByEnrollmentAndLesson(record.EnrollmentID, record.LessonID)
		if err != nil {
			return nil, ds.HandleError(err)
		}
		return existing, nil
	}
	return record, nil
}

func (ds *PostgresService) UpdateLessonProgress(record *model.LessonProgress) error {
	if err := ds.db.Save(record).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) CountCompletedLessons(enrollmentID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.LessonProgress{}).
		Where("enrollment_id = ? AND is_completed = ?", enrollmentID, true).
		Count(&count).Error
	if err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

// ==================== REVIEW METHODS ====================

func (ds *PostgresService) CreateReview(review *model.Review) (*model.Review, error) {
	id, _ := uuid.NewV7()
	review.ID = id.String()
	if err := ds.db.Create(review).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return review, nil
}

func (ds *PostgresService) ListReviewsByCourse(courseID string) ([]model.Review, error) {
	var reviews []model.Review
	if err := ds.db.Where("course_id = ?", courseID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return reviews, nil
}

func (ds *PostgresService) GetReviewByCourseAndLearner(courseID, learnerID string) (*model.Review, error) {
	var review model.Review
	if err := ds.db.Where("course_id = ? AND learner_id = ?", courseID, learnerID).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (ds *PostgresService) GetCourseRating(courseID string) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := ds.db.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("course_id = ?", courseID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, ds.HandleError(err)
	}
	return result.Avg, result.Count, nil
}

// ==================== MEDIA METHODS ====================

func (ds *PostgresService) CreateMediaAsset(asset *model.MediaAsset) error {
	id, _ := uuid.NewV7()
	asset.ID = id.String()
	if err := ds.db.Create(asset).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) GetMediaAsset(id string) (*model.MediaAsset, error) {
	var asset model.MediaAsset
	if err := ds.db.Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &asset, nil
}

func (ds *PostgresService) GetMediaAssetsByLesson(lessonID string) ([]model.MediaAsset, error) {
	var assets []model.MediaAsset
	if err := ds.db.Where("lesson_id = ?", lessonID).Order("created_at DESC").Find(&assets).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return assets, nil
}

func (ds *PostgresService) DeleteMediaAsset(id string) error {
	if err := ds.db.Where("id = ?", id).Delete(&model.MediaAsset{}).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}
