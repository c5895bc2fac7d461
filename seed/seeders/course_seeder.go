// seeders/course_seeder.go
package seeders

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edube-platform/edube_api/model"
	"github.com/edube-platform/edube_api/shared"
)

// CourseSeeder creates a small published catalog so the API is usable
// straight after seeding.
type CourseSeeder struct {
	db *gorm.DB
}

func NewCourseSeeder(db *gorm.DB) *CourseSeeder {
	return &CourseSeeder{db: db}
}

type seedLesson struct {
	Title           string
	ContentType     string
	ContentURL      string
	ContentText     string
	DurationSeconds int
}

type seedSection struct {
	Title       string
	Description string
	Lessons     []seedLesson
}

type seedCourse struct {
	MentorUsername string
	Title          string
	Description    string
	Category       string
	PriceCents     int64
	Sections       []seedSection
}

func (s *CourseSeeder) SeedCourses() error {
	for _, sc := range s.catalog() {
		var existing model.Course
		err := s.db.Where("title = ?", sc.Title).First(&existing).Error
		if err == nil {
			log.Printf("Course %q already exists, skipping", sc.Title)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		var mentor model.User
		if err := s.db.Where("username = ?", sc.MentorUsername).First(&mentor).Error; err != nil {
			log.Printf("Mentor %s not found, seed users first: %v", sc.MentorUsername, err)
			return err
		}

		courseID, _ := uuid.NewV7()
		course := model.Course{
			ID:          courseID.String(),
			MentorID:    mentor.ID,
			Title:       sc.Title,
			Description: sc.Description,
			Category:    sc.Category,
			PriceCents:  sc.PriceCents,
			IsPublished: true,
		}
		if err := s.db.Create(&course).Error; err != nil {
			return err
		}

		for i, ss := range sc.Sections {
			sectionID, _ := uuid.NewV7()
			section := model.Section{
				ID:          sectionID.String(),
				CourseID:    course.ID,
				Title:       ss.Title,
				Description: ss.Description,
				Position:    i + 1,
			}
			if err := s.db.Create(&section).Error; err != nil {
				return err
			}

			for j, sl := range ss.Lessons {
				lessonID, _ := uuid.NewV7()
				lesson := model.Lesson{
					ID:              lessonID.String(),
					SectionID:       section.ID,
					Title:           sl.Title,
					ContentType:     sl.ContentType,
					ContentURL:      sl.ContentURL,
					ContentText:     sl.ContentText,
					DurationSeconds: sl.DurationSeconds,
					Position:        j + 1,
				}
				if err := s.db.Create(&lesson).Error; err != nil {
					return err
				}
			}
		}

		log.Printf("Created course: %s", course.Title)
	}

	log.Println("Course seeding completed successfully")
	return nil
}

func (s *CourseSeeder) catalog() []seedCourse {
	return []seedCourse{
		{
			MentorUsername: "linh_teaches",
			Title:          "Go for Backend Developers",
			Description:    "Build production HTTP services in Go, from routing to deployment.",
			Category:       "programming",
			PriceCents:     4900,
			Sections: []seedSection{
				{
					Title:       "Getting Started",
					Description: "Tooling and language basics",
					Lessons: []seedLesson{
						{Title: "Course Introduction", ContentType: shared.ContentTypeVideo, ContentURL: "videos/go-intro.mp4", DurationSeconds: 420},
						{Title: "Installing the Toolchain", ContentType: shared.ContentTypeReading, ContentText: "Download Go from go.dev and verify with `go version`."},
						{Title: "Your First Service", ContentType: shared.ContentTypeVideo, ContentURL: "videos/go-first-service.mp4", DurationSeconds: 900},
					},
				},
				{
					Title:       "HTTP in Depth",
					Description: "Routing, middleware, and error handling",
					Lessons: []seedLesson{
						{Title: "Routing Patterns", ContentType: shared.ContentTypeVideo, ContentURL: "videos/go-routing.mp4", DurationSeconds: 780},
						{Title: "Reference: net/http Cheatsheet", ContentType: shared.ContentTypeDocument, ContentURL: "documents/nethttp-cheatsheet.pdf"},
					},
				},
			},
		},
		{
			MentorUsername: "marco_codes",
			Title:          "Practical SQL",
			Description:    "Queries, indexes, and schema design with PostgreSQL.",
			Category:       "databases",
			PriceCents:     0,
			Sections: []seedSection{
				{
					Title:       "Foundations",
					Description: "Tables, rows, and the relational model",
					Lessons: []seedLesson{
						{Title: "Why SQL Still Wins", ContentType: shared.ContentTypeReading, ContentText: "Relational databases remain the default for transactional workloads."},
						{Title: "SELECT Basics", ContentType: shared.ContentTypeVideo, ContentURL: "videos/sql-select.mp4", DurationSeconds: 660},
						{Title: "Joins Explained", ContentType: shared.ContentTypeVideo, ContentURL: "videos/sql-joins.mp4", DurationSeconds: 840},
					},
				},
			},
		},
	}
}
