package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder orchestrates the individual seeders in dependency order.
type MainSeeder struct {
	userSeeder   *UserSeeder
	courseSeeder *CourseSeeder
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{
		userSeeder:   NewUserSeeder(db),
		courseSeeder: NewCourseSeeder(db),
	}
}

func (s *MainSeeder) SeedAll() error {
	log.Println("Starting complete database seeding...")

	// Courses reference mentors, so users go first
	if err := s.userSeeder.SeedUsers(); err != nil {
		return err
	}

	if err := s.courseSeeder.SeedCourses(); err != nil {
		return err
	}

	log.Println("Complete database seeding finished")
	return nil
}

func (s *MainSeeder) SeedUsersOnly() error {
	return s.userSeeder.SeedUsers()
}

func (s *MainSeeder) SeedCoursesOnly() error {
	return s.courseSeeder.SeedCourses()
}
