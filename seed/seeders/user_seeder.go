package seeders

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edube-platform/edube_api/model"
)

// UserSeeder creates the demo accounts: one admin, two mentors, three
// learners. Passwords are for local development only.
type UserSeeder struct {
	db *gorm.DB
}

func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{db: db}
}

func (s *UserSeeder) SeedUsers() error {
	users := []struct {
		Email    string
		Username string
		Password string
		Role     string
	}{
		{"admin@edube.io", "admin", "admin123", model.RoleAdmin},
		{"linh.mentor@edube.io", "linh_teaches", "mentor123", model.RoleMentor},
		{"marco.mentor@edube.io", "marco_codes", "mentor123", model.RoleMentor},
		{"ana@example.com", "ana_learns", "learner123", model.RoleLearner},
		{"tom@example.com", "tom_learns", "learner123", model.RoleLearner},
		{"sam@example.com", "sam_learns", "learner123", model.RoleLearner},
	}

	for _, u := range users {
		var existing model.User
		err := s.db.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			log.Printf("User %s already exists, skipping", u.Email)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		id, _ := uuid.NewV7()
		user := model.User{
			ID:       id.String(),
			Email:    u.Email,
			Username: u.Username,
			Password: string(hashed),
			Role:     u.Role,
			IsActive: true,
		}

		if err := s.db.Create(&user).Error; err != nil {
			log.Printf("Error creating user %s: %v", u.Email, err)
			return err
		}
		log.Printf("Created user: %s (%s)", u.Email, u.Role)
	}

	log.Println("User seeding completed successfully")
	return nil
}

func (s *UserSeeder) MentorID(username string) (string, error) {
	var mentor model.User
	if err := s.db.Where("username = ? AND role = ?", username, model.RoleMentor).First(&mentor).Error; err != nil {
		return "", err
	}
	return mentor.ID, nil
}
