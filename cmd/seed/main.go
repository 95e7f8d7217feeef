package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"broadcast-eval-be/internal/config"
	"broadcast-eval-be/internal/model"
	"broadcast-eval-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds the users table with the configured test accounts and instructor
// addresses, and optionally prints a bcrypt hash for the role gates.
func main() {
	hashPassword := flag.String("hash", "", "print the bcrypt hash of the given gate password and exit")
	flag.Parse()

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	if *hashPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*hashPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Error: failed to hash password: %v", err)
		}
		green.Printf("Gate hash: %s\n", string(hash))
		return
	}

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: failed to connect to database: %v", err)
	}

	now := time.Now()

	for _, employeeID := range cfg.Auth.TestAccounts {
		user := model.User{
			Id:         uuid.New(),
			EmployeeID: employeeID,
			Email:      employeeID + "@test.local",
			FullName:   "Test " + employeeID,
			Role:       "candidate",
			IsTestUser: true,
			CreatedAt:  now,
		}
		if err := upsertUser(db, &user); err != nil {
			log.Fatalf("Error: failed to seed test account %s: %v", employeeID, err)
		}
		green.Printf("Seeded test account %s\n", employeeID)
	}

	for _, email := range cfg.Auth.InstructorEmails {
		employeeID := strings.SplitN(email, "@", 2)[0]
		user := model.User{
			Id:         uuid.New(),
			EmployeeID: employeeID,
			Email:      email,
			FullName:   employeeID,
			Role:       "instructor",
			CreatedAt:  now,
		}
		if err := upsertUser(db, &user); err != nil {
			log.Fatalf("Error: failed to seed instructor %s: %v", email, err)
		}
		green.Printf("Seeded instructor %s\n", email)
	}

	if len(cfg.Auth.TestAccounts) == 0 && len(cfg.Auth.InstructorEmails) == 0 {
		yellow.Println("Nothing to seed: TEST_ACCOUNT_IDS and INSTRUCTOR_EMAILS are empty")
		return
	}

	green.Println("Seeding complete")
}

func upsertUser(db *gorm.DB, user *model.User) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "role", "is_test_user"}),
	}).Create(user).Error
}
