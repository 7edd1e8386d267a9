package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
	"github.com/trezcool/studentportal/storage/database"
)

// DefaultPassword is the password of students created by CreateStudent.
const DefaultPassword = "longenough1"

// PrepareDB opens a migrated in-memory sqlite database, closed at the end of the test.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(context.Background(), core.StorageConfig{Driver: core.DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(db, "up"); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

// NewStudent returns a valid registration for `email`.
func NewStudent(email string) student.NewStudent {
	return student.NewStudent{
		Name:            "Ada Lovelace",
		Email:           email,
		Password:        DefaultPassword,
		ConfirmPassword: DefaultPassword,
		Gender:          "Female",
		DateOfBirth:     "2000-01-01",
		Department:      "Computer Science",
		Course:          "Algorithms",
		Year:            "2",
		Contact:         "+243 999 1234",
		Address:         "12 Main Street",
	}
}

func CreateStudent(t *testing.T, svc *student.RegistrationService, email string) student.Record {
	t.Helper()
	rec, err := svc.Register(context.Background(), NewStudent(email))
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return rec
}
