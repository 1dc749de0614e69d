package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditModel "virtualab_backend/internals/features/audit/model"
	auditService "virtualab_backend/internals/features/audit/service"
	"virtualab_backend/internals/features/lms/courses/model"
	helperAuth "virtualab_backend/internals/helpers/auth"
)

func openEnrollmentDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.EnrollmentModel{},
		&auditModel.ActivityLogModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// sqlite has no text[], so the courses table is created by hand
	if err := db.Exec(`CREATE TABLE courses (
		course_id TEXT PRIMARY KEY,
		course_title TEXT,
		course_code TEXT,
		course_description TEXT,
		course_subject TEXT,
		course_grade_level TEXT,
		course_tags TEXT,
		course_instructor_id TEXT,
		course_is_published NUMERIC,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error; err != nil {
		t.Fatalf("create courses table: %v", err)
	}
	return db
}

func newEnrollmentApp(db *gorm.DB, userID uuid.UUID) *fiber.App {
	ctrl := NewCourseController(db, validator.New(), auditService.NewLogger(db))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocalUserID, userID.String())
		return c.Next()
	})
	app.Post("/courses/:id/enroll", ctrl.Enroll)
	app.Delete("/courses/:id/enroll", ctrl.Unenroll)
	return app
}

func seedCourse(t *testing.T, db *gorm.DB) model.CourseModel {
	t.Helper()
	course := model.CourseModel{
		CourseTitle:       "Optics",
		CourseCode:        "PHY-" + uuid.NewString()[:8],
		CourseIsPublished: true,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func doEnroll(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestEnrollCreatesActiveRow(t *testing.T) {
	db := openEnrollmentDB(t)
	course := seedCourse(t, db)
	studentID := uuid.New()
	app := newEnrollmentApp(db, studentID)

	resp := doEnroll(t, app, fiber.MethodPost, "/courses/"+course.CourseID.String()+"/enroll")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("enroll status = %d, want 201", resp.StatusCode)
	}

	var row model.EnrollmentModel
	if err := db.First(&row, "enrollment_student_id = ?", studentID).Error; err != nil {
		t.Fatalf("enrollment row missing: %v", err)
	}
	if row.EnrollmentStatus != model.EnrollmentActive {
		t.Errorf("status = %q, want active", row.EnrollmentStatus)
	}
}

func TestEnrollTwiceIsRejected(t *testing.T) {
	db := openEnrollmentDB(t)
	course := seedCourse(t, db)
	app := newEnrollmentApp(db, uuid.New())
	path := "/courses/" + course.CourseID.String() + "/enroll"

	doEnroll(t, app, fiber.MethodPost, path)
	resp := doEnroll(t, app, fiber.MethodPost, path)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("second enroll status = %d, want 400", resp.StatusCode)
	}
}

// A student who dropped must be able to enroll again: the dropped row is
// reactivated rather than colliding with the unique (course, student)
// index.
func TestReEnrollAfterDropReactivatesRow(t *testing.T) {
	db := openEnrollmentDB(t)
	course := seedCourse(t, db)
	studentID := uuid.New()
	app := newEnrollmentApp(db, studentID)
	path := "/courses/" + course.CourseID.String() + "/enroll"

	doEnroll(t, app, fiber.MethodPost, path)

	resp := doEnroll(t, app, fiber.MethodDelete, path)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unenroll status = %d, want 200", resp.StatusCode)
	}

	resp = doEnroll(t, app, fiber.MethodPost, path)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("re-enroll status = %d, want 200", resp.StatusCode)
	}

	var rows []model.EnrollmentModel
	if err := db.Find(&rows, "enrollment_student_id = ?", studentID).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want the one reactivated row", len(rows))
	}
	if rows[0].EnrollmentStatus != model.EnrollmentActive {
		t.Errorf("status = %q, want active", rows[0].EnrollmentStatus)
	}
}
