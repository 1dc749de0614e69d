package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"virtualab_backend/internals/constants"
	courseModel "virtualab_backend/internals/features/lms/courses/model"
	userModel "virtualab_backend/internals/features/users/user/model"
)

func openAccessDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&userModel.RoleModel{},
		&userModel.UserModel{},
		&userModel.RolePermissionModel{},
		&userModel.ParentLinkModel{},
		&courseModel.EnrollmentModel{},
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

func mkUser(t *testing.T, db *gorm.DB, roleName string, adminTier bool) userModel.UserModel {
	t.Helper()
	role := userModel.RoleModel{RoleName: roleName + "-" + uuid.NewString()[:8], AdminTier: adminTier}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("create role: %v", err)
	}
	user := userModel.UserModel{
		UserName:     roleName,
		Email:        uuid.NewString() + "@test.local",
		PasswordHash: "x",
		RoleID:       role.ID,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mkCourse(t *testing.T, db *gorm.DB, instructorID uuid.UUID) courseModel.CourseModel {
	t.Helper()
	course := courseModel.CourseModel{
		CourseTitle:        "Optics",
		CourseCode:         "PHY-" + uuid.NewString()[:8],
		CourseInstructorID: instructorID,
		CourseIsPublished:  true,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func TestAdminTierPassesEveryLevel(t *testing.T) {
	db := openAccessDB(t)
	admin := mkUser(t, db, "admin", true)
	course := mkCourse(t, db, uuid.New())

	// admin is neither the instructor nor enrolled
	for _, level := range []string{constants.AccessRead, constants.AccessWrite, constants.AccessAdmin} {
		ok, err := CanAccessCourse(db, admin.ID, course.CourseID, level)
		if err != nil {
			t.Fatalf("level %s: %v", level, err)
		}
		if !ok {
			t.Errorf("admin denied %s access", level)
		}
	}
}

func TestInstructorPassesEveryLevel(t *testing.T) {
	db := openAccessDB(t)
	instructor := mkUser(t, db, "instructor", false)
	course := mkCourse(t, db, instructor.ID)

	for _, level := range []string{constants.AccessRead, constants.AccessWrite, constants.AccessAdmin} {
		ok, err := CanAccessCourse(db, instructor.ID, course.CourseID, level)
		if err != nil {
			t.Fatalf("level %s: %v", level, err)
		}
		if !ok {
			t.Errorf("instructor denied %s access to own course", level)
		}
	}
}

func TestEnrolledStudentReadOnlyWriteDenied(t *testing.T) {
	db := openAccessDB(t)
	student := mkUser(t, db, "student", false)
	course := mkCourse(t, db, uuid.New())

	if err := db.Create(&courseModel.EnrollmentModel{
		EnrollmentCourseID:  course.CourseID,
		EnrollmentStudentID: student.ID,
		EnrollmentStatus:    courseModel.EnrollmentActive,
	}).Error; err != nil {
		t.Fatalf("enroll: %v", err)
	}

	ok, err := CanAccessCourse(db, student.ID, course.CourseID, constants.AccessRead)
	if err != nil || !ok {
		t.Errorf("enrolled student read = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = CanAccessCourse(db, student.ID, course.CourseID, constants.AccessWrite)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("plain enrolled student must not get write access")
	}
}

func TestCompletedEnrollmentStillReads(t *testing.T) {
	db := openAccessDB(t)
	student := mkUser(t, db, "student", false)
	course := mkCourse(t, db, uuid.New())

	if err := db.Create(&courseModel.EnrollmentModel{
		EnrollmentCourseID:  course.CourseID,
		EnrollmentStudentID: student.ID,
		EnrollmentStatus:    courseModel.EnrollmentCompleted,
	}).Error; err != nil {
		t.Fatalf("enroll: %v", err)
	}

	ok, err := CanAccessCourse(db, student.ID, course.CourseID, constants.AccessRead)
	if err != nil || !ok {
		t.Errorf("completed enrollment read = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestDroppedEnrollmentDenied(t *testing.T) {
	db := openAccessDB(t)
	student := mkUser(t, db, "student", false)
	course := mkCourse(t, db, uuid.New())

	if err := db.Create(&courseModel.EnrollmentModel{
		EnrollmentCourseID:  course.CourseID,
		EnrollmentStudentID: student.ID,
		EnrollmentStatus:    courseModel.EnrollmentDropped,
	}).Error; err != nil {
		t.Fatalf("enroll: %v", err)
	}

	ok, err := CanAccessCourse(db, student.ID, course.CourseID, constants.AccessRead)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("dropped enrollment must not grant read")
	}
}

func TestVerifiedParentReadsUnverifiedDoesNot(t *testing.T) {
	db := openAccessDB(t)
	student := mkUser(t, db, "student", false)
	parent := mkUser(t, db, "parent", false)
	stranger := mkUser(t, db, "parent", false)
	course := mkCourse(t, db, uuid.New())

	if err := db.Create(&courseModel.EnrollmentModel{
		EnrollmentCourseID:  course.CourseID,
		EnrollmentStudentID: student.ID,
		EnrollmentStatus:    courseModel.EnrollmentActive,
	}).Error; err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := db.Create(&userModel.ParentLinkModel{
		ParentID: parent.ID, StudentID: student.ID, Verified: true,
	}).Error; err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := db.Create(&userModel.ParentLinkModel{
		ParentID: stranger.ID, StudentID: student.ID, Verified: false,
	}).Error; err != nil {
		t.Fatalf("link: %v", err)
	}

	ok, err := CanAccessCourse(db, parent.ID, course.CourseID, constants.AccessRead)
	if err != nil || !ok {
		t.Errorf("verified parent read = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = CanAccessCourse(db, parent.ID, course.CourseID, constants.AccessWrite)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("parent must never get write access")
	}

	ok, err = CanAccessCourse(db, stranger.ID, course.CourseID, constants.AccessRead)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unverified link must not grant read")
	}
}

func TestUnknownUserAndCourseAreDeniedNotErrors(t *testing.T) {
	db := openAccessDB(t)
	user := mkUser(t, db, "student", false)

	ok, err := CanAccessCourse(db, uuid.New(), uuid.New(), constants.AccessRead)
	if err != nil || ok {
		t.Errorf("unknown user = (%v, %v), want (false, nil)", ok, err)
	}

	ok, err = CanAccessCourse(db, user.ID, uuid.New(), constants.AccessRead)
	if err != nil || ok {
		t.Errorf("unknown course = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestHasPermissionExactMatch(t *testing.T) {
	db := openAccessDB(t)
	user := mkUser(t, db, "instructor", false)

	if err := db.Create(&userModel.RolePermissionModel{
		RoleID: user.RoleID, Resource: constants.ResCourse, Action: constants.ActCreate,
	}).Error; err != nil {
		t.Fatalf("grant: %v", err)
	}

	ok, err := HasPermission(db, user.ID, constants.ResCourse, constants.ActCreate)
	if err != nil || !ok {
		t.Errorf("granted pair = (%v, %v), want (true, nil)", ok, err)
	}

	// no wildcard: a different action on the same resource is denied
	ok, err = HasPermission(db, user.ID, constants.ResCourse, constants.ActDelete)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("ungranted action must be denied")
	}

	ok, err = HasPermission(db, uuid.New(), constants.ResCourse, constants.ActCreate)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unknown user must be denied")
	}
}

func TestIsVerifiedParent(t *testing.T) {
	db := openAccessDB(t)
	parent := mkUser(t, db, "parent", false)
	student := mkUser(t, db, "student", false)

	if err := db.Create(&userModel.ParentLinkModel{
		ParentID: parent.ID, StudentID: student.ID, Verified: true,
	}).Error; err != nil {
		t.Fatalf("link: %v", err)
	}

	ok, err := IsVerifiedParent(db, parent.ID, student.ID)
	if err != nil || !ok {
		t.Errorf("verified link = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = IsVerifiedParent(db, student.ID, parent.ID)
	if err != nil || ok {
		t.Errorf("reversed link = (%v, %v), want (false, nil)", ok, err)
	}
}
