package auth

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"virtualab_backend/internals/constants"
	courseModel "virtualab_backend/internals/features/lms/courses/model"
	userModel "virtualab_backend/internals/features/users/user/model"
)

// HasPermission reports whether the user's role holds an exact
// (resource, action) grant. No wildcard matching; DB faults propagate.
func HasPermission(db *gorm.DB, userID uuid.UUID, resource, action string) (bool, error) {
	var count int64
	err := db.Model(&userModel.RolePermissionModel{}).
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ? AND role_permissions.resource = ? AND role_permissions.action = ?",
			userID, resource, action).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CanAccessCourse resolves course access for the given level
// (read | write | admin). Cheap escalation checks run first:
//
//  1. admin-tier role -> true for every level
//  2. assigned instructor -> true for every level
//  3. read only: active/completed enrollment, or a verified parent of an
//     enrolled student -> true
//
// Everything else is false.
func CanAccessCourse(db *gorm.DB, userID, courseID uuid.UUID, level string) (bool, error) {
	var user userModel.UserModel
	if err := db.Preload("Role").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if user.Role.AdminTier {
		return true, nil
	}

	var course courseModel.CourseModel
	if err := db.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if course.CourseInstructorID == userID {
		return true, nil
	}

	if level != constants.AccessRead {
		return false, nil
	}

	// enrolled (or completed) student
	var enrolled int64
	err := db.Model(&courseModel.EnrollmentModel{}).
		Where("enrollment_course_id = ? AND enrollment_student_id = ? AND enrollment_status IN ?",
			courseID, userID, []string{courseModel.EnrollmentActive, courseModel.EnrollmentCompleted}).
		Count(&enrolled).Error
	if err != nil {
		return false, err
	}
	if enrolled > 0 {
		return true, nil
	}

	// verified parent of an enrolled student
	var parentHit int64
	err = db.Model(&userModel.ParentLinkModel{}).
		Joins("JOIN course_enrollments ON course_enrollments.enrollment_student_id = parent_links.student_id").
		Where("parent_links.parent_id = ? AND parent_links.verified = ? AND course_enrollments.enrollment_course_id = ? AND course_enrollments.enrollment_status IN ?",
			userID, true, courseID, []string{courseModel.EnrollmentActive, courseModel.EnrollmentCompleted}).
		Count(&parentHit).Error
	if err != nil {
		return false, err
	}
	return parentHit > 0, nil
}

// IsVerifiedParent reports whether parentID holds a verified link to
// studentID.
func IsVerifiedParent(db *gorm.DB, parentID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&userModel.ParentLinkModel{}).
		Where("parent_id = ? AND student_id = ? AND verified = ?", parentID, studentID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
