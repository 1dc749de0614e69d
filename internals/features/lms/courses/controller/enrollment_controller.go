package controller

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"virtualab_backend/internals/constants"
	auditDTO "virtualab_backend/internals/features/audit/dto"
	courseDTO "virtualab_backend/internals/features/lms/courses/dto"
	"virtualab_backend/internals/features/lms/courses/model"
	helper "virtualab_backend/internals/helpers"
	helperAuth "virtualab_backend/internals/helpers/auth"
	"virtualab_backend/internals/helpers/bulk"
)

// Enroll adds the calling student to a published course.
func (ctrl *CourseController) Enroll(c *fiber.Ctx) error {
	courseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid course id")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	var course model.CourseModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&course, "course_id = ?", courseID).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "course not found")
	}
	if !course.CourseIsPublished {
		return helper.Error(c, http.StatusForbidden, "course is not open for enrollment")
	}

	// a dropped row is reactivated, not duplicated (unique course+student)
	res := ctrl.DB.WithContext(c.Context()).Model(&model.EnrollmentModel{}).
		Where("enrollment_course_id = ? AND enrollment_student_id = ? AND enrollment_status = ?",
			courseID, userID, model.EnrollmentDropped).
		UpdateColumn("enrollment_status", model.EnrollmentActive)
	if res.Error != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to enroll")
	}
	if res.RowsAffected > 0 {
		var enrollment model.EnrollmentModel
		if err := ctrl.DB.WithContext(c.Context()).
			First(&enrollment, "enrollment_course_id = ? AND enrollment_student_id = ?", courseID, userID).Error; err != nil {
			return helper.Error(c, http.StatusInternalServerError, "failed to enroll")
		}
		ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResCourse, courseID.String(),
			auditDTO.DataChangePayload{Operation: "update", Changed: map[string]interface{}{"enrollment": "active"}})
		return helper.Success(c, "enrolled", enrollment)
	}

	enrollment := model.EnrollmentModel{
		EnrollmentCourseID:  courseID,
		EnrollmentStudentID: userID,
		EnrollmentStatus:    model.EnrollmentActive,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&enrollment).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.Error(c, http.StatusBadRequest, "already enrolled")
		}
		return helper.Error(c, http.StatusInternalServerError, "failed to enroll")
	}

	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResCourse, courseID.String(),
		auditDTO.DataChangePayload{Operation: "create", Changed: map[string]interface{}{"enrollment": "active"}})

	return helper.SuccessWithCode(c, http.StatusCreated, "enrolled", enrollment)
}

// Unenroll marks the caller's enrollment dropped (history is kept).
func (ctrl *CourseController) Unenroll(c *fiber.Ctx) error {
	courseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid course id")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&model.EnrollmentModel{}).
		Where("enrollment_course_id = ? AND enrollment_student_id = ? AND enrollment_status = ?",
			courseID, userID, model.EnrollmentActive).
		UpdateColumn("enrollment_status", model.EnrollmentDropped)
	if res.Error != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to unenroll")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, http.StatusNotFound, "no active enrollment")
	}

	return helper.Success(c, "unenrolled", nil)
}

// ListEnrollments is for the course's instructor or admins.
func (ctrl *CourseController) ListEnrollments(c *fiber.Ctx) error {
	courseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid course id")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	ok, err := helperAuth.CanAccessCourse(ctrl.DB.WithContext(c.Context()), userID, courseID, constants.AccessWrite)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "internal server error")
	}
	if !ok {
		return helper.Error(c, http.StatusForbidden, "no write access to this course")
	}

	var enrollments []model.EnrollmentModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("enrollment_course_id = ?", courseID).
		Order("created_at").
		Find(&enrollments).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to list enrollments")
	}

	return helper.Success(c, "enrollments", enrollments)
}

// BulkEnroll enrolls many students at once (admin or instructor).
// Item failures are collected, not fatal; one audit summary is written.
func (ctrl *CourseController) BulkEnroll(c *fiber.Ctx) error {
	courseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid course id")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}
	ok, err := helperAuth.CanAccessCourse(ctrl.DB.WithContext(c.Context()), userID, courseID, constants.AccessWrite)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "internal server error")
	}
	if !ok {
		return helper.Error(c, http.StatusForbidden, "no write access to this course")
	}

	var req courseDTO.BulkEnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var course model.CourseModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&course, "course_id = ?", courseID).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "course not found")
	}

	result := bulk.Process(c.Context(), req.StudentIDs, func(ctx context.Context, studentID uuid.UUID) error {
		res := ctrl.DB.WithContext(ctx).Model(&model.EnrollmentModel{}).
			Where("enrollment_course_id = ? AND enrollment_student_id = ? AND enrollment_status = ?",
				courseID, studentID, model.EnrollmentDropped).
			UpdateColumn("enrollment_status", model.EnrollmentActive)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		enrollment := model.EnrollmentModel{
			EnrollmentCourseID:  courseID,
			EnrollmentStudentID: studentID,
			EnrollmentStatus:    model.EnrollmentActive,
		}
		if err := ctrl.DB.WithContext(ctx).Create(&enrollment).Error; err != nil {
			lower := strings.ToLower(err.Error())
			if strings.Contains(lower, "unique") || strings.Contains(lower, "duplicate") {
				return fmt.Errorf("student %s already enrolled", studentID)
			}
			return err
		}
		return nil
	}, bulk.Options{
		UserID:        userID,
		OperationType: "course_bulk_enroll",
		Audit:         ctrl.Audit,
	})

	return helper.Success(c, "bulk enrollment finished", fiber.Map{
		"success_count": result.SuccessCount,
		"error_count":   result.ErrorCount,
		"errors":        result.Errors,
	})
}
