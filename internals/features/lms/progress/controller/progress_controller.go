package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"virtualab_backend/internals/constants"
	auditDTO "virtualab_backend/internals/features/audit/dto"
	auditService "virtualab_backend/internals/features/audit/service"
	labModel "virtualab_backend/internals/features/lms/labs/model"
	"virtualab_backend/internals/features/lms/progress/dto"
	"virtualab_backend/internals/features/lms/progress/model"
	helper "virtualab_backend/internals/helpers"
	helperAuth "virtualab_backend/internals/helpers/auth"
)

type ProgressController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Audit    *auditService.Logger
}

func NewProgressController(db *gorm.DB, v *validator.Validate, audit *auditService.Logger) *ProgressController {
	return &ProgressController{DB: db, Validate: v, Audit: audit}
}

// Record upserts the caller's progress on a lab. Attempts increment on
// every call, scores keep the best value, completion timestamps stick.
func (ctrl *ProgressController) Record(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	var req dto.RecordProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var lab labModel.LabModel
	if err := ctrl.DB.WithContext(c.Context()).First(&lab, "lab_id = ?", req.ProgressLabID).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "lab not found")
	}
	ok, err := helperAuth.CanAccessCourse(ctrl.DB.WithContext(c.Context()), studentID, lab.LabCourseID, constants.AccessRead)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "internal server error")
	}
	if !ok {
		return helper.Error(c, http.StatusForbidden, "no access to this lab's course")
	}
	if req.ProgressScore != nil && *req.ProgressScore > float64(lab.LabMaxScore) {
		return helper.Error(c, http.StatusBadRequest, "score exceeds lab maximum")
	}

	var row model.ProgressModel
	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&row, "progress_student_id = ? AND progress_lab_id = ?", studentID, req.ProgressLabID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = model.ProgressModel{
				ProgressStudentID:  studentID,
				ProgressLabID:      req.ProgressLabID,
				ProgressStatus:     req.ProgressStatus,
				ProgressScore:      req.ProgressScore,
				ProgressAttempts:   1,
				ProgressTimeSpentS: req.ProgressTimeSpentS,
			}
			if req.ProgressStatus == model.ProgressCompleted {
				now := time.Now()
				row.ProgressCompletedAt = &now
			}
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}

		row.ProgressAttempts++
		row.ProgressTimeSpentS += req.ProgressTimeSpentS
		row.ProgressStatus = req.ProgressStatus
		if req.ProgressScore != nil && (row.ProgressScore == nil || *req.ProgressScore > *row.ProgressScore) {
			row.ProgressScore = req.ProgressScore
		}
		if req.ProgressStatus == model.ProgressCompleted && row.ProgressCompletedAt == nil {
			now := time.Now()
			row.ProgressCompletedAt = &now
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to record progress")
	}

	ctrl.Audit.LogDataChange(c.Context(), studentID, constants.ResProgress, row.ProgressID.String(),
		auditDTO.DataChangePayload{Operation: "record", Changed: map[string]interface{}{
			"status": row.ProgressStatus, "attempts": row.ProgressAttempts,
		}})

	return helper.Success(c, "progress recorded", row)
}

// Mine lists the caller's own progress rows.
func (ctrl *ProgressController) Mine(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	var rows []model.ProgressModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("progress_student_id = ?", studentID).
		Order("updated_at DESC").Find(&rows).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to list progress")
	}

	return helper.Success(c, "my progress", rows)
}

// StudentProgress lets instructors and verified parents view another
// user's progress through course access checks per lab's course.
func (ctrl *ProgressController) StudentProgress(c *fiber.Ctx) error {
	viewerID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid student id")
	}

	if viewerID != studentID && !helperAuth.IsAdminTier(c) {
		verified, err := helperAuth.IsVerifiedParent(ctrl.DB.WithContext(c.Context()), viewerID, studentID)
		if err != nil {
			return helper.Error(c, http.StatusInternalServerError, "internal server error")
		}
		if !verified {
			return helper.Error(c, http.StatusForbidden, "no access to this student's progress")
		}
	}

	var rows []model.ProgressModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("progress_student_id = ?", studentID).
		Order("updated_at DESC").Find(&rows).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to list progress")
	}

	return helper.Success(c, "student progress", rows)
}

// CourseSummary aggregates per-lab completion across one course for
// its instructor or an admin.
func (ctrl *ProgressController) CourseSummary(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("course_id"))
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

	var summaries []dto.CourseProgressSummary
	err = ctrl.DB.WithContext(c.Context()).
		Table("labs").
		Select(`labs.lab_id AS lab_id,
			labs.lab_title AS lab_title,
			COUNT(lab_progress.progress_id) AS students_total,
			COUNT(lab_progress.progress_completed_at) AS students_done,
			COALESCE(AVG(lab_progress.progress_score), 0) AS average_score,
			COALESCE(AVG(lab_progress.progress_time_spent_s), 0) AS average_seconds`).
		Joins("LEFT JOIN lab_progress ON lab_progress.progress_lab_id = labs.lab_id").
		Where("labs.lab_course_id = ?", courseID).
		Group("labs.lab_id, labs.lab_title").
		Order("labs.lab_title").
		Scan(&summaries).Error
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to build course summary")
	}

	return helper.Success(c, "course progress summary", summaries)
}
