package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"virtualab_backend/internals/constants"
	auditDTO "virtualab_backend/internals/features/audit/dto"
	auditService "virtualab_backend/internals/features/audit/service"
	"virtualab_backend/internals/features/lms/courses/dto"
	"virtualab_backend/internals/features/lms/courses/model"
	helper "virtualab_backend/internals/helpers"
	helperAuth "virtualab_backend/internals/helpers/auth"
	"virtualab_backend/internals/helpers/queryx"
)

/* =========================
   Controller & Constructor
   ========================= */

type CourseController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Audit    *auditService.Logger
}

func NewCourseController(db *gorm.DB, v *validator.Validate, audit *auditService.Logger) *CourseController {
	return &CourseController{DB: db, Validate: v, Audit: audit}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

var courseSortable = map[string]string{
	"created_at": "created_at",
	"title":      "course_title",
	"code":       "course_code",
	"subject":    "course_subject",
}

/* =========================
   Read
   ========================= */

func (ctrl *CourseController) List(c *fiber.Ctx) error {
	p := helper.ParsePage(c, "created_at", "desc", helper.DefaultOpts)

	qb := queryx.New().
		WhereIf(c.Query("subject") != "", "course_subject = ?", c.Query("subject")).
		WhereIf(c.Query("grade_level") != "", "course_grade_level = ?", c.Query("grade_level")).
		WhereIf(c.Query("instructor_id") != "", "course_instructor_id = ?", c.Query("instructor_id")).
		WhereIf(c.Query("published") != "", "course_is_published = ?", c.Query("published") == "true").
		Search(p.Search, "course_title", "course_code", "course_description")

	base := qb.Apply(ctrl.DB.WithContext(c.Context()).Model(&model.CourseModel{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to count courses")
	}

	order, err := p.SafeOrderClause(courseSortable, "created_at")
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "invalid sort configuration")
	}

	var courses []model.CourseModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&courses).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to list courses")
	}

	return helper.Success(c, "courses", fiber.Map{
		"items": courses,
		"meta":  helper.BuildPageMeta(total, p),
	})
}

func (ctrl *CourseController) GetByID(c *fiber.Ctx) error {
	courseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid course id")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	ok, err := helperAuth.CanAccessCourse(ctrl.DB.WithContext(c.Context()), userID, courseID, constants.AccessRead)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "internal server error")
	}
	if !ok {
		return helper.Error(c, http.StatusForbidden, "no access to this course")
	}

	var course model.CourseModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&course, "course_id = ?", courseID).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "course not found")
	}

	var schedules []model.CourseScheduleModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("course_schedule_course_id = ?", courseID).
		Order("course_schedule_day_of_week, course_schedule_starts_at").
		Find(&schedules).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to load schedules")
	}

	return helper.Success(c, "course", fiber.Map{
		"course":    course,
		"schedules": schedules,
	})
}

/* =========================
   Write
   ========================= */

func (ctrl *CourseController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}
	allowed, err := helperAuth.HasPermission(ctrl.DB.WithContext(c.Context()), userID, constants.ResCourse, constants.ActCreate)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "internal server error")
	}
	if !allowed {
		return helper.Error(c, http.StatusForbidden, "missing permission course:create")
	}

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	instructorID := req.CourseInstructorID
	if instructorID == uuid.Nil {
		instructorID = userID
	}

	course := model.CourseModel{
		CourseTitle:        req.CourseTitle,
		CourseCode:         strings.ToUpper(strings.TrimSpace(req.CourseCode)),
		CourseDescription:  req.CourseDescription,
		CourseSubject:      req.CourseSubject,
		CourseGradeLevel:   req.CourseGradeLevel,
		CourseTags:         pq.StringArray(req.CourseTags),
		CourseInstructorID: instructorID,
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		for _, slot := range req.Schedules {
			row := model.CourseScheduleModel{
				CourseScheduleCourseID:  course.CourseID,
				CourseScheduleDayOfWeek: slot.DayOfWeek,
				CourseScheduleStartsAt:  slot.StartsAt,
				CourseScheduleEndsAt:    slot.EndsAt,
				CourseScheduleRoom:      slot.Room,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.Error(c, http.StatusBadRequest, "course code or schedule slot already exists")
		}
		return helper.Error(c, http.StatusInternalServerError, "failed to create course")
	}

	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResCourse, course.CourseID.String(),
		auditDTO.DataChangePayload{Operation: "create", Changed: map[string]interface{}{
			"course_code":  course.CourseCode,
			"course_title": course.CourseTitle,
		}})

	return helper.SuccessWithCode(c, http.StatusCreated, "course created", course)
}

// Update patches course fields and, when a schedules slice is present,
// replaces every slot inside the same transaction. Any failure rolls the
// whole update back.
func (ctrl *CourseController) Update(c *fiber.Ctx) error {
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

	var req dto.UpdateCourseRequest
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

	updates := map[string]interface{}{}
	if req.CourseTitle != nil {
		updates["course_title"] = *req.CourseTitle
	}
	if req.CourseDescription != nil {
		updates["course_description"] = *req.CourseDescription
	}
	if req.CourseSubject != nil {
		updates["course_subject"] = *req.CourseSubject
	}
	if req.CourseGradeLevel != nil {
		updates["course_grade_level"] = *req.CourseGradeLevel
	}
	if req.CourseTags != nil {
		updates["course_tags"] = pq.StringArray(*req.CourseTags)
	}
	if req.CourseIsPublished != nil {
		updates["course_is_published"] = *req.CourseIsPublished
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&course).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Schedules != nil {
			if err := ReplaceSchedules(tx, courseID, *req.Schedules); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to update course")
	}

	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResCourse, courseID.String(),
		auditDTO.DataChangePayload{Operation: "update", Changed: updates})

	return helper.Success(c, "course updated", course)
}

// ReplaceSchedules swaps all schedule slots of a course inside the
// caller's transaction: delete everything, reinsert the new set.
func ReplaceSchedules(tx *gorm.DB, courseID uuid.UUID, slots []dto.ScheduleSlot) error {
	if err := tx.Where("course_schedule_course_id = ?", courseID).
		Delete(&model.CourseScheduleModel{}).Error; err != nil {
		return err
	}
	for _, slot := range slots {
		row := model.CourseScheduleModel{
			CourseScheduleCourseID:  courseID,
			CourseScheduleDayOfWeek: slot.DayOfWeek,
			CourseScheduleStartsAt:  slot.StartsAt,
			CourseScheduleEndsAt:    slot.EndsAt,
			CourseScheduleRoom:      slot.Room,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (ctrl *CourseController) Delete(c *fiber.Ctx) error {
	courseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid course id")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	ok, err := helperAuth.CanAccessCourse(ctrl.DB.WithContext(c.Context()), userID, courseID, constants.AccessAdmin)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "internal server error")
	}
	if !ok {
		return helper.Error(c, http.StatusForbidden, "no admin access to this course")
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_schedule_course_id = ?", courseID).
			Delete(&model.CourseScheduleModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("enrollment_course_id = ?", courseID).
			Delete(&model.EnrollmentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.CourseModel{}, "course_id = ?", courseID).Error
	})
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to delete course")
	}

	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResCourse, courseID.String(),
		auditDTO.DataChangePayload{Operation: "delete", Changed: nil})

	return helper.Success(c, "course deleted", nil)
}

// AssignInstructor is reserved for admin-tier users (route-guarded).
func (ctrl *CourseController) AssignInstructor(c *fiber.Ctx) error {
	courseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid course id")
	}

	var req dto.AssignInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&model.CourseModel{}).
		Where("course_id = ?", courseID).
		UpdateColumn("course_instructor_id", req.InstructorID)
	if res.Error != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to assign instructor")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, http.StatusNotFound, "course not found")
	}

	if actor, actorErr := helperAuth.GetUserID(c); actorErr == nil {
		ctrl.Audit.LogDataChange(c.Context(), actor, constants.ResCourse, courseID.String(),
			auditDTO.DataChangePayload{Operation: "update", Changed: map[string]interface{}{
				"course_instructor_id": req.InstructorID.String(),
			}})
	}
	return helper.Success(c, "instructor assigned", nil)
}
