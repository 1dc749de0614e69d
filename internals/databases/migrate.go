package databases

import (
	"log"

	"gorm.io/gorm"

	auditModel "virtualab_backend/internals/features/audit/model"
	fileModel "virtualab_backend/internals/features/files/model"
	announcementModel "virtualab_backend/internals/features/lms/announcements/model"
	courseModel "virtualab_backend/internals/features/lms/courses/model"
	curriculumModel "virtualab_backend/internals/features/lms/curriculum/model"
	labModel "virtualab_backend/internals/features/lms/labs/model"
	messageModel "virtualab_backend/internals/features/lms/messages/model"
	progressModel "virtualab_backend/internals/features/lms/progress/model"
	authModel "virtualab_backend/internals/features/users/auth/model"
	userModel "virtualab_backend/internals/features/users/user/model"
)

// Migrate creates or updates every table, activity_logs included, so a
// fresh database is usable without hand-run DDL.
func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&userModel.RoleModel{},
		&userModel.UserModel{},
		&userModel.RolePermissionModel{},
		&userModel.ParentLinkModel{},
		&authModel.SessionModel{},
		&courseModel.CourseModel{},
		&courseModel.CourseScheduleModel{},
		&courseModel.EnrollmentModel{},
		&labModel.LabModel{},
		&labModel.SimulationModel{},
		&announcementModel.AnnouncementModel{},
		&messageModel.MessageModel{},
		&curriculumModel.CurriculumUnitModel{},
		&progressModel.ProgressModel{},
		&fileModel.UploadedFileModel{},
		&auditModel.ActivityLogModel{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return err
	}
	log.Printf("[INFO] database migration complete (%d tables)", len(models))
	return nil
}
