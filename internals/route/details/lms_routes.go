package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"virtualab_backend/internals/constants"
	auditService "virtualab_backend/internals/features/audit/service"
	announcementController "virtualab_backend/internals/features/lms/announcements/controller"
	courseController "virtualab_backend/internals/features/lms/courses/controller"
	curriculumController "virtualab_backend/internals/features/lms/curriculum/controller"
	labController "virtualab_backend/internals/features/lms/labs/controller"
	messageController "virtualab_backend/internals/features/lms/messages/controller"
	progressController "virtualab_backend/internals/features/lms/progress/controller"
	helper "virtualab_backend/internals/helpers"
	authMW "virtualab_backend/internals/middlewares/auth"
)

// LmsUserRoutes: everything an authenticated user can reach. Handlers
// do their own permission and course-access checks.
func LmsUserRoutes(r fiber.Router, db *gorm.DB, audit *auditService.Logger) {
	v := helper.Validate()

	courses := courseController.NewCourseController(db, v, audit)
	r.Get("/courses", courses.List)
	r.Get("/courses/:id", courses.GetByID)
	r.Post("/courses", courses.Create)
	r.Put("/courses/:id", courses.Update)
	r.Delete("/courses/:id", courses.Delete)
	r.Post("/courses/:id/enroll", courses.Enroll)
	r.Delete("/courses/:id/enroll", courses.Unenroll)
	r.Get("/courses/:id/enrollments", courses.ListEnrollments)
	r.Post("/courses/:id/enrollments/bulk",
		authMW.OnlyRoles(constants.RoleErrorInstructor("bulk enrollment"), constants.InstructorAndAbove...),
		courses.BulkEnroll)

	labs := labController.NewLabController(db, v, audit)
	r.Get("/labs", labs.List)
	r.Get("/labs/:id", labs.GetByID)
	r.Post("/labs", labs.Create)
	r.Put("/labs/:id", labs.Update)
	r.Delete("/labs/:id", labs.Delete)

	r.Post("/simulations", labs.CreateSimulation)
	r.Get("/simulations/:id", labs.GetSimulation)
	r.Put("/simulations/:id", labs.UpdateSimulation)
	r.Delete("/simulations/:id", labs.DeleteSimulation)

	announcements := announcementController.NewAnnouncementController(db, v, audit)
	r.Get("/announcements", announcements.List)
	r.Post("/announcements", announcements.Create)
	r.Put("/announcements/:id", announcements.Update)
	r.Delete("/announcements/:id", announcements.Delete)

	messages := messageController.NewMessageController(db, v, audit)
	r.Post("/messages", messages.Send)
	r.Get("/messages/inbox", messages.Inbox)
	r.Get("/messages/sent", messages.Sent)
	r.Get("/messages/unread-count", messages.UnreadCount)
	r.Post("/messages/:id/read", messages.MarkRead)

	curriculum := curriculumController.NewCurriculumController(db, v, audit)
	r.Get("/courses/:course_id/curriculum", curriculum.ListByCourse)
	r.Post("/curriculum", curriculum.Create)
	r.Put("/curriculum/:id", curriculum.Update)
	r.Delete("/curriculum/:id", curriculum.Delete)
	r.Put("/courses/:course_id/curriculum/reorder", curriculum.Reorder)

	progress := progressController.NewProgressController(db, v, audit)
	r.Post("/progress", progress.Record)
	r.Get("/progress/mine", progress.Mine)
	r.Get("/progress/students/:student_id", progress.StudentProgress)
	r.Get("/courses/:course_id/progress-summary", progress.CourseSummary)
}

// LmsAdminRoutes: admin-gated operations.
func LmsAdminRoutes(r fiber.Router, db *gorm.DB, audit *auditService.Logger) {
	courses := courseController.NewCourseController(db, helper.Validate(), audit)
	r.Put("/courses/:id/instructor", courses.AssignInstructor)
}
