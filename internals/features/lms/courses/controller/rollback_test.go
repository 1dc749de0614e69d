package controller

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"virtualab_backend/internals/features/lms/courses/dto"
	"virtualab_backend/internals/features/lms/courses/model"
)

func openScheduleDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.CourseScheduleModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestReplaceSchedulesReplacesWholesale(t *testing.T) {
	db := openScheduleDB(t)
	courseID := uuid.New()

	err := db.Transaction(func(tx *gorm.DB) error {
		return ReplaceSchedules(tx, courseID, []dto.ScheduleSlot{
			{DayOfWeek: 1, StartsAt: "09:00", EndsAt: "10:30", Room: "A1"},
			{DayOfWeek: 3, StartsAt: "09:00", EndsAt: "10:30", Room: "A1"},
		})
	})
	if err != nil {
		t.Fatalf("first replace: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return ReplaceSchedules(tx, courseID, []dto.ScheduleSlot{
			{DayOfWeek: 5, StartsAt: "13:00", EndsAt: "14:30", Room: "B2"},
		})
	})
	if err != nil {
		t.Fatalf("second replace: %v", err)
	}

	var rows []model.CourseScheduleModel
	if err := db.Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].CourseScheduleDayOfWeek != 5 {
		t.Errorf("rows = %+v, want only the friday slot", rows)
	}
}

// A failure on the second insert must roll back the whole transaction:
// neither the first insert nor the delete of the previous slots may
// stick.
func TestReplaceSchedulesRollsBackOnMidTransactionFailure(t *testing.T) {
	db := openScheduleDB(t)
	courseID := uuid.New()

	err := db.Transaction(func(tx *gorm.DB) error {
		return ReplaceSchedules(tx, courseID, []dto.ScheduleSlot{
			{DayOfWeek: 1, StartsAt: "09:00", EndsAt: "10:30", Room: "A1"},
		})
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// the duplicate slot violates idx_course_slot on the second insert
	err = db.Transaction(func(tx *gorm.DB) error {
		return ReplaceSchedules(tx, courseID, []dto.ScheduleSlot{
			{DayOfWeek: 2, StartsAt: "11:00", EndsAt: "12:00", Room: "C3"},
			{DayOfWeek: 2, StartsAt: "11:00", EndsAt: "12:30", Room: "C4"},
		})
	})
	if err == nil {
		t.Fatal("expected unique violation")
	}

	var rows []model.CourseScheduleModel
	if err := db.Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want the original slot only", len(rows))
	}
	if rows[0].CourseScheduleDayOfWeek != 1 || rows[0].CourseScheduleRoom != "A1" {
		t.Errorf("surviving row = %+v, want the pre-transaction slot", rows[0])
	}

	var tuesday int64
	db.Model(&model.CourseScheduleModel{}).
		Where("course_schedule_day_of_week = ?", 2).Count(&tuesday)
	if tuesday != 0 {
		t.Errorf("first insert of the failed transaction leaked: %d rows", tuesday)
	}
}
