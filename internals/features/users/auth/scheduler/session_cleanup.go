package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	sessionModel "virtualab_backend/internals/features/users/auth/model"
)

// StartSessionCleanupScheduler purges dead sessions hourly. Resolution
// already treats expired/revoked rows as absent; this only keeps the
// table small.
func StartSessionCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			res := db.Where("expires_at < ? OR revoked_at IS NOT NULL", time.Now().Add(-24*time.Hour)).
				Delete(&sessionModel.SessionModel{})
			if res.Error != nil {
				log.Printf("[WARN] session cleanup: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[INFO] session cleanup removed %d rows", res.RowsAffected)
			}
		}
	}()
}
