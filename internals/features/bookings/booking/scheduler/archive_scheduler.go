package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"sportku_backend/internals/features/bookings/booking/service"
)

// StartBookingArchiveScheduler archives the bookings table once a day,
// shortly after the configured hour (default 23, campus close).
func StartBookingArchiveScheduler(db *gorm.DB) {
	hour := 23
	if v := os.Getenv("BOOKING_ARCHIVE_HOUR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 23 {
			hour = n
		}
	}

	go func() {
		for {
			time.Sleep(time.Until(nextRunAt(time.Now(), hour)))

			moved, err := service.ArchiveAll(db)
			if err != nil {
				log.Printf("❌ nightly booking archive failed: %v", err)
				continue
			}
			log.Printf("✅ nightly booking archive: moved %d rows", moved)
		}
	}()
}

func nextRunAt(now time.Time, hour int) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), hour, 5, 0, 0, now.Location())
	if !run.After(now) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}
