package scheduler

import (
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"sportku_backend/internals/features/sports/sport/service"
)

// StartSportToggleScheduler mirrors the external weekly cron in-process:
// sports go live Monday morning and are pulled Sunday night. Set
// SPORT_TOGGLE_SCHEDULER=off when an external scheduler owns the toggles.
func StartSportToggleScheduler(db *gorm.DB) {
	if os.Getenv("SPORT_TOGGLE_SCHEDULER") == "off" {
		log.Println("[TOGGLE] in-process sport toggle scheduler disabled")
		return
	}

	go func() {
		for {
			now := time.Now()
			next := nextToggle(now)
			time.Sleep(next.at.Sub(now))

			count, err := service.SetAllActive(db, next.active)
			if err != nil {
				log.Printf("[TOGGLE ERROR] bulk toggle: %v", err)
				continue
			}
			log.Printf("[TOGGLE] set active=%v on %d sports", next.active, count)
		}
	}()
}

type toggle struct {
	at     time.Time
	active bool
}

// nextToggle picks the earlier of: next Monday 06:00 (activate) and next
// Sunday 22:00 (deactivate).
func nextToggle(now time.Time) toggle {
	activate := nextWeekdayAt(now, time.Monday, 6, 0)
	deactivate := nextWeekdayAt(now, time.Sunday, 22, 0)
	if activate.Before(deactivate) {
		return toggle{at: activate, active: true}
	}
	return toggle{at: deactivate, active: false}
}

func nextWeekdayAt(now time.Time, wd time.Weekday, hour, min int) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	for t.Weekday() != wd || !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
