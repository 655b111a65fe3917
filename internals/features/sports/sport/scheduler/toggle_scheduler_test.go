package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextWeekdayAt(t *testing.T) {
	// Wednesday 2026-03-11 12:00 UTC
	wed := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

	mon := nextWeekdayAt(wed, time.Monday, 6, 0)
	assert.Equal(t, time.Monday, mon.Weekday())
	assert.Equal(t, time.Date(2026, 3, 16, 6, 0, 0, 0, time.UTC), mon)

	// same weekday, time already past: rolls a full week
	monNoon := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	next := nextWeekdayAt(monNoon, time.Monday, 6, 0)
	assert.Equal(t, time.Date(2026, 3, 23, 6, 0, 0, 0, time.UTC), next)

	// same weekday, time still ahead: today
	monEarly := time.Date(2026, 3, 16, 5, 0, 0, 0, time.UTC)
	next = nextWeekdayAt(monEarly, time.Monday, 6, 0)
	assert.Equal(t, time.Date(2026, 3, 16, 6, 0, 0, 0, time.UTC), next)
}

func TestNextToggle(t *testing.T) {
	// midweek: Sunday 22:00 deactivation comes before Monday 06:00
	wed := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	tg := nextToggle(wed)
	assert.False(t, tg.active)
	assert.Equal(t, time.Sunday, tg.at.Weekday())

	// Sunday 23:00: the next event is Monday morning activation
	sunNight := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)
	tg = nextToggle(sunNight)
	assert.True(t, tg.active)
	assert.Equal(t, time.Monday, tg.at.Weekday())
	assert.True(t, tg.at.After(sunNight))
}
