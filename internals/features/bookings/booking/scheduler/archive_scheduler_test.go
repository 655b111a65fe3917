package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextRunAt(t *testing.T) {
	loc := time.UTC

	beforeHour := time.Date(2026, 3, 11, 10, 0, 0, 0, loc)
	run := nextRunAt(beforeHour, 23)
	assert.Equal(t, time.Date(2026, 3, 11, 23, 5, 0, 0, loc), run)

	afterHour := time.Date(2026, 3, 11, 23, 30, 0, 0, loc)
	run = nextRunAt(afterHour, 23)
	assert.Equal(t, time.Date(2026, 3, 12, 23, 5, 0, 0, loc), run)

	exactly := time.Date(2026, 3, 11, 23, 5, 0, 0, loc)
	run = nextRunAt(exactly, 23)
	assert.Equal(t, time.Date(2026, 3, 12, 23, 5, 0, 0, loc), run, "run moment itself rolls to tomorrow")
}
