package helper

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePGErr struct{ code string }

func (e *fakePGErr) SQLState() string { return e.code }
func (e *fakePGErr) Error() string    { return "pq: constraint violated" }

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&fakePGErr{code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create booking: %w", &fakePGErr{code: "23505"})))
	assert.False(t, IsUniqueViolation(&fakePGErr{code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestMapPGError(t *testing.T) {
	code, _ := MapPGError(&fakePGErr{code: "23505"})
	assert.Equal(t, fiber.StatusConflict, code)

	code, _ = MapPGError(&fakePGErr{code: "23503"})
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, msg := MapPGError(errors.New("boom"))
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "boom", msg)
}

func pagingFor(t *testing.T, query string, def, max int) Paging {
	t.Helper()
	app := fiber.New()
	var got Paging
	app.Get("/x", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, def, max)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/x"+query, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestResolvePaging(t *testing.T) {
	p := pagingFor(t, "", 20, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 0, p.Offset)

	p = pagingFor(t, "?page=3&per_page=10", 20, 100)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 20, p.Offset)

	// legacy alias
	p = pagingFor(t, "?limit=7", 20, 100)
	assert.Equal(t, 7, p.PerPage)

	// caps and garbage
	p = pagingFor(t, "?page=-2&per_page=9999", 20, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)

	p = pagingFor(t, "?page=abc&per_page=abc", 20, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func TestBuildPagination(t *testing.T) {
	pg := BuildPagination(2, 10, 25, 10)
	assert.Equal(t, 2, pg.Page)
	assert.Equal(t, 3, pg.TotalPages)

	pg = BuildPagination(1, 10, 0, 0)
	assert.Equal(t, 0, pg.TotalPages)
}
