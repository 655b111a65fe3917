// file: internals/helpers/pg_error.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// pgSQLErr matches pgconn.PgError without importing the driver directly.
type pgSQLErr interface {
	SQLState() string
	Error() string
}

// IsUniqueViolation reports whether err is a Postgres unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr pgSQLErr
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}

// MapPGError translates common Postgres constraint errors into
// an HTTP status + user message.
// 23505 unique_violation, 23503 foreign_key_violation
func MapPGError(err error) (int, string) {
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23505":
			return fiber.StatusConflict, "Duplicate data (unique violation)."
		case "23503":
			return fiber.StatusBadRequest, "Referenced row not found (FK violation)."
		}
	}
	return fiber.StatusInternalServerError, err.Error()
}

func WritePGError(c *fiber.Ctx, err error) error {
	code, msg := MapPGError(err)
	return JsonError(c, code, msg)
}
