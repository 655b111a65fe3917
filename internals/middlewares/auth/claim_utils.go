// internals/middlewares/auth/claim_utils.go
package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	// Authorization header or cookie fallback
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	// robust split: tolerate double spaces, case-insensitive scheme
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exp format")
		}
		expUnix = n
	default:
		return fmt.Errorf("invalid exp type")
	}

	if time.Now().Add(-skew).Unix() > expUnix {
		return fmt.Errorf("token expired")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["user_id"]
	if !ok {
		if raw, ok = claims["sub"]; !ok {
			return uuid.Nil, fmt.Errorf("no user_id claim")
		}
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("user_id claim is not a string")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("user_id claim is not a UUID")
	}
	return id, nil
}

// storeBasicClaimsToLocals copies role / user_type / gender claims into
// Locals so handlers never re-parse the token.
func storeBasicClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if v, ok := claims["role"].(string); ok {
		c.Locals("userRole", v)
	}
	if v, ok := claims["user_type"].(string); ok {
		c.Locals("userType", v)
	}
	if v, ok := claims["gender"].(string); ok {
		c.Locals("userGender", v)
	}
	if v, ok := claims["user_name"].(string); ok {
		c.Locals("userName", v)
	}
}
