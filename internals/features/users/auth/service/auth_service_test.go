package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "sportku_backend/internals/features/users/auth/model"
	profileModel "sportku_backend/internals/features/users/profile/model"
)

func TestComputeRefreshHash(t *testing.T) {
	a := computeRefreshHash("token-one", "secret")
	b := computeRefreshHash("token-one", "secret")
	require.Equal(t, a, b, "same token and secret must hash identically")
	assert.Len(t, a, 32)

	assert.NotEqual(t, a, computeRefreshHash("token-two", "secret"))
	assert.NotEqual(t, a, computeRefreshHash("token-one", "other-secret"))
}

func TestBuildAccessClaims(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	user := &authModel.UserModel{ID: uuid.New(), Email: "jo@campus.edu"}

	claims := buildAccessClaims(user, nil, now)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, "jo@campus.edu", claims["email"])
	assert.Equal(t, now.Unix(), claims["iat"])
	assert.Equal(t, now.Add(accessTTLDefault).Unix(), claims["exp"])
	_, hasRole := claims["role"]
	assert.False(t, hasRole, "no profile means no role claim yet")

	profile := &profileModel.ProfileModel{
		Role:     "normal",
		UserType: "student",
		Gender:   "female",
		FullName: "Jo Park",
	}
	claims = buildAccessClaims(user, profile, now)
	assert.Equal(t, "normal", claims["role"])
	assert.Equal(t, "student", claims["user_type"])
	assert.Equal(t, "female", claims["gender"])
	assert.Equal(t, "Jo Park", claims["user_name"])
}

func TestBuildRefreshClaims(t *testing.T) {
	now := time.Now()
	id := uuid.New()

	claims := buildRefreshClaims(id, now)
	assert.Equal(t, id.String(), claims["sub"])
	assert.Equal(t, now.Add(refreshTTLDefault).Unix(), claims["exp"])
}
