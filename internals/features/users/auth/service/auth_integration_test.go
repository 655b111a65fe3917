package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authModel "sportku_backend/internals/features/users/auth/model"
	authRepo "sportku_backend/internals/features/users/auth/repository"
)

// schemaDB opens TEST_DATABASE_DSN and applies the shipped DDL, so the
// test runs against the exact tables production gets, not AutoMigrate's
// rendition of the models.
func schemaDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set; skipping integration test")
	}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	ddl, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "databases", "schema.sql"))
	require.NoError(t, err)
	require.NoError(t, db.Exec(string(ddl)).Error)
	return db
}

// A refresh token row must insert cleanly against the shipped schema:
// the id column there has to be a UUID with a server-side default, or
// GORM's RETURNING scan blows up on the generated key.
func TestCreateRefreshTokenAgainstSchema(t *testing.T) {
	db := schemaDB(t)

	user := authModel.UserModel{
		Email:    "rt-schema-" + uuid.NewString() + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	t.Cleanup(func() {
		db.Where("user_id = ?", user.ID).Delete(&authModel.RefreshToken{})
		db.Where("id = ?", user.ID).Delete(&authModel.UserModel{})
	})

	rt := authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: computeRefreshHash("some-refresh-token", "test-secret"),
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, authRepo.CreateRefreshToken(db, &rt))
	assert.NotEqual(t, uuid.Nil, rt.ID, "db should hand back a generated uuid")

	var got authModel.RefreshToken
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&got).Error)
	assert.Equal(t, rt.ID, got.ID)
	assert.Equal(t, rt.TokenHash, got.TokenHash)
}
