package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "sportku_backend/internals/features/users/auth/model"
)

func FindUserByEmail(db *gorm.DB, email string) (*authModel.UserModel, error) {
	var user authModel.UserModel
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, id uuid.UUID) (*authModel.UserModel, error) {
	var user authModel.UserModel
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func UpdateUserPassword(db *gorm.DB, id uuid.UUID, hashed string) error {
	return db.Model(&authModel.UserModel{}).
		Where("id = ?", id).
		Update("password", hashed).Error
}

func CreateRefreshToken(db *gorm.DB, rt *authModel.RefreshToken) error {
	return db.Create(rt).Error
}

func DeleteRefreshTokenByHash(db *gorm.DB, hash []byte) error {
	return db.Where("token_hash = ?", hash).Delete(&authModel.RefreshToken{}).Error
}

func RefreshTokenHashExists(db *gorm.DB, hash []byte) (bool, error) {
	var exists bool
	err := db.Raw(
		`SELECT EXISTS(SELECT 1 FROM refresh_tokens WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > NOW())`,
		hash,
	).Scan(&exists).Error
	return exists, err
}

func BlacklistToken(db *gorm.DB, tb *authModel.TokenBlacklist) error {
	return db.Create(tb).Error
}
