package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sportku_backend/internals/configs"
	"sportku_backend/internals/constants"
	authDto "sportku_backend/internals/features/users/auth/dto"
	authModel "sportku_backend/internals/features/users/auth/model"
	authRepo "sportku_backend/internals/features/users/auth/repository"
	profileModel "sportku_backend/internals/features/users/profile/model"
	helper "sportku_backend/internals/helpers"
)

/* ==========================
   Const & helpers
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

var validate = validator.New()

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

func strptr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// computeRefreshHash: HMAC-SHA256 so the DB never sees plaintext tokens.
func computeRefreshHash(token, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

/* ==========================
   Claims & cookies
========================== */

func buildAccessClaims(user *authModel.UserModel, profile *profileModel.ProfileModel, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"sub":     user.ID.String(),
		"user_id": user.ID.String(),
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(accessTTLDefault).Unix(),
	}
	if profile != nil {
		claims["role"] = profile.Role
		claims["user_type"] = profile.UserType
		claims["gender"] = profile.Gender
		claims["user_name"] = profile.FullName
	}
	return claims
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

func setAuthCookies(c *fiber.Ctx, access, refresh string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    access,
		Expires:  now.Add(accessTTLDefault),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		Expires:  now.Add(refreshTTLDefault),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/api/auth",
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, Path: "/"})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, Path: "/api/auth"})
}

// issueSession signs both tokens, persists the refresh hash and sets cookies.
func issueSession(db *gorm.DB, c *fiber.Ctx, user *authModel.UserModel, profile *profileModel.ProfileModel) (string, error) {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}

	now := nowUTC()
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, profile, now)).
		SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign access token")
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(user.ID, now)).
		SignedString([]byte(refreshSecret))
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	if err := authRepo.CreateRefreshToken(db, &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(refresh, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}); err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setAuthCookies(c, access, refresh, now)
	return access, nil
}

func loadProfile(db *gorm.DB, userID uuid.UUID) (*profileModel.ProfileModel, error) {
	var profile profileModel.ProfileModel
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

/* ==========================
   REGISTER
========================== */

// POST /api/auth/register
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req authDto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := authModel.UserModel{
		Email:    req.Email,
		Password: string(hashed),
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
		}
		return helper.WritePGError(c, err)
	}

	// no profile yet: the client goes through onboarding next
	return helper.JsonCreated(c, "Registered successfully", fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

/* ==========================
   LOGIN
========================== */

// POST /api/auth/login
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req authDto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	user, err := authRepo.FindUserByEmail(db, req.Email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Incorrect email or password")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Incorrect email or password")
	}

	profile, err := loadProfile(db, user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}
	if profile != nil && profile.Role == constants.RoleBan {
		return helper.JsonError(c, fiber.StatusForbidden, constants.ErrBannedAccount)
	}

	access, err := issueSession(db, c, user, profile)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token":  access,
		"needs_onboard": profile == nil,
		"profile":       profile,
	})
}

/* ==========================
   LOGIN GOOGLE
========================== */

// POST /api/auth/login-google
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var req authDto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if strings.TrimSpace(req.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "id_token is required")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Failed to decode Google token")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	if email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google token has no email")
	}

	user, err := authRepo.FindUserByEmail(db, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// first Google sign-in: create the identity with a random password
		random := uuid.NewString() + uuid.NewString()
		hashed, herr := bcrypt.GenerateFromPassword([]byte(random), bcrypt.DefaultCost)
		if herr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
		}
		created := authModel.UserModel{
			Email:    email,
			Password: string(hashed),
			GoogleID: strptr(claimSet.Sub),
			IsActive: true,
		}
		if cerr := db.Create(&created).Error; cerr != nil {
			return helper.WritePGError(c, cerr)
		}
		user = &created
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	profile, err := loadProfile(db, user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}
	if profile != nil && profile.Role == constants.RoleBan {
		return helper.JsonError(c, fiber.StatusForbidden, constants.ErrBannedAccount)
	}

	access, err := issueSession(db, c, user, profile)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token":  access,
		"needs_onboard": profile == nil,
		"profile":       profile,
	})
}

/* ==========================
   LOGOUT
========================== */

// POST /api/auth/logout — blacklists the access token and revokes the
// refresh token cookie.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	tokenString := helper.GetRawAccessToken(c)
	if tokenString == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No token provided")
	}

	expiredAt := time.Now().Add(accessTTLDefault)
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		secret, _ := getJWTSecret()
		return []byte(secret), nil
	}); err == nil {
		if expUnix, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(expUnix), 0)
		}
	}

	if err := authRepo.BlacklistToken(db, &authModel.TokenBlacklist{
		Token:     tokenString,
		ExpiredAt: expiredAt,
	}); err != nil && !helper.IsUniqueViolation(err) {
		log.Printf("[ERROR] blacklist on logout: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log out")
	}

	if refresh := helper.GetRefreshTokenFromCookie(c); refresh != "" {
		if secret, err := getRefreshSecret(); err == nil {
			_ = authRepo.DeleteRefreshTokenByHash(db, computeRefreshHash(refresh, secret))
		}
	}

	clearAuthCookies(c)
	return helper.JsonOK(c, "Logged out", nil)
}

/* ==========================
   CHECK USER EXISTS
========================== */

// POST /api/auth/check-user-exists — lets the client avoid sending
// password-reset mails to unregistered addresses.
func CheckUserExists(db *gorm.DB, c *fiber.Ctx) error {
	var req authDto.CheckUserExistsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var count int64
	if err := db.Model(&authModel.UserModel{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"exists": count > 0,
	})
}
