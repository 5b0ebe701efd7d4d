package auth

import (
	"time"

	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type JWTCustomClaims struct {
	UserID      uint            `json:"user_id"`
	Username    string          `json:"username"`
	Role        models.UserRole `json:"role"`
	StoreID     string          `json:"store_id"`
	IsSuperuser bool            `json:"is_superuser"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func GenerateAccessToken(secret string, user *models.User) (string, error) {
	claims := &JWTCustomClaims{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		StoreID:     user.StoreID,
		IsSuperuser: user.IsSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateTokenPair: access + refresh token üretir. Refresh token JTI'si
// logout'ta geçersiz kılınabilmesi için veritabanına yazılır.
func GenerateTokenPair(secret string, user *models.User) (*TokenPair, error) {
	access, err := GenerateAccessToken(secret, user)
	if err != nil {
		return nil, err
	}

	jti := uuid.NewString()
	expiresAt := time.Now().Add(RefreshTokenTTL)

	refreshClaims := &RefreshClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	record := models.RefreshToken{
		JTI:       jti,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// ParseRefreshToken: imzayı doğrular ve JTI'nin halen geçerli (revoke
// edilmemiş, süresi dolmamış) olduğunu veritabanından kontrol eder.
func ParseRefreshToken(secret, tokenStr string) (*RefreshClaims, *models.RefreshToken, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, nil, jwt.ErrTokenInvalidClaims
	}

	var record models.RefreshToken
	if err := database.DB.First(&record, "jti = ?", claims.ID).Error; err != nil {
		return nil, nil, jwt.ErrTokenInvalidId
	}
	if record.Revoked || time.Now().After(record.ExpiresAt) {
		return nil, nil, jwt.ErrTokenExpired
	}

	return claims, &record, nil
}
