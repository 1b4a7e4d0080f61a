package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AdminTokenCookie - имя куки с админским токеном
const AdminTokenCookie = "admin_token"

// AdminClaims содержит поля админского токена
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService выпускает и проверяет админские JWT. Других пользователей в
// системе нет: игроки анонимны, токен нужен только админ-панели.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService создает новый сервис JWT и возвращает ошибку при проблемах
func NewJWTService(secret string, expiryHrs int) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required for JWTService")
	}
	if expiryHrs <= 0 {
		expiryHrs = 12
	}
	return &JWTService{
		secret: []byte(secret),
		expiry: time.Duration(expiryHrs) * time.Hour,
	}, nil
}

// GenerateAdminToken выпускает подписанный токен с ролью admin
func (s *JWTService) GenerateAdminToken() (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена
func (s *JWTService) ParseToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid admin token")
	}
	if claims.Role != "admin" {
		return nil, fmt.Errorf("token has no admin role")
	}
	return claims, nil
}

// TokenExpiry возвращает срок жизни выпускаемых токенов
func (s *JWTService) TokenExpiry() time.Duration {
	return s.expiry
}

// SetTokenCookie выставляет куку с админским токеном
func (s *JWTService) SetTokenCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.expiry.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookie удаляет куку с админским токеном (выход из админки)
func (s *JWTService) ClearTokenCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
