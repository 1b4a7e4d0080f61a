package service

import (
	"crypto/subtle"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// AuthService проверяет пароль админ-панели и выпускает админские токены.
// Единственный общий секрет, без пользовательских аккаунтов.
type AuthService struct {
	password   string
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации администратора
func NewAuthService(password string, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		password:   password,
		jwtService: jwtService,
	}
}

// Login проверяет пароль и возвращает подписанный админский токен.
// Неверный пароль - apperrors.ErrAuth.
func (s *AuthService) Login(password string) (string, error) {
	if !s.checkPassword(password) {
		log.Printf("[AuthService] Неудачная попытка входа в админ-панель")
		return "", apperrors.ErrAuth
	}

	token, err := s.jwtService.GenerateAdminToken()
	if err != nil {
		return "", err
	}
	log.Printf("[AuthService] Администратор вошёл в панель")
	return token, nil
}

// checkPassword сравнивает пароль с настроенным секретом. Если секрет
// хранится bcrypt-хешем, сравниваем bcrypt'ом; открытый текст сравниваем
// за постоянное время.
func (s *AuthService) checkPassword(password string) bool {
	if isBcryptHash(s.password) {
		return bcrypt.CompareHashAndPassword([]byte(s.password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.password), []byte(password)) == 1
}

// isBcryptHash распознаёт bcrypt-хеш по префиксу ("$2a$", "$2b$", "$2y$")
func isBcryptHash(value string) bool {
	return strings.HasPrefix(value, "$2a$") ||
		strings.HasPrefix(value, "$2b$") ||
		strings.HasPrefix(value, "$2y$")
}
