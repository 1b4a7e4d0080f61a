package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/pkg/auth"
)

// AdminMiddleware обеспечивает аутентификацию для маршрутов админ-панели
type AdminMiddleware struct {
	jwtService *auth.JWTService
}

// NewAdminMiddleware создает новый middleware админ-панели
func NewAdminMiddleware(jwtService *auth.JWTService) *AdminMiddleware {
	return &AdminMiddleware{jwtService: jwtService}
}

// RequireAdmin проверяет админский токен. Токен берётся из куки
// admin_token, заголовок Authorization поддерживается для обратной
// совместимости с API-клиентами.
func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := tokenFromRequest(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": "token_invalid"})
			c.Abort()
			return
		}

		c.Set("admin_role", claims.Role)
		c.Next()
	}
}

// tokenFromRequest извлекает токен из куки или заголовка Bearer
func tokenFromRequest(c *gin.Context) (string, error) {
	if cookie, err := c.Request.Cookie(auth.AdminTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", http.ErrNoCookie
	}

	// Проверяем формат заголовка Bearer {token}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", http.ErrNoCookie
	}
	return parts[1], nil
}
