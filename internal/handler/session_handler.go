package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/internal/service/sessionmanager"
	ws "github.com/yourusername/quiz-api/internal/websocket"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// SessionHandler обрабатывает игровой цикл: создание сессии, старт,
// ответы, переходы между экранами и вход в админ-панель
type SessionHandler struct {
	sessions      *sessionmanager.Manager
	statusService *service.StatusService
	authService   *service.AuthService
	jwtService    *auth.JWTService
	hub           *ws.Hub
}

// NewSessionHandler создает новый обработчик сессий
func NewSessionHandler(
	sessions *sessionmanager.Manager,
	statusService *service.StatusService,
	authService *service.AuthService,
	jwtService *auth.JWTService,
	hub *ws.Hub,
) *SessionHandler {
	return &SessionHandler{
		sessions:      sessions,
		statusService: statusService,
		authService:   authService,
		jwtService:    jwtService,
		hub:           hub,
	}
}

// CreateSession создает новую сессию на экране Home
// POST /api/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session := h.sessions.Create()
	c.JSON(http.StatusCreated, h.renderSession(session))
}

// GetSession возвращает текущий срез состояния сессии
// GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	h.refreshAdminRights(c, session)
	c.JSON(http.StatusOK, h.renderSession(session))
}

// refreshAdminRights снимает права администратора, если кука с токеном
// отсутствует или токен не проходит проверку (истёк, отозван). Вызывается
// на пути чтения: следующий Render() сам уведёт сессию с экрана Admin.
// AdminLogin проверки не требует - он только что выпустил токен.
func (h *SessionHandler) refreshAdminRights(c *gin.Context, session *sessionmanager.Session) {
	cookie, err := c.Request.Cookie(auth.AdminTokenCookie)
	if err != nil {
		session.RevokeAdmin()
		return
	}
	if _, err := h.jwtService.ParseToken(cookie.Value); err != nil {
		log.Printf("[SessionHandler] Админский токен сессии %s недействителен: %v", session.ID, err)
		session.RevokeAdmin()
	}
}

// StartQuizRequest представляет запрос на старт викторины
type StartQuizRequest struct {
	Name string `json:"name"`
}

// StartQuiz выполняет переход Home -> Quiz
// POST /api/sessions/:id/start
func (h *SessionHandler) StartQuiz(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req StartQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.StartQuiz(req.Name); err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.renderSession(session))
}

// SubmitAnswerRequest представляет запрос с выбранным вариантом ответа
type SubmitAnswerRequest struct {
	ChoiceIndex *int `json:"choice_index" binding:"required"`
}

// SubmitAnswer обрабатывает выбор варианта ответа
// POST /api/sessions/:id/answer
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.SubmitAnswer(*req.ChoiceIndex); err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.renderSession(session))
}

// NextQuestion переходит к следующему вопросу или на экран End
// POST /api/sessions/:id/next
func (h *SessionHandler) NextQuestion(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := session.NextQuestion(); err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.renderSession(session))
}

// Restart выполняет переход End -> Home
// POST /api/sessions/:id/restart
func (h *SessionHandler) Restart(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := session.Restart(); err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.renderSession(session))
}

// DeleteSession завершает сессию
// DELETE /api/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	h.sessions.Remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Subscribe апгрейдит соединение до WebSocket для получения тиков
// обратного отсчёта и событий сессии
// GET /api/sessions/:id/ws
func (h *SessionHandler) Subscribe(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := ws.ServeWS(h.hub, session.ID, c.Writer, c.Request); err != nil {
		log.Printf("[SessionHandler] Ошибка апгрейда WebSocket для сессии %s: %v", session.ID, err)
	}
}

// AdminLoginRequest представляет запрос входа в админ-панель
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AdminLogin проверяет пароль, выпускает админский токен и выполняет
// переход Home -> Admin
// POST /api/sessions/:id/admin/login
func (h *SessionHandler) AdminLogin(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	if err := session.EnterAdmin(); err != nil {
		h.handleSessionError(c, err)
		return
	}

	secure := c.Request.TLS != nil
	h.jwtService.SetTokenCookie(c.Writer, token, secure)

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(h.jwtService.TokenExpiry().Seconds()),
		"session":    h.renderSession(session),
	})
}

// AdminLogout выполняет переход Admin -> Home и снимает права
// POST /api/sessions/:id/admin/logout
func (h *SessionHandler) AdminLogout(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	session.LeaveAdmin()

	secure := c.Request.TLS != nil
	h.jwtService.ClearTokenCookie(c.Writer, secure)

	c.JSON(http.StatusOK, h.renderSession(session))
}

// lookup достаёт сессию по :id, отвечая 404 при промахе
func (h *SessionHandler) lookup(c *gin.Context) (*sessionmanager.Session, bool) {
	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return session, true
}

// renderSession строит ответ с текущим срезом состояния. Для экрана Home
// добавляется флаг доступности, чтобы интерфейс мог заблокировать форму.
func (h *SessionHandler) renderSession(session *sessionmanager.Session) dto.SessionResponse {
	snap := session.Render()

	var quizEnabled *bool
	if snap.Screen == sessionmanager.ScreenHome {
		enabled := h.statusService.IsQuizEnabled()
		quizEnabled = &enabled
	}

	return dto.NewSessionResponse(snap, quizEnabled)
}

// handleSessionError переводит ошибки переходов в HTTP-статусы.
// Все они показываются пользователю встроенным сообщением, наружу
// необработанные ошибки не уходят.
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The quiz is not available right now. Wait for the organizers to enable it."})
	case errors.Is(err, apperrors.ErrEmptyQuestionSet):
		c.JSON(http.StatusConflict, gin.H{"error": "No questions found."})
	case errors.Is(err, apperrors.ErrAuth):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[SessionHandler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
