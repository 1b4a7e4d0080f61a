package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// statusActor — имя, которое записывается в колонку updated_by при
// изменении доступности викторины из админ-панели
const statusActor = "Admin"

// AdminHandler обрабатывает операции админ-панели: управление банком
// вопросов, флагом доступности и генерацию QR-кода для раздачи ссылки
type AdminHandler struct {
	questionService *service.QuestionService
	statusService   *service.StatusService
}

// NewAdminHandler создает новый обработчик админ-панели
func NewAdminHandler(questionService *service.QuestionService, statusService *service.StatusService) *AdminHandler {
	return &AdminHandler{
		questionService: questionService,
		statusService:   statusService,
	}
}

// GetStatus возвращает текущее состояние флага доступности
// GET /api/admin/status
func (h *AdminHandler) GetStatus(c *gin.Context) {
	status, err := h.statusService.Get()
	if err != nil {
		h.handleAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatusResponse(status))
}

// SetStatusRequest представляет запрос на изменение доступности
type SetStatusRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetStatus включает или выключает викторину для участников
// PUT /api/admin/status
func (h *AdminHandler) SetStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.statusService.SetEnabled(*req.Enabled, statusActor); err != nil {
		h.handleAdminError(c, err)
		return
	}

	status, err := h.statusService.Get()
	if err != nil {
		h.handleAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatusResponse(status))
}

// GetQuestions возвращает банк вопросов вместе с правильными ответами
// GET /api/admin/questions
func (h *AdminHandler) GetQuestions(c *gin.Context) {
	questions, err := h.questionService.Load()
	if err != nil {
		h.handleAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(questions),
		"questions": dto.NewQuestionRows(questions),
	})
}

// ReplaceQuestionsRequest представляет полный новый банк вопросов
type ReplaceQuestionsRequest struct {
	Questions []dto.QuestionRow `json:"questions" binding:"required"`
}

// ReplaceQuestions полностью заменяет банк вопросов
// PUT /api/admin/questions
func (h *AdminHandler) ReplaceQuestions(c *gin.Context) {
	var req ReplaceQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.questionService.ReplaceAll(h.toEntities(req.Questions)); err != nil {
		h.handleAdminError(c, err)
		return
	}

	log.Printf("[AdminHandler] Банк вопросов заменён, новых вопросов: %d", len(req.Questions))
	c.JSON(http.StatusOK, gin.H{"message": "Questions replaced", "count": len(req.Questions)})
}

// EditQuestionsRequest представляет отредактированный набор строк:
// строки с известным ID обновляются, отсутствующие в наборе удаляются
type EditQuestionsRequest struct {
	Questions []dto.QuestionRow `json:"questions" binding:"required"`
}

// EditQuestions применяет правки построчного редактирования
// PATCH /api/admin/questions
func (h *AdminHandler) EditQuestions(c *gin.Context) {
	var req EditQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.questionService.ApplyEdits(h.toEntities(req.Questions)); err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Questions updated", "count": len(req.Questions)})
}

// GetQRCode генерирует PNG с QR-кодом на переданный URL, чтобы
// организаторы могли раздать ссылку на викторину со сцены
// GET /api/admin/qrcode?url=...
func (h *AdminHandler) GetQRCode(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		log.Printf("[AdminHandler] Ошибка генерации QR-кода: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (h *AdminHandler) toEntities(rows []dto.QuestionRow) []entity.Question {
	questions := make([]entity.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, row.Question())
	}
	return questions
}

func (h *AdminHandler) handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[AdminHandler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
