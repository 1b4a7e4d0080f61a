package handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/service"
)

// RankingHandler отдаёт таблицу лидеров и её выгрузки
type RankingHandler struct {
	resultService *service.ResultService
}

// NewRankingHandler создает новый обработчик рейтинга
func NewRankingHandler(resultService *service.ResultService) *RankingHandler {
	return &RankingHandler{resultService: resultService}
}

// GetRanking возвращает отсортированный топ участников
// GET /api/ranking
func (h *RankingHandler) GetRanking(c *gin.Context) {
	ranking := h.resultService.BuildRanking()
	c.JSON(http.StatusOK, gin.H{
		"count":   len(ranking),
		"ranking": ranking,
	})
}

// ExportRanking выгружает рейтинг в CSV или XLSX. Оба формата строятся
// из одного и того же среза, чтобы файлы не расходились между собой.
// GET /api/ranking/export?format=csv|xlsx
func (h *RankingHandler) ExportRanking(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	ranking := h.resultService.BuildRanking()

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	var buf bytes.Buffer

	switch format {
	case "csv":
		if err := h.resultService.WriteCSV(&buf, ranking); err != nil {
			log.Printf("[RankingHandler] Ошибка генерации CSV: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate export"})
			return
		}
		filename := fmt.Sprintf("ranking_%s.csv", timestamp)
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())

	case "xlsx":
		if err := h.resultService.WriteXLSX(&buf, ranking); err != nil {
			log.Printf("[RankingHandler] Ошибка генерации XLSX: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate export"})
			return
		}
		filename := fmt.Sprintf("ranking_%s.xlsx", timestamp)
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
	}
}
