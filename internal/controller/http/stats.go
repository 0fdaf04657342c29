package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studfix/studfix-server/internal/service"
	"github.com/studfix/studfix-server/internal/stats"
)

// GetStatistics обрабатывает GET /api/statistics
func (h *Handler) GetStatistics(c *gin.Context) {
	overview, err := h.stats.Overview(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetIncomeByPeriod обрабатывает GET /api/statistics/income?period=week|month|year&date=2024-01-07.
// Без даты опорной считается сегодняшний день.
func (h *Handler) GetIncomeByPeriod(c *gin.Context) {
	period := stats.Period(c.DefaultQuery("period", string(stats.PeriodWeek)))

	ref := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		ref = parsed
	}

	buckets, err := h.stats.IncomeByPeriod(c.Request.Context(), period, ref)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": period, "buckets": buckets})
}

// ImportLegacy обрабатывает POST /api/import: выгрузка старого клиента
func (h *Handler) ImportLegacy(c *gin.Context) {
	var dump service.LegacyDump
	if err := c.ShouldBindJSON(&dump); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	report, err := h.importer.Import(c.Request.Context(), dump)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
