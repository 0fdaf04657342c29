package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studfix/studfix-server/internal/model"
)

// ListLessons обрабатывает GET /api/lessons с опциональным диапазоном ?from=&to=
func (h *Handler) ListLessons(c *gin.Context) {
	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw != "" && toRaw != "" {
		from, err := parseDate(fromRaw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		to, err := parseDate(toRaw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}

		lessons, err := h.lessons.ListByDateRange(c.Request.Context(), from, to)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, lessons)
		return
	}

	lessons, err := h.lessons.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// CreateLesson обрабатывает POST /api/lessons
func (h *Handler) CreateLesson(c *gin.Context) {
	var lesson model.Lesson
	if err := c.ShouldBindJSON(&lesson); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	id, err := h.lessons.Create(c.Request.Context(), &lesson)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetLesson обрабатывает GET /api/lessons/:id
func (h *Handler) GetLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	lesson, err := h.lessons.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// UpdateLesson обрабатывает PUT /api/lessons/:id (частичное обновление)
func (h *Handler) UpdateLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch model.LessonPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	lesson, err := h.lessons.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// DeleteLesson обрабатывает DELETE /api/lessons/:id
func (h *Handler) DeleteLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.lessons.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
