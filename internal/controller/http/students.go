package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studfix/studfix-server/internal/model"
)

// ListStudents обрабатывает GET /api/students
func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// CreateStudent обрабатывает POST /api/students
func (h *Handler) CreateStudent(c *gin.Context) {
	var student model.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	id, err := h.students.Create(c.Request.Context(), &student)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetStudent обрабатывает GET /api/students/:id
func (h *Handler) GetStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// UpdateStudent обрабатывает PUT /api/students/:id (частичное обновление)
func (h *Handler) UpdateStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch model.StudentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	student, err := h.students.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// DeleteStudent обрабатывает DELETE /api/students/:id
func (h *Handler) DeleteStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetStudentSummary обрабатывает GET /api/students/:id/summary
func (h *Handler) GetStudentSummary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	summary, err := h.stats.StudentSummary(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListStudentLessons обрабатывает GET /api/students/:id/lessons.
// Работает и для удалённого ученика: висячие занятия остаются видимыми.
func (h *Handler) ListStudentLessons(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	lessons, err := h.resolver.LessonsOf(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// ListStudentPayments обрабатывает GET /api/students/:id/payments
func (h *Handler) ListStudentPayments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var lessonID *int64
	if raw := c.Query("lesson_id"); raw != "" {
		parsed, ok := parseQueryID(c, raw)
		if !ok {
			return
		}
		lessonID = &parsed
	}

	payments, err := h.resolver.PaymentsOf(c.Request.Context(), id, lessonID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
