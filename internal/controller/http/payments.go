package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studfix/studfix-server/internal/model"
)

// ListPayments обрабатывает GET /api/payments с опциональным диапазоном ?from=&to=
func (h *Handler) ListPayments(c *gin.Context) {
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

		payments, err := h.payments.ListByDateRange(c.Request.Context(), from, to)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, payments)
		return
	}

	payments, err := h.payments.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// CreatePayment обрабатывает POST /api/payments
func (h *Handler) CreatePayment(c *gin.Context) {
	var payment model.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	id, err := h.payments.Create(c.Request.Context(), &payment)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetPayment обрабатывает GET /api/payments/:id
func (h *Handler) GetPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	payment, err := h.payments.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// UpdatePayment обрабатывает PUT /api/payments/:id (частичное обновление)
func (h *Handler) UpdatePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch model.PaymentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	payment, err := h.payments.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// DeletePayment обрабатывает DELETE /api/payments/:id
func (h *Handler) DeletePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.payments.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
