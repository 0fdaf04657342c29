// Package http тонкая HTTP-прослойка над сервисами ядра: четыре ресурса
// CRUD плюс статистика. Никакой логики, только маршрутизация и коды ответов.
package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/studfix/studfix-server/internal/service"
)

type Handler struct {
	students *service.StudentService
	lessons  *service.LessonService
	payments *service.PaymentService
	stats    *service.StatsService
	importer *service.ImportService
	resolver *service.Resolver
	logger   *zap.Logger
}

func NewHandler(
	students *service.StudentService,
	lessons *service.LessonService,
	payments *service.PaymentService,
	statsService *service.StatsService,
	importer *service.ImportService,
	resolver *service.Resolver,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		students: students,
		lessons:  lessons,
		payments: payments,
		stats:    statsService,
		importer: importer,
		resolver: resolver,
		logger:   logger,
	}
}

// NewRouter собирает маршруты API
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger), gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/students", h.ListStudents)
		api.POST("/students", h.CreateStudent)
		api.GET("/students/:id", h.GetStudent)
		api.PUT("/students/:id", h.UpdateStudent)
		api.DELETE("/students/:id", h.DeleteStudent)
		api.GET("/students/:id/summary", h.GetStudentSummary)
		api.GET("/students/:id/lessons", h.ListStudentLessons)
		api.GET("/students/:id/payments", h.ListStudentPayments)

		api.GET("/lessons", h.ListLessons)
		api.POST("/lessons", h.CreateLesson)
		api.GET("/lessons/:id", h.GetLesson)
		api.PUT("/lessons/:id", h.UpdateLesson)
		api.DELETE("/lessons/:id", h.DeleteLesson)

		api.GET("/payments", h.ListPayments)
		api.POST("/payments", h.CreatePayment)
		api.GET("/payments/:id", h.GetPayment)
		api.PUT("/payments/:id", h.UpdatePayment)
		api.DELETE("/payments/:id", h.DeletePayment)

		api.GET("/statistics", h.GetStatistics)
		api.GET("/statistics/income", h.GetIncomeByPeriod)

		api.POST("/import", h.ImportLegacy)
	}

	return router
}
