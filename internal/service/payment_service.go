package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/studfix/studfix-server/internal/apperr"
	"github.com/studfix/studfix-server/internal/cache"
	"github.com/studfix/studfix-server/internal/model"
)

type PaymentService struct {
	payments PaymentStore
	lessons  LessonStore
	cache    StatsCache
	logger   *zap.Logger
}

func NewPaymentService(payments PaymentStore, lessons LessonStore, statsCache StatsCache, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		lessons:  lessons,
		cache:    statsCache,
		logger:   logger,
	}
}

// Create создаёт платёж. Привязка к занятию проверяется на принадлежность
// тому же ученику; нулевая сумма подставляется из стоимости занятия.
func (s *PaymentService) Create(ctx context.Context, payment *model.Payment) (int64, error) {
	if payment.LessonID != nil {
		lesson, err := s.checkLesson(ctx, *payment.LessonID, payment.StudentID)
		if err != nil {
			return 0, err
		}
		if lesson != nil && payment.Amount == 0 {
			payment.Amount = lesson.Cost
		}
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return 0, err
	}

	s.logger.Info("Payment created",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("student_id", payment.StudentID),
		zap.Float64("amount", payment.Amount))

	s.invalidate(ctx, payment.StudentID)
	return payment.ID, nil
}

// Get получает платёж по ID
func (s *PaymentService) Get(ctx context.Context, id int64) (*model.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, fmt.Errorf("payment %d: %w", id, apperr.ErrNotFound)
	}
	return payment, nil
}

// List получает все платежи
func (s *PaymentService) List(ctx context.Context) ([]*model.Payment, error) {
	return s.payments.List(ctx)
}

// ListByDateRange получает платежи с датой в [from, to)
func (s *PaymentService) ListByDateRange(ctx context.Context, from, to time.Time) ([]*model.Payment, error) {
	return s.payments.GetByDateRange(ctx, from, to)
}

// Update частично обновляет платёж. Смена ученика или привязки к занятию
// перепроверяет их согласованность на слитой записи.
func (s *PaymentService) Update(ctx context.Context, id int64, patch model.PaymentPatch) (*model.Payment, error) {
	if patch.LessonID != nil || patch.StudentID != nil {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		studentID := current.StudentID
		if patch.StudentID != nil {
			studentID = *patch.StudentID
		}
		lessonID := current.LessonID
		if patch.LessonID != nil {
			lessonID = patch.LessonID
		}
		if lessonID != nil {
			if _, err := s.checkLesson(ctx, *lessonID, studentID); err != nil {
				return nil, err
			}
		}
	}

	payment, err := s.payments.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, payment.StudentID)
	return payment, nil
}

// Delete удаляет платёж
func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return fmt.Errorf("payment %d: %w", id, apperr.ErrNotFound)
	}

	if err := s.payments.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, payment.StudentID)
	return nil
}

// checkLesson проверяет что занятие, если оно ещё существует, принадлежит
// ученику платежа. Висячая ссылка на удалённое занятие допустима.
func (s *PaymentService) checkLesson(ctx context.Context, lessonID, studentID int64) (*model.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, nil
	}
	if lesson.StudentID != studentID {
		return nil, apperr.Validationf("payment lesson %d belongs to student %d", lessonID, lesson.StudentID)
	}
	return lesson, nil
}

func (s *PaymentService) invalidate(ctx context.Context, studentID int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.KeyOverview, cache.KeyStudentSummary(studentID))
	}
}
