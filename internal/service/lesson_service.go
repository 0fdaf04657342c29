package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/studfix/studfix-server/internal/apperr"
	"github.com/studfix/studfix-server/internal/cache"
	"github.com/studfix/studfix-server/internal/model"
	"github.com/studfix/studfix-server/internal/stats"
)

type LessonService struct {
	lessons  LessonStore
	students StudentStore
	cache    StatsCache
	logger   *zap.Logger
}

func NewLessonService(lessons LessonStore, students StudentStore, statsCache StatsCache, logger *zap.Logger) *LessonService {
	return &LessonService{
		lessons:  lessons,
		students: students,
		cache:    statsCache,
		logger:   logger,
	}
}

// Create создаёт занятие. Если стоимость не задана, выводит её из ставки
// ученика и длительности.
func (s *LessonService) Create(ctx context.Context, lesson *model.Lesson) (int64, error) {
	if lesson.Cost == 0 {
		cost, err := s.deriveCost(ctx, lesson.StudentID, lesson.Duration)
		if err != nil {
			return 0, err
		}
		lesson.Cost = cost
	}

	if err := s.lessons.Create(ctx, lesson); err != nil {
		return 0, err
	}

	s.logger.Info("Lesson created",
		zap.Int64("lesson_id", lesson.ID),
		zap.Int64("student_id", lesson.StudentID),
		zap.Float64("cost", lesson.Cost))

	s.refreshLastLesson(ctx, lesson)
	s.invalidate(ctx, lesson.StudentID)
	return lesson.ID, nil
}

// Get получает занятие по ID
func (s *LessonService) Get(ctx context.Context, id int64) (*model.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson %d: %w", id, apperr.ErrNotFound)
	}
	return lesson, nil
}

// List получает все занятия
func (s *LessonService) List(ctx context.Context) ([]*model.Lesson, error) {
	return s.lessons.List(ctx)
}

// ListByDateRange получает занятия с датой в [from, to)
func (s *LessonService) ListByDateRange(ctx context.Context, from, to time.Time) ([]*model.Lesson, error) {
	return s.lessons.GetByDateRange(ctx, from, to)
}

// Update частично обновляет занятие. Смена ученика или длительности без
// явной стоимости пересчитывает её заново.
func (s *LessonService) Update(ctx context.Context, id int64, patch model.LessonPatch) (*model.Lesson, error) {
	if patch.Cost == nil && (patch.StudentID != nil || patch.Duration != nil) {
		current, err := s.lessons.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, fmt.Errorf("lesson %d: %w", id, apperr.ErrNotFound)
		}

		studentID := current.StudentID
		if patch.StudentID != nil {
			studentID = *patch.StudentID
		}
		duration := current.Duration
		if patch.Duration != nil {
			duration = *patch.Duration
		}

		cost, err := s.deriveCost(ctx, studentID, duration)
		if err != nil {
			return nil, err
		}
		if cost > 0 {
			patch.Cost = &cost
		}
	}

	lesson, err := s.lessons.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.refreshLastLesson(ctx, lesson)
	s.invalidate(ctx, lesson.StudentID)
	return lesson, nil
}

// Delete удаляет занятие. Платежи со ссылкой на него остаются.
func (s *LessonService) Delete(ctx context.Context, id int64) error {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lesson == nil {
		return fmt.Errorf("lesson %d: %w", id, apperr.ErrNotFound)
	}

	if err := s.lessons.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, lesson.StudentID)
	return nil
}

// deriveCost считает стоимость по ставке ученика; без ученика или ставки даёт 0
func (s *LessonService) deriveCost(ctx context.Context, studentID int64, durationMinutes int) (float64, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return 0, err
	}
	if student == nil || student.Rate <= 0 {
		return 0, nil
	}
	return stats.CalculateLessonCost(student.Rate, durationMinutes), nil
}

// refreshLastLesson обновляет кешированную сводку последнего занятия ученика.
// Сбой здесь не валит запись занятия, только логируется.
func (s *LessonService) refreshLastLesson(ctx context.Context, lesson *model.Lesson) {
	if lesson.Status != model.LessonStatusCompleted {
		return
	}

	summary := &model.LastLesson{
		Date:          lesson.Date,
		Topic:         lesson.Topic,
		Understanding: lesson.Understanding,
		Homework:      lesson.Homework,
	}
	_, err := s.students.Update(ctx, lesson.StudentID, model.StudentPatch{LastLesson: summary})
	if err != nil {
		s.logger.Warn("Failed to refresh student last lesson",
			zap.Int64("student_id", lesson.StudentID),
			zap.Int64("lesson_id", lesson.ID),
			zap.Error(err))
	}
}

func (s *LessonService) invalidate(ctx context.Context, studentID int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.KeyOverview, cache.KeyStudentSummary(studentID))
	}
}
