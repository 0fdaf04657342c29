package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/studfix/studfix-server/internal/apperr"
	"github.com/studfix/studfix-server/internal/cache"
	"github.com/studfix/studfix-server/internal/model"
)

type StudentService struct {
	students StudentStore
	cache    StatsCache
	logger   *zap.Logger
}

func NewStudentService(students StudentStore, statsCache StatsCache, logger *zap.Logger) *StudentService {
	return &StudentService{
		students: students,
		cache:    statsCache,
		logger:   logger,
	}
}

// Create создаёт ученика и возвращает присвоенный идентификатор
func (s *StudentService) Create(ctx context.Context, student *model.Student) (int64, error) {
	if err := s.students.Create(ctx, student); err != nil {
		return 0, err
	}

	s.logger.Info("Student created",
		zap.Int64("student_id", student.ID),
		zap.String("name", student.FirstName+" "+student.LastName))

	s.invalidate(ctx, student.ID)
	return student.ID, nil
}

// Get получает ученика по ID
func (s *StudentService) Get(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("student %d: %w", id, apperr.ErrNotFound)
	}
	return student, nil
}

// List получает всех учеников
func (s *StudentService) List(ctx context.Context) ([]*model.Student, error) {
	return s.students.List(ctx)
}

// Update частично обновляет ученика
func (s *StudentService) Update(ctx context.Context, id int64, patch model.StudentPatch) (*model.Student, error) {
	student, err := s.students.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return student, nil
}

// Delete удаляет ученика. Его занятия и платежи остаются: ссылки на него
// станут висячими, резолвер покажет их как "неизвестный ученик".
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Student deleted, lessons and payments kept", zap.Int64("student_id", id))
	s.invalidate(ctx, id)
	return nil
}

func (s *StudentService) invalidate(ctx context.Context, studentID int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.KeyOverview, cache.KeyStudentSummary(studentID))
	}
}
