package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/studfix/studfix-server/internal/apperr"
	"github.com/studfix/studfix-server/internal/cache"
	"github.com/studfix/studfix-server/internal/stats"
)

type StatsService struct {
	students StudentStore
	lessons  LessonStore
	payments PaymentStore
	resolver *Resolver
	cache    StatsCache
	logger   *zap.Logger
}

func NewStatsService(
	students StudentStore,
	lessons LessonStore,
	payments PaymentStore,
	resolver *Resolver,
	statsCache StatsCache,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		students: students,
		lessons:  lessons,
		payments: payments,
		resolver: resolver,
		cache:    statsCache,
		logger:   logger,
	}
}

// Overview общие показатели: доход, количество записей, средняя стоимость занятия
func (s *StatsService) Overview(ctx context.Context) (*stats.Overview, error) {
	if s.cache != nil {
		var cached stats.Overview
		if s.cache.Get(ctx, cache.KeyOverview, &cached) {
			return &cached, nil
		}
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	lessons, err := s.lessons.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}

	overview := &stats.Overview{
		TotalIncome:       stats.TotalIncome(payments),
		TotalStudents:     len(students),
		TotalLessons:      len(lessons),
		TotalPayments:     len(payments),
		AverageLessonCost: stats.AverageLessonCost(lessons, payments),
	}

	if s.cache != nil {
		s.cache.Set(ctx, cache.KeyOverview, overview)
	}
	return overview, nil
}

// IncomeByPeriod доход по корзинам периода, заканчивающегося опорной датой.
// Платежи берутся диапазонной выборкой по индексу даты.
func (s *StatsService) IncomeByPeriod(ctx context.Context, period stats.Period, ref time.Time) ([]stats.Bucket, error) {
	if !period.Valid() {
		return nil, apperr.Validationf("unknown period %q", period)
	}

	from, to := periodWindow(period, ref)
	payments, err := s.payments.GetByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return stats.PeriodBuckets(payments, period, ref), nil
}

// StudentSummary сводка по ученику: счётчики занятий, оплачено, средняя стоимость
func (s *StatsService) StudentSummary(ctx context.Context, studentID int64) (*stats.StudentSummary, error) {
	if s.cache != nil {
		var cached stats.StudentSummary
		if s.cache.Get(ctx, cache.KeyStudentSummary(studentID), &cached) {
			return &cached, nil
		}
	}

	student, err := s.resolver.StudentOf(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("student %d: %w", studentID, apperr.ErrNotFound)
	}

	lessons, err := s.resolver.LessonsOf(ctx, studentID)
	if err != nil {
		return nil, err
	}
	payments, err := s.resolver.PaymentsOf(ctx, studentID, nil)
	if err != nil {
		return nil, err
	}

	summary := stats.SummarizeStudent(studentID, lessons, payments)

	if s.cache != nil {
		s.cache.Set(ctx, cache.KeyStudentSummary(studentID), &summary)
	}
	return &summary, nil
}

// periodWindow границы выборки [from, to) под корзины периода
func periodWindow(period stats.Period, ref time.Time) (time.Time, time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	switch period {
	case stats.PeriodWeek:
		return day.AddDate(0, 0, -6), day.AddDate(0, 0, 1)
	case stats.PeriodMonth:
		return day.AddDate(0, 0, -29), day.AddDate(0, 0, 1)
	default: // year
		month := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return month.AddDate(0, -11, 0), month.AddDate(0, 1, 0)
	}
}
