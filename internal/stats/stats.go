// Package stats чистые агрегаты по занятиям и платежам.
// Все функции детерминированы: одинаковый вход даёт одинаковые корзины и суммы.
package stats

import (
	"time"

	"github.com/studfix/studfix-server/internal/model"
)

// Period окно разбивки дохода
type Period string

const (
	PeriodWeek  Period = "week"  // 7 дневных корзин, последняя — опорная дата
	PeriodMonth Period = "month" // 30 дневных корзин
	PeriodYear  Period = "year"  // 12 месячных корзин
)

func (p Period) Valid() bool {
	return p == PeriodWeek || p == PeriodMonth || p == PeriodYear
}

// Bucket одна корзина разбивки: метка даты или месяца и сумма платежей
type Bucket struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

const (
	dayLabel   = "2006-01-02"
	monthLabel = "2006-01"
)

// TotalIncome сумма платежей; пустой набор даёт 0
func TotalIncome(payments []*model.Payment) float64 {
	total := 0.0
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// PeriodBuckets раскладывает платежи по фиксированным корзинам периода,
// заканчивающегося опорной датой. Пустые корзины присутствуют с суммой 0.
func PeriodBuckets(payments []*model.Payment, period Period, ref time.Time) []Bucket {
	switch period {
	case PeriodWeek:
		return dailyBuckets(payments, ref, 7)
	case PeriodMonth:
		return dailyBuckets(payments, ref, 30)
	case PeriodYear:
		return monthlyBuckets(payments, ref, 12)
	}
	return nil
}

func dailyBuckets(payments []*model.Payment, ref time.Time, days int) []Bucket {
	buckets := make([]Bucket, days)
	index := make(map[string]int, days)

	start := ref.AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		label := start.AddDate(0, 0, i).Format(dayLabel)
		buckets[i] = Bucket{Label: label}
		index[label] = i
	}

	for _, p := range payments {
		if i, ok := index[p.Date.Format(dayLabel)]; ok {
			buckets[i].Amount += p.Amount
		}
	}

	return buckets
}

func monthlyBuckets(payments []*model.Payment, ref time.Time, months int) []Bucket {
	buckets := make([]Bucket, months)
	index := make(map[string]int, months)

	// Нормируем на первое число, чтобы AddDate не перескакивал короткие месяцы
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, -(months - 1), 0)
	for i := 0; i < months; i++ {
		label := start.AddDate(0, i, 0).Format(monthLabel)
		buckets[i] = Bucket{Label: label}
		index[label] = i
	}

	for _, p := range payments {
		if i, ok := index[p.Date.Format(monthLabel)]; ok {
			buckets[i].Amount += p.Amount
		}
	}

	return buckets
}

// AverageLessonCost средняя стоимость проведённого занятия:
// доход по платежам делим на число завершённых занятий, 0 если их нет
func AverageLessonCost(lessons []*model.Lesson, payments []*model.Payment) float64 {
	completed := 0
	for _, l := range lessons {
		if l.Status == model.LessonStatusCompleted {
			completed++
		}
	}
	if completed == 0 {
		return 0
	}
	return TotalIncome(payments) / float64(completed)
}

// CalculateLessonCost стоимость занятия из часовой ставки и длительности
// в минутах. Умножаем до деления, чтобы ставка за ровный час не ловила
// двоичную погрешность.
func CalculateLessonCost(rate float64, durationMinutes int) float64 {
	return rate * float64(durationMinutes) / 60
}

// StudentSummary сводка по одному ученику
type StudentSummary struct {
	StudentID        int64   `json:"student_id"`
	TotalLessons     int     `json:"total_lessons"`
	CompletedLessons int     `json:"completed_lessons"`
	CancelledLessons int     `json:"cancelled_lessons"`
	TotalPaid        float64 `json:"total_paid"`
	AverageCost      float64 `json:"average_cost"`
}

// SummarizeStudent считает сводку по наборам занятий и платежей ученика
func SummarizeStudent(studentID int64, lessons []*model.Lesson, payments []*model.Payment) StudentSummary {
	summary := StudentSummary{StudentID: studentID}
	for _, l := range lessons {
		summary.TotalLessons++
		switch l.Status {
		case model.LessonStatusCompleted:
			summary.CompletedLessons++
		case model.LessonStatusCancelled:
			summary.CancelledLessons++
		}
	}
	summary.TotalPaid = TotalIncome(payments)
	if summary.CompletedLessons > 0 {
		summary.AverageCost = summary.TotalPaid / float64(summary.CompletedLessons)
	}
	return summary
}

// Overview общие показатели по всем данным
type Overview struct {
	TotalIncome       float64 `json:"total_income"`
	TotalStudents     int     `json:"total_students"`
	TotalLessons      int     `json:"total_lessons"`
	TotalPayments     int     `json:"total_payments"`
	AverageLessonCost float64 `json:"average_lesson_cost"`
}
