package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studfix/studfix-server/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func payment(date string, amount float64) *model.Payment {
	return &model.Payment{StudentID: 1, Amount: amount, Date: day(date), Type: model.PaymentTypeCash}
}

func TestTotalIncomeEmpty(t *testing.T) {
	assert.Equal(t, 0.0, TotalIncome(nil))
	assert.Equal(t, 0.0, TotalIncome([]*model.Payment{}))
}

func TestTotalIncomeOrderIndependent(t *testing.T) {
	a := []*model.Payment{payment("2024-01-01", 1000), payment("2024-01-02", 500), payment("2024-01-03", 200)}
	b := []*model.Payment{a[2], a[0], a[1]}

	assert.Equal(t, 1700.0, TotalIncome(a))
	assert.Equal(t, TotalIncome(a), TotalIncome(b))
}

func TestPeriodBucketsWeek(t *testing.T) {
	payments := []*model.Payment{
		payment("2024-01-01", 1000),
		payment("2024-01-01", 500),
		payment("2024-01-03", 200),
	}

	buckets := PeriodBuckets(payments, PeriodWeek, day("2024-01-07"))

	assert.Len(t, buckets, 7)
	assert.Equal(t, "2024-01-01", buckets[0].Label)
	assert.Equal(t, "2024-01-07", buckets[6].Label)
	assert.Equal(t, 1500.0, buckets[0].Amount)
	assert.Equal(t, 200.0, buckets[2].Amount)

	sum := 0.0
	for _, b := range buckets {
		if b.Label != "2024-01-01" && b.Label != "2024-01-03" {
			assert.Equal(t, 0.0, b.Amount, "bucket %s", b.Label)
		}
		sum += b.Amount
	}
	assert.Equal(t, TotalIncome(payments), sum)
}

func TestPeriodBucketsWeekIgnoresOutsideWindow(t *testing.T) {
	payments := []*model.Payment{
		payment("2023-12-31", 9999), // за день до окна
		payment("2024-01-08", 9999), // на день позже опорной даты
		payment("2024-01-05", 300),
	}

	buckets := PeriodBuckets(payments, PeriodWeek, day("2024-01-07"))

	sum := 0.0
	for _, b := range buckets {
		sum += b.Amount
	}
	assert.Equal(t, 300.0, sum)
}

func TestPeriodBucketsMonth(t *testing.T) {
	buckets := PeriodBuckets(nil, PeriodMonth, day("2024-03-15"))

	assert.Len(t, buckets, 30)
	assert.Equal(t, "2024-02-15", buckets[0].Label)
	assert.Equal(t, "2024-03-15", buckets[29].Label)
	for _, b := range buckets {
		assert.Equal(t, 0.0, b.Amount)
	}
}

func TestPeriodBucketsYear(t *testing.T) {
	payments := []*model.Payment{
		payment("2024-01-10", 1000),
		payment("2024-01-25", 500),
		payment("2023-06-01", 200),
	}

	buckets := PeriodBuckets(payments, PeriodYear, day("2024-01-07"))

	assert.Len(t, buckets, 12)
	assert.Equal(t, "2023-02", buckets[0].Label)
	assert.Equal(t, "2024-01", buckets[11].Label)
	assert.Equal(t, 1500.0, buckets[11].Amount)
	assert.Equal(t, 200.0, buckets[4].Amount)
}

func TestPeriodBucketsUnknownPeriod(t *testing.T) {
	assert.Nil(t, PeriodBuckets(nil, Period("decade"), day("2024-01-07")))
}

func TestPeriodBucketsDeterministic(t *testing.T) {
	payments := []*model.Payment{payment("2024-01-02", 100), payment("2024-01-04", 250)}
	ref := day("2024-01-07")

	assert.Equal(t, PeriodBuckets(payments, PeriodWeek, ref), PeriodBuckets(payments, PeriodWeek, ref))
}

func TestCalculateLessonCost(t *testing.T) {
	assert.Equal(t, 1800.0, CalculateLessonCost(1200, 90))
	assert.Equal(t, 1000.0, CalculateLessonCost(1000, 60))
	assert.Equal(t, 0.0, CalculateLessonCost(0, 90))
}

func TestAverageLessonCost(t *testing.T) {
	lessons := []*model.Lesson{
		{Status: model.LessonStatusCompleted},
		{Status: model.LessonStatusCompleted},
		{Status: model.LessonStatusCancelled},
	}
	payments := []*model.Payment{payment("2024-01-01", 3000)}

	// Отменённые занятия в делителе не участвуют
	assert.Equal(t, 1500.0, AverageLessonCost(lessons, payments))
}

func TestAverageLessonCostNoCompleted(t *testing.T) {
	lessons := []*model.Lesson{{Status: model.LessonStatusCancelled}}
	payments := []*model.Payment{payment("2024-01-01", 3000)}

	assert.Equal(t, 0.0, AverageLessonCost(lessons, payments))
	assert.Equal(t, 0.0, AverageLessonCost(nil, nil))
}

func TestSummarizeStudent(t *testing.T) {
	lessons := []*model.Lesson{
		{StudentID: 7, Status: model.LessonStatusCompleted},
		{StudentID: 7, Status: model.LessonStatusCompleted},
		{StudentID: 7, Status: model.LessonStatusCancelled},
	}
	payments := []*model.Payment{payment("2024-01-01", 2000), payment("2024-01-02", 1000)}

	summary := SummarizeStudent(7, lessons, payments)

	assert.Equal(t, int64(7), summary.StudentID)
	assert.Equal(t, 3, summary.TotalLessons)
	assert.Equal(t, 2, summary.CompletedLessons)
	assert.Equal(t, 1, summary.CancelledLessons)
	assert.Equal(t, 3000.0, summary.TotalPaid)
	assert.Equal(t, 1500.0, summary.AverageCost)
}

func TestSummarizeStudentNoCompletedLessons(t *testing.T) {
	lessons := []*model.Lesson{{StudentID: 7, Status: model.LessonStatusCancelled}}
	payments := []*model.Payment{payment("2024-01-01", 500)}

	summary := SummarizeStudent(7, lessons, payments)

	assert.Equal(t, 500.0, summary.TotalPaid)
	assert.Equal(t, 0.0, summary.AverageCost) // не NaN и не ошибка
}
