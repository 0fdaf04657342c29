package service

import (
	"context"
	"time"

	"github.com/studfix/studfix-server/internal/model"
)

// Интерфейсы хранилища, реализуются репозиториями.
// GetByID возвращает (nil, nil), когда записи нет.

type StudentStore interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	List(ctx context.Context) ([]*model.Student, error)
	Update(ctx context.Context, id int64, patch model.StudentPatch) (*model.Student, error)
	Delete(ctx context.Context, id int64) error
}

type LessonStore interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	GetByID(ctx context.Context, id int64) (*model.Lesson, error)
	List(ctx context.Context) ([]*model.Lesson, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*model.Lesson, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*model.Lesson, error)
	Update(ctx context.Context, id int64, patch model.LessonPatch) (*model.Lesson, error)
	Delete(ctx context.Context, id int64) error
}

type PaymentStore interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id int64) (*model.Payment, error)
	List(ctx context.Context) ([]*model.Payment, error)
	GetByStudentID(ctx context.Context, studentID int64, lessonID *int64) ([]*model.Payment, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*model.Payment, error)
	Update(ctx context.Context, id int64, patch model.PaymentPatch) (*model.Payment, error)
	Delete(ctx context.Context, id int64) error
}

// StatsCache опциональный кеш агрегатов. Промах и ошибка равнозначны:
// читаем из хранилища.
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
	Invalidate(ctx context.Context, keys ...string)
}
