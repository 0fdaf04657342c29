package service

import (
	"context"

	"github.com/studfix/studfix-server/internal/model"
)

// Resolver разрешает мягкие ссылки между сущностями. Удаление ученика не
// каскадирует, поэтому ссылка может оказаться висячей: это нормальное,
// отображаемое состояние, а не ошибка. Резолвер только читает и никогда
// не "чинит" записи.
type Resolver struct {
	students StudentStore
	lessons  LessonStore
	payments PaymentStore
}

func NewResolver(students StudentStore, lessons LessonStore, payments PaymentStore) *Resolver {
	return &Resolver{
		students: students,
		lessons:  lessons,
		payments: payments,
	}
}

// StudentOf возвращает ученика по ссылке из занятия или платежа.
// (nil, nil) означает "неизвестный ученик".
func (r *Resolver) StudentOf(ctx context.Context, studentID int64) (*model.Student, error) {
	return r.students.GetByID(ctx, studentID)
}

// LessonOf возвращает занятие, к которому привязан платёж, или nil
func (r *Resolver) LessonOf(ctx context.Context, payment *model.Payment) (*model.Lesson, error) {
	if payment.LessonID == nil {
		return nil, nil
	}
	return r.lessons.GetByID(ctx, *payment.LessonID)
}

// LessonsOf возвращает все занятия ученика
func (r *Resolver) LessonsOf(ctx context.Context, studentID int64) ([]*model.Lesson, error) {
	return r.lessons.GetByStudentID(ctx, studentID)
}

// PaymentsOf возвращает платежи ученика, опционально суженные до занятия
func (r *Resolver) PaymentsOf(ctx context.Context, studentID int64, lessonID *int64) ([]*model.Payment, error) {
	return r.payments.GetByStudentID(ctx, studentID, lessonID)
}
