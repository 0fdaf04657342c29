package schema

import (
	"strings"

	"github.com/studfix/studfix-server/internal/apperr"
	"github.com/studfix/studfix-server/internal/model"
)

// Normalize* заполняет значения по умолчанию. Вызывается на каждом
// create и update, а не только при миграции.

func NormalizeStudent(s *model.Student) {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.Phone = strings.TrimSpace(s.Phone)
}

func NormalizeLesson(l *model.Lesson) {
	l.Topic = strings.TrimSpace(l.Topic)
	if l.Status == "" {
		l.Status = model.LessonStatusCompleted
	}
}

func NormalizePayment(p *model.Payment) {
	if p.Type == "" {
		p.Type = model.PaymentTypeCash
	}
}

// Validate* проверяет обязательные поля канонической схемы

func ValidateStudent(s *model.Student) error {
	if s.FirstName == "" && s.LastName == "" {
		return apperr.Validationf("student name is required")
	}
	if s.Phone == "" {
		return apperr.Validationf("student phone is required")
	}
	if s.Rate < 0 {
		return apperr.Validationf("student rate must be non-negative")
	}
	return nil
}

func ValidateLesson(l *model.Lesson) error {
	if l.StudentID <= 0 {
		return apperr.Validationf("lesson student_id is required")
	}
	if l.Date.IsZero() {
		return apperr.Validationf("lesson date is required")
	}
	if l.Duration < 0 {
		return apperr.Validationf("lesson duration must be non-negative")
	}
	if !l.Status.Valid() {
		return apperr.Validationf("lesson status %q is invalid", l.Status)
	}
	if l.Understanding != "" && !l.Understanding.Valid() {
		return apperr.Validationf("lesson understanding %q is invalid", l.Understanding)
	}
	if l.Cost < 0 {
		return apperr.Validationf("lesson cost must be non-negative")
	}
	return nil
}

func ValidatePayment(p *model.Payment) error {
	if p.StudentID <= 0 {
		return apperr.Validationf("payment student_id is required")
	}
	if p.Amount < 0 {
		return apperr.Validationf("payment amount must be non-negative")
	}
	if p.Date.IsZero() {
		return apperr.Validationf("payment date is required")
	}
	if !p.Type.Valid() {
		return apperr.Validationf("payment type %q is invalid", p.Type)
	}
	return nil
}
