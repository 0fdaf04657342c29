package model

import "time"

type PaymentType string

const (
	PaymentTypeCash     PaymentType = "cash"     // Наличные
	PaymentTypeCard     PaymentType = "card"     // Карта
	PaymentTypeTransfer PaymentType = "transfer" // Перевод
)

func (t PaymentType) Valid() bool {
	return t == PaymentTypeCash || t == PaymentTypeCard || t == PaymentTypeTransfer
}

type Payment struct {
	ID          int64       `json:"id"`
	StudentID   int64       `json:"student_id"`
	LessonID    *int64      `json:"lesson_id,omitempty"` // необязательная привязка к занятию
	Amount      float64     `json:"amount"`
	Date        time.Time   `json:"date"`
	Type        PaymentType `json:"type"`
	Description string      `json:"description,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// PaymentPatch частичное обновление платежа
type PaymentPatch struct {
	StudentID   *int64       `json:"student_id,omitempty"`
	LessonID    *int64       `json:"lesson_id,omitempty"`
	Amount      *float64     `json:"amount,omitempty"`
	Date        *time.Time   `json:"date,omitempty"`
	Type        *PaymentType `json:"type,omitempty"`
	Description *string      `json:"description,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
}

// Apply накладывает патч на запись
func (p PaymentPatch) Apply(pm *Payment) {
	if p.StudentID != nil {
		pm.StudentID = *p.StudentID
	}
	if p.LessonID != nil {
		pm.LessonID = p.LessonID
	}
	if p.Amount != nil {
		pm.Amount = *p.Amount
	}
	if p.Date != nil {
		pm.Date = *p.Date
	}
	if p.Type != nil {
		pm.Type = *p.Type
	}
	if p.Description != nil {
		pm.Description = *p.Description
	}
	if p.Notes != nil {
		pm.Notes = *p.Notes
	}
}
