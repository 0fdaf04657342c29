package model

import "time"

type LessonStatus string

const (
	LessonStatusCompleted LessonStatus = "completed" // Проведено
	LessonStatusCancelled LessonStatus = "cancelled" // Отменено
)

// Valid проверяет что статус один из известных
func (s LessonStatus) Valid() bool {
	return s == LessonStatusCompleted || s == LessonStatusCancelled
}

// Understanding оценка усвоения материала на занятии
type Understanding string

const (
	UnderstandingExcellent    Understanding = "excellent"
	UnderstandingGood         Understanding = "good"
	UnderstandingSatisfactory Understanding = "satisfactory"
	UnderstandingPoor         Understanding = "poor"
)

func (u Understanding) Valid() bool {
	switch u {
	case UnderstandingExcellent, UnderstandingGood, UnderstandingSatisfactory, UnderstandingPoor:
		return true
	}
	return false
}

type Lesson struct {
	ID            int64         `json:"id"`
	StudentID     int64         `json:"student_id"`
	Date          time.Time     `json:"date"`
	Duration      int           `json:"duration"` // в минутах
	Topic         string        `json:"topic"`
	Understanding Understanding `json:"understanding,omitempty"`
	Homework      string        `json:"homework,omitempty"`
	Status        LessonStatus  `json:"status"`
	Cost          float64       `json:"cost"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// LessonPatch частичное обновление занятия
type LessonPatch struct {
	StudentID     *int64         `json:"student_id,omitempty"`
	Date          *time.Time     `json:"date,omitempty"`
	Duration      *int           `json:"duration,omitempty"`
	Topic         *string        `json:"topic,omitempty"`
	Understanding *Understanding `json:"understanding,omitempty"`
	Homework      *string        `json:"homework,omitempty"`
	Status        *LessonStatus  `json:"status,omitempty"`
	Cost          *float64       `json:"cost,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
}

// Apply накладывает патч на запись
func (p LessonPatch) Apply(l *Lesson) {
	if p.StudentID != nil {
		l.StudentID = *p.StudentID
	}
	if p.Date != nil {
		l.Date = *p.Date
	}
	if p.Duration != nil {
		l.Duration = *p.Duration
	}
	if p.Topic != nil {
		l.Topic = *p.Topic
	}
	if p.Understanding != nil {
		l.Understanding = *p.Understanding
	}
	if p.Homework != nil {
		l.Homework = *p.Homework
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Cost != nil {
		l.Cost = *p.Cost
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}
}
