package model

import "time"

// Schedule постоянный слот в расписании ученика
type Schedule struct {
	Day  string `json:"day"`  // день недели, например "Понедельник"
	Time string `json:"time"` // время начала, например "15:00"
}

// LastLesson кешированная сводка последнего проведённого занятия
type LastLesson struct {
	Date          time.Time     `json:"date"`
	Topic         string        `json:"topic"`
	Understanding Understanding `json:"understanding"`
	Homework      string        `json:"homework,omitempty"`
}

type Student struct {
	ID         int64       `json:"id"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Phone      string      `json:"phone"`
	Email      string      `json:"email,omitempty"`
	Subject    string      `json:"subject,omitempty"`
	Rate       float64     `json:"rate,omitempty"`   // руб/час
	Tariff     string      `json:"tariff,omitempty"` // старый плоский тариф, остался от ранних записей
	Schedule   Schedule    `json:"schedule"`
	Notes      string      `json:"notes,omitempty"`
	LastLesson *LastLesson `json:"last_lesson,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// StudentPatch частичное обновление: nil-поля не трогаем
type StudentPatch struct {
	FirstName  *string     `json:"first_name,omitempty"`
	LastName   *string     `json:"last_name,omitempty"`
	Phone      *string     `json:"phone,omitempty"`
	Email      *string     `json:"email,omitempty"`
	Subject    *string     `json:"subject,omitempty"`
	Rate       *float64    `json:"rate,omitempty"`
	Tariff     *string     `json:"tariff,omitempty"`
	Schedule   *Schedule   `json:"schedule,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
	LastLesson *LastLesson `json:"last_lesson,omitempty"`
}

// Apply накладывает патч на запись
func (p StudentPatch) Apply(s *Student) {
	if p.FirstName != nil {
		s.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		s.LastName = *p.LastName
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Subject != nil {
		s.Subject = *p.Subject
	}
	if p.Rate != nil {
		s.Rate = *p.Rate
	}
	if p.Tariff != nil {
		s.Tariff = *p.Tariff
	}
	if p.Schedule != nil {
		s.Schedule = *p.Schedule
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	if p.LastLesson != nil {
		s.LastLesson = p.LastLesson
	}
}
