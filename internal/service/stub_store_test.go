package service

import (
	"context"
	"time"

	"github.com/studfix/studfix-server/internal/apperr"
	"github.com/studfix/studfix-server/internal/model"
	"github.com/studfix/studfix-server/internal/schema"
)

// In-memory заглушки хранилища. Повторяют контракт репозиториев:
// нормализация и валидация на записи, (nil, nil) когда записи нет.

type memStudents struct {
	records map[int64]*model.Student
	nextID  int64
}

func newMemStudents() *memStudents {
	return &memStudents{records: map[int64]*model.Student{}}
}

func (s *memStudents) Create(_ context.Context, student *model.Student) error {
	schema.NormalizeStudent(student)
	if err := schema.ValidateStudent(student); err != nil {
		return err
	}
	s.nextID++
	student.ID = s.nextID
	clone := *student
	s.records[student.ID] = &clone
	return nil
}

func (s *memStudents) GetByID(_ context.Context, id int64) (*model.Student, error) {
	student, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	clone := *student
	return &clone, nil
}

func (s *memStudents) List(_ context.Context) ([]*model.Student, error) {
	out := []*model.Student{}
	for _, student := range s.records {
		clone := *student
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memStudents) Update(_ context.Context, id int64, patch model.StudentPatch) (*model.Student, error) {
	student, ok := s.records[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	merged := *student
	patch.Apply(&merged)
	schema.NormalizeStudent(&merged)
	if err := schema.ValidateStudent(&merged); err != nil {
		return nil, err
	}
	s.records[id] = &merged
	clone := merged
	return &clone, nil
}

func (s *memStudents) Delete(_ context.Context, id int64) error {
	if _, ok := s.records[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

type memLessons struct {
	records map[int64]*model.Lesson
	nextID  int64
}

func newMemLessons() *memLessons {
	return &memLessons{records: map[int64]*model.Lesson{}}
}

func (s *memLessons) Create(_ context.Context, lesson *model.Lesson) error {
	schema.NormalizeLesson(lesson)
	if err := schema.ValidateLesson(lesson); err != nil {
		return err
	}
	s.nextID++
	lesson.ID = s.nextID
	clone := *lesson
	s.records[lesson.ID] = &clone
	return nil
}

func (s *memLessons) GetByID(_ context.Context, id int64) (*model.Lesson, error) {
	lesson, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	clone := *lesson
	return &clone, nil
}

func (s *memLessons) List(_ context.Context) ([]*model.Lesson, error) {
	out := []*model.Lesson{}
	for _, lesson := range s.records {
		clone := *lesson
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memLessons) GetByStudentID(_ context.Context, studentID int64) ([]*model.Lesson, error) {
	out := []*model.Lesson{}
	for _, lesson := range s.records {
		if lesson.StudentID == studentID {
			clone := *lesson
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memLessons) GetByDateRange(_ context.Context, from, to time.Time) ([]*model.Lesson, error) {
	out := []*model.Lesson{}
	for _, lesson := range s.records {
		if !lesson.Date.Before(from) && lesson.Date.Before(to) {
			clone := *lesson
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memLessons) Update(_ context.Context, id int64, patch model.LessonPatch) (*model.Lesson, error) {
	lesson, ok := s.records[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	merged := *lesson
	patch.Apply(&merged)
	schema.NormalizeLesson(&merged)
	if err := schema.ValidateLesson(&merged); err != nil {
		return nil, err
	}
	s.records[id] = &merged
	clone := merged
	return &clone, nil
}

func (s *memLessons) Delete(_ context.Context, id int64) error {
	if _, ok := s.records[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

type memPayments struct {
	records map[int64]*model.Payment
	nextID  int64
}

func newMemPayments() *memPayments {
	return &memPayments{records: map[int64]*model.Payment{}}
}

func (s *memPayments) Create(_ context.Context, payment *model.Payment) error {
	schema.NormalizePayment(payment)
	if err := schema.ValidatePayment(payment); err != nil {
		return err
	}
	s.nextID++
	payment.ID = s.nextID
	clone := *payment
	s.records[payment.ID] = &clone
	return nil
}

func (s *memPayments) GetByID(_ context.Context, id int64) (*model.Payment, error) {
	payment, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	clone := *payment
	return &clone, nil
}

func (s *memPayments) List(_ context.Context) ([]*model.Payment, error) {
	out := []*model.Payment{}
	for _, payment := range s.records {
		clone := *payment
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memPayments) GetByStudentID(_ context.Context, studentID int64, lessonID *int64) ([]*model.Payment, error) {
	out := []*model.Payment{}
	for _, payment := range s.records {
		if payment.StudentID != studentID {
			continue
		}
		if lessonID != nil && (payment.LessonID == nil || *payment.LessonID != *lessonID) {
			continue
		}
		clone := *payment
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memPayments) GetByDateRange(_ context.Context, from, to time.Time) ([]*model.Payment, error) {
	out := []*model.Payment{}
	for _, payment := range s.records {
		if !payment.Date.Before(from) && payment.Date.Before(to) {
			clone := *payment
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memPayments) Update(_ context.Context, id int64, patch model.PaymentPatch) (*model.Payment, error) {
	payment, ok := s.records[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	merged := *payment
	patch.Apply(&merged)
	schema.NormalizePayment(&merged)
	if err := schema.ValidatePayment(&merged); err != nil {
		return nil, err
	}
	s.records[id] = &merged
	clone := merged
	return &clone, nil
}

func (s *memPayments) Delete(_ context.Context, id int64) error {
	if _, ok := s.records[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// memCache считает обращения, чтобы проверять инвалидацию
type memCache struct {
	values      map[string][]byte
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{values: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, _ string, _ any) bool {
	// всегда промах: тесты проверяют только запись и инвалидацию
	return false
}

func (c *memCache) Set(_ context.Context, key string, _ any) {
	c.values[key] = []byte{1}
}

func (c *memCache) Invalidate(_ context.Context, keys ...string) {
	c.invalidated = append(c.invalidated, keys...)
}
