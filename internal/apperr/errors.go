// Package apperr общая таксономия ошибок ядра.
// Проверка через errors.Is, контекст добавляется обёртками %w.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound запись с указанным идентификатором не существует
	ErrNotFound = errors.New("not found")

	// ErrValidation отсутствует или некорректно обязательное поле
	ErrValidation = errors.New("validation error")

	// ErrStorage сбой хранилища; in-memory состояние при этом не меняется
	ErrStorage = errors.New("storage error")
)

// MigrationError запись в хранилище не удалось привести к текущей схеме.
// Затронутая запись пропускается, остальные типы сущностей продолжают работать.
type MigrationError struct {
	Entity string // "student" | "lesson" | "payment"
	Field  string // поле, которое не удалось интерпретировать
	Err    error
}

func (e *MigrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema migration: %s.%s: %v", e.Entity, e.Field, e.Err)
	}
	return fmt.Sprintf("schema migration: %s.%s", e.Entity, e.Field)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// Validationf возвращает ErrValidation с пояснением
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
