// Package base общие помощники репозиториев
package base

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/studfix/studfix-server/internal/apperr"
)

// IsNotFound проверяет является ли ошибка "строка не найдена"
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Storagef помечает сбой хранилища как apperr.ErrStorage, сохраняя исходную ошибку
func Storagef(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(apperr.ErrStorage, err))
}
