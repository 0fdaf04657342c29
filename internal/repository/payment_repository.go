package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studfix/studfix-server/internal/apperr"
	"github.com/studfix/studfix-server/internal/model"
	"github.com/studfix/studfix-server/internal/repository/base"
	"github.com/studfix/studfix-server/internal/schema"
)

const paymentColumns = `id, student_id, lesson_id, amount, date, type, description, notes, created_at`

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create создаёт новый платёж
func (r *PaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	schema.NormalizePayment(payment)
	if err := schema.ValidatePayment(payment); err != nil {
		return err
	}

	query := `
		INSERT INTO payments (student_id, lesson_id, amount, date, type, description, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		payment.StudentID,
		payment.LessonID,
		payment.Amount,
		payment.Date,
		payment.Type,
		payment.Description,
		payment.Notes,
	).Scan(&payment.ID, &payment.CreatedAt)

	if err != nil {
		return base.Storagef("create payment", err)
	}

	return nil
}

// GetByID получает платёж по ID
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, base.Storagef("get payment by id", err)
	}

	return payment, nil
}

// List получает все платежи
func (r *PaymentRepository) List(ctx context.Context) ([]*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY date DESC`
	return r.queryPayments(ctx, query)
}

// GetByStudentID получает платежи ученика, опционально по одному занятию
func (r *PaymentRepository) GetByStudentID(ctx context.Context, studentID int64, lessonID *int64) ([]*model.Payment, error) {
	if lessonID != nil {
		query := `SELECT ` + paymentColumns + ` FROM payments WHERE student_id = $1 AND lesson_id = $2 ORDER BY date DESC`
		return r.queryPayments(ctx, query, studentID, *lessonID)
	}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE student_id = $1 ORDER BY date DESC`
	return r.queryPayments(ctx, query, studentID)
}

// GetByDateRange получает платежи с датой в полуинтервале [from, to)
func (r *PaymentRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE date >= $1 AND date < $2 ORDER BY date`
	return r.queryPayments(ctx, query, from, to)
}

// Update частично обновляет платёж под блокировкой строки
func (r *PaymentRepository) Update(ctx context.Context, id int64, patch model.PaymentPatch) (*model.Payment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, base.Storagef("begin update payment", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	payment, err := scanPayment(tx.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, apperr.ErrNotFound
		}
		return nil, base.Storagef("lock payment", err)
	}

	patch.Apply(payment)
	schema.NormalizePayment(payment)
	if err := schema.ValidatePayment(payment); err != nil {
		return nil, err
	}

	update := `
		UPDATE payments
		SET student_id = $1, lesson_id = $2, amount = $3, date = $4, type = $5, description = $6, notes = $7
		WHERE id = $8
	`
	_, err = tx.Exec(
		ctx, update,
		payment.StudentID,
		payment.LessonID,
		payment.Amount,
		payment.Date,
		payment.Type,
		payment.Description,
		payment.Notes,
		payment.ID,
	)
	if err != nil {
		return nil, base.Storagef("update payment", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, base.Storagef("commit update payment", err)
	}

	return payment, nil
}

// Delete удаляет платёж
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return base.Storagef("delete payment", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (r *PaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]*model.Payment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, base.Storagef("query payments", err)
	}
	defer rows.Close()

	payments := []*model.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, base.Storagef("scan payment", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, base.Storagef("iterate payments", err)
	}

	return payments, nil
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var payment model.Payment
	err := row.Scan(
		&payment.ID,
		&payment.StudentID,
		&payment.LessonID,
		&payment.Amount,
		&payment.Date,
		&payment.Type,
		&payment.Description,
		&payment.Notes,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
