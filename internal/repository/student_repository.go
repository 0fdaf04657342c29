package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studfix/studfix-server/internal/apperr"
	"github.com/studfix/studfix-server/internal/model"
	"github.com/studfix/studfix-server/internal/repository/base"
	"github.com/studfix/studfix-server/internal/schema"
)

const studentColumns = `id, first_name, last_name, phone, email, subject, rate, tariff, schedule, notes, last_lesson, created_at`

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// Create создаёт нового ученика и присваивает ему идентификатор
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	schema.NormalizeStudent(student)
	if err := schema.ValidateStudent(student); err != nil {
		return err
	}

	query := `
		INSERT INTO students (first_name, last_name, phone, email, subject, rate, tariff, schedule, notes, last_lesson)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		student.FirstName,
		student.LastName,
		student.Phone,
		student.Email,
		student.Subject,
		student.Rate,
		student.Tariff,
		student.Schedule,
		student.Notes,
		student.LastLesson,
	).Scan(&student.ID, &student.CreatedAt)

	if err != nil {
		return base.Storagef("create student", err)
	}

	return nil
}

// GetByID получает ученика по ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Ученик не найден
		}
		return nil, base.Storagef("get student by id", err)
	}

	return student, nil
}

// List получает всех учеников
func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY last_name, first_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, base.Storagef("list students", err)
	}
	defer rows.Close()

	students := []*model.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, base.Storagef("scan student", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, base.Storagef("iterate students", err)
	}

	return students, nil
}

// Update частично обновляет ученика. Запись блокируется на время слияния,
// чтобы два конкурентных патча не перемешали поля.
func (r *StudentRepository) Update(ctx context.Context, id int64, patch model.StudentPatch) (*model.Student, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, base.Storagef("begin update student", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 FOR UPDATE`
	student, err := scanStudent(tx.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, apperr.ErrNotFound
		}
		return nil, base.Storagef("lock student", err)
	}

	patch.Apply(student)
	schema.NormalizeStudent(student)
	if err := schema.ValidateStudent(student); err != nil {
		return nil, err
	}

	update := `
		UPDATE students
		SET first_name = $1, last_name = $2, phone = $3, email = $4, subject = $5,
		    rate = $6, tariff = $7, schedule = $8, notes = $9, last_lesson = $10
		WHERE id = $11
	`
	_, err = tx.Exec(
		ctx, update,
		student.FirstName,
		student.LastName,
		student.Phone,
		student.Email,
		student.Subject,
		student.Rate,
		student.Tariff,
		student.Schedule,
		student.Notes,
		student.LastLesson,
		student.ID,
	)
	if err != nil {
		return nil, base.Storagef("update student", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, base.Storagef("commit update student", err)
	}

	return student, nil
}

// Delete удаляет ученика. Занятия и платежи не трогаем: ссылки мягкие.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return base.Storagef("delete student", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func scanStudent(row pgx.Row) (*model.Student, error) {
	var student model.Student
	err := row.Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.Phone,
		&student.Email,
		&student.Subject,
		&student.Rate,
		&student.Tariff,
		&student.Schedule,
		&student.Notes,
		&student.LastLesson,
		&student.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}
