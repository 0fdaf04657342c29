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

const lessonColumns = `id, student_id, date, duration, topic, understanding, homework, status, cost, notes, created_at`

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

// Create создаёт новое занятие
func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	schema.NormalizeLesson(lesson)
	if err := schema.ValidateLesson(lesson); err != nil {
		return err
	}

	query := `
		INSERT INTO lessons (student_id, date, duration, topic, understanding, homework, status, cost, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		lesson.StudentID,
		lesson.Date,
		lesson.Duration,
		lesson.Topic,
		lesson.Understanding,
		lesson.Homework,
		lesson.Status,
		lesson.Cost,
		lesson.Notes,
	).Scan(&lesson.ID, &lesson.CreatedAt)

	if err != nil {
		return base.Storagef("create lesson", err)
	}

	return nil
}

// GetByID получает занятие по ID
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	lesson, err := scanLesson(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, base.Storagef("get lesson by id", err)
	}

	return lesson, nil
}

// List получает все занятия
func (r *LessonRepository) List(ctx context.Context) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons ORDER BY date DESC`
	return r.queryLessons(ctx, query)
}

// GetByStudentID получает все занятия ученика
func (r *LessonRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE student_id = $1 ORDER BY date DESC`
	return r.queryLessons(ctx, query, studentID)
}

// GetByDateRange получает занятия с датой в полуинтервале [from, to)
func (r *LessonRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE date >= $1 AND date < $2 ORDER BY date`
	return r.queryLessons(ctx, query, from, to)
}

// Update частично обновляет занятие под блокировкой строки
func (r *LessonRepository) Update(ctx context.Context, id int64, patch model.LessonPatch) (*model.Lesson, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, base.Storagef("begin update lesson", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1 FOR UPDATE`
	lesson, err := scanLesson(tx.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, apperr.ErrNotFound
		}
		return nil, base.Storagef("lock lesson", err)
	}

	patch.Apply(lesson)
	schema.NormalizeLesson(lesson)
	if err := schema.ValidateLesson(lesson); err != nil {
		return nil, err
	}

	update := `
		UPDATE lessons
		SET student_id = $1, date = $2, duration = $3, topic = $4, understanding = $5,
		    homework = $6, status = $7, cost = $8, notes = $9
		WHERE id = $10
	`
	_, err = tx.Exec(
		ctx, update,
		lesson.StudentID,
		lesson.Date,
		lesson.Duration,
		lesson.Topic,
		lesson.Understanding,
		lesson.Homework,
		lesson.Status,
		lesson.Cost,
		lesson.Notes,
		lesson.ID,
	)
	if err != nil {
		return nil, base.Storagef("update lesson", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, base.Storagef("commit update lesson", err)
	}

	return lesson, nil
}

// Delete удаляет занятие. Платежи со ссылкой на него остаются.
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return base.Storagef("delete lesson", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (r *LessonRepository) queryLessons(ctx context.Context, query string, args ...any) ([]*model.Lesson, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, base.Storagef("query lessons", err)
	}
	defer rows.Close()

	lessons := []*model.Lesson{}
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, base.Storagef("scan lesson", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, base.Storagef("iterate lessons", err)
	}

	return lessons, nil
}

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	var lesson model.Lesson
	err := row.Scan(
		&lesson.ID,
		&lesson.StudentID,
		&lesson.Date,
		&lesson.Duration,
		&lesson.Topic,
		&lesson.Understanding,
		&lesson.Homework,
		&lesson.Status,
		&lesson.Cost,
		&lesson.Notes,
		&lesson.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}
