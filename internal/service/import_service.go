package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studfix/studfix-server/internal/apperr"
	"github.com/studfix/studfix-server/internal/model"
	"github.com/studfix/studfix-server/internal/schema"
)

// LegacyDump выгрузка данных старого клиента в любой из исторических схем
type LegacyDump struct {
	Students []schema.Doc `json:"students"`
	Lessons  []schema.Doc `json:"lessons"`
	Payments []schema.Doc `json:"payments"`
}

// ImportCount счётчики по одному типу сущностей
type ImportCount struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportReport итог импорта
type ImportReport struct {
	BatchID  string      `json:"batch_id"`
	Students ImportCount `json:"students"`
	Lessons  ImportCount `json:"lessons"`
	Payments ImportCount `json:"payments"`
}

// ImportService переносит выгрузку старого клиента: каждый документ
// прогоняется через миграции реестра схем, непригодные пропускаются
// с записью в лог, остальные сохраняются с новыми идентификаторами.
type ImportService struct {
	students *StudentService
	lessons  *LessonService
	payments *PaymentService
	logger   *zap.Logger
}

func NewImportService(students *StudentService, lessons *LessonService, payments *PaymentService, logger *zap.Logger) *ImportService {
	return &ImportService{
		students: students,
		lessons:  lessons,
		payments: payments,
		logger:   logger,
	}
}

// Import выполняет перенос. Сбой миграции одного документа не прерывает
// остальные: запись пропускается, импорт продолжается.
func (s *ImportService) Import(ctx context.Context, dump LegacyDump) (*ImportReport, error) {
	report := &ImportReport{BatchID: uuid.New().String()}
	log := s.logger.With(zap.String("batch_id", report.BatchID))

	// Старые идентификаторы живут только внутри выгрузки: после вставки
	// ссылки занятий и платежей переключаются на новые
	studentIDs := make(map[int64]int64)
	lessonIDs := make(map[int64]int64)

	for _, doc := range dump.Students {
		oldID := legacyID(doc)
		migrated, err := schema.Migrate(schema.EntityStudent, doc)
		if err != nil {
			report.Students.Skipped++
			log.Warn("Skipping student", zap.Int64("legacy_id", oldID), zap.Error(err))
			continue
		}

		var student model.Student
		if err := decodeDoc(migrated, &student); err != nil {
			report.Students.Skipped++
			log.Warn("Skipping student", zap.Int64("legacy_id", oldID), zap.Error(err))
			continue
		}
		student.ID = 0

		newID, err := s.students.Create(ctx, &student)
		if err != nil {
			if errors.Is(err, apperr.ErrValidation) {
				report.Students.Skipped++
				log.Warn("Skipping invalid student", zap.Int64("legacy_id", oldID), zap.Error(err))
				continue
			}
			return nil, err
		}

		if oldID != 0 {
			studentIDs[oldID] = newID
		}
		report.Students.Imported++
	}

	for _, doc := range dump.Lessons {
		oldID := legacyID(doc)
		migrated, err := schema.Migrate(schema.EntityLesson, doc)
		if err != nil {
			report.Lessons.Skipped++
			log.Warn("Skipping lesson", zap.Int64("legacy_id", oldID), zap.Error(err))
			continue
		}

		var lesson model.Lesson
		if err := decodeDoc(migrated, &lesson); err != nil {
			report.Lessons.Skipped++
			log.Warn("Skipping lesson", zap.Int64("legacy_id", oldID), zap.Error(err))
			continue
		}
		lesson.ID = 0
		// Неизвестный старый ученик остаётся как есть: висячая ссылка допустима
		if newStudentID, ok := studentIDs[lesson.StudentID]; ok {
			lesson.StudentID = newStudentID
		}

		newID, err := s.lessons.Create(ctx, &lesson)
		if err != nil {
			if errors.Is(err, apperr.ErrValidation) {
				report.Lessons.Skipped++
				log.Warn("Skipping invalid lesson", zap.Int64("legacy_id", oldID), zap.Error(err))
				continue
			}
			return nil, err
		}

		if oldID != 0 {
			lessonIDs[oldID] = newID
		}
		report.Lessons.Imported++
	}

	for _, doc := range dump.Payments {
		oldID := legacyID(doc)
		migrated, err := schema.Migrate(schema.EntityPayment, doc)
		if err != nil {
			report.Payments.Skipped++
			log.Warn("Skipping payment", zap.Int64("legacy_id", oldID), zap.Error(err))
			continue
		}

		var payment model.Payment
		if err := decodeDoc(migrated, &payment); err != nil {
			report.Payments.Skipped++
			log.Warn("Skipping payment", zap.Int64("legacy_id", oldID), zap.Error(err))
			continue
		}
		payment.ID = 0
		if newStudentID, ok := studentIDs[payment.StudentID]; ok {
			payment.StudentID = newStudentID
		}
		if payment.LessonID != nil {
			if newLessonID, ok := lessonIDs[*payment.LessonID]; ok {
				payment.LessonID = &newLessonID
			}
		}

		_, err = s.payments.Create(ctx, &payment)
		if err != nil {
			if errors.Is(err, apperr.ErrValidation) {
				report.Payments.Skipped++
				log.Warn("Skipping invalid payment", zap.Int64("legacy_id", oldID), zap.Error(err))
				continue
			}
			return nil, err
		}
		report.Payments.Imported++
	}

	log.Info("Legacy import finished",
		zap.Int("students", report.Students.Imported),
		zap.Int("lessons", report.Lessons.Imported),
		zap.Int("payments", report.Payments.Imported))

	return report, nil
}

// legacyID читает идентификатор документа в выгрузке; 0 если его нет
func legacyID(doc schema.Doc) int64 {
	switch v := doc["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// decodeDoc переводит мигрированный документ в каноническую структуру.
// Даты старого клиента могли быть записаны без времени.
func decodeDoc(doc schema.Doc, dest any) error {
	if raw, ok := doc["date"].(string); ok && len(raw) == len("2006-01-02") {
		doc["date"] = raw + "T00:00:00Z"
	}
	delete(doc, "schema_version")

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
