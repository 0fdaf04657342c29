// Package schema реестр схем: описывает текущую форму каждой сущности
// и приводит записи старых версий к канонической.
package schema

import (
	"fmt"

	"github.com/studfix/studfix-server/internal/apperr"
)

// Версии схем. Записи v1 хранили плоский тариф и строковую длительность,
// v2 перешла на предмет+ставку и минуты, v3 добавила расписание, заметки
// и кешированное последнее занятие.
const (
	VersionLegacy  = 1
	VersionRated   = 2
	VersionCurrent = 3
)

// Имена типов сущностей
const (
	EntityStudent = "student"
	EntityLesson  = "lesson"
	EntityPayment = "payment"
)

// Doc запись произвольной версии в сыром виде (JSON-документ)
type Doc map[string]any

// Field описатель поля текущей схемы
type Field struct {
	Name     string
	Type     string // "string" | "number" | "object" | "datetime"
	Required bool
}

var currentFields = map[string][]Field{
	EntityStudent: {
		{Name: "first_name", Type: "string", Required: true},
		{Name: "last_name", Type: "string", Required: true},
		{Name: "phone", Type: "string", Required: true},
		{Name: "email", Type: "string"},
		{Name: "subject", Type: "string"},
		{Name: "rate", Type: "number"},
		{Name: "tariff", Type: "string"},
		{Name: "schedule", Type: "object"},
		{Name: "notes", Type: "string"},
		{Name: "last_lesson", Type: "object"},
	},
	EntityLesson: {
		{Name: "student_id", Type: "number", Required: true},
		{Name: "date", Type: "datetime", Required: true},
		{Name: "duration", Type: "number"},
		{Name: "topic", Type: "string"},
		{Name: "understanding", Type: "string"},
		{Name: "homework", Type: "string"},
		{Name: "status", Type: "string", Required: true},
		{Name: "cost", Type: "number"},
		{Name: "notes", Type: "string"},
	},
	EntityPayment: {
		{Name: "student_id", Type: "number", Required: true},
		{Name: "lesson_id", Type: "number"},
		{Name: "amount", Type: "number", Required: true},
		{Name: "date", Type: "datetime", Required: true},
		{Name: "type", Type: "string", Required: true},
		{Name: "description", Type: "string"},
		{Name: "notes", Type: "string"},
	},
}

// CurrentSchema возвращает набор полей текущей версии сущности
func CurrentSchema(entity string) ([]Field, error) {
	fields, ok := currentFields[entity]
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", entity)
	}
	return fields, nil
}

type migration struct {
	to    int
	apply func(Doc) (Doc, error)
}

var migrations = map[string][]migration{
	EntityStudent: {
		{to: VersionRated, apply: studentToRated},
		{to: VersionCurrent, apply: studentToCurrent},
	},
	EntityLesson: {
		{to: VersionRated, apply: lessonToRated},
		{to: VersionCurrent, apply: lessonToCurrent},
	},
	EntityPayment: {
		{to: VersionRated, apply: paymentToRated},
		{to: VersionCurrent, apply: paymentToCurrent},
	},
}

// Version читает версию схемы документа; документы без пометки считаются v1
func Version(doc Doc) int {
	if v, ok := doc["schema_version"]; ok {
		if n, ok := toNumber(v); ok {
			return int(n)
		}
	}
	return VersionLegacy
}

// Migrate приводит документ к текущей версии. Каждый шаг чистая
// идемпотентная функция, поэтому повторный прогон безопасен.
func Migrate(entity string, doc Doc) (Doc, error) {
	return MigrateRange(entity, doc, Version(doc), VersionCurrent)
}

// Старый клиент писал ключи в camelCase; переименование — часть миграции
var keyAliases = map[string]string{
	"firstName":     "first_name",
	"lastName":      "last_name",
	"studentId":     "student_id",
	"lessonId":      "lesson_id",
	"lastLesson":    "last_lesson",
	"schemaVersion": "schema_version",
}

// MigrateRange применяет шаги миграции от версии from до to по порядку
func MigrateRange(entity string, doc Doc, from, to int) (Doc, error) {
	steps, ok := migrations[entity]
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", entity)
	}

	out := cloneDoc(doc)
	for legacy, canonical := range keyAliases {
		if v, ok := out[legacy]; ok {
			if _, taken := out[canonical]; !taken {
				out[canonical] = v
			}
			delete(out, legacy)
		}
	}
	for _, step := range steps {
		if step.to <= from || step.to > to {
			continue
		}
		var err error
		out, err = step.apply(out)
		if err != nil {
			return nil, err
		}
	}
	out["schema_version"] = to
	return out, nil
}

func cloneDoc(doc Doc) Doc {
	out := make(Doc, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func migrationErr(entity, field string, err error) error {
	return &apperr.MigrationError{Entity: entity, Field: field, Err: err}
}
