package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studfix/studfix-server/internal/apperr"
	"github.com/studfix/studfix-server/internal/model"
)

func TestMigrateStudentFromLegacy(t *testing.T) {
	doc := Doc{
		"id":     float64(3),
		"name":   "Иван Петров",
		"phone":  "+79990001122",
		"tariff": "Стандарт",
	}

	migrated, err := Migrate(EntityStudent, doc)
	require.NoError(t, err)

	assert.Equal(t, "Иван", migrated["first_name"])
	assert.Equal(t, "Петров", migrated["last_name"])
	assert.Equal(t, "Стандарт", migrated["tariff"])
	assert.Equal(t, "", migrated["subject"])
	assert.Equal(t, float64(0), migrated["rate"])
	assert.Equal(t, map[string]any{"day": "", "time": ""}, migrated["schedule"])
	assert.Equal(t, VersionCurrent, migrated["schema_version"])

	// Исходный документ не изменился: миграции чистые
	assert.Equal(t, "Иван Петров", doc["name"])
	_, exists := doc["schedule"]
	assert.False(t, exists)
}

func TestMigrateStudentCamelCaseKeys(t *testing.T) {
	doc := Doc{
		"firstName": "Анна",
		"lastName":  "Смирнова",
		"phone":     "+79990001133",
	}

	migrated, err := Migrate(EntityStudent, doc)
	require.NoError(t, err)

	assert.Equal(t, "Анна", migrated["first_name"])
	assert.Equal(t, "Смирнова", migrated["last_name"])
	_, exists := migrated["firstName"]
	assert.False(t, exists)
}

func TestMigrateIdempotent(t *testing.T) {
	doc := Doc{
		"name":     "Иван Петров",
		"phone":    "+79990001122",
		"duration": "1ч 30м",
	}

	once, err := Migrate(EntityStudent, doc)
	require.NoError(t, err)
	twice, err := Migrate(EntityStudent, once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestMigrateLessonDuration(t *testing.T) {
	cases := map[string]float64{
		"90":     90,
		"90 мин": 90,
		"1ч":     60,
		"1ч 30м": 90,
		"2ч 15м": 135,
	}

	for raw, want := range cases {
		doc := Doc{"student_id": float64(1), "duration": raw}
		migrated, err := Migrate(EntityLesson, doc)
		require.NoError(t, err, "duration %q", raw)
		assert.Equal(t, want, migrated["duration"], "duration %q", raw)
	}
}

func TestMigrateLessonBadDuration(t *testing.T) {
	doc := Doc{"student_id": float64(1), "duration": "полтора часа"}

	_, err := Migrate(EntityLesson, doc)
	require.Error(t, err)

	var migErr *apperr.MigrationError
	require.ErrorAs(t, err, &migErr)
	assert.Equal(t, "lesson", migErr.Entity)
	assert.Equal(t, "duration", migErr.Field)
}

func TestMigrateLessonNumericDurationUntouched(t *testing.T) {
	doc := Doc{"student_id": float64(1), "duration": float64(45), "status": "cancelled"}

	migrated, err := Migrate(EntityLesson, doc)
	require.NoError(t, err)

	assert.Equal(t, float64(45), migrated["duration"])
	assert.Equal(t, "cancelled", migrated["status"])
}

func TestMigratePaymentDefaults(t *testing.T) {
	doc := Doc{"studentId": float64(2), "amount": "1500"}

	migrated, err := Migrate(EntityPayment, doc)
	require.NoError(t, err)

	assert.Equal(t, float64(2), migrated["student_id"])
	assert.Equal(t, 1500.0, migrated["amount"])
	assert.Equal(t, "cash", migrated["type"])
	assert.Equal(t, "", migrated["description"])
}

func TestMigratePaymentMissingAmount(t *testing.T) {
	doc := Doc{"student_id": float64(2)}

	_, err := Migrate(EntityPayment, doc)

	var migErr *apperr.MigrationError
	require.ErrorAs(t, err, &migErr)
	assert.Equal(t, "payment", migErr.Entity)
	assert.Equal(t, "amount", migErr.Field)
}

func TestMigrateUnknownEntity(t *testing.T) {
	_, err := Migrate("invoice", Doc{})
	assert.Error(t, err)
}

func TestMigrateSkipsAppliedSteps(t *testing.T) {
	doc := Doc{
		"first_name":     "Анна",
		"phone":          "+79990001133",
		"schedule":       map[string]any{"day": "Вторник", "time": "16:00"},
		"schema_version": float64(VersionCurrent),
	}

	migrated, err := Migrate(EntityStudent, doc)
	require.NoError(t, err)

	// Запись текущей версии проходит без изменений
	assert.Equal(t, map[string]any{"day": "Вторник", "time": "16:00"}, migrated["schedule"])
}

func TestCurrentSchema(t *testing.T) {
	fields, err := CurrentSchema(EntityStudent)
	require.NoError(t, err)
	assert.NotEmpty(t, fields)

	_, err = CurrentSchema("unknown")
	assert.Error(t, err)
}

func TestNormalizeDefaults(t *testing.T) {
	lesson := model.Lesson{}
	NormalizeLesson(&lesson)
	assert.Equal(t, model.LessonStatusCompleted, lesson.Status)

	payment := model.Payment{}
	NormalizePayment(&payment)
	assert.Equal(t, model.PaymentTypeCash, payment.Type)
}

func TestValidateStudent(t *testing.T) {
	valid := model.Student{FirstName: "Анна", Phone: "+79990001133"}
	assert.NoError(t, ValidateStudent(&valid))

	noPhone := model.Student{FirstName: "Анна"}
	assert.ErrorIs(t, ValidateStudent(&noPhone), apperr.ErrValidation)

	noName := model.Student{Phone: "+79990001133"}
	assert.ErrorIs(t, ValidateStudent(&noName), apperr.ErrValidation)
}

func TestValidateLesson(t *testing.T) {
	noStudent := model.Lesson{Status: model.LessonStatusCompleted}
	assert.ErrorIs(t, ValidateLesson(&noStudent), apperr.ErrValidation)

	badStatus := model.Lesson{StudentID: 1, Status: "postponed"}
	assert.ErrorIs(t, ValidateLesson(&badStatus), apperr.ErrValidation)
}

func TestValidatePayment(t *testing.T) {
	negative := model.Payment{StudentID: 1, Amount: -10, Type: model.PaymentTypeCash}
	assert.ErrorIs(t, ValidatePayment(&negative), apperr.ErrValidation)

	badType := model.Payment{StudentID: 1, Amount: 10, Type: "crypto"}
	assert.ErrorIs(t, ValidatePayment(&badType), apperr.ErrValidation)
}
