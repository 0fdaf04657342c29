package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// studentToRated v1 -> v2: одно поле name расщепляется на имя и фамилию,
// появляются subject и rate. Плоский tariff сохраняем как есть.
func studentToRated(doc Doc) (Doc, error) {
	if raw, ok := doc["name"]; ok {
		if _, split := doc["first_name"]; !split {
			name, ok := raw.(string)
			if !ok {
				return nil, migrationErr(EntityStudent, "name", fmt.Errorf("expected string, got %T", raw))
			}
			first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
			doc["first_name"] = first
			doc["last_name"] = last
		}
		delete(doc, "name")
	}
	if _, ok := doc["subject"]; !ok {
		doc["subject"] = ""
	}
	if _, ok := doc["rate"]; !ok {
		doc["rate"] = float64(0)
	}
	return doc, nil
}

// studentToCurrent v2 -> v3: добавляет расписание и заметки
func studentToCurrent(doc Doc) (Doc, error) {
	if raw, ok := doc["schedule"]; ok {
		if _, isMap := raw.(map[string]any); !isMap {
			return nil, migrationErr(EntityStudent, "schedule", fmt.Errorf("expected object, got %T", raw))
		}
	} else {
		doc["schedule"] = map[string]any{"day": "", "time": ""}
	}
	if _, ok := doc["notes"]; !ok {
		doc["notes"] = ""
	}
	return doc, nil
}

// lessonToRated v1 -> v2: строковая длительность становится минутами,
// строковая стоимость числом
func lessonToRated(doc Doc) (Doc, error) {
	if raw, ok := doc["duration"]; ok {
		if _, isNum := toNumber(raw); !isNum {
			s, ok := raw.(string)
			if !ok {
				return nil, migrationErr(EntityLesson, "duration", fmt.Errorf("expected string or number, got %T", raw))
			}
			minutes, err := parseDurationLabel(s)
			if err != nil {
				return nil, migrationErr(EntityLesson, "duration", err)
			}
			doc["duration"] = float64(minutes)
		}
	} else {
		doc["duration"] = float64(60)
	}

	if raw, ok := doc["cost"]; ok {
		if _, isNum := toNumber(raw); !isNum {
			s, ok := raw.(string)
			if !ok {
				return nil, migrationErr(EntityLesson, "cost", fmt.Errorf("expected string or number, got %T", raw))
			}
			cost, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, migrationErr(EntityLesson, "cost", err)
			}
			doc["cost"] = cost
		}
	} else {
		doc["cost"] = float64(0)
	}
	return doc, nil
}

// lessonToCurrent v2 -> v3: статус по умолчанию и текстовые поля
func lessonToCurrent(doc Doc) (Doc, error) {
	if _, ok := doc["status"]; !ok {
		doc["status"] = "completed"
	}
	if _, ok := doc["homework"]; !ok {
		doc["homework"] = ""
	}
	if _, ok := doc["notes"]; !ok {
		doc["notes"] = ""
	}
	return doc, nil
}

// paymentToRated v1 -> v2: сумма становится числом, добавляется способ оплаты
func paymentToRated(doc Doc) (Doc, error) {
	if raw, ok := doc["amount"]; ok {
		if _, isNum := toNumber(raw); !isNum {
			s, ok := raw.(string)
			if !ok {
				return nil, migrationErr(EntityPayment, "amount", fmt.Errorf("expected string or number, got %T", raw))
			}
			amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, migrationErr(EntityPayment, "amount", err)
			}
			doc["amount"] = amount
		}
	} else {
		return nil, migrationErr(EntityPayment, "amount", fmt.Errorf("missing"))
	}
	if _, ok := doc["type"]; !ok {
		doc["type"] = "cash"
	}
	return doc, nil
}

// paymentToCurrent v2 -> v3: текстовые поля по умолчанию
func paymentToCurrent(doc Doc) (Doc, error) {
	if _, ok := doc["description"]; !ok {
		doc["description"] = ""
	}
	if _, ok := doc["notes"]; !ok {
		doc["notes"] = ""
	}
	return doc, nil
}

var durationLabelRe = regexp.MustCompile(`^(?:(\d+)\s*ч)?\s*(?:(\d+)\s*м(?:ин)?)?$`)

// parseDurationLabel разбирает строковые длительности ранних записей:
// "90", "90 мин", "1ч", "1ч 30м"
func parseDurationLabel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	m := durationLabelRe.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, fmt.Errorf("unrecognized duration %q", s)
	}
	minutes := 0
	if m[1] != "" {
		h, _ := strconv.Atoi(m[1])
		minutes += h * 60
	}
	if m[2] != "" {
		mm, _ := strconv.Atoi(m[2])
		minutes += mm
	}
	return minutes, nil
}

// toNumber приводит JSON-число любой ширины к float64
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
