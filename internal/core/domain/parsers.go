package domain

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	errNotANumber  = errors.New("value is not a number")
	errNotPositive = errors.New("value must be greater than zero")
	errNegative    = errors.New("value must not be negative")
	errNoImages    = errors.New("at least one non-empty image link is required")
	errUnknownGoal = errors.New("listing goal must be one of Rent, Sale, Flatmate")
)

var (
	firstDigitsRegex = regexp.MustCompile(`\d+`)
	leadingIntRegex  = regexp.MustCompile(`^\s*[+-]?\d+`)
)

// toNumber приводит число или числовую строку к float64.
// В строках допускаются пробелы по краям и разделители разрядов ","
func toNumber(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isBlank - значение не задано или является пустой строкой
func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// ParsePositiveNumber принимает число или числовую строку; значение должно быть > 0
func ParsePositiveNumber(value any) (float64, error) {
	n, ok := toNumber(value)
	if !ok {
		return 0, errNotANumber
	}
	if n <= 0 {
		return 0, errNotPositive
	}
	return n, nil
}

// ParseNonNegativeNumber принимает число или числовую строку; значение должно быть >= 0
func ParseNonNegativeNumber(value any) (float64, error) {
	n, ok := toNumber(value)
	if !ok {
		return 0, errNotANumber
	}
	if n < 0 {
		return 0, errNegative
	}
	return n, nil
}

// ParseNumberOr возвращает неотрицательное число или значение по умолчанию
func ParseNumberOr(value any, defaultValue float64) float64 {
	n, err := ParseNonNegativeNumber(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// ParseBedroomCount: число используется как есть, из строки берётся первая
// непрерывная последовательность цифр ("2 BHK" -> 2). Без цифр - 0.
func ParseBedroomCount(value any) int {
	if s, ok := value.(string); ok {
		digits := firstDigitsRegex.FindString(s)
		if digits == "" {
			return 0
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0
		}
		return n
	}

	n, ok := toNumber(value)
	if !ok {
		return 0
	}
	return countFromFloat(n)
}

// countFromFloat отбрасывает дробную часть; отрицательные и не помещающиеся в int значения дают 0
func countFromFloat(n float64) int {
	if n < 0 || n >= math.MaxInt {
		return 0
	}
	return int(n)
}

// ParseCount - неотрицательное целое с запасным значением 0.
// Строки разбираются как parseInt: "1200 sqft" -> 1200.
func ParseCount(value any) int {
	if n, ok := toNumber(value); ok {
		return countFromFloat(n)
	}

	s, ok := value.(string)
	if !ok {
		return 0
	}
	prefix := strings.TrimSpace(leadingIntRegex.FindString(s))
	if prefix == "" {
		return 0
	}
	n, err := strconv.Atoi(prefix)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseStringList принимает массив и оставляет только непустые строки.
// Всё, что не массив, даёт пустой (не nil) список.
func ParseStringList(value any) []string {
	switch v := value.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// ParseBooleanWithDefault: неопределённое значение -> defaultValue, иначе приведение к bool.
// Строки "true"/"false"/"1"/"0" разбираются, остальные непустые строки считаются true.
func ParseBooleanWithDefault(value any, defaultValue bool) bool {
	switch v := value.(type) {
	case nil:
		return defaultValue
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
		return v != ""
	default:
		if n, ok := toNumber(v); ok {
			return n != 0
		}
		return true
	}
}

// ParseOptionalString возвращает непустую строку (числа форматируются) или nil
func ParseOptionalString(value any) *string {
	var s string
	switch v := value.(type) {
	case string:
		s = strings.TrimSpace(v)
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}

// parseStringOr - ParseOptionalString со значением по умолчанию
func parseStringOr(value any, defaultValue string) string {
	if s := ParseOptionalString(value); s != nil {
		return *s
	}
	return defaultValue
}

// ParseProximityPoints разбирает массив объектов {type, name, distance}.
// Элементы, не являющиеся объектами, пропускаются.
func ParseProximityPoints(value any) []ProximityPoint {
	items, ok := value.([]any)
	if !ok {
		return []ProximityPoint{}
	}

	points := make([]ProximityPoint, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		points = append(points, ProximityPoint{
			Type:     parseStringOr(obj["type"], ""),
			Name:     parseStringOr(obj["name"], ""),
			Distance: parseStringOr(obj["distance"], ""),
		})
	}
	return points
}
