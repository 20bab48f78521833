package domain

import (
	"errors"
	"fmt"
)

// Переменные-ошибки, которые могут быть возвращены из Use Cases.
var (
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidValue      = errors.New("field has invalid value")
	ErrListingNotFound   = errors.New("listing not found")
	ErrListingUnreadable = errors.New("stored listing cannot be restored")
)

// MissingFieldError - обязательное поле отсутствует и под каноническим, и под устаревшими именами
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// InvalidValueError - поле присутствует, но не прошло разбор типа или диапазона
type InvalidValueError struct {
	Field string
	Value any
	Cause error
}

func (e *InvalidValueError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid value for field %q: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("invalid value for field %q", e.Field)
}

func (e *InvalidValueError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidValue, e.Cause}
	}
	return []error{ErrInvalidValue}
}

// FieldOf возвращает имя поля из ошибки валидации, если оно есть
func FieldOf(err error) (string, bool) {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return missing.Field, true
	}
	var invalid *InvalidValueError
	if errors.As(err, &invalid) {
		return invalid.Field, true
	}
	return "", false
}

// IsValidationError сообщает, является ли ошибка ошибкой построения записи
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingField) || errors.Is(err, ErrInvalidValue)
}
