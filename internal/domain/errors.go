package domain

import "strings"

// FieldError описывает ошибку валидации одного поля запроса
type FieldError struct {
	Field   string
	Message string
}

// ValidationError набор ошибок валидации, возвращаемый клиенту как 400
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError создает ошибку для одного поля
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add добавляет ошибку поля
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors сообщает, есть ли накопленные ошибки
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
