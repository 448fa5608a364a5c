package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

var (
	// ErrInvalidBody возвращается, когда тело запроса не является корректным JSON
	ErrInvalidBody = errors.New("handlers: invalid request body")

	validate = newValidator()
)

// Normalizer реализуют модели запросов, которым нужна предварительная очистка полей
type Normalizer interface {
	Normalize()
}

// DecodeJSON читает тело запроса в dst. Неизвестные поля и тело больше 1 MiB отклоняются.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes+1))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidBody)
	}
	return nil
}

// DecodeAndValidate декодирует тело, нормализует его и проверяет теги validate.
// Ошибки валидации возвращаются как *domain.ValidationError.
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	return ValidateStruct(dst)
}
