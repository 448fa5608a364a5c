package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

const msgValidationFailed = "Validation failed"

// RespondValidation пишет 400 с ошибками полей, если в цепочке err есть *domain.ValidationError.
// Иначе отдает message без списка полей.
func RespondValidation(w http.ResponseWriter, err error, message string) {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		RespondBadRequest(w, message)
		return
	}

	body := ErrorResponse{
		Message: msgValidationFailed,
		Errors:  make([]FieldErrorBody, 0, len(verr.Fields)),
	}
	for _, f := range verr.Fields {
		body.Errors = append(body.Errors, FieldErrorBody{Field: f.Field, Message: f.Message})
	}
	RespondJSON(w, http.StatusBadRequest, body)
}

// RespondDecodeError отвечает на ошибку DecodeAndValidate
func RespondDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidBody) {
		RespondBadRequest(w, msgInvalidBody)
		return
	}
	RespondValidation(w, err, msgInvalidBody)
}

const msgInvalidBody = "Invalid request body"
