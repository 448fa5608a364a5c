package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

type sampleRequest struct {
	Name  string   `json:"name" validate:"required,min=2"`
	Email string   `json:"email" validate:"required,email"`
	Tags  []string `json:"tags" validate:"required,min=1,max=2,dive,required"`
}

func (r *sampleRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeAndValidate(t *testing.T) {
	var req sampleRequest
	err := DecodeAndValidate(newRequest(`{"name":"  Bob ","email":" BOB@Example.com ","tags":["a"]}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "Bob", req.Name)
	assert.Equal(t, "bob@example.com", req.Email)
}

func TestDecodeAndValidate_FieldErrors(t *testing.T) {
	var req sampleRequest
	err := DecodeAndValidate(newRequest(`{"name":" B ","email":"nope","tags":[""]}`), &req)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "tags[0]"}, fields)
}

func TestDecodeAndValidate_LengthMessages(t *testing.T) {
	var req sampleRequest
	err := DecodeAndValidate(newRequest(`{"name":"B","email":"bob@example.com","tags":["a","b","c"]}`), &req)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	messages := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		messages[f.Field] = f.Message
	}
	assert.Equal(t, "must be at least 2 characters", messages["name"])
	assert.Equal(t, "must be at most 2 items", messages["tags"])
}

func TestDecodeJSON_Rejects(t *testing.T) {
	var req sampleRequest

	err := DecodeJSON(newRequest(`{"name":"Bob","extra":1}`), &req)
	assert.ErrorIs(t, err, ErrInvalidBody)

	err = DecodeJSON(newRequest(`{"name":"Bob"}{"name":"Eve"}`), &req)
	assert.ErrorIs(t, err, ErrInvalidBody)

	big := fmt.Sprintf(`{"name":"%s"}`, strings.Repeat("x", maxBodyBytes))
	err = DecodeJSON(newRequest(big), &req)
	assert.ErrorIs(t, err, ErrInvalidBody)
}

func TestRespondValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	verr := domain.NewValidationError("companyId", "is required")
	RespondValidation(rec, fmt.Errorf("%w: %w", errors.New("invalid"), verr), "fallback")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Validation failed","errors":[{"field":"companyId","message":"is required"}]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RespondValidation(rec, errors.New("plain"), "fallback")
	assert.JSONEq(t, `{"message":"fallback"}`, rec.Body.String())
}

func TestRespondDecodeError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDecodeError(rec, fmt.Errorf("%w: eof", ErrInvalidBody))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())
}

func TestDecimalWithoutQuotes(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]decimal.Decimal{"price": decimal.RequireFromString("15.99")})
	assert.JSONEq(t, `{"price":15.99}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInternalError(rec)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}
