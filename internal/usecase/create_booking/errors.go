package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных,
	// в цепочке ошибок лежит *domain.ValidationError с полями
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
