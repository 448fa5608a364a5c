package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrInvalidReference возвращается, когда serviceId или companyId имеют неверный формат
	ErrInvalidReference = errors.New("booking.repository: invalid reference id")

	// ErrBuildQuery возвращается при ошибке построения запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
