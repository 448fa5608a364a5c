package company

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("company.repository: company not found")

	// ErrDuplicateCompany возвращается при нарушении уникальности name, registrationNumber или email
	ErrDuplicateCompany = errors.New("company.repository: company already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("company.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса
	ErrExecQuery = errors.New("company.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения результата запроса
	ErrScanRow = errors.New("company.repository: failed to scan row")
)
