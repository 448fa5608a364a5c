package middleware

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// TokenVerifier проверяет bearer токен и возвращает личность вызывающего
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*domain.Identity, error)
}

// HTTPObserver учитывает метрики HTTP запросов
type HTTPObserver interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
