package middleware

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

type ctxKey int

const (
	identityKey ctxKey = iota
	requestIDKey
)

// WithIdentity кладет личность в контекст
func WithIdentity(ctx context.Context, ident *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// GetIdentity достает личность, положенную Auth
func GetIdentity(ctx context.Context) (*domain.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(*domain.Identity)
	return ident, ok && ident != nil
}

// GetRequestID возвращает ID запроса или пустую строку
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
