package identity

import "errors"

var (
	// ErrInvalidToken возвращается, когда токен не прошел проверку подписи или claims
	ErrInvalidToken = errors.New("identity: invalid token")

	// ErrKeysUnavailable возвращается, когда не удалось получить JWKS провайдера
	ErrKeysUnavailable = errors.New("identity: signing keys unavailable")

	// ErrSign возвращается при ошибке выпуска токена
	ErrSign = errors.New("identity: failed to sign token")
)
