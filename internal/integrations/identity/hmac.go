package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// HMACOptions параметры HS256 токенов для локальной разработки
type HMACOptions struct {
	Secret   string
	Issuer   string
	Audience string
}

// HMACVerifier проверяет и выпускает HS256 токены с общим секретом
type HMACVerifier struct {
	secret   []byte
	issuer   string
	audience string
	parser   *jwt.Parser
}

// NewHMACVerifier создает верификатор HS256 токенов
func NewHMACVerifier(opts HMACOptions) *HMACVerifier {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(time.Minute),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}

	return &HMACVerifier{
		secret:   []byte(opts.Secret),
		issuer:   opts.Issuer,
		audience: opts.Audience,
		parser:   jwt.NewParser(parserOpts...),
	}
}

// Verify проверяет подпись и claims токена
func (v *HMACVerifier) Verify(_ context.Context, rawToken string) (*domain.Identity, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(rawToken, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return &domain.Identity{
		UID:   claims.Subject,
		Email: claims.Email,
		Admin: claims.Admin,
	}, nil
}

// Issue выпускает токен для пользователя uid со сроком действия ttl
func (v *HMACVerifier) Issue(uid, email string, admin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSign, err)
	}
	return signed, nil
}
