package identity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

const firebaseIssuerPrefix = "https://securetoken.google.com/"

// FirebaseOptions параметры проверки ID токенов провайдера
type FirebaseOptions struct {
	ProjectID       string
	JWKSURL         string
	RefreshInterval time.Duration
	HTTPClient      *http.Client
}

// FirebaseVerifier проверяет RS256 ID токены по публичным ключам провайдера.
// Ключи кешируются и обновляются в фоне, пока жив ctx конструктора.
type FirebaseVerifier struct {
	cache    *jwk.Cache
	jwksURL  string
	issuer   string
	audience string
	log      Logger
}

// NewFirebaseVerifier регистрирует JWKS в кеше. Ключи загружаются при первой проверке.
func NewFirebaseVerifier(ctx context.Context, opts FirebaseOptions, log Logger) (*FirebaseVerifier, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	cache := jwk.NewCache(ctx)

	registerOpts := []jwk.RegisterOption{jwk.WithHTTPClient(httpClient)}
	if opts.RefreshInterval > 0 {
		registerOpts = append(registerOpts, jwk.WithMinRefreshInterval(opts.RefreshInterval))
	}

	if err := cache.Register(opts.JWKSURL, registerOpts...); err != nil {
		return nil, fmt.Errorf("%w: register %s: %v", ErrKeysUnavailable, opts.JWKSURL, err)
	}

	return &FirebaseVerifier{
		cache:    cache,
		jwksURL:  opts.JWKSURL,
		issuer:   firebaseIssuerPrefix + opts.ProjectID,
		audience: opts.ProjectID,
		log:      log,
	}, nil
}

// Verify проверяет подпись, срок действия, issuer и audience токена
func (v *FirebaseVerifier) Verify(ctx context.Context, rawToken string) (*domain.Identity, error) {
	keys, err := v.cache.Get(ctx, v.jwksURL)
	if err != nil {
		v.log.Error("Failed to fetch signing keys: url=%s, error=%v", v.jwksURL, err)
		return nil, fmt.Errorf("%w: %v", ErrKeysUnavailable, err)
	}

	token, err := jwt.Parse([]byte(rawToken),
		jwt.WithKeySet(keys, jws.WithInferAlgorithmFromKey(true)),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithAcceptableSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if token.Subject() == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	ident := &domain.Identity{UID: token.Subject()}
	if email, ok := token.Get("email"); ok {
		ident.Email, _ = email.(string)
	}
	if admin, ok := token.Get("admin"); ok {
		ident.Admin, _ = admin.(bool)
	}

	return ident, nil
}
