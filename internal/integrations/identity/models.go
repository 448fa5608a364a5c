package identity

import "github.com/golang-jwt/jwt/v5"

// Claims набор claims HS256 токена
type Claims struct {
	Email string `json:"email,omitempty"`
	Admin bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}
