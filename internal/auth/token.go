package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by VerifyToken for any token that cannot be
// accepted: malformed, badly signed, expired, or verified without a secret.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the identity embedded in a session token: the standard
// registered claims plus the account's email.
type Claims struct {
	jwt.RegisteredClaims
	// Email identifies the account the token was issued for.
	Email string `json:"email"`
}

// IssueToken creates a signed HS256 session token for the given email,
// expiring after ttl.
func IssueToken(email string, secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("empty signing secret")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: email,
	})

	return token.SignedString(secret)
}

// VerifyToken checks the signature and expiry of a session token and
// returns the embedded claims. It never panics; every rejection reason
// is reported as ErrInvalidToken.
func VerifyToken(tokenString string, secret []byte) (*Claims, error) {
	if len(secret) == 0 {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
