package pkg

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the access token claims issued by the identity service
type Claims struct {
	UserID uint   `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken verifies an HS256 access token and returns its claims.
// The user id comes from the user_id claim, or from sub when that is absent.
func ValidateToken(tokenString string, secret string, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append([]jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}, opts...)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == 0 && claims.Subject != "" {
		id, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
		}
		claims.UserID = uint(id)
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: no user id", ErrInvalidToken)
	}
	return claims, nil
}

// ValidateTokenForIssuer is ValidateToken with an issuer check when issuer is set
func ValidateTokenForIssuer(tokenString, secret, issuer string) (*Claims, error) {
	if issuer == "" {
		return ValidateToken(tokenString, secret)
	}
	return ValidateToken(tokenString, secret, jwt.WithIssuer(issuer))
}
