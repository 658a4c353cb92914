package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cotizaplus/cotiza-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// JWTValidator validates access tokens issued by the hosted auth
// service. Tokens are HS256-signed with a shared secret; the subject
// claim carries the user's UUID.
type JWTValidator struct {
	secret []byte
	issuer string
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(cfg *config.AuthConfig) *JWTValidator {
	return &JWTValidator{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
	}
}

// ValidateToken validates a JWT token and returns user context
func (v *JWTValidator) ValidateToken(tokenString string) (*UserContext, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: validator has no signing secret", ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !parsedToken.Valid {
		return nil, ErrInvalidToken
	}

	if v.issuer != "" {
		iss, _ := claims.GetIssuer()
		if iss != v.issuer {
			return nil, fmt.Errorf("%w: invalid issuer", ErrInvalidToken)
		}
	}

	sub, _ := claims.GetSubject()
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a valid user id", ErrInvalidToken)
	}

	return &UserContext{
		UserID: userID,
		Email:  extractString(claims, "email", "preferred_username"),
	}, nil
}

func extractString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if val, ok := claims[key]; ok {
			if str, ok := val.(string); ok && str != "" {
				return str
			}
		}
	}
	return ""
}
