package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are issued by the identity service; this service only verifies them.
type Claims struct {
	UserID   string `json:"uid"`
	TenantID string `json:"tid"`
	RoleName string `json:"role"`
	jwt.RegisteredClaims
}

type UserContext struct {
	UserID   string
	TenantID string
	RoleName string
}

var ErrInvalidToken = errors.New("invalid token")

// GenerateToken signs claims with HS256. Used by hrctl and tests to mint
// tokens the identity service would otherwise issue.
func GenerateToken(secret string, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TenantID == "" || claims.RoleName == "" {
		return nil, errors.Join(ErrInvalidToken, errors.New("missing tenant or role"))
	}
	return claims, nil
}

func (c *Claims) User() UserContext {
	return UserContext{UserID: c.UserID, TenantID: c.TenantID, RoleName: c.RoleName}
}
