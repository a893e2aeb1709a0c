package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the acting identity. Staff and owners get AccountID/OwnerID
// (StaffID for staff); customers get CustomerID/OwnerID plus name and phone.
type Claims struct {
	AccountID  uuid.UUID `json:"accountId"`
	Role       string    `json:"role"`
	OwnerID    uuid.UUID `json:"ownerId"`
	StaffID    uuid.UUID `json:"staffId"`
	CustomerID uuid.UUID `json:"customerId"`
	Name       string    `json:"name,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs claims with HS256.
func GenerateToken(claims Claims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
