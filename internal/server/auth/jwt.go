// Package auth implements the credential primitives of TaskKeeper:
// signed bearer tokens and password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/avelkovs/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken issues an HS256-signed JWT whose subject is the user
// identifier. Expiration is issue time plus ttl.
func GenerateToken(subject string, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// SubjectFromToken verifies the signature and expiration of tokenString
// and returns its subject. Expired tokens yield common.ErrTokenExpired;
// any other verification failure yields common.ErrInvalidToken, so the
// two stay distinguishable in logs even though callers reject both the
// same way.
func SubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
