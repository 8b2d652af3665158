package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

var ErrMalformedClaims = errors.New("malformed token claims")

type TokenClaims struct {
	UserID     int64
	Name       string
	ExternalID string
	ExpiresAt  time.Time
}

// CreateJWTToken signs an HS256 token. Each call yields a distinct token through its jti claim.
func CreateJWTToken(userID int64, userName string, externalID string, jwtSecretKey string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(ttl)

	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = userID
	claims["name"] = userName
	claims["externalID"] = externalID
	claims["jti"] = uuid.New().String()
	claims["iat"] = now.Unix()
	claims["exp"] = expiresAt.Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(jwtSecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// ParseJWTToken verifies the signature and expiry of tokenString.
func ParseJWTToken(tokenString string, jwtSecretKey string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil {
		return TokenClaims{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return TokenClaims{}, ErrMalformedClaims
	}

	userID, ok := claims["userID"].(float64)
	if !ok {
		return TokenClaims{}, ErrMalformedClaims
	}
	name, _ := claims["name"].(string)
	externalID, _ := claims["externalID"].(string)
	exp, _ := claims["exp"].(float64)

	return TokenClaims{
		UserID:     int64(userID),
		Name:       name,
		ExternalID: externalID,
		ExpiresAt:  time.Unix(int64(exp), 0),
	}, nil
}
