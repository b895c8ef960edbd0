package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"storefront-service/pkg/config"
)

var (
	secret     []byte
	expiration = 24 * time.Hour
)

// Initialize sets the signing key and token lifetime from configuration.
func Initialize(cfg *config.JWTConfig) {
	secret = []byte(cfg.SigningKey)
	if cfg.ExpirationTime > 0 {
		expiration = cfg.ExpirationTime
	}
}

// CustomerClaims represents the JWT claims for an authenticated customer
type CustomerClaims struct {
	Email      string `json:"email"`
	CustomerID uint   `json:"customer_id"`
	jwt.RegisteredClaims
}

// GenerateToken creates a JWT token with customer information
func GenerateToken(email string, customerID uint) (string, error) {
	claims := CustomerClaims{
		Email:      email,
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*CustomerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomerClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
