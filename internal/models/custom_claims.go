package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims are the claims read from access tokens issued by the identity provider
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"token_type"`
}
