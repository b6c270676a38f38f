package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the identity a session token carries. No server-side
// session state exists; logout is a client-side discard.
type TokenClaims struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
