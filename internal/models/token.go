package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the payload of the bearer tokens accepted by the API.
type TokenClaims struct {
	GlobalProfileID string `json:"globalProfileId"`
	NameID          string `json:"nameid"`
	UniqueName      string `json:"unique_name"`
	jwt.RegisteredClaims
}
