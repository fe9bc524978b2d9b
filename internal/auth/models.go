package auth

import "github.com/golang-jwt/jwt/v5"

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// Claims bind a token to one rendering session.
type Claims struct {
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	jwt.RegisteredClaims
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
