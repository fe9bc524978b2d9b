package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const accessTokenTTL = 15 * time.Minute

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrWrongKind    = errors.New("wrong token kind")
)

type Service struct {
	secret     []byte
	refreshTTL time.Duration
	now        func() time.Time
}

// NewService signs session tokens with secret. Refresh tokens live as long as
// the session they belong to.
func NewService(secret string, sessionTTL time.Duration) *Service {
	if sessionTTL < accessTokenTTL {
		sessionTTL = accessTokenTTL
	}
	return &Service{
		secret:     []byte(secret),
		refreshTTL: sessionTTL,
		now:        time.Now,
	}
}

func (s *Service) IssueSessionToken(sessionID string) (TokenResponse, error) {
	access, err := s.signToken(sessionID, kindAccess, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}
	refresh, err := s.signToken(sessionID, kindRefresh, s.refreshTTL)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

// Refresh exchanges a refresh token for a new token pair for the same session.
func (s *Service) Refresh(token string) (TokenResponse, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return TokenResponse{}, err
	}
	if claims.Kind != kindRefresh {
		return TokenResponse{}, ErrWrongKind
	}
	return s.IssueSessionToken(claims.SessionID)
}

func (s *Service) ValidateAccessToken(token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}
	if claims.Kind != kindAccess {
		return "", ErrWrongKind
	}
	return claims.SessionID, nil
}

func (s *Service) signToken(sessionID, kind string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		SessionID: sessionID,
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, keyFunc(s.secret), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func keyFunc(secret []byte) jwt.Keyfunc {
	return func(_ *jwt.Token) (interface{}, error) {
		return secret, nil
	}
}
