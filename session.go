package adminkit

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// DefaultAccessTokenCookie is the cookie the identity service's browser SDK
// stores the access token under.
var DefaultAccessTokenCookie = "sb-access-token"

type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Email          string     `json:"email,omitempty"`
	Audience       []string   `json:"audience,omitempty"`
	Issuer         string     `json:"issuer,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionObject) GetEmail() string {
	return s.Email
}

func (s SessionObject) String() string {
	issuedAt := "<nil>"
	if s.IssuedAt != nil {
		issuedAt = s.IssuedAt.Format(time.RFC1123)
	}
	return fmt.Sprintf(
		"user=%s email=%s iss=%s iat=%s",
		s.UserID,
		s.Email,
		s.Issuer,
		issuedAt,
	)
}

type accessTokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenSessionResolver verifies the identity service's HS256 access token
// locally using the shared JWT secret. Tokens are read from the SDK cookie
// first, then from the authorization header.
type TokenSessionResolver struct {
	SigningKey []byte
	CookieName string
}

var _ SessionResolver = (*TokenSessionResolver)(nil)

func NewTokenSessionResolver(secret string) *TokenSessionResolver {
	return &TokenSessionResolver{
		SigningKey: []byte(secret),
		CookieName: DefaultAccessTokenCookie,
	}
}

func (r *TokenSessionResolver) SessionFromRequest(c router.Context) (*SessionObject, error) {
	token := r.tokenFromRequest(c)
	if token == "" {
		return nil, nil
	}
	return r.SessionFromToken(token)
}

func (r *TokenSessionResolver) SessionFromToken(token string) (*SessionObject, error) {
	claims := &accessTokenClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return r.SigningKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil || !parsed.Valid {
		return nil, ErrUnableToDecodeSession
	}

	return sessionFromClaims(claims), nil
}

func (r *TokenSessionResolver) tokenFromRequest(c router.Context) string {
	cookieName := r.CookieName
	if cookieName == "" {
		cookieName = DefaultAccessTokenCookie
	}

	if token := c.Cookies(cookieName); token != "" {
		return token
	}

	return BearerToken(c)
}

// BearerToken extracts the bearer credential from the authorization header,
// returning "" when the header is absent or not a bearer scheme.
func BearerToken(c router.Context) string {
	header := c.Header("Authorization")
	if header == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func sessionFromClaims(claims *accessTokenClaims) *SessionObject {
	session := &SessionObject{
		UserID:   claims.Subject,
		Email:    claims.Email,
		Issuer:   claims.Issuer,
		Audience: []string(claims.Audience),
	}

	if claims.IssuedAt != nil {
		issuedAt := claims.IssuedAt.Time
		session.IssuedAt = &issuedAt
	}

	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		session.ExpirationDate = &expiresAt
	}

	return session
}
