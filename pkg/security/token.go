package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const VISITOR_TOKEN_ISSUER = "folio-api"

var ErrInvalidToken = errors.New("invalid visitor token")

// VisitorSigner 负责签发与校验访客 token，subject 即访客 id
type VisitorSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewVisitorSigner(secret string, ttl time.Duration) *VisitorSigner {
	return &VisitorSigner{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *VisitorSigner) TTL() time.Duration {
	return s.ttl
}

func (s *VisitorSigner) Issue() (visitorID, token string, err error) {
	visitorID = uuid.NewString()
	token, err = s.Sign(visitorID)
	return
}

func (s *VisitorSigner) Sign(visitorID string) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:  visitorID,
		Issuer:   VISITOR_TOKEN_ISSUER,
		IssuedAt: now.Unix(),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = now.Add(s.ttl).Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *VisitorSigner) Parse(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	claims := &jwt.StandardClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !t.Valid || claims.Subject == "" || claims.Issuer != VISITOR_TOKEN_ISSUER {
		return "", ErrInvalidToken
	}
	if _, err = uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
