package serviceImp

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"nippo/entities"
	"nippo/pkg/auth/service"
	"nippo/pkg/session"
)

const tokenTTL = 7 * 24 * time.Hour

type claims struct {
	UserID  uint   `json:"uid"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"admin"`
	jwt.RegisteredClaims
}

type jwtTokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) service.TokenService {
	return &jwtTokens{secret: []byte(secret), now: time.Now}
}

func (s *jwtTokens) Issue(u *entities.User) (string, error) {
	now := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:  u.ID,
		Name:    u.Name(),
		IsAdmin: u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtTokens) Parse(raw string) (session.Actor, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid || c.UserID == 0 {
		return session.Actor{}, service.ErrInvalidToken
	}
	return session.Actor{UserID: c.UserID, Name: c.Name, IsAdmin: c.IsAdmin}, nil
}
