package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/biztime"
)

// Claims carries the signed-in user's identity for a browser session.
type Claims struct {
	UserID    uint                   `json:"user_id"`
	SessionID string                 `json:"session_id"`
	Role      authorization.UserRole `json:"role"`
	IsStaff   bool                   `json:"is_staff"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret   []byte
	expHours int
}

func NewJWTService(secret string, expHours int) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		expHours: expHours,
	}
}

// Generate signs a session token for the given user identity.
func (s *JWTService) Generate(userID uint, sessionID string, role authorization.UserRole, isStaff bool) (string, time.Time, error) {
	now := biztime.NowUTC()
	exp := now.Add(time.Duration(s.expHours) * time.Hour)

	claims := &Claims{
		UserID:    userID,
		SessionID: sessionID,
		Role:      role,
		IsStaff:   isStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, exp, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// ExpHours returns the configured session lifetime in hours.
func (s *JWTService) ExpHours() int {
	return s.expHours
}
