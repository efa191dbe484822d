package auth

import (
	"os"
	"time"

	"lostlink/internal/errs"
	"lostlink/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// Claims is the bearer token payload: the minimum identity the API needs
// per request.
type Claims struct {
	UserID      uint   `json:"id"`
	StudentName string `json:"studentname"`
	IsAdmin     bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func secret() []byte {
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		s = "secret_key_change_me"
	}
	return []byte(s)
}

// IssueToken signs a 24h HS256 token for the user.
func IssueToken(u *models.User) (string, error) {
	claims := Claims{
		UserID:      u.ID,
		StudentName: u.StudentName,
		IsAdmin:     u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// VerifyToken parses and validates a bearer token string.
func VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errs.ErrUnauthenticated
	}
	return claims, nil
}
