package security

import (
	"time"

	"coursehub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity tokens are valid for 7 days. The token carries identity only;
// privilege is always re-read from the user store at the point of use.
const tokenTTL = 7 * 24 * time.Hour

type Claims struct {
	UserID uuid.UUID
	Email  string
}

type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

func (m *TokenManager) Generate(userID uuid.UUID, email string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	})
	return t.SignedString(m.secret)
}

func (m *TokenManager) Validate(tokenStr string) (*Claims, error) {
	// A token without an exp claim would otherwise live forever.
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return &Claims{UserID: userID, Email: email}, nil
}
