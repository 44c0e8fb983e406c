package security

import (
	"errors"
	"strconv"
	"time"

	"tunehub-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// AccountClaims is the verified identity the engine consumes. Tokens are
// issued by the external identity provider with a shared secret; this side
// only validates them and extracts the account id and role.
type AccountClaims struct {
	AccountID int32              `json:"account_id"`
	Email     string             `json:"email,omitempty"`
	Role      domain.AccountRole `json:"role"`
	jwt.RegisteredClaims
}

func (c *AccountClaims) IsAdmin() bool {
	return c.Role == domain.AccountRoleAdmin
}

type TokenVerifier interface {
	ValidateToken(tokenString string) (*AccountClaims, error)
}

type tokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) TokenVerifier {
	return &tokenVerifier{secret: []byte(secret)}
}

func (v *tokenVerifier) ValidateToken(tokenString string) (*AccountClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccountClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccountClaims)
	if !ok || !token.Valid || claims.AccountID <= 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// MintToken signs a token the way the identity provider does. Used by local
// tooling and tests; production tokens come from the provider itself.
func MintToken(secret string, accountID int32, email string, role domain.AccountRole, ttl time.Duration) (string, error) {
	claims := AccountClaims{
		AccountID: accountID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(accountID)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
