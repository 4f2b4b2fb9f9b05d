package identity

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken is returned when a token fails verification.
var ErrInvalidToken = errors.New("identity: invalid token")

// Tokenizer issues and verifies signed tokens.
type Tokenizer interface {
	Generate(claims map[string]interface{}, ttl time.Duration) (string, error)
	Decode(token string) (map[string]interface{}, error)
}

var _ Tokenizer = &JwtService{}

// JwtService signs HS256 tokens carrying "exp" and "iss" claims.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a JWT service with the given signing key and issuer.
func NewJwtService(secretKey, issuer string) *JwtService {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate creates a token for the given claims, expiring after ttl.
func (s *JwtService) Generate(claims map[string]interface{}, ttl time.Duration) (string, error) {
	jwtClaims := jwt.MapClaims{
		"exp": time.Now().UTC().Add(ttl).Unix(),
		"iss": s.issuer,
	}
	for key, val := range claims {
		jwtClaims[key] = val
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a token, returning its claims.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(s.secretKey), nil
}
