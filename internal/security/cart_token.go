package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CartTokens issues and decodes the bearer token that identifies a cart.
// The token carries only the cart id; ownership checks happen against the
// stores, not the token.
type CartTokens struct {
	secret []byte
	ttl    time.Duration
}

func NewCartTokens(secret string, ttl time.Duration) *CartTokens {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &CartTokens{secret: []byte(secret), ttl: ttl}
}

func (t *CartTokens) IssueCartToken(cartID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"cart_id": cartID,
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *CartTokens) DecodeCartToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !token.Valid {
		return "", errors.New("invalid cart token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid cart token claims")
	}
	cartID, _ := claims["cart_id"].(string)
	if cartID == "" {
		return "", errors.New("cart token missing cart_id")
	}
	return cartID, nil
}
