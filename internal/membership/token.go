package membership

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// cardTokenTTL bounds how long a QR code derived from the token stays usable.
const cardTokenTTL = 10 * time.Minute

type CardClaims struct {
	UserID string `json:"user_id"`
	Year   int    `json:"year"`
	Code   string `json:"code"`
	jwt.RegisteredClaims
}

func cardSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return []byte(secret), nil
}

func GenerateCardToken(card *Card) (string, error) {
	key, err := cardSecret()
	if err != nil {
		return "", err
	}

	claims := CardClaims{
		UserID: card.UserID,
		Year:   card.Year,
		Code:   card.Code,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cardTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

func ParseCardToken(tokenStr string) (*CardClaims, error) {
	key, err := cardSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&CardClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return key, nil
		},
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*CardClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
