package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gofiber/fiber/v2"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is who a bearer token speaks for.
type Identity struct {
	UserID string
	Name   string
}

func Issue(secret []byte, id Identity, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = id.UserID
	claims["name"] = id.Name
	claims["exp"] = time.Now().Add(ttl).Unix()
	return token.SignedString(secret)
}

func Parse(secret []byte, raw string) (Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	return fromClaims(claims)
}

// FromContext reads the identity the jwt middleware stored on the request.
func FromContext(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return fromClaims(claims)
}

func fromClaims(claims jwt.MapClaims) (Identity, error) {
	id, _ := claims["user_id"].(string)
	if id == "" {
		return Identity{}, ErrInvalidToken
	}
	name, _ := claims["name"].(string)
	return Identity{UserID: id, Name: name}, nil
}
