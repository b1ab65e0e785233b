package controllers

import (
	"errors"
	"time"

	"github.com/DedS3t/richman-engine/app/models"
	"github.com/DedS3t/richman-engine/platform/auth"
	"github.com/DedS3t/richman-engine/platform/logging"
	"github.com/DedS3t/richman-engine/platform/queries"
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// hashCost is lowered in tests.
var hashCost = bcrypt.DefaultCost

type UserStore interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
}

func encrypt(pass string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), hashCost)
	return string(hash), err
}

func issue(c *fiber.Ctx, secret []byte, id auth.Identity) error {
	t, err := auth.Issue(secret, id, tokenTTL)
	if err != nil {
		logging.Component("auth").WithError(err).Error("sign token")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"access_token": t, "user_id": id.UserID, "name": id.Name})
}

// Guest hands out a token for a throwaway identity.
func Guest(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guestDto := new(models.GuestDto)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(guestDto); err != nil {
				return c.SendStatus(fiber.StatusBadRequest)
			}
		}
		id := uuid.NewV4().String()
		name := guestDto.Name
		if name == "" {
			name = "Guest " + id[:4]
		}
		return issue(c, secret, auth.Identity{UserID: id, Name: name})
	}
}

func CreateUser(users UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userDto := new(models.UserDto)
		if err := c.BodyParser(userDto); err != nil || userDto.Email == "" || userDto.Pass == "" {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		if _, err := users.FindUserByEmail(userDto.Email); err == nil {
			return c.SendStatus(fiber.StatusConflict)
		}
		hash, err := encrypt(userDto.Pass)
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		err = users.CreateUser(&models.User{
			Id:       uuid.NewV4().String(),
			Email:    userDto.Email,
			Password: hash,
		})
		if err != nil {
			logging.Component("auth").WithError(err).Error("create user")
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusCreated)
	}
}

func Login(users UserStore, secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userDto := new(models.UserDto)
		if err := c.BodyParser(userDto); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		user, err := users.FindUserByEmail(userDto.Email)
		if errors.Is(err, queries.ErrUserNotFound) {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		if err != nil {
			logging.Component("auth").WithError(err).Error("find user")
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(userDto.Pass)) != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return issue(c, secret, auth.Identity{UserID: user.Id, Name: user.Email})
	}
}

func Cur(c *fiber.Ctx) error {
	id, err := auth.FromContext(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	return c.JSON(fiber.Map{"user_id": id.UserID, "name": id.Name})
}
