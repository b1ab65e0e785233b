package routes

import (
	"github.com/DedS3t/richman-engine/app/controllers"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
)

// AuthRoutes mounts guest login always and accounts only when a user store
// is configured.
func AuthRoutes(a *fiber.App, secret []byte, users controllers.UserStore) {
	route := a.Group("/user")

	route.Post("/guest", controllers.Guest(secret))
	if users != nil {
		route.Post("/register", controllers.CreateUser(users))
		route.Post("/login", controllers.Login(users, secret))
	}
	route.Get("/cur", jwtware.New(jwtware.Config{SigningKey: secret}), controllers.Cur)
}
