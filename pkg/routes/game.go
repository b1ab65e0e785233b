package routes

import (
	"github.com/DedS3t/richman-engine/app/controllers"
	"github.com/DedS3t/richman-engine/platform/rooms"
	"github.com/gofiber/fiber/v2"
)

func GameRoutes(a *fiber.App, reg *rooms.Registry, snapshots controllers.SnapshotReader) {
	route := a.Group("/game")
	route.Post("/create", controllers.CreateRoom(reg))
	route.Get("/verify", controllers.VerifyRoom(reg))
	route.Get("/all", controllers.GetAllAvailRooms(reg))
	route.Get("/find", controllers.FindAvailRoom(reg))
	route.Get("/state", controllers.GetRoomState(reg, snapshots))
}
