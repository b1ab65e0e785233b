package controllers

import (
	"github.com/DedS3t/richman-engine/app/models"
	"github.com/DedS3t/richman-engine/platform/rooms"
	"github.com/gofiber/fiber/v2"
)

// SnapshotReader serves mirrored room state without taking the room lock.
type SnapshotReader interface {
	Load(roomID string) ([]byte, error)
}

func CreateRoom(reg *rooms.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roomCreateDto := new(models.RoomCreateDto)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(roomCreateDto); err != nil {
				return c.SendStatus(fiber.StatusBadRequest)
			}
		}
		state := reg.Create(roomCreateDto.Name)
		info, _ := reg.Info(state.RoomID)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": info.ID, "name": info.Name})
	}
}

func available(reg *rooms.Registry) []models.RoomSummary {
	out := []models.RoomSummary{}
	for _, r := range reg.List() {
		if r.Phase != models.PhaseFinished {
			out = append(out, r)
		}
	}
	return out
}

func GetAllAvailRooms(reg *rooms.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(available(reg))
	}
}

// FindAvailRoom returns the emptiest open room, opening one if none exist.
func FindAvailRoom(reg *rooms.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		open := available(reg)
		if len(open) == 0 {
			state := reg.Create("")
			return c.JSON(fiber.Map{"id": state.RoomID})
		}
		best := open[0]
		for _, r := range open[1:] {
			if r.PlayerCount < best.PlayerCount {
				best = r
			}
		}
		return c.JSON(fiber.Map{"id": best.ID})
	}
}

func VerifyRoom(reg *rooms.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		verifyRoomDto := new(models.VerifyRoomDto)
		if err := c.QueryParser(verifyRoomDto); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.JSON(fiber.Map{"status": reg.Exists(verifyRoomDto.Code)})
	}
}

// GetRoomState prefers the mirrored snapshot and falls back to the live room.
func GetRoomState(reg *rooms.Registry, snapshots SnapshotReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		verifyRoomDto := new(models.VerifyRoomDto)
		if err := c.QueryParser(verifyRoomDto); err != nil || verifyRoomDto.Code == "" {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		if snapshots != nil {
			if data, err := snapshots.Load(verifyRoomDto.Code); err == nil {
				c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
				return c.Send(data)
			}
		}
		state, err := reg.Snapshot(verifyRoomDto.Code)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(state)
	}
}
