package routes

import (
	"github.com/fremantleline/fremantleline/pkg/transperth"
	"github.com/gofiber/fiber/v2"
)

const APIVersionNumber = "v1"

func APIVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version":  APIVersionNumber,
		"operator": transperth.OperatorName,
	})
}
