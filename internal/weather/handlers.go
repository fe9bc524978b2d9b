package weather

import (
	"github.com/gofiber/fiber/v2"

	"backend-routeglobe/internal/route"
)

func RegisterRoutes(r fiber.Router) {
	r.Post("/impact", func(c *fiber.Ctx) error {
		var summary route.WeatherSummary
		if err := c.BodyParser(&summary); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		impact, ok := Estimate(&summary)
		if !ok {
			return c.JSON(fiber.Map{"available": false})
		}
		return c.JSON(fiber.Map{"available": true, "impact": impact})
	})
}
