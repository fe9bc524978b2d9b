package render

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"backend-routeglobe/internal/route"
)

// RegisterRoutes serves stateless frame builds for a posted route. An empty
// body renders the sample route.
func RegisterRoutes(r fiber.Router, sampler HeightSampler) {
	build := func(c *fiber.Ctx) (Frame, error) {
		var rt *route.Route
		if len(c.Body()) > 0 {
			var req route.Route
			if err := c.BodyParser(&req); err != nil {
				return Frame{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			if err := route.Validate(req); err != nil {
				return Frame{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			if err := CheckSize(req.Points); err != nil {
				return Frame{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			req = route.Normalize(req)
			rt = &req
		}
		projection, ok := ParseProjection(c.Query("projection"))
		if !ok {
			return Frame{}, fiber.NewError(fiber.StatusBadRequest, "unknown projection")
		}
		opts := Options{Sampler: sampler, Projection: projection}
		if c.Query("selected") != "" {
			idx := c.QueryInt("selected", -1)
			if idx < 0 {
				return Frame{}, fiber.NewError(fiber.StatusBadRequest, "selected must be a point index")
			}
			opts.Selected = &idx
		}
		return Build(c.Context(), rt, opts), nil
	}

	r.Post("/", func(c *fiber.Ctx) error {
		frame, err := build(c)
		if err != nil {
			return err
		}
		return c.JSON(frame)
	})

	r.Post("/geojson", func(c *fiber.Ctx) error {
		frame, err := build(c)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(frame.GeoJSON())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/geo+json")
		return c.Send(raw)
	})
}
