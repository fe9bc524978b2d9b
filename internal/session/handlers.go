package session

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"backend-routeglobe/internal/auth"
	"backend-routeglobe/internal/backend"
	"backend-routeglobe/internal/render"
	"backend-routeglobe/internal/route"
)

// TokenIssuer hands out the bearer token that guards a new session.
type TokenIssuer interface {
	IssueSessionToken(sessionID string) (auth.TokenResponse, error)
}

func RegisterRoutes(r fiber.Router, svc *Service, tokens TokenIssuer, authMiddleware fiber.Handler) {
	owner := auth.RequireSession("id")

	r.Post("/", func(c *fiber.Ctx) error {
		sess, err := svc.Create(c.Context())
		if err != nil {
			return statusError(err)
		}
		tok, err := tokens.IssueSessionToken(sess.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": sess, "tokens": tok})
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		sess, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return statusError(err)
		}
		return c.JSON(sess)
	})

	r.Delete("/:id", authMiddleware, owner, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return statusError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Put("/:id/route", authMiddleware, owner, func(c *fiber.Ctx) error {
		var req route.Route
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		sess, err := svc.ReplaceRoute(c.Context(), c.Params("id"), req)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(sess)
	})

	r.Post("/:id/upload", authMiddleware, owner, func(c *fiber.Ctx) error {
		header, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file required")
		}
		file, err := backend.ReadFormFile(header)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		var pace float64
		if raw := c.FormValue("pace_factor"); raw != "" {
			if pace, err = strconv.ParseFloat(raw, 64); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid pace_factor")
			}
		}
		sess, err := svc.Upload(c.Context(), c.Params("id"), file, pace)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(sess)
	})

	r.Post("/:id/garmin/:activityID", authMiddleware, owner, func(c *fiber.Ctx) error {
		var pace float64
		if raw := c.Query("pace_factor"); raw != "" {
			var err error
			if pace, err = strconv.ParseFloat(raw, 64); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid pace_factor")
			}
		}
		sess, err := svc.ImportGarmin(c.Context(), c.Params("id"), c.Params("activityID"), pace)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(sess)
	})

	r.Post("/:id/weather", authMiddleware, owner, func(c *fiber.Ctx) error {
		sess, err := svc.FetchWeather(c.Context(), c.Params("id"))
		if err != nil {
			return statusError(err)
		}
		return c.JSON(sess)
	})

	r.Put("/:id/view", authMiddleware, owner, func(c *fiber.Ctx) error {
		var req ViewUpdate
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		sess, err := svc.UpdateView(c.Context(), c.Params("id"), req)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(sess)
	})

	r.Get("/:id/frame", func(c *fiber.Ctx) error {
		msg, err := svc.Frame(c.Context(), c.Params("id"))
		if err != nil {
			return statusError(err)
		}
		return c.JSON(msg)
	})

	r.Get("/:id/frame.geojson", func(c *fiber.Ctx) error {
		msg, err := svc.Frame(c.Context(), c.Params("id"))
		if err != nil {
			return statusError(err)
		}
		raw, err := json.Marshal(msg.Frame.GeoJSON())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/geo+json")
		return c.Send(raw)
	})

	r.Get("/:id/route.gpx", func(c *fiber.Ctx) error {
		data, err := svc.GPX(c.Context(), c.Params("id"))
		if err != nil {
			return statusError(err)
		}
		c.Set(fiber.HeaderContentType, "application/gpx+xml")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="route.gpx"`)
		return c.Send(data)
	})

	r.Get("/:id/profile", func(c *fiber.Ctx) error {
		profile, err := svc.Profile(c.Context(), c.Params("id"))
		if err != nil {
			return statusError(err)
		}
		return c.JSON(profile)
	})

	r.Get("/:id/impact", func(c *fiber.Ctx) error {
		impact, err := svc.Impact(c.Context(), c.Params("id"))
		if err != nil {
			return statusError(err)
		}
		return c.JSON(impact)
	})
}

func statusError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoWeather):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrStaleRoute):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidView),
		errors.Is(err, route.ErrInvalidCoordinate),
		errors.Is(err, route.ErrDecreasingDistance),
		errors.Is(err, route.ErrDecreasingTime),
		errors.Is(err, render.ErrRouteTooLarge):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, render.ErrSceneClosed):
		return fiber.NewError(fiber.StatusGone, err.Error())
	case backend.IsBackendError(err):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
