package library

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"backend-routeglobe/internal/auth"
	"backend-routeglobe/internal/render"
	"backend-routeglobe/internal/route"
	"backend-routeglobe/internal/session"
)

// Sessions is the session surface the library reads from and loads into.
type Sessions interface {
	CurrentRoute(ctx context.Context, id string) (route.Route, error)
	ReplaceRoute(ctx context.Context, id string, r route.Route) (*session.Session, error)
}

func RegisterRoutes(r fiber.Router, svc *Service, sessions Sessions, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req SaveRequest
		if err := c.BodyParser(&req); err != nil || req.SessionID == "" || req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "session_id and name required")
		}
		if !auth.OwnsSession(c, req.SessionID) {
			return fiber.NewError(fiber.StatusForbidden, "token does not grant access to this session")
		}
		current, err := sessions.CurrentRoute(c.Context(), req.SessionID)
		if err != nil {
			return statusError(err)
		}
		saved, err := svc.Save(c.Context(), req.Name, req.Description, req.SessionID, current)
		if err != nil {
			return statusError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		routes, err := svc.List(c.Context(), c.QueryInt("limit", defaultListLimit))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(routes)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		saved, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return statusError(err)
		}
		return c.JSON(saved)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		requester, _ := c.Locals(auth.LocalSessionID).(string)
		if err := svc.Delete(c.Context(), c.Params("id"), requester); err != nil {
			return statusError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/:id/load", authMiddleware, func(c *fiber.Ctx) error {
		var req LoadRequest
		if err := c.BodyParser(&req); err != nil || req.SessionID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "session_id required")
		}
		if !auth.OwnsSession(c, req.SessionID) {
			return fiber.NewError(fiber.StatusForbidden, "token does not grant access to this session")
		}
		saved, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return statusError(err)
		}
		sess, err := sessions.ReplaceRoute(c.Context(), req.SessionID, saved.Route)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(sess)
	})
}

func statusError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, session.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrTooShort),
		errors.Is(err, route.ErrInvalidCoordinate),
		errors.Is(err, route.ErrDecreasingDistance),
		errors.Is(err, route.ErrDecreasingTime),
		errors.Is(err, render.ErrRouteTooLarge):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
