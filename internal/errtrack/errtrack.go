package errtrack

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	DSN         string
	Environment string
	Release     string
}

// Init configures Sentry. An empty DSN leaves reporting off and is not an
// error.
func Init(cfg Config) (bool, error) {
	if cfg.DSN == "" {
		log.Printf("errtrack: SENTRY_DSN not set, error reporting disabled")
		return false, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		BeforeSend:  scrub,
	})
	if err != nil {
		return false, fmt.Errorf("sentry init: %w", err)
	}
	log.Printf("errtrack: reporting to sentry (environment=%s)", cfg.Environment)
	return true, nil
}

// scrub drops credentials from request data before an event leaves the process.
func scrub(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event.Request != nil && event.Request.Headers != nil {
		delete(event.Request.Headers, "Authorization")
		delete(event.Request.Headers, "Cookie")
	}
	return event
}

// Capture reports err with tags on a cloned hub so concurrent requests do not
// share scope.
func Capture(err error, tags map[string]string) {
	if err == nil {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		hub.CaptureException(err)
	})
}

func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// ErrorHandler renders errors as {"error": msg} and reports server-side
// failures.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		Capture(err, map[string]string{
			"method": c.Method(),
			"route":  c.Route().Path,
			"status": fmt.Sprint(code),
		})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
