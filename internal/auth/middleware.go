package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LocalSessionID is the fiber locals key holding the token's session id.
const LocalSessionID = "session_id"

// JWTMiddleware validates bearer access tokens and stores session_id in locals.
func JWTMiddleware(secret string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get("Authorization"))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		parsed, err := parseMiddlewareClaimsFn(token, &Claims{}, keyFunc(secretBytes), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims, ok := parsed.Claims.(*Claims)
		if !ok || !parsed.Valid || claims.Kind != kindAccess {
			return fiber.NewError(fiber.StatusUnauthorized, "token invalid")
		}

		c.Locals(LocalSessionID, claims.SessionID)
		return c.Next()
	}
}

// RequireSession rejects requests whose token belongs to a different session
// than the :param route parameter. It must run after JWTMiddleware.
func RequireSession(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !OwnsSession(c, c.Params(param)) {
			return fiber.NewError(fiber.StatusForbidden, "token does not grant access to this session")
		}
		return c.Next()
	}
}

// OwnsSession reports whether the validated token was issued for sessionID.
func OwnsSession(c *fiber.Ctx, sessionID string) bool {
	id, _ := c.Locals(LocalSessionID).(string)
	return id != "" && id == sessionID
}

var parseMiddlewareClaimsFn = jwt.ParseWithClaims

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
