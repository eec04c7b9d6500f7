package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/lk16/reversi/internal/config"
)

// unauthorized triggers the browser login dialog and returns a JSON error.
func unauthorized(c *fiber.Ctx) error {
	c.Set("WWW-Authenticate", `Basic realm="Restricted"`)

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

// BasicAuth middleware that checks for basic auth credentials.
func BasicAuth(cfg *config.ServerConfig) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Users: map[string]string{
			cfg.BasicAuthUsername: cfg.BasicAuthPassword,
		},
		Realm:        "Restricted",
		Unauthorized: unauthorized,
	})
}

// AuthOrToken middleware that accepts either basic auth or a token header.
func AuthOrToken(cfg *config.ServerConfig) fiber.Handler {
	basicAuth := BasicAuth(cfg)

	return func(c *fiber.Ctx) error {
		token := c.Get("x-token")
		if token != "" && token == cfg.Token {
			return c.Next()
		}

		return basicAuth(c)
	}
}
