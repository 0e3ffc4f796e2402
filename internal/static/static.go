package static

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed configure.html
var configure []byte

// HandleConfigure serves the page that turns a StremThru config segment into an install link.
func HandleConfigure(c *fiber.Ctx) error {
	c.Response().Header.Add("Cache-control", "max-age=86400, public")
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(configure)
}

func Register(router fiber.Router) {
	router.Get("/configure", HandleConfigure)
	router.Get("/:config/configure", HandleConfigure)
}
