package handlers

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed map.html
var mapPage []byte

// MapPage handles GET /map and serves the interactive marker map.
// @Summary Interactive map page
// @Description Serves the Leaflet map that renders all imported points with their popups
// @Tags pois
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /map [get]
func MapPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(mapPage)
}
