package handlers

import (
	"aroundyou/internal/discovery"

	"github.com/gofiber/fiber/v2"
)

// DiscoveryHandler serves the public shop discovery page and map.
type DiscoveryHandler struct {
	mapboxToken string
}

// NewDiscoveryHandler creates a new DiscoveryHandler. mapboxToken is the
// default public token; clients may pass their own.
func NewDiscoveryHandler(mapboxToken string) *DiscoveryHandler {
	return &DiscoveryHandler{mapboxToken: mapboxToken}
}

// RegisterRoutes registers the public discovery routes.
func (h *DiscoveryHandler) RegisterRoutes(router fiber.Router) {
	discoveryRoutes := router.Group("/discovery")
	discoveryRoutes.Get("/", h.HandleDiscover)
	discoveryRoutes.Get("/map", h.HandleMap)
}

func (h *DiscoveryHandler) token(c *fiber.Ctx) string {
	return c.Query("token", h.mapboxToken)
}

// HandleDiscover lists the sample shops matching ?q=, in grid or map ?view=.
func (h *DiscoveryHandler) HandleDiscover(c *fiber.Ctx) error {
	var q discovery.Query
	if err := c.QueryParser(&q); err != nil {
		return badBody(c, err)
	}
	return c.JSON(discovery.Discover(q, h.token(c)))
}

// HandleMap returns the map view around ?lng=&lat=, or a token prompt.
func (h *DiscoveryHandler) HandleMap(c *fiber.Ctx) error {
	center := discovery.ParseLocation(c.Query("lng"), c.Query("lat"))
	return c.JSON(discovery.NewMapView(h.token(c), center))
}
