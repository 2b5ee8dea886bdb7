package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"

	"github.com/spec-kit/ticket-dashboard/internal/config"
)

// RelayHandler forwards raw REST calls to the upstream tracker,
// injecting the API token so it never reaches the browser.
type RelayHandler struct {
	baseURL string
	token   string
}

// NewRelayHandler constructs handler.
func NewRelayHandler(cfg config.TrackerConfig) *RelayHandler {
	return &RelayHandler{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
	}
}

// Relay ALL /api/tracker/*. The wildcard path maps onto the tracker's
// REST surface verbatim.
func (h *RelayHandler) Relay(c *fiber.Ctx) error {
	rest := strings.TrimPrefix(c.Params("*"), "/")
	target := h.baseURL + "/api/rest/" + rest
	if query := string(c.Request().URI().QueryString()); query != "" {
		target += "?" + query
	}

	c.Request().Header.Set(fiber.HeaderAuthorization, h.token)
	return proxy.Do(c, target)
}
