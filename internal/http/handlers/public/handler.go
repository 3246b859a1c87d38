package public

import "github.com/royale-store/royale-api/internal/provider"

// Handler serves the storefront API: catalog, cart, and checkout.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
