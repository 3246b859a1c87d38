package admin

import "github.com/royale-store/royale-api/internal/provider"

// Handler serves the backoffice API.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
