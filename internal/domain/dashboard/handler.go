package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sighc/sighc/internal/platform/apierr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the dashboard. Every role may open it.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard", h.Stats)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return apierr.Read(err)
	}
	return c.JSON(http.StatusOK, stats)
}
