package audit

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sighc/sighc/internal/platform/apierr"
	"github.com/sighc/sighc/internal/platform/auth"
	"github.com/sighc/sighc/pkg/pagination"
	"github.com/sighc/sighc/pkg/records"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/audit", h.List, auth.RequireView(records.ViewAdmin))
}

// List serves GET /audit?limit=&offset=&tabla=. Without parameters it returns
// the latest 100 entries.
func (h *Handler) List(c echo.Context) error {
	page := pagination.FromContext(c, pagination.DefaultLimit, pagination.MaxLimit)
	f := Filter{Table: strings.TrimSpace(c.QueryParam("tabla"))}

	entries, err := h.svc.List(c.Request().Context(), f, page)
	if err != nil {
		return apierr.Read(err)
	}
	return c.JSON(http.StatusOK, entries)
}
