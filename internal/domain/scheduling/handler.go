package scheduling

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sighc/sighc/internal/platform/apierr"
	"github.com/sighc/sighc/internal/platform/auth"
	"github.com/sighc/sighc/pkg/records"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireView(records.ViewAppointments))
	g.GET("/appointments", h.List)
	g.POST("/appointments", h.Schedule)
}

func (h *Handler) List(c echo.Context) error {
	appointments, err := h.svc.List(c.Request().Context())
	if err != nil {
		return apierr.Read(err)
	}
	return c.JSON(http.StatusOK, appointments)
}

func (h *Handler) Schedule(c echo.Context) error {
	var a records.NewAppointment
	if err := c.Bind(&a); err != nil {
		return apierr.BadBody(err)
	}
	a.RegisteredBy = auth.RegisteredBy(c.Request().Context(), a.RegisteredBy)
	res, err := h.svc.Schedule(c.Request().Context(), a)
	if err != nil {
		return apierr.Write(err)
	}
	return c.JSON(http.StatusOK, res)
}
