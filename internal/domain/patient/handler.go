package patient

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
	g := api.Group("", auth.RequireView(records.ViewPatients))
	g.GET("/patients", h.ListActive)
	g.POST("/patients", h.Register)

	// Selection lists on the appointments view.
	api.GET("/pacientes-simple", h.ListSummaries, auth.RequireView(records.ViewAppointments))
}

func (h *Handler) ListActive(c echo.Context) error {
	patients, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return apierr.Read(err)
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) ListSummaries(c echo.Context) error {
	patients, err := h.svc.ListSummaries(c.Request().Context())
	if err != nil {
		return apierr.Read(err)
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) Register(c echo.Context) error {
	var p records.NewPatient
	if err := c.Bind(&p); err != nil {
		return apierr.BadBody(err)
	}
	p.RegisteredBy = auth.RegisteredBy(c.Request().Context(), p.RegisteredBy)
	res, err := h.svc.Register(c.Request().Context(), p)
	if err != nil {
		return apierr.Write(err)
	}
	return c.JSON(http.StatusOK, res)
}
