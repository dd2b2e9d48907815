package medication

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
	api.GET("/medications", h.ListActive,
		auth.RequireRole(records.RolePharmacy, records.RolePhysician, records.RoleNurse))
	api.POST("/medications", h.Register, auth.RequireRole(records.RolePharmacy))
}

func (h *Handler) ListActive(c echo.Context) error {
	meds, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return apierr.Read(err)
	}
	return c.JSON(http.StatusOK, meds)
}

func (h *Handler) Register(c echo.Context) error {
	var m records.NewMedication
	if err := c.Bind(&m); err != nil {
		return apierr.BadBody(err)
	}
	m.RegisteredBy = auth.RegisteredBy(c.Request().Context(), m.RegisteredBy)
	res, err := h.svc.Register(c.Request().Context(), m)
	if err != nil {
		return apierr.Write(err)
	}
	return c.JSON(http.StatusOK, res)
}
