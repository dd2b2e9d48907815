package identity

import (
	"errors"
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
	api.POST("/login", h.Login)
	api.GET("/medicos", h.ListPhysicians, auth.RequireView(records.ViewAppointments))
}

func (h *Handler) Login(c echo.Context) error {
	var creds records.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Solicitud inválida")
	}
	u, err := h.svc.Login(c.Request().Context(), creds)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error())
		}
		return apierr.Read(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) ListPhysicians(c echo.Context) error {
	physicians, err := h.svc.ListPhysicians(c.Request().Context())
	if err != nil {
		return apierr.Read(err)
	}
	return c.JSON(http.StatusOK, physicians)
}
