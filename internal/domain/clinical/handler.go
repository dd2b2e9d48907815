package clinical

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
	api.POST("/consultations", h.RecordConsultation, auth.RequireView(records.ViewConsultations))
}

func (h *Handler) RecordConsultation(c echo.Context) error {
	var in records.NewConsultation
	if err := c.Bind(&in); err != nil {
		return apierr.BadBody(err)
	}
	in.RegisteredBy = auth.RegisteredBy(c.Request().Context(), in.RegisteredBy)
	res, err := h.svc.RecordConsultation(c.Request().Context(), in)
	if err != nil {
		return apierr.Write(err)
	}
	return c.JSON(http.StatusOK, res)
}
