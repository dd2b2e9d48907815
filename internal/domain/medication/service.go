package medication

import (
	"context"
	"strings"

	"github.com/sighc/sighc/internal/platform/apierr"
	"github.com/sighc/sighc/pkg/records"
)

// DefaultRegisteredBy attributes writes that arrive without a user.
const DefaultRegisteredBy = 1

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListActive(ctx context.Context) ([]records.Medication, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Register(ctx context.Context, m records.NewMedication) (*records.WriteResult, error) {
	m.Code = strings.ToUpper(strings.TrimSpace(m.Code))
	m.GenericName = strings.TrimSpace(m.GenericName)

	if m.Code == "" {
		return nil, apierr.Invalid("CodigoMedicamento", "El código del medicamento es obligatorio")
	}
	if m.GenericName == "" {
		return nil, apierr.Invalid("NombreGenerico", "El nombre genérico es obligatorio")
	}
	if m.MinStock < 0 || m.Stock < 0 {
		return nil, apierr.Invalid("StockActual", "El stock no puede ser negativo")
	}
	if m.UnitPrice < 0 {
		return nil, apierr.Invalid("PrecioUnitario", "El precio unitario no puede ser negativo")
	}
	if m.RegisteredBy == 0 {
		m.RegisteredBy = DefaultRegisteredBy
	}

	id, err := s.repo.Register(ctx, m)
	if err != nil {
		return nil, err
	}
	return &records.WriteResult{Success: true, Message: "Medicamento registrado: " + m.Code, ID: id}, nil
}
