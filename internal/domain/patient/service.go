package patient

import (
	"context"
	"strings"
	"time"

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

func (s *Service) ListActive(ctx context.Context) ([]records.Patient, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListSummaries(ctx context.Context) ([]records.PatientSummary, error) {
	return s.repo.ListSummaries(ctx)
}

// Register validates p and runs the registration procedure. Rule violations
// raised by the procedure are returned unchanged.
func (s *Service) Register(ctx context.Context, p records.NewPatient) (*records.WriteResult, error) {
	if err := normalize(&p); err != nil {
		return nil, err
	}
	if p.RegisteredBy == 0 {
		p.RegisteredBy = DefaultRegisteredBy
	}

	id, recordNo, err := s.repo.Register(ctx, p)
	if err != nil {
		return nil, err
	}
	return &records.WriteResult{Success: true, Message: "Paciente registrado: " + recordNo, ID: id}, nil
}

func normalize(p *records.NewPatient) error {
	p.DNI = strings.TrimSpace(p.DNI)
	p.FirstNames = strings.TrimSpace(p.FirstNames)
	p.LastNames = strings.TrimSpace(p.LastNames)
	p.Sex = strings.ToUpper(strings.TrimSpace(p.Sex))

	if p.DNI == "" {
		return apierr.Invalid("DNI", "DNI es obligatorio")
	}
	if !isDigits(p.DNI, 8) {
		return apierr.Invalid("DNI", "El DNI debe tener 8 dígitos")
	}
	if p.FirstNames == "" || p.LastNames == "" {
		return apierr.Invalid("Nombres", "Nombres y Apellidos son obligatorios")
	}
	if _, err := time.Parse("2006-01-02", p.BirthDate); err != nil {
		return apierr.Invalid("FechaNacimiento", "FechaNacimiento debe tener el formato AAAA-MM-DD")
	}
	if p.Sex != "M" && p.Sex != "F" {
		return apierr.Invalid("Sexo", "Sexo debe ser M o F")
	}
	return nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
