package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/sighc/sighc/internal/platform/apierr"
	"github.com/sighc/sighc/pkg/records"
)

// DefaultRegisteredBy attributes writes that arrive without a user.
const DefaultRegisteredBy = 1

var appointmentTypes = map[string]bool{
	records.AppointmentFirstVisit: true,
	records.AppointmentFollowUp:   true,
	records.AppointmentEmergency:  true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]records.Appointment, error) {
	return s.repo.List(ctx)
}

// Schedule validates a and runs the scheduling procedure. Slot conflicts and
// inactive patients or physicians are rejected by the procedure.
func (s *Service) Schedule(ctx context.Context, a records.NewAppointment) (*records.WriteResult, error) {
	if err := normalize(&a); err != nil {
		return nil, err
	}
	if a.RegisteredBy == 0 {
		a.RegisteredBy = DefaultRegisteredBy
	}

	id, code, err := s.repo.Schedule(ctx, a)
	if err != nil {
		return nil, err
	}
	return &records.WriteResult{Success: true, Message: "Cita programada: " + code, ID: id}, nil
}

func normalize(a *records.NewAppointment) error {
	if a.PatientID <= 0 {
		return apierr.Invalid("idPaciente", "Debe seleccionar un paciente")
	}
	if a.PhysicianID <= 0 {
		return apierr.Invalid("idMedico", "Debe seleccionar un médico")
	}
	if _, err := time.Parse("2006-01-02", a.Date); err != nil {
		return apierr.Invalid("fecha", "La fecha debe tener el formato AAAA-MM-DD")
	}
	a.Time = strings.TrimSpace(a.Time)
	if !validClock(a.Time) {
		return apierr.Invalid("hora", "La hora debe tener el formato HH:MM")
	}

	a.Type = strings.TrimSpace(a.Type)
	if a.Type == "" {
		a.Type = records.AppointmentFirstVisit
	}
	if !appointmentTypes[a.Type] {
		return apierr.Invalid("tipo", "Tipo de cita no válido: "+a.Type)
	}
	a.Reason = strings.TrimSpace(a.Reason)
	return nil
}

func validClock(s string) bool {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
