package clinical

import (
	"context"
	"strings"

	"github.com/sighc/sighc/internal/platform/apierr"
	"github.com/sighc/sighc/pkg/records"
)

// DefaultRegisteredBy attributes writes that arrive without a user.
const DefaultRegisteredBy = 1

// MsgRecorded is the message of a persisted consultation.
const MsgRecorded = "Consulta registrada exitosamente"

var (
	diagnosisTypes           = map[string]bool{"Presuntivo": true, "Definitivo": true, "Repetido": true}
	diagnosisClassifications = map[string]bool{"Principal": true, "Secundario": true}
)

type Service struct {
	consultations ConsultationRepository
}

func NewService(consultations ConsultationRepository) *Service {
	return &Service{consultations: consultations}
}

// RecordConsultation validates c and records it against its appointment. The
// procedure rejects appointments that are already attended or cancelled.
func (s *Service) RecordConsultation(ctx context.Context, c records.NewConsultation) (*records.WriteResult, error) {
	if err := validateConsultation(&c); err != nil {
		return nil, err
	}
	if c.RegisteredBy == 0 {
		c.RegisteredBy = DefaultRegisteredBy
	}

	id, err := s.consultations.Record(ctx, c)
	if err != nil {
		return nil, err
	}
	return &records.WriteResult{Success: true, Message: MsgRecorded, ID: id}, nil
}

func validateConsultation(c *records.NewConsultation) error {
	if c.AppointmentID <= 0 {
		return apierr.Invalid("idCita", "Debe seleccionar una cita")
	}

	v := c.Vitals
	if v.Temperature != 0 && (v.Temperature < 30 || v.Temperature > 45) {
		return apierr.Invalid("temperatura", "La temperatura debe estar entre 30 y 45 °C")
	}
	if v.HeartRate < 0 || v.HeartRate > 300 {
		return apierr.Invalid("fc", "La frecuencia cardiaca debe estar entre 0 y 300")
	}
	if v.Weight < 0 || v.Weight > 999.99 {
		return apierr.Invalid("peso", "El peso no es válido")
	}
	if v.Height < 0 || v.Height > 999.99 {
		return apierr.Invalid("talla", "La talla no es válida")
	}
	if len(v.BloodPressure) > 10 {
		return apierr.Invalid("presion", "La presión arterial no es válida")
	}

	d := c.Diagnosis
	if d == nil {
		return nil
	}
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	if d.Code == "" {
		return apierr.Invalid("codigo", "El código CIE-10 es obligatorio")
	}
	if d.Type != "" && !diagnosisTypes[d.Type] {
		return apierr.Invalid("tipo", "Tipo de diagnóstico no válido: "+d.Type)
	}
	if d.Classification != "" && !diagnosisClassifications[d.Classification] {
		return apierr.Invalid("clasificacion", "Clasificación de diagnóstico no válida: "+d.Classification)
	}
	return nil
}
