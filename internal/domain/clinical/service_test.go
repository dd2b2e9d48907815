package clinical

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sighc/sighc/internal/platform/apierr"
	"github.com/sighc/sighc/pkg/records"
)

// -- Mock Consultation Repository --

type mockConsultationRepo struct {
	consultations map[int]records.NewConsultation
	attended      map[int]bool
	nextID        int
}

func newMockConsultationRepo() *mockConsultationRepo {
	return &mockConsultationRepo{
		consultations: make(map[int]records.NewConsultation),
		attended:      make(map[int]bool),
		nextID:        1,
	}
}

func (m *mockConsultationRepo) Record(_ context.Context, c records.NewConsultation) (int, error) {
	if m.attended[c.AppointmentID] {
		return 0, fmt.Errorf("record consultation: %w", &pgconn.PgError{
			Message: fmt.Sprintf("La cita %d ya fue atendida y no admite una nueva consulta", c.AppointmentID),
		})
	}
	m.attended[c.AppointmentID] = true
	id := m.nextID
	m.nextID++
	m.consultations[id] = c
	return id, nil
}

func newTestService() (*Service, *mockConsultationRepo) {
	repo := newMockConsultationRepo()
	return NewService(repo), repo
}

func validConsultation() records.NewConsultation {
	return records.NewConsultation{
		AppointmentID: 3,
		Vitals:        records.Vitals{BloodPressure: "120/80", Temperature: 36.8, HeartRate: 72, Weight: 70.5, Height: 1.72},
		Anamnesis:     records.Anamnesis{Reason: "Dolor de garganta", PhysicalExam: "Faringe congestiva"},
		Diagnosis:     &records.Diagnosis{Code: "j00", Description: "Rinofaringitis aguda", Type: "Definitivo", Classification: "Principal"},
	}
}

func TestService_RecordConsultation(t *testing.T) {
	svc, repo := newTestService()

	res, err := svc.RecordConsultation(context.Background(), validConsultation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.Message != MsgRecorded || res.ID != 1 {
		t.Errorf("unexpected result %+v", res)
	}

	stored := repo.consultations[1]
	if stored.Diagnosis == nil || stored.Diagnosis.Code != "J00" {
		t.Errorf("expected upper-cased diagnosis code, got %+v", stored.Diagnosis)
	}
	if stored.RegisteredBy != DefaultRegisteredBy {
		t.Errorf("expected default registering user, got %d", stored.RegisteredBy)
	}
}

func TestService_RecordConsultation_WithoutDiagnosis(t *testing.T) {
	svc, repo := newTestService()

	c := validConsultation()
	c.Diagnosis = nil
	if _, err := svc.RecordConsultation(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.consultations[1].Diagnosis != nil {
		t.Error("expected no diagnosis")
	}
}

func TestService_RecordConsultation_EmptyVitalsAccepted(t *testing.T) {
	svc, _ := newTestService()

	c := records.NewConsultation{AppointmentID: 9}
	if _, err := svc.RecordConsultation(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_RecordConsultation_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *records.NewConsultation)
		field  string
	}{
		{"missing appointment", func(c *records.NewConsultation) { c.AppointmentID = 0 }, "idCita"},
		{"temperature too low", func(c *records.NewConsultation) { c.Vitals.Temperature = 12 }, "temperatura"},
		{"temperature too high", func(c *records.NewConsultation) { c.Vitals.Temperature = 50 }, "temperatura"},
		{"negative heart rate", func(c *records.NewConsultation) { c.Vitals.HeartRate = -1 }, "fc"},
		{"negative weight", func(c *records.NewConsultation) { c.Vitals.Weight = -3 }, "peso"},
		{"negative height", func(c *records.NewConsultation) { c.Vitals.Height = -1 }, "talla"},
		{"long blood pressure", func(c *records.NewConsultation) { c.Vitals.BloodPressure = "120/80 mmHg sentado" }, "presion"},
		{"missing diagnosis code", func(c *records.NewConsultation) { c.Diagnosis.Code = " " }, "codigo"},
		{"bad diagnosis type", func(c *records.NewConsultation) { c.Diagnosis.Type = "Final" }, "tipo"},
		{"bad classification", func(c *records.NewConsultation) { c.Diagnosis.Classification = "Terciario" }, "clasificacion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			c := validConsultation()
			tt.mutate(&c)

			_, err := svc.RecordConsultation(context.Background(), c)
			ve, ok := err.(*apierr.ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, ve.Field)
			}
			if len(repo.consultations) != 0 {
				t.Error("invalid input must not reach the repository")
			}
		})
	}
}

func TestService_RecordConsultation_AlreadyAttended(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.RecordConsultation(context.Background(), validConsultation()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.RecordConsultation(context.Background(), validConsultation())
	if err == nil {
		t.Fatal("expected a second consultation on the same appointment to fail")
	}
	if got := apierr.Message(err); got != "La cita 3 ya fue atendida y no admite una nueva consulta" {
		t.Errorf("unexpected message %q", got)
	}
}
