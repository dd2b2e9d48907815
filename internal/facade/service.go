// Package facade is the single entry point front ends use to reach the
// records API. Reads degrade to sample data, writes degrade to labelled
// simulated results, and backend rejections are always surfaced.
package facade

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sighc/sighc/internal/connectivity"
	"github.com/sighc/sighc/internal/fallback"
	"github.com/sighc/sighc/internal/remote"
	"github.com/sighc/sighc/pkg/records"
)

// Simulated write messages. Each contains records.SimulationMarker.
const (
	MsgPatientSimulated      = "Paciente registrado correctamente (Simulación Local)"
	MsgAppointmentSimulated  = "Cita programada correctamente (Simulación Local)"
	MsgConsultationSimulated = "Consulta registrada correctamente (Simulación Local)"
	MsgMedicationSimulated   = "Medicamento registrado correctamente (Simulación Local)"

	msgPersisted = "Operación registrada"
)

// DefaultWatchInterval is used by WatchHealth when given a non-positive interval.
const DefaultWatchInterval = 10 * time.Second

// API routes.
const (
	pathLogin          = "/login"
	pathHealth         = "/health"
	pathDashboard      = "/dashboard"
	pathPatients       = "/patients"
	pathPatientsSimple = "/pacientes-simple"
	pathPhysicians     = "/medicos"
	pathAppointments   = "/appointments"
	pathConsultations  = "/consultations"
	pathAudit          = "/audit"
	pathMedications    = "/medications"
)

// API is the subset of remote.Client the service needs.
type API interface {
	Call(ctx context.Context, method, path string, body interface{}) remote.Result
	SetToken(token string)
}

// Service wraps every domain operation with the fallback policy. It holds the
// session user for its lifetime.
type Service struct {
	api     API
	tracker *connectivity.Tracker
	logger  zerolog.Logger

	mu   sync.RWMutex
	user *records.User
}

// NewService creates a service. tracker must be the one api writes to.
func NewService(api API, tracker *connectivity.Tracker, logger zerolog.Logger) *Service {
	return &Service{api: api, tracker: tracker, logger: logger}
}

// -- Session --

// Login authenticates against the backend. Any failure, network or
// rejection, returns nil: a session is never fabricated here.
func (s *Service) Login(ctx context.Context, username, password string) *records.User {
	res := s.api.Call(ctx, http.MethodPost, pathLogin, records.Credentials{Username: username, Password: password})
	var u records.User
	if err := res.Decode(&u); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("login failed")
		return nil
	}
	if u.ID == 0 {
		s.logger.Warn().Str("username", username).Msg("login reply carried no user")
		return nil
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	s.api.SetToken(u.Token)

	out := u
	return &out
}

// Logout drops the session user and token.
func (s *Service) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.api.SetToken("")
}

// CurrentUser returns a copy of the session user, or nil.
func (s *Service) CurrentUser() *records.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// registeredBy is the session user id, or 0 without a session so the API
// attributes the write to the bearer of the token it verified.
func (s *Service) registeredBy() int {
	if u := s.CurrentUser(); u != nil {
		return u.ID
	}
	return 0
}

// -- Connectivity --

// CheckHealth probes the backend. It reports false on any failure.
func (s *Service) CheckHealth(ctx context.Context) bool {
	return s.api.Call(ctx, http.MethodGet, pathHealth, nil).OK()
}

// Online returns the last-known reachability without calling the backend.
func (s *Service) Online() bool {
	return s.tracker.Online()
}

// Status returns the last-known reachability and when it was recorded.
func (s *Service) Status() connectivity.Status {
	return s.tracker.Status()
}

// Subscribe forwards to the tracker.
func (s *Service) Subscribe() (<-chan bool, func()) {
	return s.tracker.Subscribe()
}

// WatchHealth runs CheckHealth immediately and then every interval until ctx
// is done, passing each outcome to fn. A non-positive interval means
// DefaultWatchInterval.
func (s *Service) WatchHealth(ctx context.Context, interval time.Duration, fn func(online bool)) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	fn(s.CheckHealth(ctx))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(s.CheckHealth(ctx))
		}
	}
}

// -- Reads --

// read decodes a GET response into T, serving fallbackData on any failure.
func read[T any](ctx context.Context, s *Service, path string, fallbackData func() T) T {
	res := s.api.Call(ctx, http.MethodGet, path, nil)
	var out T
	if err := res.Decode(&out); err != nil {
		s.logger.Warn().
			Err(err).
			Str("path", path).
			Str("outcome", res.Kind.String()).
			Msg("serving fallback data")
		return fallbackData()
	}
	return out
}

func (s *Service) DashboardStats(ctx context.Context) records.DashboardStats {
	return read(ctx, s, pathDashboard, fallback.DashboardStats)
}

func (s *Service) ActivePatients(ctx context.Context) []records.Patient {
	return read(ctx, s, pathPatients, fallback.Patients)
}

func (s *Service) SimplePatients(ctx context.Context) []records.PatientSummary {
	return read(ctx, s, pathPatientsSimple, fallback.PatientSummaries)
}

func (s *Service) Physicians(ctx context.Context) []records.Physician {
	return read(ctx, s, pathPhysicians, fallback.Physicians)
}

func (s *Service) Appointments(ctx context.Context) []records.Appointment {
	return read(ctx, s, pathAppointments, fallback.Appointments)
}

func (s *Service) AuditLog(ctx context.Context) []records.AuditEntry {
	return read(ctx, s, pathAudit, fallback.AuditLog)
}

func (s *Service) Medications(ctx context.Context) []records.Medication {
	return read(ctx, s, pathMedications, fallback.Medications)
}

// -- Writes --

// write posts payload and maps the three terminal outcomes: persisted,
// rejected (message surfaced unchanged) and simulated.
func (s *Service) write(ctx context.Context, path string, payload interface{}, simulatedMsg string) records.WriteResult {
	res := s.api.Call(ctx, http.MethodPost, path, payload)

	switch res.Kind {
	case remote.KindOK:
		var out records.WriteResult
		if err := res.Decode(&out); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("write accepted with unreadable body")
			return records.WriteResult{Success: true, Message: msgPersisted}
		}
		out.Simulated = false
		return out
	case remote.KindRejected:
		return records.WriteResult{Success: false, Message: res.Message}
	default:
		s.logger.Warn().Err(res.Err).Str("path", path).Msg("backend unreachable, write simulated")
		return records.WriteResult{Success: true, Message: simulatedMsg, Simulated: true}
	}
}

// RegisterPatient calls the patient registration procedure.
func (s *Service) RegisterPatient(ctx context.Context, p records.NewPatient) records.WriteResult {
	if p.RegisteredBy == 0 {
		p.RegisteredBy = s.registeredBy()
	}
	return s.write(ctx, pathPatients, p, MsgPatientSimulated)
}

// ScheduleAppointment calls the scheduling procedure.
func (s *Service) ScheduleAppointment(ctx context.Context, a records.NewAppointment) records.WriteResult {
	if a.RegisteredBy == 0 {
		a.RegisteredBy = s.registeredBy()
	}
	return s.write(ctx, pathAppointments, a, MsgAppointmentSimulated)
}

// RecordConsultation calls the consultation procedure.
func (s *Service) RecordConsultation(ctx context.Context, c records.NewConsultation) records.WriteResult {
	if c.RegisteredBy == 0 {
		c.RegisteredBy = s.registeredBy()
	}
	return s.write(ctx, pathConsultations, c, MsgConsultationSimulated)
}

// RegisterMedication calls the medication registration procedure.
func (s *Service) RegisterMedication(ctx context.Context, m records.NewMedication) records.WriteResult {
	if m.RegisteredBy == 0 {
		m.RegisteredBy = s.registeredBy()
	}
	return s.write(ctx, pathMedications, m, MsgMedicationSimulated)
}
