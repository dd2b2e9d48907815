// Package fallback holds the sample records served while the records API is
// unreachable. The tables are fixed for the life of the process and never
// reflect writes made while offline.
package fallback

import (
	"time"

	"github.com/sighc/sighc/pkg/records"
)

// appointmentDate is "today" as of process start, so the sample agenda is
// always current but stable between calls.
var appointmentDate = time.Now().UTC().Format(time.RFC3339)

var dashboardStats = records.DashboardStats{
	Patients:      1250,
	Appointments:  45,
	Consultations: 3200,
	Physicians:    28,
	Diagnostics: []records.DiagnosticCount{
		{Code: "J00", Cases: 120, Description: "Rinofaringitis aguda"},
		{Code: "E11", Cases: 95, Description: "Diabetes mellitus tipo 2"},
		{Code: "I10", Cases: 80, Description: "Hipertensión esencial"},
		{Code: "A09", Cases: 60, Description: "Gastroenteritis infecciosa"},
	},
}

var patients = []records.Patient{
	{ID: 1, MedicalRecordNo: "HC-2025-00001", FirstNames: "Eduardo", LastNames: "Paipay", DNI: "27222136", Age: 25, Status: "A", Sex: "M", RegisteredAt: "2025-01-10", FullName: "Eduardo Paipay"},
	{ID: 2, MedicalRecordNo: "HC-2025-00002", FirstNames: "Steve", LastNames: "Ovalle", DNI: "27220112", Age: 24, Status: "A", Sex: "M", RegisteredAt: "2025-01-11", FullName: "Steve Ovalle"},
	{ID: 3, MedicalRecordNo: "HC-2025-00003", FirstNames: "Maria", LastNames: "Salazar", DNI: "40506070", Age: 45, Status: "A", Sex: "F", RegisteredAt: "2025-01-12", FullName: "Maria Salazar"},
	{ID: 4, MedicalRecordNo: "HC-2025-00004", FirstNames: "Juan", LastNames: "Quispe", DNI: "10203040", Age: 60, Status: "A", Sex: "M", RegisteredAt: "2025-01-13", FullName: "Juan Quispe"},
	{ID: 5, MedicalRecordNo: "HC-2025-00005", FirstNames: "Ana", LastNames: "Torres", DNI: "50607080", Age: 30, Status: "A", Sex: "F", RegisteredAt: "2025-01-14", FullName: "Ana Torres"},
}

var physicians = []records.Physician{
	{ID: 1, FirstNames: "Juan", LastNames: "Perez", SpecialtyName: "Medicina General", Status: "A", CMP: "12345"},
	{ID: 2, FirstNames: "Ana", LastNames: "Gomez", SpecialtyName: "Pediatría", Status: "A", CMP: "67890"},
	{ID: 3, FirstNames: "Carlos", LastNames: "Ruiz", SpecialtyName: "Cardiología", Status: "A", CMP: "11223"},
}

var appointments = []records.Appointment{
	{ID: 1, Date: appointmentDate, StartTime: "08:00", EndTime: "08:30", PatientName: "Eduardo Paipay", PhysicianName: "Juan Perez", Type: records.AppointmentFollowUp, Status: "Programada", Code: "CITA-2025-001"},
	{ID: 2, Date: appointmentDate, StartTime: "09:00", EndTime: "09:30", PatientName: "Maria Salazar", PhysicianName: "Ana Gomez", Type: records.AppointmentFirstVisit, Status: "Confirmada", Code: "CITA-2025-002"},
	{ID: 3, Date: appointmentDate, StartTime: "10:00", EndTime: "10:30", PatientName: "Juan Quispe", PhysicianName: "Carlos Ruiz", Type: records.AppointmentEmergency, Status: "Atendida", Code: "CITA-2025-003"},
}

var auditLog = []records.AuditEntry{
	{ID: 1, OccurredAt: "2025-12-01T10:00:00", Table: "Pacientes", Operation: "INSERT", UserName: "admin", NewValues: `{"Nombres": "Eduardo", "DNI": "27222136"}`},
	{ID: 2, OccurredAt: "2025-12-01T10:05:00", Table: "Citas", Operation: "UPDATE", UserName: "enfermera1", NewValues: `{"Estado": "Confirmada"}`, PreviousValues: `{"Estado": "Programada"}`},
	{ID: 3, OccurredAt: "2025-12-01T11:20:00", Table: "Consultas", Operation: "INSERT", UserName: "medico1", NewValues: `{"Diagnostico": "J00"}`},
}

var medications = []records.Medication{
	{ID: 1, Code: "MED-0001", GenericName: "Paracetamol", BrandName: "Panadol", Presentation: "Caja x 100", Concentration: "500 mg", DosageForm: "Tableta", Unit: "TAB", MinStock: 200, Stock: 1500, UnitPrice: 0.10, Status: "A"},
	{ID: 2, Code: "MED-0002", GenericName: "Amoxicilina", BrandName: "Amoxil", Presentation: "Caja x 50", Concentration: "500 mg", DosageForm: "Cápsula", Unit: "CAP", MinStock: 100, Stock: 640, UnitPrice: 0.35, PrescriptionOnly: true, Status: "A"},
	{ID: 3, Code: "MED-0003", GenericName: "Metformina", BrandName: "Glucophage", Presentation: "Caja x 60", Concentration: "850 mg", DosageForm: "Tableta", Unit: "TAB", MinStock: 150, Stock: 90, UnitPrice: 0.22, PrescriptionOnly: true, Status: "A"},
}

var demoUsers = []records.User{
	{ID: 1, Username: "admin", FullName: "Administrador Web", RoleID: records.RoleAdministrator, RoleName: "Administrador"},
	{ID: 2, Username: "medico1", FullName: "Juan Perez", RoleID: records.RolePhysician, RoleName: "Médico"},
	{ID: 3, Username: "enfermera1", FullName: "Maria Nurse", RoleID: records.RoleNurse, RoleName: "Enfermera"},
	{ID: 4, Username: "recep1", FullName: "Rosa Recep", RoleID: records.RoleReceptionist, RoleName: "Recepcionista"},
	{ID: 5, Username: "auditor1", FullName: "Carlos Audit", RoleID: records.RoleAuditor, RoleName: "Auditor"},
}

// DashboardStats returns the sample dashboard aggregates.
func DashboardStats() records.DashboardStats {
	s := dashboardStats
	s.Diagnostics = append([]records.DiagnosticCount(nil), dashboardStats.Diagnostics...)
	return s
}

// Patients returns the sample active patients.
func Patients() []records.Patient {
	return append([]records.Patient(nil), patients...)
}

// PatientSummaries returns the sample patients reduced to selection-list rows.
func PatientSummaries() []records.PatientSummary {
	out := make([]records.PatientSummary, len(patients))
	for i, p := range patients {
		out[i] = records.PatientSummary{ID: p.ID, FirstNames: p.FirstNames, LastNames: p.LastNames}
	}
	return out
}

// Physicians returns the sample active physicians.
func Physicians() []records.Physician {
	return append([]records.Physician(nil), physicians...)
}

// Appointments returns the sample agenda.
func Appointments() []records.Appointment {
	return append([]records.Appointment(nil), appointments...)
}

// AuditLog returns the sample audit entries.
func AuditLog() []records.AuditEntry {
	return append([]records.AuditEntry(nil), auditLog...)
}

// Medications returns the sample medication catalogue.
func Medications() []records.Medication {
	return append([]records.Medication(nil), medications...)
}

// DemoUsers lists the local demonstration accounts.
func DemoUsers() []records.User {
	return append([]records.User(nil), demoUsers...)
}

// DemoUser looks up a demonstration account by username. It exists for
// callers that choose a local login policy while offline; the facade never
// uses it.
func DemoUser(username string) (records.User, bool) {
	for _, u := range demoUsers {
		if u.Username == username {
			return u, true
		}
	}
	return records.User{}, false
}
