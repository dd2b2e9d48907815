// Package records holds the row shapes exchanged between the records API and
// its clients. JSON field names mirror the database columns and views they are
// read from, so a value decoded by a client is the row the server selected.
package records

// SimulationMarker appears in the message of every write result that was
// fabricated locally because the backend could not be reached.
const SimulationMarker = "Simulación"

// Patient is a row of the active patients view.
type Patient struct {
	ID              int    `json:"IdPaciente"`
	MedicalRecordNo string `json:"NroHistoriaClinica"`
	FirstNames      string `json:"Nombres"`
	LastNames       string `json:"Apellidos"`
	DNI             string `json:"DNI"`
	BirthDate       string `json:"FechaNacimiento,omitempty"`
	Age             int    `json:"Edad,omitempty"`
	Sex             string `json:"Sexo"`
	BloodGroup      string `json:"GrupoSanguineo,omitempty"`
	Address         string `json:"Direccion,omitempty"`
	Phone           string `json:"Telefono,omitempty"`
	Email           string `json:"Email,omitempty"`
	Status          string `json:"Estado"`
	RegisteredAt    string `json:"FechaRegistro"`
	FullName        string `json:"NombreCompleto,omitempty"`
}

// PatientSummary is the reduced patient row used to fill selection lists.
type PatientSummary struct {
	ID         int    `json:"IdPaciente"`
	FirstNames string `json:"Nombres"`
	LastNames  string `json:"Apellidos"`
}

// NewPatient is the input of the patient registration procedure.
type NewPatient struct {
	DNI          string `json:"DNI"`
	FirstNames   string `json:"Nombres"`
	LastNames    string `json:"Apellidos"`
	BirthDate    string `json:"FechaNacimiento"`
	Sex          string `json:"Sexo"`
	Address      string `json:"Direccion,omitempty"`
	Phone        string `json:"Telefono,omitempty"`
	Email        string `json:"Email,omitempty"`
	BloodGroup   string `json:"GrupoSanguineo,omitempty"`
	RegisteredBy int    `json:"UsuarioRegistro"`
}

// Physician is an active physician joined with its specialty.
type Physician struct {
	ID            int    `json:"IdMedico"`
	FirstNames    string `json:"Nombres"`
	LastNames     string `json:"Apellidos"`
	DNI           string `json:"DNI,omitempty"`
	CMP           string `json:"CMP"`
	RNE           string `json:"RNE,omitempty"`
	SpecialtyID   int    `json:"IdEspecialidad,omitempty"`
	SpecialtyName string `json:"NombreEspecialidad"`
	Phone         string `json:"Telefono,omitempty"`
	Email         string `json:"Email,omitempty"`
	Status        string `json:"Estado"`
}

// Appointment is a row of the medical agenda view.
type Appointment struct {
	ID            int    `json:"IdCita"`
	Code          string `json:"CodigoCita"`
	PatientID     int    `json:"IdPaciente,omitempty"`
	PhysicianID   int    `json:"IdMedico,omitempty"`
	PatientName   string `json:"NombrePaciente"`
	PhysicianName string `json:"NombreMedico"`
	Date          string `json:"FechaCita"`
	StartTime     string `json:"HoraInicio"`
	EndTime       string `json:"HoraFin"`
	Reason        string `json:"MotivoConsulta,omitempty"`
	Type          string `json:"TipoCita"`
	Status        string `json:"Estado"`
}

// Appointment types accepted by the scheduling procedure.
const (
	AppointmentFirstVisit = "PrimeraVez"
	AppointmentFollowUp   = "Control"
	AppointmentEmergency  = "Emergencia"
)

// NewAppointment is the input of the scheduling procedure.
type NewAppointment struct {
	PatientID    int    `json:"idPaciente"`
	PhysicianID  int    `json:"idMedico"`
	Date         string `json:"fecha"`
	Time         string `json:"hora"`
	Reason       string `json:"motivo"`
	Type         string `json:"tipo"`
	RegisteredBy int    `json:"usuarioRegistro"`
}

// Vitals are the triage measurements taken at a consultation.
type Vitals struct {
	BloodPressure string  `json:"presion"`
	Temperature   float64 `json:"temperatura"`
	HeartRate     int     `json:"fc"`
	Weight        float64 `json:"peso"`
	Height        float64 `json:"talla"`
}

// Anamnesis is the free-text part of a consultation.
type Anamnesis struct {
	Reason       string `json:"motivo"`
	PhysicalExam string `json:"examen"`
}

// Diagnosis is a CIE-10 coded diagnosis attached to a consultation.
type Diagnosis struct {
	Code           string `json:"codigo"`
	Description    string `json:"descripcion,omitempty"`
	Type           string `json:"tipo,omitempty"`
	Classification string `json:"clasificacion,omitempty"`
}

// NewConsultation is the input of the consultation procedure.
type NewConsultation struct {
	AppointmentID int        `json:"idCita"`
	Vitals        Vitals     `json:"vitals"`
	Anamnesis     Anamnesis  `json:"anamnesis"`
	Diagnosis     *Diagnosis `json:"diagnostico,omitempty"`
	RegisteredBy  int        `json:"usuarioRegistro"`
}

// AuditEntry is a row of the immutable audit log.
type AuditEntry struct {
	ID             int    `json:"IdAudit"`
	Table          string `json:"TablaAfectada"`
	Operation      string `json:"Operacion"`
	RecordID       int    `json:"IdRegistro,omitempty"`
	UserID         int    `json:"UsuarioID,omitempty"`
	UserName       string `json:"UsuarioNombre"`
	OccurredAt     string `json:"FechaHora"`
	NewValues      string `json:"ValoresNuevos,omitempty"`
	PreviousValues string `json:"ValoresAnteriores,omitempty"`
}

// Medication is a row of the medication catalogue.
type Medication struct {
	ID               int     `json:"IdMedicamento"`
	Code             string  `json:"CodigoMedicamento"`
	GenericName      string  `json:"NombreGenerico"`
	BrandName        string  `json:"NombreComercial,omitempty"`
	Presentation     string  `json:"Presentacion,omitempty"`
	Concentration    string  `json:"Concentracion,omitempty"`
	DosageForm       string  `json:"FormaFarmaceutica,omitempty"`
	Unit             string  `json:"UnidadMedida,omitempty"`
	MinStock         int     `json:"StockMinimo"`
	Stock            int     `json:"StockActual"`
	UnitPrice        float64 `json:"PrecioUnitario"`
	PrescriptionOnly bool    `json:"RequiereReceta"`
	Status           string  `json:"Estado"`
}

// NewMedication is the input of the medication registration procedure.
type NewMedication struct {
	Code             string  `json:"CodigoMedicamento"`
	GenericName      string  `json:"NombreGenerico"`
	BrandName        string  `json:"NombreComercial,omitempty"`
	Presentation     string  `json:"Presentacion,omitempty"`
	Concentration    string  `json:"Concentracion,omitempty"`
	DosageForm       string  `json:"FormaFarmaceutica,omitempty"`
	Unit             string  `json:"UnidadMedida,omitempty"`
	MinStock         int     `json:"StockMinimo"`
	Stock            int     `json:"StockActual"`
	UnitPrice        float64 `json:"PrecioUnitario"`
	PrescriptionOnly bool    `json:"RequiereReceta"`
	RegisteredBy     int     `json:"UsuarioRegistro"`
}

// DiagnosticCount is one entry of the most frequent diagnoses.
type DiagnosticCount struct {
	Code        string `json:"name"`
	Cases       int    `json:"cases"`
	Description string `json:"descr"`
}

// DashboardStats are the aggregates shown on the dashboard.
type DashboardStats struct {
	Patients      int               `json:"patients"`
	Appointments  int               `json:"citas"`
	Consultations int               `json:"consultas"`
	Physicians    int               `json:"medicos"`
	Diagnostics   []DiagnosticCount `json:"diagnostics"`
}

// User is the authenticated account returned by login.
type User struct {
	ID       int    `json:"IdUsuario"`
	Username string `json:"NombreUsuario"`
	FullName string `json:"NombreCompleto"`
	RoleID   Role   `json:"IdRol"`
	RoleName string `json:"RolNombre"`
	Token    string `json:"token,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// WriteResult is the outcome of a write operation. Simulated is set only when
// no persistence happened because the backend was unreachable.
type WriteResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ID        int    `json:"id,omitempty"`
	Simulated bool   `json:"simulated,omitempty"`
}

// ErrorBody is the JSON error payload returned by the API.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
