package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sighc/sighc/internal/config"
	"github.com/sighc/sighc/internal/connectivity"
	"github.com/sighc/sighc/internal/facade"
	"github.com/sighc/sighc/internal/fallback"
	"github.com/sighc/sighc/internal/remote"
	"github.com/sighc/sighc/pkg/records"
)

// errRejected makes the process exit non-zero when the backend refused a
// write. Simulated and fallback outcomes exit 0.
var errRejected = errors.New("rejected by the records API")

// newFacade builds the client stack from API_BASE_URL, API_TIMEOUT and
// API_TOKEN. Logs go to stderr so stdout stays machine-readable.
func newFacade() (*facade.Service, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	logger := newLogger(os.Stderr, cfg.Env)

	tracker := connectivity.NewTracker()
	client := remote.NewClient(cfg.APIBaseURL, tracker,
		remote.WithTimeout(cfg.APITimeout),
		remote.WithLogger(logger),
	)
	if cfg.APIToken != "" {
		client.SetToken(cfg.APIToken)
	}
	return facade.NewService(client, tracker, logger), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportWrite prints res and maps a rejection to errRejected.
func reportWrite(w io.Writer, res records.WriteResult) error {
	if err := printJSON(w, res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", errRejected, res.Message)
	}
	return nil
}

// readCmd builds a command printing the result of one facade read.
func readCmd(use, short string, read func(ctx context.Context, svc *facade.Service) interface{}) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newFacade()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), read(cmd.Context(), svc))
		},
	}
}

func addClientCommands(root *cobra.Command) {
	root.AddCommand(statusCmd())
	root.AddCommand(loginCmd())
	root.AddCommand(readCmd("dashboard", "Show dashboard statistics",
		func(ctx context.Context, svc *facade.Service) interface{} { return svc.DashboardStats(ctx) }))
	root.AddCommand(patientsCmd())
	root.AddCommand(readCmd("physicians", "List active physicians",
		func(ctx context.Context, svc *facade.Service) interface{} { return svc.Physicians(ctx) }))
	root.AddCommand(appointmentsCmd())
	root.AddCommand(consultCmd())
	root.AddCommand(medicationsCmd())
	root.AddCommand(auditCmd())
}

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether the records API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newFacade()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			report := func(bool) {
				st := svc.Status()
				fmt.Fprintf(out, "%s %s\n", st.CheckedAt.Format(time.RFC3339), onlineLabel(st.Online))
			}

			watch, _ := cmd.Flags().GetDuration("watch")
			if watch <= 0 {
				svc.CheckHealth(cmd.Context())
				report(true)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			svc.WatchHealth(ctx, watch, report)
			return nil
		},
	}
	cmd.Flags().Duration("watch", 0, "Keep polling at this interval until interrupted")
	return cmd
}

func onlineLabel(online bool) string {
	if online {
		return "online"
	}
	return "offline"
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login USERNAME",
		Short: "Authenticate and print the session user with its token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			demo, _ := cmd.Flags().GetBool("demo")

			svc, err := newFacade()
			if err != nil {
				return err
			}
			u, err := login(cmd.Context(), svc, args[0], password, demo)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
	cmd.Flags().String("password", "", "Account password")
	cmd.Flags().Bool("demo", false, "Accept a local demonstration account when the API refuses or is unreachable")
	return cmd
}

// login authenticates through the facade. With demo set, a failed login falls
// back to the local demonstration accounts, which carry no token.
func login(ctx context.Context, svc *facade.Service, username, password string, demo bool) (*records.User, error) {
	if u := svc.Login(ctx, username, password); u != nil {
		return u, nil
	}
	if !demo {
		return nil, errors.New("Credenciales inválidas")
	}
	if u, ok := fallback.DemoUser(username); ok {
		return &u, nil
	}
	var names []string
	for _, u := range fallback.DemoUsers() {
		names = append(names, u.Username)
	}
	return nil, fmt.Errorf("Credenciales inválidas; cuentas de demostración: %s", strings.Join(names, ", "))
}

func patientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "List active patients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			simple, _ := cmd.Flags().GetBool("simple")
			svc, err := newFacade()
			if err != nil {
				return err
			}
			if simple {
				return printJSON(cmd.OutOrStdout(), svc.SimplePatients(cmd.Context()))
			}
			return printJSON(cmd.OutOrStdout(), svc.ActivePatients(cmd.Context()))
		},
	}
	cmd.Flags().Bool("simple", false, "Only ids and names")

	var p records.NewPatient
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a patient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newFacade()
			if err != nil {
				return err
			}
			return reportWrite(cmd.OutOrStdout(), svc.RegisterPatient(cmd.Context(), p))
		},
	}
	add.Flags().StringVar(&p.DNI, "dni", "", "DNI (8 digits)")
	add.Flags().StringVar(&p.FirstNames, "nombres", "", "Given names")
	add.Flags().StringVar(&p.LastNames, "apellidos", "", "Family names")
	add.Flags().StringVar(&p.BirthDate, "nacimiento", "", "Birth date (YYYY-MM-DD)")
	add.Flags().StringVar(&p.Sex, "sexo", "", "M or F")
	add.Flags().StringVar(&p.Address, "direccion", "", "Address")
	add.Flags().StringVar(&p.Phone, "telefono", "", "Phone")
	add.Flags().StringVar(&p.Email, "email", "", "Email")
	add.Flags().StringVar(&p.BloodGroup, "grupo", "", "Blood group")
	add.Flags().IntVar(&p.RegisteredBy, "usuario", 0, "Registering user id (default: session user)")
	cmd.AddCommand(add)
	return cmd
}

func appointmentsCmd() *cobra.Command {
	cmd := readCmd("appointments", "List the medical agenda",
		func(ctx context.Context, svc *facade.Service) interface{} { return svc.Appointments(ctx) })

	var a records.NewAppointment
	add := &cobra.Command{
		Use:   "add",
		Short: "Schedule an appointment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newFacade()
			if err != nil {
				return err
			}
			return reportWrite(cmd.OutOrStdout(), svc.ScheduleAppointment(cmd.Context(), a))
		},
	}
	add.Flags().IntVar(&a.PatientID, "paciente", 0, "Patient id")
	add.Flags().IntVar(&a.PhysicianID, "medico", 0, "Physician id")
	add.Flags().StringVar(&a.Date, "fecha", "", "Date (YYYY-MM-DD)")
	add.Flags().StringVar(&a.Time, "hora", "", "Start time (HH:MM)")
	add.Flags().StringVar(&a.Reason, "motivo", "", "Reason for the visit")
	add.Flags().StringVar(&a.Type, "tipo", records.AppointmentFirstVisit, "PrimeraVez, Control or Emergencia")
	add.Flags().IntVar(&a.RegisteredBy, "usuario", 0, "Registering user id (default: session user)")
	cmd.AddCommand(add)
	return cmd
}

func consultCmd() *cobra.Command {
	var c records.NewConsultation
	var d records.Diagnosis
	cmd := &cobra.Command{
		Use:   "consult",
		Short: "Record a consultation for an appointment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if d.Code != "" {
				c.Diagnosis = &d
			}
			svc, err := newFacade()
			if err != nil {
				return err
			}
			return reportWrite(cmd.OutOrStdout(), svc.RecordConsultation(cmd.Context(), c))
		},
	}
	f := cmd.Flags()
	f.IntVar(&c.AppointmentID, "cita", 0, "Appointment id")
	f.StringVar(&c.Vitals.BloodPressure, "presion", "", "Blood pressure, e.g. 120/80")
	f.Float64Var(&c.Vitals.Temperature, "temperatura", 0, "Temperature in °C")
	f.IntVar(&c.Vitals.HeartRate, "fc", 0, "Heart rate")
	f.Float64Var(&c.Vitals.Weight, "peso", 0, "Weight in kg")
	f.Float64Var(&c.Vitals.Height, "talla", 0, "Height in m")
	f.StringVar(&c.Anamnesis.Reason, "motivo", "", "Reason for consultation")
	f.StringVar(&c.Anamnesis.PhysicalExam, "examen", "", "Physical examination")
	f.StringVar(&d.Code, "cie10", "", "CIE-10 diagnosis code")
	f.StringVar(&d.Description, "diagnostico", "", "Diagnosis description")
	f.StringVar(&d.Type, "tipo-diagnostico", "", "Presuntivo, Definitivo or Repetido")
	f.StringVar(&d.Classification, "clasificacion", "", "Principal or Secundario")
	f.IntVar(&c.RegisteredBy, "usuario", 0, "Registering user id (default: session user)")
	return cmd
}

func medicationsCmd() *cobra.Command {
	cmd := readCmd("medications", "List the medication catalogue",
		func(ctx context.Context, svc *facade.Service) interface{} { return svc.Medications(ctx) })

	var m records.NewMedication
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a medication",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newFacade()
			if err != nil {
				return err
			}
			return reportWrite(cmd.OutOrStdout(), svc.RegisterMedication(cmd.Context(), m))
		},
	}
	f := add.Flags()
	f.StringVar(&m.Code, "codigo", "", "Medication code")
	f.StringVar(&m.GenericName, "nombre", "", "Generic name")
	f.StringVar(&m.BrandName, "comercial", "", "Brand name")
	f.StringVar(&m.Presentation, "presentacion", "", "Presentation")
	f.StringVar(&m.Concentration, "concentracion", "", "Concentration")
	f.StringVar(&m.DosageForm, "forma", "", "Dosage form")
	f.StringVar(&m.Unit, "unidad", "", "Unit of measure")
	f.IntVar(&m.MinStock, "stock-minimo", 0, "Minimum stock")
	f.IntVar(&m.Stock, "stock", 0, "Current stock")
	f.Float64Var(&m.UnitPrice, "precio", 0, "Unit price")
	f.BoolVar(&m.PrescriptionOnly, "receta", false, "Requires prescription")
	f.IntVar(&m.RegisteredBy, "usuario", 0, "Registering user id (default: session user)")
	cmd.AddCommand(add)
	return cmd
}

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			xlsx, _ := cmd.Flags().GetString("xlsx")
			svc, err := newFacade()
			if err != nil {
				return err
			}
			entries := svc.AuditLog(cmd.Context())
			if xlsx == "" {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			if err := writeAuditWorkbook(xlsx, entries); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d audit entries to %s\n", len(entries), xlsx)
			return nil
		},
	}
	cmd.Flags().String("xlsx", "", "Write the log to an Excel workbook instead of stdout")
	return cmd
}
