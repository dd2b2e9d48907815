package scheduling

import (
	"context"

	"github.com/sighc/sighc/pkg/records"
)

type Repository interface {
	// List returns the medical agenda, latest date first and by start time
	// within a day.
	List(ctx context.Context) ([]records.Appointment, error)
	// Schedule runs the scheduling procedure and returns the new appointment
	// id and code.
	Schedule(ctx context.Context, a records.NewAppointment) (int, string, error)
}
