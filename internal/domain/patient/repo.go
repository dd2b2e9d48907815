package patient

import (
	"context"

	"github.com/sighc/sighc/pkg/records"
)

type Repository interface {
	// ListActive returns the active patients view, newest registration first.
	ListActive(ctx context.Context) ([]records.Patient, error)
	ListSummaries(ctx context.Context) ([]records.PatientSummary, error)
	// Register runs the registration procedure and returns the new patient id
	// and medical record number.
	Register(ctx context.Context, p records.NewPatient) (int, string, error)
}
