package medication

import (
	"context"

	"github.com/sighc/sighc/pkg/records"
)

type Repository interface {
	ListActive(ctx context.Context) ([]records.Medication, error)
	// Register runs the registration procedure and returns the new id.
	Register(ctx context.Context, m records.NewMedication) (int, error)
}
