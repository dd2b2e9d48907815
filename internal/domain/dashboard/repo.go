package dashboard

import (
	"context"

	"github.com/sighc/sighc/pkg/records"
)

type Repository interface {
	// Stats returns the dashboard counts and the topN most frequent
	// diagnoses.
	Stats(ctx context.Context, topN int) (*records.DashboardStats, error)
}
