package clinical

import (
	"context"

	"github.com/sighc/sighc/pkg/records"
)

type ConsultationRepository interface {
	// Record runs the consultation procedure and, when c carries a
	// diagnosis, the diagnosis procedure in the same transaction. It returns
	// the new consultation id.
	Record(ctx context.Context, c records.NewConsultation) (int, error)
}
