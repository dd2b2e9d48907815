package audit

import (
	"context"

	"github.com/sighc/sighc/pkg/records"
)

// Filter narrows an audit log listing. An empty Table matches every table.
type Filter struct {
	Table string
}

type Repository interface {
	// List returns log entries newest first.
	List(ctx context.Context, f Filter, limit, offset int) ([]records.AuditEntry, error)
}
