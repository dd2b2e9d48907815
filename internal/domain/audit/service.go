package audit

import (
	"context"

	"github.com/sighc/sighc/pkg/pagination"
	"github.com/sighc/sighc/pkg/records"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of the audit log, newest first.
func (s *Service) List(ctx context.Context, f Filter, page pagination.Params) ([]records.AuditEntry, error) {
	return s.repo.List(ctx, f, page.Limit, page.Offset)
}
