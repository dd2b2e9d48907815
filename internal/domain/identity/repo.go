package identity

import (
	"context"
	"errors"

	"github.com/sighc/sighc/pkg/records"
)

var ErrNotFound = errors.New("not found")

type UserRepository interface {
	// GetByUsername returns the active account joined with its role, or
	// ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*records.User, error)
}

type PhysicianRepository interface {
	ListActive(ctx context.Context) ([]records.Physician, error)
}
