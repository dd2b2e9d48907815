package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sighc/sighc/pkg/records"
)

// ErrInvalidCredentials is returned for any login that does not resolve to an
// active account.
var ErrInvalidCredentials = errors.New("Credenciales inválidas")

// TokenIssuer signs a session token for an authenticated account.
type TokenIssuer interface {
	Issue(u records.User) (string, error)
}

type Service struct {
	users      UserRepository
	physicians PhysicianRepository
	tokens     TokenIssuer
}

func NewService(users UserRepository, physicians PhysicianRepository, tokens TokenIssuer) *Service {
	return &Service{users: users, physicians: physicians, tokens: tokens}
}

// -- Session --

// Login resolves the account by username and issues a session token. The
// password is accepted but not checked; credential hashing is handled outside
// this service.
func (s *Service) Login(ctx context.Context, creds records.Credentials) (*records.User, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.RoleName == "" {
		u.RoleName = u.RoleID.Name()
	}

	if s.tokens != nil {
		token, err := s.tokens.Issue(*u)
		if err != nil {
			return nil, fmt.Errorf("issue session: %w", err)
		}
		u.Token = token
	}
	return u, nil
}

// -- Physicians --

func (s *Service) ListPhysicians(ctx context.Context) ([]records.Physician, error) {
	return s.physicians.ListActive(ctx)
}
