package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/sighc/sighc/pkg/records"
)

var testSigningKey = []byte("test-secret-key-for-unit-tests-only")

func newTestSessions(t *testing.T) *Sessions {
	t.Helper()
	s, err := NewSessions(testSigningKey, time.Hour)
	if err != nil {
		t.Fatalf("NewSessions: %v", err)
	}
	return s
}

func TestSessions_IssueAndParse(t *testing.T) {
	s := newTestSessions(t)
	token, err := s.Issue(records.User{ID: 4, Username: "recep1", RoleID: records.RoleReceptionist})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := s.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID() != 4 {
		t.Errorf("expected user 4, got %d", claims.UserID())
	}
	if claims.Username != "recep1" || claims.Role != records.RoleReceptionist {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
}

func TestSessions_Expired(t *testing.T) {
	s := newTestSessions(t)
	issued := time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }
	token, err := s.Issue(records.User{ID: 1})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	s.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := s.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestSessions_WrongKey(t *testing.T) {
	s := newTestSessions(t)
	token, _ := s.Issue(records.User{ID: 1})

	other, _ := NewSessions([]byte("another-key"), time.Hour)
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}

func TestSessions_Tampered(t *testing.T) {
	s := newTestSessions(t)
	token, _ := s.Issue(records.User{ID: 1})
	parts := strings.Split(token, ".")
	parts[1] = parts[1] + "x"
	if _, err := s.Parse(strings.Join(parts, ".")); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestNewSessions_EmptyKey(t *testing.T) {
	if _, err := NewSessions(nil, time.Hour); err == nil {
		t.Fatal("expected error for empty key")
	}
}
