package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/sighc/sighc/pkg/pagination"
	"github.com/sighc/sighc/pkg/records"
)

// -- Mock Repository --

type mockRepo struct {
	entries    map[int]records.AuditEntry
	lastLimit  int
	lastOffset int
	err        error
}

func newMockRepo(n int) *mockRepo {
	m := &mockRepo{entries: make(map[int]records.AuditEntry)}
	for i := 1; i <= n; i++ {
		table := "pacientes"
		if i%2 == 0 {
			table = "citas"
		}
		m.entries[i] = records.AuditEntry{
			ID:         i,
			Table:      table,
			Operation:  "INSERT",
			UserName:   "admin",
			OccurredAt: fmt.Sprintf("2025-12-01T10:%02d:00Z", i%60),
		}
	}
	return m
}

func (m *mockRepo) List(_ context.Context, f Filter, limit, offset int) ([]records.AuditEntry, error) {
	m.lastLimit, m.lastOffset = limit, offset
	if m.err != nil {
		return nil, m.err
	}
	var all []records.AuditEntry
	for _, e := range m.entries {
		if f.Table == "" || strings.EqualFold(e.Table, f.Table) {
			all = append(all, e)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return []records.AuditEntry{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func TestService_List(t *testing.T) {
	repo := newMockRepo(5)
	svc := NewService(repo)

	entries, err := svc.List(context.Background(), Filter{}, pagination.New(2, 1, pagination.DefaultLimit, pagination.MaxLimit))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != 4 || entries[1].ID != 3 {
		t.Errorf("expected entries 4 and 3, got %+v", entries)
	}
}

func TestService_List_FilterByTable(t *testing.T) {
	svc := NewService(newMockRepo(6))

	entries, err := svc.List(context.Background(), Filter{Table: "Citas"}, pagination.New(0, 0, pagination.DefaultLimit, pagination.MaxLimit))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 citas entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Table != "citas" {
			t.Errorf("unexpected table %s", e.Table)
		}
	}
}
