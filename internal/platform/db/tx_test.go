package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeTx records the statements of one transaction. Methods not overridden
// panic through the nil embedded interface.
type fakeTx struct {
	pgx.Tx
	execs      []string
	args       [][]interface{}
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	f.args = append(f.args, args)
	return pgconn.CommandTag{}, nil
}

func (f *fakeTx) Commit(ctx context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b *fakeBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestInAuditedTx_Commits(t *testing.T) {
	tx := &fakeTx{}
	var inner pgx.Tx
	err := InAuditedTx(context.Background(), &fakeBeginner{tx: tx}, 7, func(ctx context.Context) error {
		inner = TxFromContext(ctx)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner != tx {
		t.Error("expected the transaction to be carried by the context")
	}
	if !tx.committed || tx.rolledBack {
		t.Errorf("expected commit without rollback, got committed=%v rolledBack=%v", tx.committed, tx.rolledBack)
	}
	if len(tx.execs) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(tx.execs))
	}
	if tx.args[0][0] != AuditUserSetting || tx.args[0][1] != "7" {
		t.Errorf("unexpected set_config args %v", tx.args[0])
	}
}

func TestInAuditedTx_RollsBackOnError(t *testing.T) {
	tx := &fakeTx{}
	want := errors.New("el paciente ya existe")
	err := InAuditedTx(context.Background(), &fakeBeginner{tx: tx}, 1, func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected the callback error unchanged, got %v", err)
	}
	if tx.committed || !tx.rolledBack {
		t.Error("expected rollback without commit")
	}
}

func TestInAuditedTx_BeginFails(t *testing.T) {
	called := false
	err := InAuditedTx(context.Background(), &fakeBeginner{err: errors.New("pool closed")}, 1, func(ctx context.Context) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if called {
		t.Error("callback must not run without a transaction")
	}
}

func TestTxFromContext_Empty(t *testing.T) {
	if TxFromContext(context.Background()) != nil {
		t.Error("expected nil transaction")
	}
}
