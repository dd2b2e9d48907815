package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sighc/sighc/internal/platform/db"
	"github.com/sighc/sighc/pkg/records"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]records.AuditEntry, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.id_audit, a.tabla_afectada, a.operacion, COALESCE(a.id_registro, 0), COALESCE(a.usuario_id, 0),
			COALESCE(u.nombre_usuario, 'sistema'),
			to_char(a.fecha_hora AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"'),
			COALESCE(a.valores_nuevos::text, ''), COALESCE(a.valores_anteriores::text, '')
		FROM audit_log a
		LEFT JOIN usuarios u ON u.id_usuario = a.usuario_id
		WHERE ($1 = '' OR lower(a.tabla_afectada) = lower($1))
		ORDER BY a.fecha_hora DESC, a.id_audit DESC
		LIMIT $2 OFFSET $3`, f.Table, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()

	out := []records.AuditEntry{}
	for rows.Next() {
		var e records.AuditEntry
		if err := rows.Scan(&e.ID, &e.Table, &e.Operation, &e.RecordID, &e.UserID,
			&e.UserName, &e.OccurredAt, &e.NewValues, &e.PreviousValues); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
