package dashboard

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

func (r *repoPG) Stats(ctx context.Context, topN int) (*records.DashboardStats, error) {
	q := r.conn(ctx)

	var s records.DashboardStats
	err := q.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM pacientes WHERE estado = 'A')::int,
			(SELECT count(*) FROM citas WHERE fecha_cita = current_date)::int,
			(SELECT count(*) FROM consultas)::int,
			(SELECT count(*) FROM medicos WHERE estado = 'A')::int`).
		Scan(&s.Patients, &s.Appointments, &s.Consultations, &s.Physicians)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT codigo_cie10, total_casos, COALESCE(descripcion_cie10, '')
		FROM vw_estadisticas_diagnosticos
		ORDER BY total_casos DESC, codigo_cie10
		LIMIT $1`, topN)
	if err != nil {
		return nil, fmt.Errorf("diagnostic statistics: %w", err)
	}
	defer rows.Close()

	s.Diagnostics = []records.DiagnosticCount{}
	for rows.Next() {
		var d records.DiagnosticCount
		if err := rows.Scan(&d.Code, &d.Cases, &d.Description); err != nil {
			return nil, fmt.Errorf("scan diagnostic count: %w", err)
		}
		s.Diagnostics = append(s.Diagnostics, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("diagnostic statistics: %w", err)
	}
	return &s, nil
}
