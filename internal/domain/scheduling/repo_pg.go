package scheduling

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

func (r *repoPG) List(ctx context.Context) ([]records.Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id_cita, codigo_cita, id_paciente, id_medico, nombre_paciente, nombre_medico,
			to_char(fecha_cita, 'YYYY-MM-DD'), to_char(hora_inicio, 'HH24:MI'), to_char(hora_fin, 'HH24:MI'),
			COALESCE(motivo_consulta, ''), tipo_cita, estado
		FROM vw_agenda_medica
		ORDER BY fecha_cita DESC, hora_inicio ASC`)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	out := []records.Appointment{}
	for rows.Next() {
		var a records.Appointment
		if err := rows.Scan(&a.ID, &a.Code, &a.PatientID, &a.PhysicianID, &a.PatientName, &a.PhysicianName,
			&a.Date, &a.StartTime, &a.EndTime, &a.Reason, &a.Type, &a.Status); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repoPG) Schedule(ctx context.Context, a records.NewAppointment) (int, string, error) {
	var id int
	var code string
	err := db.InAuditedTx(ctx, r.pool, a.RegisteredBy, func(ctx context.Context) error {
		return r.conn(ctx).QueryRow(ctx, `
			SELECT o_id_cita, o_codigo_cita
			FROM sp_programar_cita($1, $2, $3::date, $4::time, $5, $6, $7)`,
			a.PatientID, a.PhysicianID, a.Date, a.Time, a.Reason, a.Type, a.RegisteredBy,
		).Scan(&id, &code)
	})
	if err != nil {
		return 0, "", fmt.Errorf("schedule appointment: %w", err)
	}
	return id, code, nil
}
