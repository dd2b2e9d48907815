package patient

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

const activeCols = `id_paciente, nro_historia_clinica, nombres, apellidos, dni,
	to_char(fecha_nacimiento, 'YYYY-MM-DD'), COALESCE(edad, 0), sexo,
	COALESCE(grupo_sanguineo, ''), COALESCE(direccion, ''), COALESCE(telefono, ''), COALESCE(email, ''),
	estado, to_char(fecha_registro AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), nombre_completo`

func (r *repoPG) ListActive(ctx context.Context) ([]records.Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+activeCols+`
		FROM vw_pacientes_activos
		ORDER BY fecha_registro DESC`)
	if err != nil {
		return nil, fmt.Errorf("list active patients: %w", err)
	}
	defer rows.Close()

	out := []records.Patient{}
	for rows.Next() {
		var p records.Patient
		if err := rows.Scan(&p.ID, &p.MedicalRecordNo, &p.FirstNames, &p.LastNames, &p.DNI,
			&p.BirthDate, &p.Age, &p.Sex,
			&p.BloodGroup, &p.Address, &p.Phone, &p.Email,
			&p.Status, &p.RegisteredAt, &p.FullName); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repoPG) ListSummaries(ctx context.Context) ([]records.PatientSummary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id_paciente, nombres, apellidos
		FROM pacientes
		WHERE estado = 'A'
		ORDER BY apellidos, nombres`)
	if err != nil {
		return nil, fmt.Errorf("list patient summaries: %w", err)
	}
	defer rows.Close()

	out := []records.PatientSummary{}
	for rows.Next() {
		var p records.PatientSummary
		if err := rows.Scan(&p.ID, &p.FirstNames, &p.LastNames); err != nil {
			return nil, fmt.Errorf("scan patient summary: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repoPG) Register(ctx context.Context, p records.NewPatient) (int, string, error) {
	var id int
	var recordNo string
	err := db.InAuditedTx(ctx, r.pool, p.RegisteredBy, func(ctx context.Context) error {
		return r.conn(ctx).QueryRow(ctx, `
			SELECT o_id_paciente, o_nro_historia
			FROM sp_registrar_paciente($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10)`,
			p.DNI, p.FirstNames, p.LastNames, p.BirthDate, p.Sex,
			p.Address, p.Phone, p.Email, p.BloodGroup, p.RegisteredBy,
		).Scan(&id, &recordNo)
	})
	if err != nil {
		return 0, "", fmt.Errorf("register patient: %w", err)
	}
	return id, recordNo, nil
}
