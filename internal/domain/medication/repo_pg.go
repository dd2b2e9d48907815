package medication

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

const medicationCols = `id_medicamento, codigo_medicamento, nombre_generico, COALESCE(nombre_comercial, ''),
	COALESCE(presentacion, ''), COALESCE(concentracion, ''), COALESCE(forma_farmaceutica, ''),
	COALESCE(unidad_medida, ''), stock_minimo, stock_actual, precio_unitario::float8, requiere_receta, estado`

func (r *repoPG) ListActive(ctx context.Context) ([]records.Medication, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+medicationCols+`
		FROM medicamentos
		WHERE estado = 'A'
		ORDER BY nombre_generico`)
	if err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	defer rows.Close()

	out := []records.Medication{}
	for rows.Next() {
		var m records.Medication
		if err := rows.Scan(&m.ID, &m.Code, &m.GenericName, &m.BrandName,
			&m.Presentation, &m.Concentration, &m.DosageForm,
			&m.Unit, &m.MinStock, &m.Stock, &m.UnitPrice, &m.PrescriptionOnly, &m.Status); err != nil {
			return nil, fmt.Errorf("scan medication: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repoPG) Register(ctx context.Context, m records.NewMedication) (int, error) {
	var id int
	err := db.InAuditedTx(ctx, r.pool, m.RegisteredBy, func(ctx context.Context) error {
		return r.conn(ctx).QueryRow(ctx, `
			SELECT o_id_medicamento
			FROM sp_registrar_medicamento($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			m.Code, m.GenericName, m.BrandName, m.Presentation, m.Concentration, m.DosageForm,
			m.Unit, m.MinStock, m.Stock, m.UnitPrice, m.PrescriptionOnly, m.RegisteredBy,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("register medication: %w", err)
	}
	return id, nil
}
