package clinical

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sighc/sighc/internal/platform/db"
	"github.com/sighc/sighc/pkg/records"
)

type consultationRepoPG struct {
	pool *pgxpool.Pool
}

func NewConsultationRepo(pool *pgxpool.Pool) ConsultationRepository {
	return &consultationRepoPG{pool: pool}
}

func (r *consultationRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *consultationRepoPG) Record(ctx context.Context, c records.NewConsultation) (int, error) {
	var id int
	err := db.InAuditedTx(ctx, r.pool, c.RegisteredBy, func(ctx context.Context) error {
		v, a := c.Vitals, c.Anamnesis
		if err := r.conn(ctx).QueryRow(ctx, `
			SELECT o_id_consulta
			FROM sp_registrar_consulta($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			c.AppointmentID, v.BloodPressure, v.Temperature, v.HeartRate, v.Weight, v.Height,
			a.Reason, a.PhysicalExam, c.RegisteredBy,
		).Scan(&id); err != nil {
			return err
		}

		if d := c.Diagnosis; d != nil {
			var diagID int
			if err := r.conn(ctx).QueryRow(ctx, `
				SELECT o_id_diagnostico
				FROM sp_registrar_diagnostico($1, $2, $3, $4, $5)`,
				id, d.Code, d.Description, d.Type, d.Classification,
			).Scan(&diagID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("record consultation: %w", err)
	}
	return id, nil
}
