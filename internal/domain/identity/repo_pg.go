package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sighc/sighc/internal/platform/db"
	"github.com/sighc/sighc/pkg/records"
)

// -- User Repository --

type userRepoPG struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepoPG{pool: pool}
}

func (r *userRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *userRepoPG) GetByUsername(ctx context.Context, username string) (*records.User, error) {
	var u records.User
	var roleID int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT u.id_usuario, u.nombre_usuario, u.nombre_completo, u.id_rol, COALESCE(ro.nombre_rol, '')
		FROM usuarios u
		LEFT JOIN roles ro ON ro.id_rol = u.id_rol
		WHERE u.nombre_usuario = $1 AND u.estado = 'A'`, username).
		Scan(&u.ID, &u.Username, &u.FullName, &roleID, &u.RoleName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	u.RoleID = records.Role(roleID)
	return &u, nil
}

// -- Physician Repository --

type physicianRepoPG struct {
	pool *pgxpool.Pool
}

func NewPhysicianRepo(pool *pgxpool.Pool) PhysicianRepository {
	return &physicianRepoPG{pool: pool}
}

func (r *physicianRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *physicianRepoPG) ListActive(ctx context.Context) ([]records.Physician, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT m.id_medico, m.nombres, m.apellidos, m.dni, m.cmp, COALESCE(m.rne, ''),
			m.id_especialidad, e.nombre_especialidad,
			COALESCE(m.telefono, ''), COALESCE(m.email, ''), m.estado
		FROM medicos m
		JOIN especialidades e ON e.id_especialidad = m.id_especialidad
		WHERE m.estado = 'A'
		ORDER BY m.apellidos, m.nombres`)
	if err != nil {
		return nil, fmt.Errorf("list physicians: %w", err)
	}
	defer rows.Close()

	out := []records.Physician{}
	for rows.Next() {
		var p records.Physician
		if err := rows.Scan(&p.ID, &p.FirstNames, &p.LastNames, &p.DNI, &p.CMP, &p.RNE,
			&p.SpecialtyID, &p.SpecialtyName, &p.Phone, &p.Email, &p.Status); err != nil {
			return nil, fmt.Errorf("scan physician: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
