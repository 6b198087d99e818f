package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.ResidentRepository = (*ResidentRepo)(nil)

// ResidentRepo implementación de ResidentRepository sobre PostgreSQL.
type ResidentRepo struct {
	q Querier
}

// NewResidentRepository construye el adaptador. Acepta pool o tx (Querier).
func NewResidentRepository(q Querier) *ResidentRepo {
	return &ResidentRepo{q: q}
}

const residentColumns = `id::text, name, COALESCE(room, ''), active, created_at`

// GetByID devuelve el residente o nil si no existe.
func (r *ResidentRepo) GetByID(ctx context.Context, id string) (*entity.Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents WHERE id = $1`
	var res entity.Resident
	err := r.q.QueryRow(ctx, query, id).Scan(&res.ID, &res.Name, &res.Room, &res.Active, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, queryError("get resident", err)
	}
	return &res, nil
}

// List residentes ordenados por nombre.
func (r *ResidentRepo) List(ctx context.Context) ([]*entity.Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents ORDER BY name, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, queryError("list residents", err)
	}
	defer rows.Close()

	var list []*entity.Resident
	for rows.Next() {
		var res entity.Resident
		if err := rows.Scan(&res.ID, &res.Name, &res.Room, &res.Active, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resident: %w", err)
		}
		list = append(list, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("iterate rows", err)
	}
	return list, nil
}
