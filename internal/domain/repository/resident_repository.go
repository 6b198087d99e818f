package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ResidentRepository puerto de lectura de residentes (DIP).
type ResidentRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Resident, error)
	List(ctx context.Context) ([]*entity.Resident, error)
}
