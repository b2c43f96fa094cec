package repository

import (
	"context"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// SnapshotRepository define el puerto de persistencia para Snapshot.
// No expone Update: una foto es inmutable.
type SnapshotRepository interface {
	Create(ctx context.Context, s *entity.Snapshot) error
	GetByID(ctx context.Context, id string) (*entity.Snapshot, error) // (nil, nil) si no existe
	List(ctx context.Context, limit, offset int) ([]*entity.Snapshot, int, error)
	// Delete elimina la foto; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
