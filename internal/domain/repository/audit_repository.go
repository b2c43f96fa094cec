package repository

import (
	"context"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// AuditRepository persiste la bitácora de actividad.
type AuditRepository interface {
	Create(ctx context.Context, e *entity.AuditEntry) error
	List(ctx context.Context, limit, offset int) ([]*entity.AuditEntry, int, error)
}
