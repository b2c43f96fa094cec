package memory

import (
	"context"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepository)(nil)

// AuditRepository bitácora en memoria (solo anexar).
type AuditRepository struct {
	b *backend
}

func (r *AuditRepository) Create(_ context.Context, e *entity.AuditEntry) error {
	return r.b.write(func(st *state) error {
		st.audit = append(st.audit, *e)
		return nil
	})
}

// List más recientes primero.
func (r *AuditRepository) List(_ context.Context, limit, offset int) ([]*entity.AuditEntry, int, error) {
	var all []*entity.AuditEntry
	r.b.read(func(st *state) {
		all = make([]*entity.AuditEntry, 0, len(st.audit))
		for i := len(st.audit) - 1; i >= 0; i-- {
			e := st.audit[i]
			all = append(all, &e)
		}
	})
	return paginate(all, limit, offset), len(all), nil
}
