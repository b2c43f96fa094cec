package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

// SnapshotRepository fotos de inventario en memoria.
type SnapshotRepository struct {
	b *backend
}

func (r *SnapshotRepository) Create(_ context.Context, s *entity.Snapshot) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.snapshots[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.snapshots[s.ID] = copySnapshot(s)
		return nil
	})
}

func (r *SnapshotRepository) GetByID(_ context.Context, id string) (*entity.Snapshot, error) {
	var out *entity.Snapshot
	r.b.read(func(st *state) {
		if s, ok := st.snapshots[id]; ok {
			out = copySnapshot(s)
		}
	})
	return out, nil
}

// List más recientes primero.
func (r *SnapshotRepository) List(_ context.Context, limit, offset int) ([]*entity.Snapshot, int, error) {
	var all []*entity.Snapshot
	r.b.read(func(st *state) {
		for _, s := range st.snapshots {
			all = append(all, copySnapshot(s))
		}
	})
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return paginate(all, limit, offset), len(all), nil
}

func (r *SnapshotRepository) Delete(_ context.Context, id string) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.snapshots[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.snapshots, id)
		return nil
	})
}

func copySnapshot(s *entity.Snapshot) *entity.Snapshot {
	c := *s
	c.Items = append([]entity.SnapshotItem(nil), s.Items...)
	return &c
}
