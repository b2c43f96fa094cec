package memory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepository)(nil)

// NotificationRepository notificaciones en memoria.
type NotificationRepository struct {
	b *backend
}

func (r *NotificationRepository) Create(_ context.Context, n *entity.Notification) error {
	return r.b.write(func(st *state) error {
		st.notifications = append(st.notifications, *n)
		return nil
	})
}

func (r *NotificationRepository) HasUnreadSince(_ context.Context, kind, ingredientID string, since time.Time) (bool, error) {
	found := false
	r.b.read(func(st *state) {
		for _, n := range st.notifications {
			if n.Kind == kind && n.IngredientID == ingredientID && !n.Read && !n.CreatedAt.Before(since) {
				found = true
				return
			}
		}
	})
	return found, nil
}

// List más recientes primero.
func (r *NotificationRepository) List(_ context.Context, unreadOnly bool, limit, offset int) ([]*entity.Notification, int, error) {
	var all []*entity.Notification
	r.b.read(func(st *state) {
		for i := len(st.notifications) - 1; i >= 0; i-- {
			n := st.notifications[i]
			if unreadOnly && n.Read {
				continue
			}
			all = append(all, &n)
		}
	})
	return paginate(all, limit, offset), len(all), nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id string, at time.Time) error {
	return r.b.write(func(st *state) error {
		for i := range st.notifications {
			if st.notifications[i].ID != id {
				continue
			}
			if !st.notifications[i].Read {
				st.notifications[i].Read = true
				st.notifications[i].ReadAt = &at
			}
			return nil
		}
		return domain.ErrNotFound
	})
}
