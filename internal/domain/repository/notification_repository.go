package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// NotificationRepository persiste las notificaciones para el personal.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// HasUnreadSince informa si hay una notificación sin leer del tipo e ingrediente creada desde since.
	HasUnreadSince(ctx context.Context, kind, ingredientID string, since time.Time) (bool, error)
	List(ctx context.Context, unreadOnly bool, limit, offset int) ([]*entity.Notification, int, error)
	// MarkRead marca como leída; domain.ErrNotFound si no existe.
	MarkRead(ctx context.Context, id string, at time.Time) error
}
