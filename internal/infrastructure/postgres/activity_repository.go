package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var (
	_ repository.AuditRepository        = (*AuditRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
)

// AuditRepo bitácora sobre activity_logs (solo anexar).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func (r *AuditRepo) Create(ctx context.Context, e *entity.AuditEntry) error {
	var details []byte
	if e.Details != nil {
		b, err := json.Marshal(e.Details)
		if err != nil {
			return fmt.Errorf("marshal audit details: %w", err)
		}
		details = b
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO activity_logs (id, actor_id, action, description, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.ActorID, e.Action, e.Description, details, e.CreatedAt,
	)
	if err != nil {
		return depErr("insert activity log", err)
	}
	return nil
}

func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]*entity.AuditEntry, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM activity_logs`).Scan(&total); err != nil {
		return nil, 0, depErr("count activity logs", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, actor_id, action, description, details, created_at
		FROM activity_logs ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limitArg(limit), offset,
	)
	if err != nil {
		return nil, 0, depErr("list activity logs", err)
	}
	defer rows.Close()
	list := make([]*entity.AuditEntry, 0)
	for rows.Next() {
		var (
			e   entity.AuditEntry
			raw []byte
		)
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Description, &raw, &e.CreatedAt); err != nil {
			return nil, 0, depErr("scan activity log", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &e.Details); err != nil {
				return nil, 0, fmt.Errorf("unmarshal audit details: %w", err)
			}
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, depErr("list activity logs", err)
	}
	return list, total, nil
}

// NotificationRepo notificaciones para el personal.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, kind, title, message, ingredient_id, severity, read, created_at, read_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9)`,
		n.ID, n.Kind, n.Title, n.Message, n.IngredientID, n.Severity, n.Read, n.CreatedAt, n.ReadAt,
	)
	if err != nil {
		return depErr("insert notification", err)
	}
	return nil
}

func (r *NotificationRepo) HasUnreadSince(ctx context.Context, kind, ingredientID string, since time.Time) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE kind = $1 AND ingredient_id = $2 AND NOT read AND created_at >= $3
		)`, kind, ingredientID, since,
	).Scan(&exists)
	if err != nil {
		return false, depErr("check notifications", err)
	}
	return exists, nil
}

func (r *NotificationRepo) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]*entity.Notification, int, error) {
	const where = ` WHERE ($1 = FALSE OR NOT read)`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM notifications`+where, unreadOnly).Scan(&total); err != nil {
		return nil, 0, depErr("count notifications", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, kind, title, message, COALESCE(ingredient_id, ''), severity, read, created_at, read_at
		FROM notifications`+where+` ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		unreadOnly, limitArg(limit), offset,
	)
	if err != nil {
		return nil, 0, depErr("list notifications", err)
	}
	defer rows.Close()
	list := make([]*entity.Notification, 0)
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.Title, &n.Message, &n.IngredientID, &n.Severity, &n.Read, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, 0, depErr("scan notification", err)
		}
		list = append(list, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, depErr("list notifications", err)
	}
	return list, total, nil
}

// MarkRead conserva la primera fecha de lectura.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE notifications SET read = TRUE, read_at = COALESCE(read_at, $2) WHERE id = $1`, id, at)
	if err != nil {
		return depErr("mark notification read", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
