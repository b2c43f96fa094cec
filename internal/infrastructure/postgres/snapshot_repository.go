package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo fotos de inventario. Los items viajan como un único documento JSONB.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// Create inserta la foto completa en una sola sentencia.
func (r *SnapshotRepo) Create(ctx context.Context, s *entity.Snapshot) error {
	items := s.Items
	if items == nil {
		items = []entity.SnapshotItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal snapshot items: %w", err)
	}
	query := `
		INSERT INTO snapshots (id, name, description, scope, status, items, total_items, total_quantity, total_value, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		s.ID, s.Name, s.Description, string(s.Scope), string(s.Status), raw,
		s.Summary.TotalItems, s.Summary.TotalQuantity, s.Summary.TotalValue, s.CreatedBy, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return depErr("insert snapshot", err)
	}
	return nil
}

// GetByID obtiene la foto con sus items; (nil, nil) si no existe.
func (r *SnapshotRepo) GetByID(ctx context.Context, id string) (*entity.Snapshot, error) {
	query := `
		SELECT id, name, description, scope, status, total_items, total_quantity, total_value, created_by, created_at, items
		FROM snapshots WHERE id = $1`
	var (
		s   entity.Snapshot
		raw []byte
	)
	dest := append(snapshotDest(&s), &raw)
	if err := r.q.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, depErr("get snapshot", err)
	}
	if err := json.Unmarshal(raw, &s.Items); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot items: %w", err)
	}
	return &s, nil
}

// List más recientes primero, sin items.
func (r *SnapshotRepo) List(ctx context.Context, limit, offset int) ([]*entity.Snapshot, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM snapshots`).Scan(&total); err != nil {
		return nil, 0, depErr("count snapshots", err)
	}
	query := `
		SELECT id, name, description, scope, status, total_items, total_quantity, total_value, created_by, created_at
		FROM snapshots ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, 0, depErr("list snapshots", err)
	}
	defer rows.Close()
	list := make([]*entity.Snapshot, 0)
	for rows.Next() {
		var s entity.Snapshot
		if err := rows.Scan(snapshotDest(&s)...); err != nil {
			return nil, 0, depErr("scan snapshot", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, depErr("list snapshots", err)
	}
	return list, total, nil
}

// Delete elimina la foto; domain.ErrNotFound si no existe.
func (r *SnapshotRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM snapshots WHERE id = $1`, id)
	if err != nil {
		return depErr("delete snapshot", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func snapshotDest(s *entity.Snapshot) []any {
	return []any{
		&s.ID, &s.Name, &s.Description, (*string)(&s.Scope), (*string)(&s.Status),
		&s.Summary.TotalItems, &s.Summary.TotalQuantity, &s.Summary.TotalValue, &s.CreatedBy, &s.CreatedAt,
	}
}
