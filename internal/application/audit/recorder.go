// Package audit registra la actividad del personal sobre el inventario.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
	"github.com/jhoicas/inventario-cocina/pkg/logger"
)

// Recorder sumidero de la bitácora. Record nunca falla hacia el llamador: un error de
// persistencia se registra en el log y se descarta.
type Recorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewRecorder construye el registrador.
func NewRecorder(repo repository.AuditRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log.Named("audit"), now: time.Now}
}

// Record anexa una entrada a la bitácora.
func (r *Recorder) Record(ctx context.Context, actorID, action, description string, details map[string]any) {
	e := &entity.AuditEntry{
		ID:          uuid.New().String(),
		ActorID:     actorID,
		Action:      action,
		Description: description,
		Details:     details,
		CreatedAt:   r.now(),
	}
	if err := r.repo.Create(ctx, e); err != nil {
		r.log.Warn().Err(err).Str("action", action).Str("actor_id", actorID).Msg("no se pudo registrar la actividad")
	}
}

// List devuelve la bitácora paginada, más reciente primero.
func (r *Recorder) List(ctx context.Context, limit, offset int) (*dto.AuditListResponse, error) {
	list, total, err := r.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.AuditEntryResponse{
			ID:          e.ID,
			ActorID:     e.ActorID,
			Action:      e.Action,
			Description: e.Description,
			Details:     e.Details,
			CreatedAt:   e.CreatedAt,
		})
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}
