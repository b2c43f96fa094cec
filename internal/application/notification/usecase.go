// Package notification avisa al personal sobre stock bajo y administra el buzón de notificaciones.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/ledger"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
	"github.com/jhoicas/inventario-cocina/pkg/logger"
)

// LowStockEvent mensaje publicado al broker por cada notificación creada.
type LowStockEvent struct {
	NotificationID string              `json:"notification_id"`
	IngredientID   string              `json:"ingredient_id"`
	Name           string              `json:"name"`
	SKU            string              `json:"sku"`
	Severity       string              `json:"severity"`
	Areas          []LowStockEventArea `json:"areas"`
	CreatedAt      time.Time           `json:"created_at"`
}

// LowStockEventArea detalle por área del evento.
type LowStockEventArea struct {
	Area      string          `json:"area"`
	Quantity  decimal.Decimal `json:"quantity"`
	Threshold decimal.Decimal `json:"threshold"`
	Severity  string          `json:"severity"`
}

// Publisher salida opcional hacia un broker de mensajes.
type Publisher interface {
	PublishLowStock(ctx context.Context, ev LowStockEvent) error
}

// UseCase sumidero de alertas de stock bajo con deduplicación.
type UseCase struct {
	repo      repository.NotificationRepository
	publisher Publisher // nil = sin broker
	dedup     time.Duration
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. publisher puede ser nil.
func NewUseCase(repo repository.NotificationRepository, publisher Publisher, dedup time.Duration, log *logger.Logger) *UseCase {
	if dedup <= 0 {
		dedup = 24 * time.Hour
	}
	return &UseCase{repo: repo, publisher: publisher, dedup: dedup, log: log.Named("notification"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// NotifyLowStock agrupa las alertas por ingrediente y crea una notificación por ingrediente,
// salvo que ya exista una sin leer dentro de la ventana de deduplicación.
// Devuelve cuántas notificaciones se crearon. Los errores se registran y no se propagan.
func (uc *UseCase) NotifyLowStock(ctx context.Context, alerts []ledger.LowStockAlert) int {
	order := make([]string, 0)
	groups := make(map[string][]ledger.LowStockAlert)
	for _, a := range alerts {
		if _, ok := groups[a.IngredientID]; !ok {
			order = append(order, a.IngredientID)
		}
		groups[a.IngredientID] = append(groups[a.IngredientID], a)
	}

	now := uc.now()
	since := now.Add(-uc.dedup)
	created := 0
	for _, id := range order {
		group := groups[id]
		exists, err := uc.repo.HasUnreadSince(ctx, entity.NotificationLowStock, id, since)
		if err != nil {
			uc.log.Warn().Err(err).Str("ingredient_id", id).Msg("no se pudo verificar duplicados")
			continue
		}
		if exists {
			continue
		}

		n := buildNotification(group, now)
		if err := uc.repo.Create(ctx, n); err != nil {
			uc.log.Warn().Err(err).Str("ingredient_id", id).Msg("no se pudo crear la notificación")
			continue
		}
		created++

		if uc.publisher != nil {
			if err := uc.publisher.PublishLowStock(ctx, buildEvent(n, group)); err != nil {
				uc.log.Warn().Err(err).Str("notification_id", n.ID).Msg("no se pudo publicar la alerta")
			}
		}
	}
	return created
}

// List devuelve las notificaciones, opcionalmente solo las no leídas.
func (uc *UseCase) List(ctx context.Context, unreadOnly bool, limit, offset int) (*dto.NotificationListResponse, error) {
	list, total, err := uc.repo.List(ctx, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, dto.FromNotification(n))
	}
	return &dto.NotificationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// MarkRead marca la notificación como leída. Es idempotente.
func (uc *UseCase) MarkRead(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.MarkRead(ctx, id, uc.now())
}

func buildNotification(group []ledger.LowStockAlert, now time.Time) *entity.Notification {
	first := group[0]
	sev := first.Severity
	parts := make([]string, 0, len(group))
	for _, a := range group {
		sev = ledger.Worse(sev, a.Severity)
		parts = append(parts, fmt.Sprintf("%s %s/%s %s", a.Area, a.Quantity.String(), a.Threshold.String(), a.Unit))
	}
	return &entity.Notification{
		ID:           uuid.New().String(),
		Kind:         entity.NotificationLowStock,
		Title:        "Stock bajo: " + first.Name,
		Message:      fmt.Sprintf("%s (%s) por debajo del mínimo en %s", first.Name, first.SKU, strings.Join(parts, ", ")),
		IngredientID: first.IngredientID,
		Severity:     string(sev),
		CreatedAt:    now,
	}
}

func buildEvent(n *entity.Notification, group []ledger.LowStockAlert) LowStockEvent {
	areas := make([]LowStockEventArea, 0, len(group))
	for _, a := range group {
		areas = append(areas, LowStockEventArea{
			Area:      a.Area.String(),
			Quantity:  a.Quantity,
			Threshold: a.Threshold,
			Severity:  string(a.Severity),
		})
	}
	return LowStockEvent{
		NotificationID: n.ID,
		IngredientID:   n.IngredientID,
		Name:           group[0].Name,
		SKU:            group[0].SKU,
		Severity:       n.Severity,
		Areas:          areas,
		CreatedAt:      n.CreatedAt,
	}
}
