// Package snapshot orquesta el motor de fotos de inventario: captura, cierre de periodo,
// comparación y exportación.
package snapshot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
	"github.com/jhoicas/inventario-cocina/internal/domain/snapshot"
)

// UseCase casos de uso de fotos de inventario.
type UseCase struct {
	stockRepo    repository.StockRepository
	snapshotRepo repository.SnapshotRepository
	txRunner     TxRunner
	audit        AuditRecorder
	pdf          PDFGenerator
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	stockRepo repository.StockRepository,
	snapshotRepo repository.SnapshotRepository,
	txRunner TxRunner,
	audit AuditRecorder,
	pdf PDFGenerator,
) *UseCase {
	return &UseCase{
		stockRepo:    stockRepo,
		snapshotRepo: snapshotRepo,
		txRunner:     txRunner,
		audit:        audit,
		pdf:          pdf,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create captura el ledger vivo (todas las áreas o una) en una foto final. No modifica el ledger.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateSnapshotRequest) (*dto.SnapshotResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
	}
	scope, err := entity.ParseScope(in.Scope)
	if err != nil {
		return nil, fmt.Errorf("%w: scope: %v", domain.ErrInvalidInput, err)
	}

	s, err := uc.capture(ctx, uc.stockRepo, actorID, name, strings.TrimSpace(in.Description), scope)
	if err != nil {
		return nil, err
	}
	if err := uc.snapshotRepo.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, actorID, entity.ActionSnapshotCreate,
		fmt.Sprintf("Foto %q (%s) con %d ingredientes", s.Name, s.Scope, s.Summary.TotalItems),
		map[string]any{
			"snapshot_id": s.ID,
			"scope":       string(s.Scope),
			"total_items": s.Summary.TotalItems,
			"total_value": s.Summary.TotalValue.String(),
		})
	out := dto.FromSnapshot(s, true)
	return &out, nil
}

// ClosePeriod captura el ledger completo y deja en cero las cuatro áreas de los ingredientes activos.
// El stock de ingredientes inactivos queda intacto: no se fotografía ni se borra.
// Ambos pasos corren en la misma transacción: o queda la foto y el ledger en cero, o nada.
func (uc *UseCase) ClosePeriod(ctx context.Context, actorID string) (*dto.ClosePeriodResponse, error) {
	now := uc.now()
	name := "Cierre " + now.Format("2006-01-02 15:04")

	var (
		s     *entity.Snapshot
		reset int64
	)
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, snapshotRepo repository.SnapshotRepository) error {
		var err error
		s, err = uc.capture(ctx, stockRepo, actorID, name, "Cierre de periodo", entity.ScopeAll)
		if err != nil {
			return err
		}
		s.CreatedAt = now
		if err := snapshotRepo.Create(ctx, s); err != nil {
			return err
		}
		reset, err = stockRepo.ResetAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cierre de periodo: %w", err)
	}

	uc.audit.Record(ctx, actorID, entity.ActionClosePeriod,
		fmt.Sprintf("Cierre de periodo: %d ingredientes, valor %s", s.Summary.TotalItems, s.Summary.TotalValue.StringFixed(2)),
		map[string]any{
			"snapshot_id": s.ID,
			"total_items": s.Summary.TotalItems,
			"total_value": s.Summary.TotalValue.String(),
			"reset_rows":  reset,
		})
	return &dto.ClosePeriodResponse{Snapshot: dto.FromSnapshot(s, true), ResetRows: reset}, nil
}

// Compare calcula la variación entre dos fotos (B - A). No depende del ledger vivo.
func (uc *UseCase) Compare(ctx context.Context, fromID, toID string) (*dto.ComparisonResponse, error) {
	if strings.TrimSpace(fromID) == "" || strings.TrimSpace(toID) == "" {
		return nil, fmt.Errorf("%w: from y to requeridos", domain.ErrInvalidInput)
	}
	a, err := uc.load(ctx, fromID)
	if err != nil {
		return nil, err
	}
	b, err := uc.load(ctx, toID)
	if err != nil {
		return nil, err
	}

	cmp := snapshot.Compare(a, b)
	rows := make([]dto.ComparisonRowResponse, 0, len(cmp.Rows))
	for _, r := range cmp.Rows {
		rows = append(rows, dto.ComparisonRowResponse{
			IngredientID:  r.IngredientID,
			Name:          r.Name,
			SKU:           r.SKU,
			Unit:          string(r.Unit),
			QuantityA:     r.QuantityA,
			QuantityB:     r.QuantityB,
			Difference:    r.Difference,
			PercentChange: r.PercentChange,
		})
	}
	return &dto.ComparisonResponse{
		From: dto.SnapshotRef{ID: a.ID, Name: a.Name, CreatedAt: a.CreatedAt},
		To:   dto.SnapshotRef{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt},
		Rows: rows,
		Delta: dto.ComparisonDelta{
			Items:    cmp.Delta.Items,
			Quantity: cmp.Delta.Quantity,
			Value:    cmp.Delta.Value,
		},
	}, nil
}

// Get devuelve una foto con sus items.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.SnapshotResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromSnapshot(s, true)
	return &out, nil
}

// List lista fotos paginadas, más recientes primero, sin items.
func (uc *UseCase) List(ctx context.Context, limit, offset int) (*dto.SnapshotListResponse, error) {
	list, total, err := uc.snapshotRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SnapshotResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.FromSnapshot(s, false))
	}
	return &dto.SnapshotListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete elimina una foto (estado terminal).
func (uc *UseCase) Delete(ctx context.Context, actorID, id string) error {
	s, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.snapshotRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, actorID, entity.ActionSnapshotDelete,
		fmt.Sprintf("Foto %q eliminada", s.Name),
		map[string]any{"snapshot_id": s.ID})
	return nil
}

// ExportPDF genera el reporte de la foto. Devuelve el PDF y un nombre de archivo sugerido.
func (uc *UseCase) ExportPDF(ctx context.Context, id string) ([]byte, string, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.SnapshotPDF(s)
	if err != nil {
		return nil, "", fmt.Errorf("generar pdf: %w", err)
	}
	return b, fmt.Sprintf("foto-%s-%s.pdf", s.CreatedAt.Format("20060102-1504"), shortID(s.ID)), nil
}

func (uc *UseCase) capture(
	ctx context.Context,
	stockRepo repository.StockRepository,
	actorID, name, description string,
	scope entity.SnapshotScope,
) (*entity.Snapshot, error) {
	var area *entity.Area
	if a, ok := scope.Area(); ok {
		area = &a
	}
	entries, err := stockRepo.ListEntries(ctx, area)
	if err != nil {
		return nil, err
	}
	items, summary := snapshot.Build(entries)
	return &entity.Snapshot{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Scope:       scope,
		Items:       items,
		Summary:     summary,
		CreatedBy:   actorID,
		CreatedAt:   uc.now(),
		Status:      entity.SnapshotFinal,
	}, nil
}

func (uc *UseCase) load(ctx context.Context, id string) (*entity.Snapshot, error) {
	s, err := uc.snapshotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: foto %s", domain.ErrNotFound, id)
	}
	return s, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
