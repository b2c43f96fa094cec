package snapshot

import (
	"context"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, con repositorios atados a ella.
// Si fn devuelve error no queda ningún efecto persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		snapshotRepo repository.SnapshotRepository,
	) error) error
}

// AuditRecorder sumidero de la bitácora; nunca devuelve error al llamador.
type AuditRecorder interface {
	Record(ctx context.Context, actorID, action, description string, details map[string]any)
}

// PDFGenerator genera el reporte imprimible de una foto.
type PDFGenerator interface {
	SnapshotPDF(s *entity.Snapshot) ([]byte, error)
}
