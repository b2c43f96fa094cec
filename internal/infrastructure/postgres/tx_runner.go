package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-cocina/internal/application/snapshot"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ snapshot.TxRunner = (*TxRunner)(nil)

// ledgerLockKey clave del advisory lock que serializa los cierres de periodo.
const ledgerLockKey int64 = 0x6c65646765720001

// ledgerLocks se toman tras el advisory lock y antes de leer el ledger. Mientras dure el cierre
// bloquean upserts de stock y cambios de catálogo, así el UPDATE final pone en cero exactamente
// lo que la foto capturó (a READ COMMITTED el UPDATE vería escrituras confirmadas después del SELECT).
var ledgerLocks = []string{
	`LOCK TABLE ingredients IN SHARE MODE`,
	`LOCK TABLE ingredient_stocks IN SHARE ROW EXCLUSIVE MODE`,
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run toma los locks del ledger, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Dos cierres concurrentes quedan uno detrás del otro; el segundo ve el stock ya en cero.
// Las escrituras de stock concurrentes esperan al Commit y se aplican sobre el ledger ya cerrado.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	snapshotRepo repository.SnapshotRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return depErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
		return depErr("advisory lock", err)
	}
	for _, stmt := range ledgerLocks {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return depErr("lock ledger", err)
		}
	}

	if err := fn(NewStockRepository(tx), NewSnapshotRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return depErr("commit transaction", err)
	}
	return nil
}
