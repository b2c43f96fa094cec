// Package memory implementa los repositorios en memoria. Se usa en tests y con STORAGE_DRIVER=memory
// para levantar la API sin PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-cocina/internal/application/snapshot"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ snapshot.TxRunner = (*TxRunner)(nil)

type state struct {
	ingredients   map[string]entity.Ingredient
	snapshots     map[string]*entity.Snapshot // inmutables: se comparten entre clones
	audit         []entity.AuditEntry
	notifications []entity.Notification
}

func newState() *state {
	return &state{
		ingredients: make(map[string]entity.Ingredient),
		snapshots:   make(map[string]*entity.Snapshot),
	}
}

func (s *state) clone() *state {
	c := &state{
		ingredients:   make(map[string]entity.Ingredient, len(s.ingredients)),
		snapshots:     make(map[string]*entity.Snapshot, len(s.snapshots)),
		audit:         append([]entity.AuditEntry(nil), s.audit...),
		notifications: append([]entity.Notification(nil), s.notifications...),
	}
	for k, v := range s.ingredients {
		c.ingredients[k] = v
	}
	for k, v := range s.snapshots {
		c.snapshots[k] = v
	}
	return c
}

// backend da acceso al estado. Dentro de una transacción mu es nil: el runner ya tiene el lock.
type backend struct {
	mu *sync.RWMutex
	st *state
}

func (b *backend) read(fn func(st *state)) {
	if b.mu != nil {
		b.mu.RLock()
		defer b.mu.RUnlock()
	}
	fn(b.st)
}

func (b *backend) write(fn func(st *state) error) error {
	if b.mu != nil {
		b.mu.Lock()
		defer b.mu.Unlock()
	}
	return fn(b.st)
}

// Store contenedor del estado compartido por todos los repositorios en memoria.
type Store struct {
	b *backend
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{b: &backend{mu: &sync.RWMutex{}, st: newState()}}
}

func (s *Store) Ingredients() *IngredientRepository     { return &IngredientRepository{b: s.b} }
func (s *Store) Stocks() *StockRepository               { return &StockRepository{b: s.b} }
func (s *Store) Snapshots() *SnapshotRepository         { return &SnapshotRepository{b: s.b} }
func (s *Store) Audit() *AuditRepository                { return &AuditRepository{b: s.b} }
func (s *Store) Notifications() *NotificationRepository { return &NotificationRepository{b: s.b} }
func (s *Store) TxRunner() *TxRunner                    { return &TxRunner{b: s.b} }

// TxRunner ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
// Mantiene el lock de escritura durante toda la ejecución, así las transacciones quedan serializadas.
type TxRunner struct {
	b *backend
}

// Run implementa snapshot.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	snapshotRepo repository.SnapshotRepository,
) error) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &backend{st: r.b.st.clone()}
	if err := fn(&StockRepository{b: tx}, &SnapshotRepository{b: tx}); err != nil {
		return err
	}
	r.b.st = tx.st
	return nil
}
