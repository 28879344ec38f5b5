package kardex_test

import (
	"context"
	"time"

	"github.com/jcastaneda/kardex-api/internal/domain/entity"
	"github.com/jcastaneda/kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: Run toma un snapshot del
// estado y lo restaura si fn devuelve error, igual que el Rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	movements  map[string]*entity.Movement
	stock      map[string]*entity.StockEntry // clave: variante|bodega
	warehouses map[string]*entity.Warehouse
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		movements:  make(map[string]*entity.Movement),
		stock:      make(map[string]*entity.StockEntry),
		warehouses: make(map[string]*entity.Warehouse),
	}
}

func stockKey(variantID, warehouseID string) string { return variantID + "|" + warehouseID }

func copyMovement(m *entity.Movement) *entity.Movement {
	cp := *m
	cp.Details = append([]entity.MovementDetail(nil), m.Details...)
	return &cp
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for id, m := range s.movements {
		snap.movements[id] = copyMovement(m)
	}
	for k, e := range s.stock {
		cp := *e
		snap.stock[k] = &cp
	}
	for id, w := range s.warehouses {
		cp := *w
		snap.warehouses[id] = &cp
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.movements = snap.movements
	s.stock = snap.stock
	s.warehouses = snap.warehouses
}

// stockQty cantidad actual de una variante en una bodega (cero si no hay fila).
func (s *fakeStore) stockQty(variantID, warehouseID string) string {
	e, ok := s.stock[stockKey(variantID, warehouseID)]
	if !ok {
		return "0"
	}
	return e.Quantity.String()
}

type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	snap := r.store.snapshot()
	if err := fn(&fakeMovementRepo{store: r.store}, &fakeStockRepo{store: r.store}); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

type fakeMovementRepo struct {
	store *fakeStore
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	r.store.movements[m.ID] = copyMovement(m)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	m, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	return copyMovement(m), nil
}

func (r *fakeMovementRepo) GetByIDForUpdate(id string) (*entity.Movement, error) {
	return r.GetByID(id)
}

func (r *fakeMovementRepo) MarkAuthorized(id, userID string, at time.Time) error {
	m := r.store.movements[id]
	m.Authorized = true
	m.AuthorizedBy = userID
	m.AuthorizedAt = &at
	return nil
}

func (r *fakeMovementRepo) MarkCancelled(id, userID string, at time.Time, reason string) error {
	m := r.store.movements[id]
	m.Cancelled = true
	m.CancelledBy = userID
	m.CancelledAt = &at
	m.CancellationReason = reason
	return nil
}

func (r *fakeMovementRepo) UpdateHeader(m *entity.Movement) error {
	stored := r.store.movements[m.ID]
	stored.WarehouseID = m.WarehouseID
	stored.Type = m.Type
	stored.ReferenceDocument = m.ReferenceDocument
	stored.Notes = m.Notes
	return nil
}

func (r *fakeMovementRepo) ReplaceDetails(movementID string, details []entity.MovementDetail) error {
	r.store.movements[movementID].Details = append([]entity.MovementDetail(nil), details...)
	return nil
}

func (r *fakeMovementRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.store.movements {
		if m.WarehouseID == warehouseID {
			list = append(list, copyMovement(m))
		}
	}
	return list, nil
}

type fakeStockRepo struct {
	store *fakeStore
}

func (r *fakeStockRepo) Get(variantID, warehouseID string) (*entity.StockEntry, error) {
	e, ok := r.store.stock[stockKey(variantID, warehouseID)]
	if !ok {
		return &entity.StockEntry{ProductVariantID: variantID, WarehouseID: warehouseID}, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeStockRepo) GetForUpdate(variantID, warehouseID string) (*entity.StockEntry, error) {
	return r.Get(variantID, warehouseID)
}

func (r *fakeStockRepo) Upsert(entry *entity.StockEntry) error {
	cp := *entry
	r.store.stock[stockKey(entry.ProductVariantID, entry.WarehouseID)] = &cp
	return nil
}

type fakeWarehouseRepo struct {
	store *fakeStore
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	cp := *w
	r.store.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.store.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.store.warehouses {
		cp := *w
		list = append(list, &cp)
	}
	return list, nil
}
