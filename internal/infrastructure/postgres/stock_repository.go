package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jcastaneda/kardex-api/internal/domain/entity"
	"github.com/jcastaneda/kardex-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la existencia actual de una variante en una bodega.
// Si no hay fila devuelve una entrada en cero (get-or-create).
func (r *StockRepo) Get(productVariantID, warehouseID string) (*entity.StockEntry, error) {
	query := `
		SELECT product_variant_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_variant_id = $1 AND warehouse_id = $2`
	var s entity.StockEntry
	err := r.q.QueryRow(context.Background(), query, productVariantID, warehouseID).Scan(
		&s.ProductVariantID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{ProductVariantID: productVariantID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la existencia y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(productVariantID, warehouseID string) (*entity.StockEntry, error) {
	query := `
		SELECT product_variant_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_variant_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.StockEntry
	err := r.q.QueryRow(context.Background(), query, productVariantID, warehouseID).Scan(
		&s.ProductVariantID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{ProductVariantID: productVariantID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por variante y bodega).
func (r *StockRepo) Upsert(entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock (product_variant_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_variant_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, entry.ProductVariantID, entry.WarehouseID, entry.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
