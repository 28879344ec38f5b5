package repository

import "github.com/jcastaneda/kardex-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar existencias por
// variante+bodega. Usado dentro de transacciones para garantizar consistencia.
// Get y GetForUpdate tienen semántica get-or-create: si no hay fila devuelven
// una entrada con cantidad cero, que Upsert materializa.
type StockRepository interface {
	Get(productVariantID, warehouseID string) (*entity.StockEntry, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productVariantID, warehouseID string) (*entity.StockEntry, error)
	Upsert(entry *entity.StockEntry) error
}
