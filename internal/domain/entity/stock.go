package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry representa la existencia actual de una variante de producto en
// una bodega. Par único (ProductVariantID, WarehouseID); se crea bajo demanda
// con cantidad cero y solo la mutan la autorización y la cancelación de
// movimientos. La cantidad puede quedar negativa: este núcleo no impone un piso.
type StockEntry struct {
	ProductVariantID string
	WarehouseID      string
	Quantity         decimal.Decimal
	UpdatedAt        time.Time
}
