package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementDetailRequest línea de un movimiento en creación/edición.
// Total es opcional: si no viene, se calcula como price × quantity.
type MovementDetailRequest struct {
	ProductVariantID string           `json:"product_variant_id"`
	Quantity         decimal.Decimal  `json:"quantity"`
	Price            decimal.Decimal  `json:"price"`
	Total            *decimal.Decimal `json:"total,omitempty"`
	Lote             string           `json:"lote,omitempty"`
	ExpirationDate   *time.Time       `json:"expiration_date,omitempty"`
	Notes            string           `json:"notes,omitempty"`
}

// MovementRequest body para POST/PUT de movimientos (estado pendiente).
type MovementRequest struct {
	WarehouseID       string                  `json:"warehouse_id"`
	Type              string                  `json:"type"`
	ReferenceDocument string                  `json:"reference_document,omitempty"`
	Notes             string                  `json:"notes,omitempty"`
	Details           []MovementDetailRequest `json:"details"`
}

// MovementDetailDTO línea de un movimiento en respuestas.
type MovementDetailDTO struct {
	ID               string          `json:"id"`
	ProductVariantID string          `json:"product_variant_id"`
	Direction        string          `json:"direction"`
	Quantity         decimal.Decimal `json:"quantity"`
	Price            decimal.Decimal `json:"price"`
	Total            decimal.Decimal `json:"total"`
	Lote             string          `json:"lote,omitempty"`
	ExpirationDate   *time.Time      `json:"expiration_date,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// MovementDTO movimiento completo en respuestas.
type MovementDTO struct {
	ID                 string              `json:"id"`
	WarehouseID        string              `json:"warehouse_id"`
	Type               string              `json:"type"`
	Authorized         bool                `json:"authorized"`
	AuthorizedBy       string              `json:"authorized_by,omitempty"`
	AuthorizedAt       *time.Time          `json:"authorized_at,omitempty"`
	Cancelled          bool                `json:"is_cancelled"`
	CancelledBy        string              `json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	CancellationReason string              `json:"cancellation_reason,omitempty"`
	Reversal           bool                `json:"is_reversal"`
	OriginalMovementID string              `json:"original_movement_id,omitempty"`
	ReferenceDocument  string              `json:"reference_document,omitempty"`
	Notes              string              `json:"notes,omitempty"`
	CreatedBy          string              `json:"created_by,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	Details            []MovementDetailDTO `json:"details"`
}

// StockResultDTO stock resultante de una variante tras aplicar un movimiento.
type StockResultDTO struct {
	ProductVariant string          `json:"product_variant"`
	NewStock       decimal.Decimal `json:"new_stock"`
}

// AuthorizeResponse respuesta de POST /movements/:id/authorize.
type AuthorizeResponse struct {
	Success      bool             `json:"success"`
	MovementID   string           `json:"movement_id"`
	Stocks       []StockResultDTO `json:"stocks"`
	AuthorizedBy string           `json:"authorized_by"`
	AuthorizedAt time.Time        `json:"authorized_at"`
}

// CancelRequest body para POST /movements/:id/cancel.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// CancelData datos de la cancelación efectuada.
type CancelData struct {
	CancelledMovementID string    `json:"cancelled_movement_id"`
	ReverseMovementID   string    `json:"reverse_movement_id"`
	Reason              string    `json:"reason"`
	CancelledAt         time.Time `json:"cancelled_at"`
}

// CancelResponse respuesta de POST /movements/:id/cancel.
type CancelResponse struct {
	Status string     `json:"status"`
	Data   CancelData `json:"data"`
}

// StockDTO existencia actual de una variante en una bodega.
type StockDTO struct {
	ProductVariantID string          `json:"product_variant_id"`
	WarehouseID      string          `json:"warehouse_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	UpdatedAt        *time.Time      `json:"updated_at,omitempty"`
}
