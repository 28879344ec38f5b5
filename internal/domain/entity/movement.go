package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction es el efecto de un detalle sobre el stock. Se fija al crear el
// detalle (enum cerrado) y nunca se vuelve a derivar del texto del tipo.
type Direction string

const (
	DirectionIncrease Direction = "INCREASE"
	DirectionDecrease Direction = "DECREASE"
)

// Valid indica si la dirección es un miembro del enum.
func (d Direction) Valid() bool {
	return d == DirectionIncrease || d == DirectionDecrease
}

// Inverse devuelve la dirección opuesta (usada al crear reversos).
func (d Direction) Inverse() Direction {
	if d == DirectionIncrease {
		return DirectionDecrease
	}
	return DirectionIncrease
}

// Movement representa la cabecera de un movimiento de inventario
// (entrada, salida o ajuste) con sus detalles ordenados.
//
// Ciclo de vida: se crea pendiente (Authorized=false); la autorización es una
// transición de una sola vía que aplica los detalles al stock; la cancelación
// nunca muta el efecto histórico, crea un movimiento reverso enlazado.
type Movement struct {
	ID          string
	WarehouseID string
	Type        string // vocabulario libre: ENTRADA, SALIDA, AJUSTE+, CANCELACION_*, etc.

	Authorized   bool
	AuthorizedBy string
	AuthorizedAt *time.Time

	Cancelled          bool
	CancelledBy        string
	CancelledAt        *time.Time
	CancellationReason string

	// Reversal marca los movimientos creados por una cancelación;
	// OriginalMovementID enlaza al movimiento que reversan.
	Reversal           bool
	OriginalMovementID string

	ReferenceDocument string
	Notes             string

	CreatedBy string
	CreatedAt time.Time

	Details []MovementDetail
}

// Cancellable evalúa el invariante de cancelación: solo movimientos
// autorizados, no cancelados y que no sean reversos.
func (m *Movement) Cancellable() bool {
	return m.Authorized && !m.Cancelled && !m.Reversal
}

// MovementDetail es una línea de un movimiento: variante de producto,
// cantidad (magnitud no negativa) y precio. Direction se fija en la creación.
type MovementDetail struct {
	ID               string
	MovementID       string
	ProductVariantID string
	Direction        Direction
	Quantity         decimal.Decimal
	Price            decimal.Decimal
	Total            decimal.Decimal
	Lote             string
	ExpirationDate   *time.Time
	Notes            string
}
