// Package kardex contiene las reglas puras del libro de movimientos:
// clasificación de tipos y cálculo de totales de línea.
package kardex

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcastaneda/kardex-api/internal/domain"
	"github.com/jcastaneda/kardex-api/internal/domain/entity"
)

// Vocabulario aceptado de tipos de movimiento. Cerrado a propósito:
// un tipo fuera de la lista es un error, nunca se amplía en silencio.
var movementTypeDirections = map[string]entity.Direction{
	"ENTRADA": entity.DirectionIncrease,
	"INGRESO": entity.DirectionIncrease,
	"COMPRA":  entity.DirectionIncrease,
	"AJUSTE+": entity.DirectionIncrease,
	"SALIDA":  entity.DirectionDecrease,
	"EGRESO":  entity.DirectionDecrease,
	"VENTA":   entity.DirectionDecrease,
	"AJUSTE-": entity.DirectionDecrease,
}

// ReversalTypePrefix es la etiqueta que se antepone al tipo original al crear
// un movimiento reverso. Es descriptiva: la dirección del reverso viene de
// cada detalle, no de esta cadena.
const ReversalTypePrefix = "CANCELACION_"

// ClassifyMovementType mapea el tipo (insensible a mayúsculas) al enum de
// dirección. Tipos desconocidos devuelven ErrUnsupportedMovementType.
func ClassifyMovementType(movementType string) (entity.Direction, error) {
	key := strings.ToUpper(strings.TrimSpace(movementType))
	dir, ok := movementTypeDirections[key]
	if !ok {
		return "", domain.ErrUnsupportedMovementType
	}
	return dir, nil
}

// LineTotal devuelve el total de una línea: el explícito si viene informado,
// si no precio × cantidad.
func LineTotal(price, quantity decimal.Decimal, explicit *decimal.Decimal) decimal.Decimal {
	if explicit != nil {
		return *explicit
	}
	return price.Mul(quantity)
}
