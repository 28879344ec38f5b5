package repository

import (
	"time"

	"github.com/jcastaneda/kardex-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el libro de
// movimientos. Las lecturas devuelven la cabecera con sus detalles en el
// orden almacenado.
type MovementRepository interface {
	// Create persiste cabecera y detalles en una sola operación lógica.
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// GetByIDForUpdate bloquea la cabecera (SELECT FOR UPDATE) dentro de la
	// transacción en curso; usado por autorización y cancelación.
	GetByIDForUpdate(id string) (*entity.Movement, error)
	MarkAuthorized(id, userID string, at time.Time) error
	MarkCancelled(id, userID string, at time.Time, reason string) error
	// UpdateHeader actualiza bodega, tipo, referencia y notas de un
	// movimiento pendiente.
	UpdateHeader(movement *entity.Movement) error
	// ReplaceDetails borra y recrea el conjunto completo de detalles.
	ReplaceDetails(movementID string, details []entity.MovementDetail) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Movement, error)
}
