package kardex

import (
	"context"

	"github.com/jcastaneda/kardex-api/internal/domain"
	"github.com/jcastaneda/kardex-api/internal/domain/entity"
	"github.com/jcastaneda/kardex-api/internal/domain/repository"
)

// MovementQueryUseCase lecturas del libro de movimientos y del stock.
// Usa repositorios atados al pool (fuera de transacción).
type MovementQueryUseCase struct {
	movRepo   repository.MovementRepository
	stockRepo repository.StockRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movRepo repository.MovementRepository, stockRepo repository.StockRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, stockRepo: stockRepo}
}

// GetMovement devuelve un movimiento con sus detalles.
func (uc *MovementQueryUseCase) GetMovement(_ context.Context, id string) (*entity.Movement, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

// ListByWarehouse lista los movimientos de una bodega, más recientes primero.
func (uc *MovementQueryUseCase) ListByWarehouse(_ context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByWarehouse(warehouseID, limit, offset)
}

// GetStock devuelve la existencia actual de una variante en una bodega
// (cantidad cero si nunca hubo movimientos).
func (uc *MovementQueryUseCase) GetStock(_ context.Context, productVariantID, warehouseID string) (*entity.StockEntry, error) {
	if productVariantID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.Get(productVariantID, warehouseID)
}
