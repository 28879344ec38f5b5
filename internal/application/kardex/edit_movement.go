package kardex

import (
	"context"
	"strings"

	"github.com/jcastaneda/kardex-api/internal/domain"
	"github.com/jcastaneda/kardex-api/internal/domain/entity"
	"github.com/jcastaneda/kardex-api/internal/domain/kardex"
	"github.com/jcastaneda/kardex-api/internal/domain/repository"
)

// EditMovementUseCase corrige un movimiento antes de su autorización:
// reemplaza los campos de cabecera y el conjunto completo de detalles.
// Nunca toca el stock (un movimiento pendiente jamás lo afectó).
type EditMovementUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
}

// NewEditMovementUseCase construye el caso de uso.
func NewEditMovementUseCase(txRunner TxRunner, warehouseRepo repository.WarehouseRepository) *EditMovementUseCase {
	return &EditMovementUseCase{txRunner: txRunner, warehouseRepo: warehouseRepo}
}

// Edit rechaza movimientos ya autorizados con ErrEditNotAllowed. Las
// direcciones de los detalles se recalculan desde el tipo nuevo, igual que
// en la creación.
func (uc *EditMovementUseCase) Edit(ctx context.Context, movementID, actingUser string, input MovementInput) (*entity.Movement, error) {
	if movementID == "" || actingUser == "" {
		return nil, domain.ErrInvalidInput
	}
	dir, err := kardex.ClassifyMovementType(input.Type)
	if err != nil {
		return nil, err
	}
	if input.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	var updated *entity.Movement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.StockRepository,
	) error {
		mov, err := movRepo.GetByIDForUpdate(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.Authorized {
			return domain.ErrEditNotAllowed
		}

		mov.WarehouseID = input.WarehouseID
		mov.Type = strings.ToUpper(strings.TrimSpace(input.Type))
		mov.ReferenceDocument = input.ReferenceDocument
		mov.Notes = input.Notes
		if err := movRepo.UpdateHeader(mov); err != nil {
			return err
		}

		details, err := buildDetails(mov.ID, dir, input.Details)
		if err != nil {
			return err
		}
		if err := movRepo.ReplaceDetails(mov.ID, details); err != nil {
			return err
		}
		mov.Details = details
		updated = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
