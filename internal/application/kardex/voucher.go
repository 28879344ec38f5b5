package kardex

import (
	"context"

	"github.com/jcastaneda/kardex-api/internal/domain"
	"github.com/jcastaneda/kardex-api/internal/domain/repository"
)

// VoucherUseCase genera el comprobante PDF de un movimiento (cabecera,
// detalles y estado de autorización/cancelación).
type VoucherUseCase struct {
	movRepo       repository.MovementRepository
	warehouseRepo repository.WarehouseRepository
	generator     MovementPDFGenerator
}

// NewVoucherUseCase construye el caso de uso.
func NewVoucherUseCase(
	movRepo repository.MovementRepository,
	warehouseRepo repository.WarehouseRepository,
	generator MovementPDFGenerator,
) *VoucherUseCase {
	return &VoucherUseCase{movRepo: movRepo, warehouseRepo: warehouseRepo, generator: generator}
}

// GeneratePDF devuelve los bytes del comprobante.
func (uc *VoucherUseCase) GeneratePDF(ctx context.Context, movementID string) ([]byte, error) {
	mov, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(mov.WarehouseID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateMovementPDF(ctx, mov, wh)
}
