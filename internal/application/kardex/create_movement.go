package kardex

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastaneda/kardex-api/internal/domain"
	"github.com/jcastaneda/kardex-api/internal/domain/entity"
	"github.com/jcastaneda/kardex-api/internal/domain/kardex"
	"github.com/jcastaneda/kardex-api/internal/domain/repository"
)

// CreateMovementUseCase crea movimientos en estado pendiente: no tocan el
// stock hasta que se autorizan.
type CreateMovementUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
}

// NewCreateMovementUseCase construye el caso de uso.
func NewCreateMovementUseCase(txRunner TxRunner, warehouseRepo repository.WarehouseRepository) *CreateMovementUseCase {
	return &CreateMovementUseCase{txRunner: txRunner, warehouseRepo: warehouseRepo}
}

// DetailInput línea de entrada para crear o editar un movimiento.
type DetailInput struct {
	ProductVariantID string
	Quantity         decimal.Decimal
	Price            decimal.Decimal
	Total            *decimal.Decimal
	Lote             string
	ExpirationDate   *time.Time
	Notes            string
}

// MovementInput entrada para crear o editar un movimiento pendiente.
type MovementInput struct {
	WarehouseID       string
	Type              string
	ReferenceDocument string
	Notes             string
	Details           []DetailInput
}

// Create valida tipo (vocabulario cerrado), bodega y detalles, y persiste
// cabecera más detalles en una transacción. La dirección efectiva de cada
// detalle se fija aquí, derivada una sola vez del tipo del movimiento.
func (uc *CreateMovementUseCase) Create(ctx context.Context, actingUser string, input MovementInput) (*entity.Movement, error) {
	if actingUser == "" {
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

	now := time.Now()
	mov := &entity.Movement{
		ID:                uuid.New().String(),
		WarehouseID:       input.WarehouseID,
		Type:              strings.ToUpper(strings.TrimSpace(input.Type)),
		ReferenceDocument: input.ReferenceDocument,
		Notes:             input.Notes,
		CreatedBy:         actingUser,
		CreatedAt:         now,
	}
	details, err := buildDetails(mov.ID, dir, input.Details)
	if err != nil {
		return nil, err
	}
	mov.Details = details

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.StockRepository,
	) error {
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// buildDetails valida las líneas (variante obligatoria, cantidad no negativa)
// y completa total = precio × cantidad cuando no viene explícito.
func buildDetails(movementID string, dir entity.Direction, inputs []DetailInput) ([]entity.MovementDetail, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	details := make([]entity.MovementDetail, 0, len(inputs))
	for i, in := range inputs {
		if in.ProductVariantID == "" || in.Quantity.IsNegative() {
			return nil, &domain.DetailError{Index: i, Err: domain.ErrInvalidInput}
		}
		details = append(details, entity.MovementDetail{
			ID:               uuid.New().String(),
			MovementID:       movementID,
			ProductVariantID: in.ProductVariantID,
			Direction:        dir,
			Quantity:         in.Quantity,
			Price:            in.Price,
			Total:            kardex.LineTotal(in.Price, in.Quantity, in.Total),
			Lote:             in.Lote,
			ExpirationDate:   in.ExpirationDate,
			Notes:            in.Notes,
		})
	}
	return details, nil
}
