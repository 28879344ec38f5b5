package kardex

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcastaneda/kardex-api/internal/domain"
	"github.com/jcastaneda/kardex-api/internal/domain/entity"
	"github.com/jcastaneda/kardex-api/internal/domain/kardex"
	"github.com/jcastaneda/kardex-api/internal/domain/repository"
)

// CancelMovementUseCase neutraliza el efecto de un movimiento ya autorizado
// sin mutar la historia: marca el original como cancelado y crea un
// movimiento reverso (direcciones por detalle invertidas, mismas cantidades)
// que se autoriza en la misma transacción.
type CancelMovementUseCase struct {
	txRunner TxRunner
}

// NewCancelMovementUseCase construye el caso de uso.
func NewCancelMovementUseCase(txRunner TxRunner) *CancelMovementUseCase {
	return &CancelMovementUseCase{txRunner: txRunner}
}

// CancellationResult resultado de una cancelación exitosa.
type CancellationResult struct {
	CancelledMovementID string
	ReverseMovementID   string
	Reason              string
	CancelledAt         time.Time
}

// Cancel exige un motivo no vacío y el invariante de cancelación
// (autorizado, no cancelado, no reverso). Cualquier fallo al crear el
// reverso o aplicar el stock revierte la cancelación completa: el original
// queda sin cancelar y el reverso no persiste.
func (uc *CancelMovementUseCase) Cancel(ctx context.Context, movementID, actingUser, reason string) (*CancellationResult, error) {
	reason = strings.TrimSpace(reason)
	if movementID == "" || actingUser == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *CancellationResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		orig, err := movRepo.GetByIDForUpdate(movementID)
		if err != nil {
			return err
		}
		if orig == nil {
			return domain.ErrNotFound
		}
		if !orig.Cancellable() {
			return domain.ErrNotCancellable
		}

		now := time.Now()
		if err := movRepo.MarkCancelled(orig.ID, actingUser, now, reason); err != nil {
			return err
		}

		reversal, err := buildReversal(orig, actingUser, now)
		if err != nil {
			return err
		}
		if err := movRepo.Create(reversal); err != nil {
			return err
		}
		// Misma ruta de aplicación de stock que la autorización normal; la
		// dirección viene fijada en cada detalle del reverso, no de la
		// etiqueta CANCELACION_*.
		if _, err := applyMovementToStock(stockRepo, reversal, now); err != nil {
			return err
		}
		if err := movRepo.MarkAuthorized(reversal.ID, actingUser, now); err != nil {
			return err
		}

		result = &CancellationResult{
			CancelledMovementID: orig.ID,
			ReverseMovementID:   reversal.ID,
			Reason:              reason,
			CancelledAt:         now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// buildReversal construye el movimiento reverso: misma bodega, etiqueta
// CANCELACION_<tipo original>, y por cada detalle del original uno nuevo con
// la misma cantidad y la dirección opuesta, fijada al momento de la creación.
func buildReversal(orig *entity.Movement, actingUser string, now time.Time) (*entity.Movement, error) {
	reversal := &entity.Movement{
		ID:                 uuid.New().String(),
		WarehouseID:        orig.WarehouseID,
		Type:               kardex.ReversalTypePrefix + orig.Type,
		Reversal:           true,
		OriginalMovementID: orig.ID,
		ReferenceDocument:  orig.ReferenceDocument,
		CreatedBy:          actingUser,
		CreatedAt:          now,
	}
	for i, d := range orig.Details {
		dir := d.Direction
		if dir == "" {
			derived, err := kardex.ClassifyMovementType(orig.Type)
			if err != nil {
				return nil, &domain.DetailError{Index: i, Err: err}
			}
			dir = derived
		}
		if !dir.Valid() {
			return nil, &domain.DetailError{Index: i, Err: domain.ErrUnsupportedMovementType}
		}
		reversal.Details = append(reversal.Details, entity.MovementDetail{
			ID:               uuid.New().String(),
			MovementID:       reversal.ID,
			ProductVariantID: d.ProductVariantID,
			Direction:        dir.Inverse(),
			Quantity:         d.Quantity,
			Price:            d.Price,
			Total:            d.Total,
			Lote:             d.Lote,
			ExpirationDate:   d.ExpirationDate,
			Notes:            fmt.Sprintf("reverso del detalle %s", d.ID),
		})
	}
	return reversal, nil
}
