package kardex

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastaneda/kardex-api/internal/domain"
	"github.com/jcastaneda/kardex-api/internal/domain/entity"
	"github.com/jcastaneda/kardex-api/internal/domain/kardex"
	"github.com/jcastaneda/kardex-api/internal/domain/repository"
)

// AuthorizeMovementUseCase transiciona un movimiento pendiente a autorizado,
// aplicando todos sus detalles al stock como una sola unidad atómica
// (bloqueo de fila SELECT FOR UPDATE y Commit/Rollback vía TxRunner).
type AuthorizeMovementUseCase struct {
	txRunner TxRunner
}

// NewAuthorizeMovementUseCase construye el caso de uso.
func NewAuthorizeMovementUseCase(txRunner TxRunner) *AuthorizeMovementUseCase {
	return &AuthorizeMovementUseCase{txRunner: txRunner}
}

// StockResult stock resultante de una variante tras aplicar un detalle.
type StockResult struct {
	ProductVariantID string
	NewQuantity      decimal.Decimal
}

// AuthorizationResult resultado de una autorización exitosa.
type AuthorizationResult struct {
	MovementID   string
	Stocks       []StockResult
	AuthorizedBy string
	AuthorizedAt time.Time
}

// Authorize valida las precondiciones (existe, no autorizado aún), aplica
// cada detalle en el orden almacenado y marca el movimiento autorizado.
// Todo ocurre en una transacción: si un detalle falla, nada se aplica.
func (uc *AuthorizeMovementUseCase) Authorize(ctx context.Context, movementID, actingUser string) (*AuthorizationResult, error) {
	if movementID == "" || actingUser == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *AuthorizationResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		mov, err := movRepo.GetByIDForUpdate(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.Authorized {
			return domain.ErrAlreadyAuthorized
		}

		now := time.Now()
		stocks, err := applyMovementToStock(stockRepo, mov, now)
		if err != nil {
			return err
		}
		if err := movRepo.MarkAuthorized(mov.ID, actingUser, now); err != nil {
			return err
		}
		result = &AuthorizationResult{
			MovementID:   mov.ID,
			Stocks:       stocks,
			AuthorizedBy: actingUser,
			AuthorizedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyMovementToStock aplica los detalles de un movimiento al stock en el
// orden almacenado, bloqueando cada fila (GetForUpdate) antes del
// read-modify-write. Lo comparten Authorize y Cancel, de modo que la
// autorización de un reverso pasa por exactamente la misma ruta.
//
// La dirección efectiva es la almacenada en cada detalle; solo si un detalle
// no la trae (datos previos al enum) se deriva del tipo de cabecera. Un
// detalle con dirección inválida aborta la operación completa con DetailError.
func applyMovementToStock(stockRepo repository.StockRepository, mov *entity.Movement, now time.Time) ([]StockResult, error) {
	results := make([]StockResult, 0, len(mov.Details))
	for i, d := range mov.Details {
		dir := d.Direction
		if dir == "" {
			derived, err := kardex.ClassifyMovementType(mov.Type)
			if err != nil {
				return nil, &domain.DetailError{Index: i, Err: err}
			}
			dir = derived
		}
		if !dir.Valid() {
			return nil, &domain.DetailError{Index: i, Err: domain.ErrUnsupportedMovementType}
		}
		if d.Quantity.IsNegative() {
			return nil, &domain.DetailError{Index: i, Err: domain.ErrInvalidInput}
		}

		entry, err := stockRepo.GetForUpdate(d.ProductVariantID, mov.WarehouseID)
		if err != nil {
			return nil, &domain.DetailError{Index: i, Err: err}
		}
		delta := d.Quantity
		if dir == entity.DirectionDecrease {
			delta = delta.Neg()
		}
		// Sin piso en cero: la cantidad resultante puede ser negativa.
		entry.Quantity = entry.Quantity.Add(delta)
		entry.UpdatedAt = now
		if err := stockRepo.Upsert(entry); err != nil {
			return nil, &domain.DetailError{Index: i, Err: err}
		}
		results = append(results, StockResult{
			ProductVariantID: d.ProductVariantID,
			NewQuantity:      entry.Quantity,
		})
	}
	return results, nil
}
