package kardex

import (
	"context"

	"github.com/jcastaneda/kardex-api/internal/domain/entity"
	"github.com/jcastaneda/kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de
// movimientos: o todos los detalles se aplican al stock y el movimiento
// queda marcado, o nada persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// MovementPDFGenerator genera el comprobante PDF de un movimiento.
type MovementPDFGenerator interface {
	GenerateMovementPDF(ctx context.Context, movement *entity.Movement, warehouse *entity.Warehouse) ([]byte, error)
}
