package kardex_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appkardex "github.com/jcastaneda/kardex-api/internal/application/kardex"
	"github.com/jcastaneda/kardex-api/internal/domain"
	"github.com/jcastaneda/kardex-api/internal/domain/entity"
)

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedMovement inserta un movimiento directamente en el store de pruebas.
func seedMovement(store *fakeStore, m *entity.Movement) {
	store.movements[m.ID] = copyMovement(m)
}

func pendingEntrada(id, warehouseID string, details ...entity.MovementDetail) *entity.Movement {
	return &entity.Movement{
		ID:          id,
		WarehouseID: warehouseID,
		Type:        "ENTRADA",
		Details:     details,
	}
}

func detail(variantID string, direction entity.Direction, quantity string) entity.MovementDetail {
	return entity.MovementDetail{
		ID:               "det-" + variantID,
		ProductVariantID: variantID,
		Direction:        direction,
		Quantity:         qty(quantity),
	}
}

func TestAuthorize_EntradaActualizaStock(t *testing.T) {
	store := newFakeStore()
	seedMovement(store, pendingEntrada("mov-1", "bod-1",
		detail("var-7", entity.DirectionIncrease, "10"),
		detail("var-9", entity.DirectionIncrease, "2.5"),
	))
	uc := appkardex.NewAuthorizeMovementUseCase(&fakeTxRunner{store: store})

	res, err := uc.Authorize(context.Background(), "mov-1", "user-1")
	require.NoError(t, err)

	assert.Equal(t, "mov-1", res.MovementID)
	assert.Equal(t, "user-1", res.AuthorizedBy)
	require.Len(t, res.Stocks, 2)
	assert.Equal(t, "var-7", res.Stocks[0].ProductVariantID)
	assert.True(t, res.Stocks[0].NewQuantity.Equal(qty("10")))
	assert.True(t, res.Stocks[1].NewQuantity.Equal(qty("2.5")))

	assert.Equal(t, "10", store.stockQty("var-7", "bod-1"))
	assert.Equal(t, "2.5", store.stockQty("var-9", "bod-1"))

	mov := store.movements["mov-1"]
	assert.True(t, mov.Authorized)
	assert.Equal(t, "user-1", mov.AuthorizedBy)
	require.NotNil(t, mov.AuthorizedAt)
}

func TestAuthorize_SalidaPermiteStockNegativo(t *testing.T) {
	store := newFakeStore()
	mov := pendingEntrada("mov-1", "bod-1", detail("var-7", entity.DirectionDecrease, "5"))
	mov.Type = "SALIDA"
	seedMovement(store, mov)
	uc := appkardex.NewAuthorizeMovementUseCase(&fakeTxRunner{store: store})

	res, err := uc.Authorize(context.Background(), "mov-1", "user-1")
	require.NoError(t, err)

	// Sin piso en cero: la venta sin existencias deja la cantidad negativa.
	assert.True(t, res.Stocks[0].NewQuantity.Equal(qty("-5")))
	assert.Equal(t, "-5", store.stockQty("var-7", "bod-1"))
}

func TestAuthorize_MovimientoInexistente(t *testing.T) {
	store := newFakeStore()
	uc := appkardex.NewAuthorizeMovementUseCase(&fakeTxRunner{store: store})

	_, err := uc.Authorize(context.Background(), "no-existe", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Guard de idempotencia: reautorizar siempre falla y nunca toca el stock.
func TestAuthorize_YaAutorizado(t *testing.T) {
	store := newFakeStore()
	seedMovement(store, pendingEntrada("mov-1", "bod-1", detail("var-7", entity.DirectionIncrease, "10")))
	uc := appkardex.NewAuthorizeMovementUseCase(&fakeTxRunner{store: store})

	_, err := uc.Authorize(context.Background(), "mov-1", "user-1")
	require.NoError(t, err)
	require.Equal(t, "10", store.stockQty("var-7", "bod-1"))

	_, err = uc.Authorize(context.Background(), "mov-1", "user-2")
	assert.ErrorIs(t, err, domain.ErrAlreadyAuthorized)
	assert.Equal(t, "10", store.stockQty("var-7", "bod-1"), "el stock no debe cambiar al reintentar")
	assert.Equal(t, "user-1", store.movements["mov-1"].AuthorizedBy)
}

// Atomicidad: si un detalle falla la clasificación, NINGÚN detalle se aplica.
func TestAuthorize_DetalleInvalido_SinEfectosParciales(t *testing.T) {
	store := newFakeStore()
	bad := detail("var-9", entity.Direction("AJUSTE?"), "3")
	seedMovement(store, pendingEntrada("mov-1", "bod-1",
		detail("var-7", entity.DirectionIncrease, "10"),
		bad,
	))
	uc := appkardex.NewAuthorizeMovementUseCase(&fakeTxRunner{store: store})

	_, err := uc.Authorize(context.Background(), "mov-1", "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedMovementType)

	var detErr *domain.DetailError
	require.ErrorAs(t, err, &detErr)
	assert.Equal(t, 1, detErr.Index, "el error debe señalar el detalle que falló")

	// El primer detalle era válido pero tampoco debe haberse aplicado.
	assert.Equal(t, "0", store.stockQty("var-7", "bod-1"))
	assert.Equal(t, "0", store.stockQty("var-9", "bod-1"))
	assert.False(t, store.movements["mov-1"].Authorized)
}

// Detalles sin dirección (datos previos al enum): se deriva del tipo de
// cabecera; si la cabecera tampoco clasifica, la operación aborta completa.
func TestAuthorize_DireccionDerivadaDeCabecera(t *testing.T) {
	store := newFakeStore()
	seedMovement(store, pendingEntrada("mov-1", "bod-1", detail("var-7", "", "4")))
	uc := appkardex.NewAuthorizeMovementUseCase(&fakeTxRunner{store: store})

	_, err := uc.Authorize(context.Background(), "mov-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "4", store.stockQty("var-7", "bod-1"))

	mov := pendingEntrada("mov-2", "bod-1", detail("var-8", "", "4"))
	mov.Type = "UNKNOWN_TYPE"
	seedMovement(store, mov)

	_, err = uc.Authorize(context.Background(), "mov-2", "user-1")
	assert.ErrorIs(t, err, domain.ErrUnsupportedMovementType)
	assert.Equal(t, "0", store.stockQty("var-8", "bod-1"))
	assert.False(t, store.movements["mov-2"].Authorized)
}

func TestAuthorize_EntradaSobreStockExistente(t *testing.T) {
	store := newFakeStore()
	entry := &entity.StockEntry{ProductVariantID: "var-7", WarehouseID: "bod-1", Quantity: qty("3.5")}
	store.stock[stockKey("var-7", "bod-1")] = entry
	seedMovement(store, pendingEntrada("mov-1", "bod-1", detail("var-7", entity.DirectionIncrease, "1.5")))
	uc := appkardex.NewAuthorizeMovementUseCase(&fakeTxRunner{store: store})

	res, err := uc.Authorize(context.Background(), "mov-1", "user-1")
	require.NoError(t, err)
	assert.True(t, res.Stocks[0].NewQuantity.Equal(qty("5")))
	assert.Equal(t, "5", store.stockQty("var-7", "bod-1"))
}
