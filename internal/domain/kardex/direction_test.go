package kardex_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastaneda/kardex-api/internal/domain"
	"github.com/jcastaneda/kardex-api/internal/domain/entity"
	"github.com/jcastaneda/kardex-api/internal/domain/kardex"
)

// El vocabulario es cerrado e insensible a mayúsculas; cada sinónimo debe
// mapear a la misma dirección en todos los casos de escritura.
func TestClassifyMovementType_Vocabulario(t *testing.T) {
	cases := []struct {
		tipo string
		want entity.Direction
	}{
		{"ENTRADA", entity.DirectionIncrease},
		{"entrada", entity.DirectionIncrease},
		{"Ingreso", entity.DirectionIncrease},
		{"INGRESO", entity.DirectionIncrease},
		{"compra", entity.DirectionIncrease},
		{"AJUSTE+", entity.DirectionIncrease},
		{"ajuste+", entity.DirectionIncrease},
		{"SALIDA", entity.DirectionDecrease},
		{"salida", entity.DirectionDecrease},
		{"EGRESO", entity.DirectionDecrease},
		{"egreso", entity.DirectionDecrease},
		{"Venta", entity.DirectionDecrease},
		{"AJUSTE-", entity.DirectionDecrease},
		{" entrada ", entity.DirectionIncrease}, // espacios alrededor
	}
	for _, tc := range cases {
		t.Run(tc.tipo, func(t *testing.T) {
			dir, err := kardex.ClassifyMovementType(tc.tipo)
			require.NoError(t, err)
			assert.Equal(t, tc.want, dir)
		})
	}
}

func TestClassifyMovementType_TipoDesconocido(t *testing.T) {
	for _, tipo := range []string{"UNKNOWN_TYPE", "", "TRASLADO", "CANCELACION_ENTRADA"} {
		_, err := kardex.ClassifyMovementType(tipo)
		assert.ErrorIs(t, err, domain.ErrUnsupportedMovementType, "tipo %q debe rechazarse", tipo)
	}
}

func TestDirection_Inverse(t *testing.T) {
	assert.Equal(t, entity.DirectionDecrease, entity.DirectionIncrease.Inverse())
	assert.Equal(t, entity.DirectionIncrease, entity.DirectionDecrease.Inverse())
}

func TestLineTotal(t *testing.T) {
	price := decimal.RequireFromString("2.00")
	qty := decimal.RequireFromString("20")

	// Sin total explícito: precio × cantidad.
	assert.True(t, kardex.LineTotal(price, qty, nil).Equal(decimal.RequireFromString("40.00")))

	// Con total explícito se respeta tal cual.
	explicit := decimal.RequireFromString("39.50")
	assert.True(t, kardex.LineTotal(price, qty, &explicit).Equal(explicit))
}
