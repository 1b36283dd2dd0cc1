package shipping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/models"
)

func TestService_Ship(t *testing.T) {
	cheese := models.NewPerishableProduct("1", "Cheese", decimal.NewFromInt(100), 10, time.Now().Add(time.Hour), 200)
	biscuits := models.NewPerishableProduct("2", "Biscuits", decimal.NewFromInt(150), 5, time.Now().Add(time.Hour), 700)

	shipment := NewService().Ship([]models.CartItem{
		{Product: cheese, Quantity: 2},
		{Product: biscuits, Quantity: 1},
	})

	require.Len(t, shipment.Lines, 2)
	assert.Equal(t, models.ShipmentLine{Name: "Cheese", Quantity: 2, WeightGrams: 400}, shipment.Lines[0])
	assert.Equal(t, models.ShipmentLine{Name: "Biscuits", Quantity: 1, WeightGrams: 700}, shipment.Lines[1])
	assert.Equal(t, 1100, shipment.TotalWeightGrams)
	assert.Equal(t, 1.1, shipment.TotalWeightKg)
}

func TestService_ShipEmpty(t *testing.T) {
	shipment := NewService().Ship(nil)

	assert.Empty(t, shipment.Lines)
	assert.Zero(t, shipment.TotalWeightGrams)
	assert.Zero(t, shipment.TotalWeightKg)
}

func TestGramsToKg(t *testing.T) {
	tests := []struct {
		grams int
		want  float64
	}{
		{grams: 0, want: 0},
		{grams: 49, want: 0},
		{grams: 50, want: 0.1},
		{grams: 1100, want: 1.1},
		{grams: 1149, want: 1.1},
		{grams: 1150, want: 1.2},
		{grams: 8400, want: 8.4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, gramsToKg(tt.grams), "grams=%d", tt.grams)
	}
}
