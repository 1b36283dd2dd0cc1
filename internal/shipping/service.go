package shipping

import (
	"math"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/models"
)

// Service builds shipment notices for shippable cart items
type Service struct{}

// NewService creates a new shipping service
func NewService() *Service {
	return &Service{}
}

// Ship describes a shipment for items in the given order.
// Callers pass only shippable items; nothing is filtered here.
func (s *Service) Ship(items []models.CartItem) *models.Shipment {
	shipment := &models.Shipment{
		Lines: make([]models.ShipmentLine, 0, len(items)),
	}

	for _, item := range items {
		weight := item.TotalWeight()
		shipment.Lines = append(shipment.Lines, models.ShipmentLine{
			Name:        item.Product.Name,
			Quantity:    item.Quantity,
			WeightGrams: weight,
		})
		shipment.TotalWeightGrams += weight
	}

	shipment.TotalWeightKg = gramsToKg(shipment.TotalWeightGrams)
	return shipment
}

// gramsToKg converts to kilograms rounded to one decimal place
func gramsToKg(grams int) float64 {
	return math.Round(float64(grams)/100) / 10
}
