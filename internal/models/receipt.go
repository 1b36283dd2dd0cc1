package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentLine is one parcel entry in a shipment notice
type ShipmentLine struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	WeightGrams int    `json:"weightGrams"`
}

// Shipment describes what is handed to the carrier for a checkout
type Shipment struct {
	Lines            []ShipmentLine `json:"lines"`
	TotalWeightGrams int            `json:"totalWeightGrams"`
	TotalWeightKg    float64        `json:"totalWeightKg"`
}

// ReceiptLine is one purchased item on a receipt
type ReceiptLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Receipt is the outcome of a successful checkout
type Receipt struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customerId"`
	Lines           []ReceiptLine   `json:"lines"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingFee     decimal.Decimal `json:"shippingFee"`
	Amount          decimal.Decimal `json:"amount"`
	CustomerBalance decimal.Decimal `json:"customerBalance"`
	Shipment        *Shipment       `json:"shipment,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
