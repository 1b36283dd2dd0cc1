// Package report renders shipment notices and receipts as line-oriented text.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/models"
)

const separator = "----------------------"

// WriteShipmentNotice writes the shipment header, one line per parcel and the total weight
func WriteShipmentNotice(w io.Writer, shipment *models.Shipment) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "** Shipment notice **")
	for _, line := range shipment.Lines {
		fmt.Fprintf(bw, "%dx %s\t%dg\n", line.Quantity, line.Name, line.WeightGrams)
	}
	fmt.Fprintf(bw, "Total package weight %.1fkg\n", shipment.TotalWeightKg)

	return bw.Flush()
}

// WriteReceipt writes the receipt header, item lines and the totals block
func WriteReceipt(w io.Writer, receipt *models.Receipt) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "** Checkout receipt **")
	for _, line := range receipt.Lines {
		fmt.Fprintf(bw, "%dx %s\t%s\n", line.Quantity, line.Name, line.LineTotal)
	}
	fmt.Fprintln(bw, separator)
	fmt.Fprintf(bw, "Subtotal\t%s\n", receipt.Subtotal)
	fmt.Fprintf(bw, "Shipping\t%s\n", receipt.ShippingFee)
	fmt.Fprintf(bw, "Amount\t%s\n", receipt.Amount)
	fmt.Fprintf(bw, "Customer Balance\t%s\n", receipt.CustomerBalance)

	return bw.Flush()
}

// Write renders the shipment notice (when present) followed by the receipt
func Write(w io.Writer, receipt *models.Receipt) error {
	if receipt.Shipment != nil {
		if err := WriteShipmentNotice(w, receipt.Shipment); err != nil {
			return fmt.Errorf("failed to write shipment notice: %w", err)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if err := WriteReceipt(w, receipt); err != nil {
		return fmt.Errorf("failed to write receipt: %w", err)
	}
	return nil
}
