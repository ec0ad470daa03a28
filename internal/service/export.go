package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"proforma/internal/model"
)

var csvHeader = []string{
	"Invoice ID", "Client", "Location", "Contact", "Date", "Gauge", "CMP (%)",
	"Payment Method", "Subtotal", "NIHIL", "GETFund", "COVID-19", "VAT",
	"Discount", "Transportation", "Installation", "Grand Total", "Accessories",
	"Created At",
}

// GenerateCSV renders the whole invoice collection as CSV, one row per
// invoice with the accessory lines folded into a single column. The records
// are read-only input; monetary values are rounded to two decimals here, at
// the presentation boundary.
func GenerateCSV(records []model.InvoiceRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ID,
			orNA(r.ClientInfo.ClientName),
			orNA(r.ClientInfo.Location),
			orNA(r.ClientInfo.Contact),
			orNA(r.ClientInfo.Date),
			r.ClientInfo.MaterialGauge,
			strconv.Itoa(r.ClientInfo.CommissionPercentage),
			r.ClientInfo.PaymentMethod,
			r.Totals.Subtotal.StringFixed(2),
			r.Totals.NihilTax.StringFixed(2),
			r.Totals.GetFundTax.StringFixed(2),
			r.Totals.CovidTax.StringFixed(2),
			r.Totals.VatTax.StringFixed(2),
			r.Totals.DiscountAmount.StringFixed(2),
			r.Totals.TransportationCost.StringFixed(2),
			r.Totals.InstallationAmount.StringFixed(2),
			r.Totals.GrandTotal.StringFixed(2),
			accessorySummary(r.LineItems),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row for %s: %w", r.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func accessorySummary(items []model.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (Qty: %d, Total: %s)", item.Name, item.Quantity, item.LineTotal.StringFixed(2)))
	}
	return strings.Join(parts, "; ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
