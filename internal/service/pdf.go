package service

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"proforma/internal/model"
)

// GeneratePDF renders one finalized invoice as an A4 proforma document:
// company letterhead, client block, accessory table, then the totals
// breakdown. Inputs are read-only; the levy rates only label the tax lines.
func GeneratePDF(client model.ClientInfo, lineItems []model.LineItem, totals model.Totals, company model.CompanyProfile, rates model.TaxRates) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	const margin = 10.0
	lineWidth := pageWidth - 2*margin

	// Letterhead
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(lineWidth, 8, company.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{company.Description, company.Location, company.Contact, company.Website} {
		pdf.CellFormat(lineWidth, 5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(lineWidth, 8, "PROFORMA INVOICE", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Client block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(lineWidth, 6, "Client Information", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	clientRows := []string{
		"Client: " + orNA(client.ClientName),
		"Location: " + orNA(client.Location),
		"Contact: " + orNA(client.Contact),
		"Date: " + orNA(client.Date),
		"Gauge: " + client.MaterialGauge,
		"CMP: " + strconv.Itoa(client.CommissionPercentage) + "%",
		"Payment Method: " + client.PaymentMethod,
	}
	for _, row := range clientRows {
		pdf.CellFormat(lineWidth, 5, row, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Accessory table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(lineWidth, 6, "Accessories", "B", 1, "L", false, 0, "")
	if len(lineItems) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(lineWidth, 5, "No accessories added.", "", 1, "L", false, 0, "")
	} else {
		colWidths := []float64{lineWidth - 90, 30, 30, 30}
		pdf.SetFont("Helvetica", "B", 10)
		for i, header := range []string{"Accessory", "Unit Price", "Quantity", "Total"} {
			pdf.CellFormat(colWidths[i], 6, header, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		for _, item := range lineItems {
			pdf.CellFormat(colWidths[0], 5, item.Name, "", 0, "L", false, 0, "")
			pdf.CellFormat(colWidths[1], 5, item.UnitPrice.StringFixed(2), "", 0, "L", false, 0, "")
			pdf.CellFormat(colWidths[2], 5, strconv.Itoa(item.Quantity), "", 0, "L", false, 0, "")
			pdf.CellFormat(colWidths[3], 5, item.LineTotal.StringFixed(2), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	// Totals breakdown
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(lineWidth, 6, "Invoice Totals", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	totalRows := []struct {
		label string
		value string
	}{
		{"Subtotal", totals.Subtotal.StringFixed(2)},
		{fmt.Sprintf("NIHIL (%s%%)", rates.Nihil.String()), totals.NihilTax.StringFixed(2)},
		{fmt.Sprintf("GETFund (%s%%)", rates.GetFund.String()), totals.GetFundTax.StringFixed(2)},
		{fmt.Sprintf("COVID-19 (%s%%)", rates.Covid.String()), totals.CovidTax.StringFixed(2)},
		{fmt.Sprintf("VAT (%s%%)", rates.Vat.String()), totals.VatTax.StringFixed(2)},
		{"Discount", totals.DiscountAmount.StringFixed(2)},
		{"Transportation", totals.TransportationCost.StringFixed(2)},
		{"Installation", totals.InstallationAmount.StringFixed(2)},
	}
	for _, row := range totalRows {
		pdf.CellFormat(60, 5, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, row.value, "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 7, "Grand Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, totals.GrandTotal.StringFixed(2), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}
