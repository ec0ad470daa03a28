package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"proforma/internal/model"
)

// Accepts international or local phone numbers: digits with an optional
// leading + and an optional hyphenated 3-4 digit extension, 10-15 digits total.
var phonePattern = regexp.MustCompile(`^\+?\d{10,15}(-\d{3,4})?$`)

const dateLayout = "2006-01-02"

// DefaultTransportationCap bounds the absolute transportation amount a user
// may enter before it is considered implausible.
var DefaultTransportationCap = decimal.NewFromInt(100000)

// Validator applies the structural and business rules an invoice must pass
// before the store will persist it. The zero cap and clock are configurable
// so tests can pin them.
type Validator struct {
	TransportationCap decimal.Decimal

	now func() time.Time
}

func NewValidator() *Validator {
	return &Validator{
		TransportationCap: DefaultTransportationCap,
		now:               time.Now,
	}
}

// Validate returns an empty map when the input may be persisted. Validation
// is advisory and blocking: the invoice store refuses to save while this map
// is non-empty and hands the same mapping back to the caller.
func (v *Validator) Validate(client model.ClientInfo, lineItems []model.LineItem, adj model.Adjustments) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(client.ClientName) == "" {
		errs["client_name"] = "Client name is required"
	}

	if client.Contact != "" && !phonePattern.MatchString(client.Contact) {
		errs["contact"] = "Invalid phone number (e.g., +1234567890 or 1234567890-123)"
	}

	// Unlike location and contact, the date is not optional: empty fails the
	// parse like any other unparsable value.
	if parsed, err := time.Parse(dateLayout, client.Date); err != nil {
		errs["date"] = "Invalid date"
	} else if parsed.After(v.now()) {
		errs["date"] = "Date cannot be in the future"
	}

	if len(lineItems) == 0 {
		errs["line_items"] = "At least one accessory is required"
	}
	for i, item := range lineItems {
		if item.Quantity < 1 {
			errs[fmt.Sprintf("line_items[%d].quantity", i)] = "Quantity must be at least 1"
		}
	}

	if client.CommissionPercentage < 1 || client.CommissionPercentage > 20 {
		errs["commission_percentage"] = "Commission must be between 1% and 20%"
	}

	switch client.PaymentMethod {
	case model.PaymentCash, model.PaymentBank, model.PaymentMobileMoney:
	default:
		errs["payment_method"] = "Payment method must be Cash, Bank or Mobile Money"
	}

	if adj.DiscountPercentage.IsNegative() || adj.DiscountPercentage.GreaterThan(oneHundred) {
		errs["discount_percentage"] = "Discount must be between 0% and 100%"
	}
	if adj.InstallationPercentage.IsNegative() || adj.InstallationPercentage.GreaterThan(oneHundred) {
		errs["installation_percentage"] = "Installation must be between 0% and 100%"
	}
	if adj.TransportationCost.IsNegative() || adj.TransportationCost.GreaterThan(v.TransportationCap) {
		errs["transportation_cost"] = fmt.Sprintf("Transportation cost must be between 0 and %s", v.TransportationCap.String())
	}

	return errs
}
