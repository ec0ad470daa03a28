package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proforma/internal/model"
	"proforma/internal/repository"
)

func newTestInvoiceService(t *testing.T) (InvoiceService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	settings, err := NewSettingsService(store, nil)
	require.NoError(t, err)
	svc, err := NewInvoiceService(store, fixedValidator(), settings, nil)
	require.NoError(t, err)
	return svc, store
}

func TestInvoiceService_Create(t *testing.T) {
	svc, store := newTestInvoiceService(t)

	record, err := svc.Create(validClient(), validItems(), adjustments(0, 0, 0))
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Equal(t, "Kwame Mensah", record.ClientInfo.ClientName)
	assert.Equal(t, "285.00", record.Totals.Subtotal.StringFixed(2))

	// Full write-through on every mutation.
	persisted, err := store.LoadInvoices()
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, record.ID, persisted[0].ID)
}

func TestInvoiceService_CreateInvalid(t *testing.T) {
	svc, store := newTestInvoiceService(t)

	client := validClient()
	client.ClientName = ""
	_, err := svc.Create(client, nil, adjustments(0, 0, 0))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "client_name")
	assert.Contains(t, verr.Fields, "line_items")

	// Never partially saves.
	persisted, _ := store.LoadInvoices()
	assert.Empty(t, persisted)
	assert.Empty(t, svc.List())
}

func TestInvoiceService_CreateRequiresDate(t *testing.T) {
	svc, store := newTestInvoiceService(t)

	client := validClient()
	client.Date = ""
	_, err := svc.Create(client, validItems(), adjustments(0, 0, 0))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "date")

	persisted, _ := store.LoadInvoices()
	assert.Empty(t, persisted)
}

func TestInvoiceService_CreateNormalizesLineItems(t *testing.T) {
	svc, _ := newTestInvoiceService(t)

	items := []model.LineItem{
		{ID: "acc1", Name: "A", UnitPrice: decimal.NewFromInt(10), Quantity: 2, LineTotal: decimal.NewFromInt(999)},
		{ID: "acc1", Name: "A again", UnitPrice: decimal.NewFromInt(10), Quantity: 5},
		{ID: "acc2", Name: "B", UnitPrice: decimal.NewFromInt(5), Quantity: 1},
	}

	record, err := svc.Create(validClient(), items, adjustments(0, 0, 0))
	require.NoError(t, err)

	// Duplicate id dropped at the add step; cached totals recomputed.
	require.Len(t, record.LineItems, 2)
	assert.Equal(t, "20.00", record.LineItems[0].LineTotal.StringFixed(2))
	assert.Equal(t, "25.00", record.Totals.Subtotal.StringFixed(2))
}

func TestInvoiceService_Update(t *testing.T) {
	svc, _ := newTestInvoiceService(t)

	created, err := svc.Create(validClient(), validItems(), adjustments(0, 0, 0))
	require.NoError(t, err)

	client := validClient()
	client.ClientName = "Ama Serwaa"
	updated, err := svc.Update(created.ID, client, []model.LineItem{lineItem("acc2", "B", 5, 3)}, adjustments(0, 0, 0))
	require.NoError(t, err)

	// Identity and history survive every edit.
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Ama Serwaa", updated.ClientInfo.ClientName)
	assert.Equal(t, "15.00", updated.Totals.Subtotal.StringFixed(2))

	records := svc.List()
	require.Len(t, records, 1)
	assert.Equal(t, "Ama Serwaa", records[0].ClientInfo.ClientName)
}

func TestInvoiceService_UpdateNotFound(t *testing.T) {
	svc, _ := newTestInvoiceService(t)

	_, err := svc.Update("missing", validClient(), validItems(), adjustments(0, 0, 0))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoiceService_RemoveAndRestore(t *testing.T) {
	svc, _ := newTestInvoiceService(t)

	created, err := svc.Create(validClient(), validItems(), adjustments(0, 0, 0))
	require.NoError(t, err)

	removed, err := svc.Remove(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)
	assert.Empty(t, svc.List())

	// Removing again reports the desync instead of failing silently.
	_, err = svc.Remove(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.True(t, svc.Restore(removed))
	records := svc.List()
	require.Len(t, records, 1)
	assert.Equal(t, created.ID, records[0].ID)
	assert.Equal(t, created.CreatedAt, records[0].CreatedAt)
}

func TestInvoiceService_RestoreDuplicateIsNoOp(t *testing.T) {
	svc, _ := newTestInvoiceService(t)

	created, err := svc.Create(validClient(), validItems(), adjustments(0, 0, 0))
	require.NoError(t, err)

	assert.False(t, svc.Restore(created))
	assert.Len(t, svc.List(), 1)
}

func TestInvoiceService_PersistenceFailureKeepsMemoryState(t *testing.T) {
	svc, store := newTestInvoiceService(t)
	store.FailWrites = errors.New("quota exceeded")

	record, err := svc.Create(validClient(), validItems(), adjustments(0, 0, 0))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.NotEmpty(t, record.ID)

	// The in-memory collection stays authoritative for the session.
	records := svc.List()
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
}

func TestInvoiceService_ListReturnsWorkingCopies(t *testing.T) {
	svc, _ := newTestInvoiceService(t)

	created, err := svc.Create(validClient(), validItems(), adjustments(0, 0, 0))
	require.NoError(t, err)

	records := svc.List()
	records[0].LineItems[0].Quantity = 99
	records[0].LineItems[0].Recompute()

	fresh, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.LineItems[0].Quantity)
}

func TestInvoiceService_TotalsUseConfiguredRates(t *testing.T) {
	store := repository.NewMemoryStore()
	settings, err := NewSettingsService(store, nil)
	require.NoError(t, err)

	custom := settings.Get()
	custom.DefaultTaxRates = model.TaxRates{Vat: decimal.NewFromInt(20)}
	_, err = settings.Update(custom)
	require.NoError(t, err)

	svc, err := NewInvoiceService(store, fixedValidator(), settings, nil)
	require.NoError(t, err)

	record, err := svc.Create(validClient(), []model.LineItem{lineItem("acc1", "A", 100, 1)}, adjustments(0, 0, 0))
	require.NoError(t, err)

	// Only the configured VAT applies; the other levies are zero-rated.
	assert.Equal(t, "20.00", record.Totals.VatTax.StringFixed(2))
	assert.Equal(t, "0.00", record.Totals.NihilTax.StringFixed(2))
	assert.Equal(t, "120.00", record.Totals.GrandTotal.StringFixed(2))
}

func TestInvoiceService_Preview(t *testing.T) {
	svc, _ := newTestInvoiceService(t)

	totals := svc.Preview(validItems(), adjustments(10, 0, 0))
	assert.Equal(t, "285.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "28.50", totals.DiscountAmount.StringFixed(2))
	assert.Empty(t, svc.List())
}
