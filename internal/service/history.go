package service

import (
	"sort"
	"strings"

	"proforma/internal/model"
)

// Sort keys accepted by the history view.
const (
	SortDateNewest = "date-newest"
	SortDateOldest = "date-oldest"
	SortClientAsc  = "client-asc"
	SortClientDesc = "client-desc"
	SortTotalAsc   = "total-asc"
	SortTotalDesc  = "total-desc"
)

// ProjectHistory filters the records by a case-insensitive substring match on
// the client name, then applies a stable sort by the given key. It works on a
// copy: the underlying collection and its stored order are never touched, and
// repeated calls with identical arguments yield identical results. An unknown
// sort key leaves the stored order as-is.
func ProjectHistory(records []model.InvoiceRecord, filterText, sortKey string) []model.InvoiceRecord {
	out := make([]model.InvoiceRecord, 0, len(records))
	needle := strings.ToLower(strings.TrimSpace(filterText))
	for _, r := range records {
		if needle != "" && !strings.Contains(strings.ToLower(r.ClientInfo.ClientName), needle) {
			continue
		}
		out = append(out, r)
	}

	less := historyLess(sortKey)
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func historyLess(sortKey string) func(a, b model.InvoiceRecord) bool {
	switch sortKey {
	case SortDateNewest:
		return func(a, b model.InvoiceRecord) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortDateOldest:
		return func(a, b model.InvoiceRecord) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortClientAsc:
		return func(a, b model.InvoiceRecord) bool {
			return strings.ToLower(a.ClientInfo.ClientName) < strings.ToLower(b.ClientInfo.ClientName)
		}
	case SortClientDesc:
		return func(a, b model.InvoiceRecord) bool {
			return strings.ToLower(a.ClientInfo.ClientName) > strings.ToLower(b.ClientInfo.ClientName)
		}
	case SortTotalAsc:
		return func(a, b model.InvoiceRecord) bool {
			return a.Totals.GrandTotal.LessThan(b.Totals.GrandTotal)
		}
	case SortTotalDesc:
		return func(a, b model.InvoiceRecord) bool {
			return a.Totals.GrandTotal.GreaterThan(b.Totals.GrandTotal)
		}
	default:
		return nil
	}
}
