package inquiry

import (
	"sort"

	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"github.com/shopspring/decimal"
)

// PurchaseOrderRow is one inquiry grid row: the order header joined with
// its supplier name and the quantity still to receive across its lines.
type PurchaseOrderRow struct {
	models.PurchaseOrder
	SuppName       string          `json:"supp_name"`
	QtyOutstanding decimal.Decimal `json:"qty_outstanding"`
}

// PurchaseOrders filters, joins and orders the purchase order list for
// the inquiry grid. Orders come back newest first. All filtering happens
// here; the backend list endpoints take no query parameters, and the
// caller resolves supplier names through the request's batch loaders.
func PurchaseOrders(orders []models.PurchaseOrder, details []models.PurchaseOrderDetail, nameById map[int]string, f Filter) []PurchaseOrderRow {
	outstandingByOrder := make(map[int]decimal.Decimal, len(orders))
	itemMatch := make(map[int]bool, len(orders))
	for _, d := range details {
		if d.Outstanding() {
			outstandingByOrder[d.OrderNo] = outstandingByOrder[d.OrderNo].Add(d.QtyOrdered.Sub(d.QtyReceived))
		}
		if textMatches(d.ItemCode, f.ItemCode) {
			itemMatch[d.OrderNo] = true
		}
	}

	rows := make([]PurchaseOrderRow, 0, len(orders))
	for _, o := range orders {
		if f.SupplierId != 0 && o.SupplierId != f.SupplierId {
			continue
		}
		if !textMatches(o.Reference, f.Reference) {
			continue
		}
		if f.ItemCode != "" && !itemMatch[o.OrderNo] {
			continue
		}
		if !dateInRange(o.OrdDate, f.From, f.To) {
			continue
		}
		outstanding := outstandingByOrder[o.OrderNo]
		if f.OpenOnly && !outstanding.IsPositive() {
			continue
		}
		rows = append(rows, PurchaseOrderRow{
			PurchaseOrder:  o,
			SuppName:       nameById[o.SupplierId],
			QtyOutstanding: outstanding,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].OrderNo > rows[j].OrderNo
	})
	return models.Paginate(rows, f.PageRequest)
}

// OutstandingDetails lists the individual lines still waiting on goods
// for one supplier, the working set of the invoice-from-GRN page.
func OutstandingDetails(orders []models.PurchaseOrder, details []models.PurchaseOrderDetail, f Filter) []models.PurchaseOrderDetail {
	orderOk := make(map[int]bool, len(orders))
	for _, o := range orders {
		if f.SupplierId != 0 && o.SupplierId != f.SupplierId {
			continue
		}
		if !dateInRange(o.OrdDate, f.From, f.To) {
			continue
		}
		orderOk[o.OrderNo] = true
	}

	out := make([]models.PurchaseOrderDetail, 0, len(details))
	for _, d := range details {
		if !orderOk[d.OrderNo] || !d.Outstanding() {
			continue
		}
		if !textMatches(d.ItemCode, f.ItemCode) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderNo != out[j].OrderNo {
			return out[i].OrderNo < out[j].OrderNo
		}
		return out[i].PoDetailItem < out[j].PoDetailItem
	})
	return models.Paginate(out, f.PageRequest)
}
