package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type PurchaseOrder struct {
	OrderNo           int             `json:"order_no"`
	SupplierId        int             `json:"supplier_id"`
	Comments          string          `json:"comments"`
	OrdDate           Date            `json:"ord_date"`
	Reference         string          `json:"reference"`
	RequisitionNo     string          `json:"requisition_no"`
	IntoStockLocation string          `json:"into_stock_location"`
	DeliveryAddress   string          `json:"delivery_address"`
	Total             decimal.Decimal `json:"total"`
	Alloc             decimal.Decimal `json:"alloc"`
	TaxIncluded       bool            `json:"tax_included"`
}

// UnmarshalJSON tolerates the backend's inconsistent key naming for the
// order number (order_no / purch_order_no / orderNo). This is the single
// normalization point; consumers never field-guess.
func (po *PurchaseOrder) UnmarshalJSON(data []byte) error {
	type alias PurchaseOrder
	aux := struct {
		*alias
		PurchOrderNo *int `json:"purch_order_no"`
		OrderNoCamel *int `json:"orderNo"`
	}{alias: (*alias)(po)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if po.OrderNo == 0 {
		if aux.PurchOrderNo != nil {
			po.OrderNo = *aux.PurchOrderNo
		} else if aux.OrderNoCamel != nil {
			po.OrderNo = *aux.OrderNoCamel
		}
	}
	return nil
}

// PurchaseOrderDetail is a line item keyed by (order_no, po_detail_item).
// po_detail_item is a per-order sequence number; see NextDetailItemNo.
type PurchaseOrderDetail struct {
	OrderNo      int             `json:"order_no"`
	PoDetailItem int             `json:"po_detail_item"`
	ItemCode     string          `json:"item_code"`
	Description  string          `json:"description"`
	DeliveryDate Date            `json:"delivery_date"`
	QtyOrdered   decimal.Decimal `json:"quantity_ordered"`
	QtyReceived  decimal.Decimal `json:"quantity_received"`
	QtyInvoiced  decimal.Decimal `json:"qty_invoiced"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ActPrice     decimal.Decimal `json:"act_price"`
}

func (d *PurchaseOrderDetail) UnmarshalJSON(data []byte) error {
	type alias PurchaseOrderDetail
	aux := struct {
		*alias
		PurchOrderNo     *int `json:"purch_order_no"`
		PoDetailItemAlt  *int `json:"poDetailItem"`
		DetailItemLegacy *int `json:"detail_item"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if d.OrderNo == 0 && aux.PurchOrderNo != nil {
		d.OrderNo = *aux.PurchOrderNo
	}
	if d.PoDetailItem == 0 {
		if aux.PoDetailItemAlt != nil {
			d.PoDetailItem = *aux.PoDetailItemAlt
		} else if aux.DetailItemLegacy != nil {
			d.PoDetailItem = *aux.DetailItemLegacy
		}
	}
	return nil
}

// Outstanding reports whether the line still has quantity to receive.
func (d PurchaseOrderDetail) Outstanding() bool {
	return d.QtyReceived.LessThan(d.QtyOrdered)
}

// NextDetailItemNo picks the lowest unused positive integer among the
// order's existing details.
func NextDetailItemNo(existing []PurchaseOrderDetail) int {
	used := make(map[int]bool, len(existing))
	for _, d := range existing {
		used[d.PoDetailItem] = true
	}
	n := 1
	for used[n] {
		n++
	}
	return n
}

// NextOrderNo computes max(order_no) + 1 over all listed orders. The scan
// is not atomic against other clients; the upstream contract assigns no
// server-side sequence for purchase orders.
func NextOrderNo(orders []PurchaseOrder) int {
	max := 0
	for _, o := range orders {
		if o.OrderNo > max {
			max = o.OrderNo
		}
	}
	return max + 1
}
