package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// GrnBatch is the header of a goods-received-note: one delivery event
// against a purchase order.
type GrnBatch struct {
	Id           int    `json:"id"`
	SupplierId   int    `json:"supplier_id"`
	PurchOrderNo int    `json:"purch_order_no"`
	Reference    string `json:"reference"`
	DeliveryDate Date   `json:"delivery_date"`
	LocCode      string `json:"loc_code"`
}

func (b *GrnBatch) UnmarshalJSON(data []byte) error {
	type alias GrnBatch
	aux := struct {
		*alias
		BatchNo    *int `json:"batch_no"`
		GrnBatchId *int `json:"grn_batch_id"`
		OrderNo    *int `json:"order_no"`
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if b.Id == 0 {
		if aux.BatchNo != nil {
			b.Id = *aux.BatchNo
		} else if aux.GrnBatchId != nil {
			b.Id = *aux.GrnBatchId
		}
	}
	if b.PurchOrderNo == 0 && aux.OrderNo != nil {
		b.PurchOrderNo = *aux.OrderNo
	}
	return nil
}

// Matches reports whether the batch corresponds to the given creation
// attempt. Used by the find-or-fail fallback when a create response
// comes back without an id.
func (b GrnBatch) Matches(purchOrderNo int, supplierId int, deliveryDate Date) bool {
	return b.PurchOrderNo == purchOrderNo &&
		b.SupplierId == supplierId &&
		b.DeliveryDate.String() == deliveryDate.String()
}

// GrnItem is a received line under a GRN batch. quantity_inv tracks how
// much of the receipt has been invoiced so far; invoices increment it,
// credit notes decrement it.
type GrnItem struct {
	Id           int             `json:"id"`
	GrnBatchId   int             `json:"grn_batch_id"`
	PoDetailItem int             `json:"po_detail_item"`
	ItemCode     string          `json:"item_code"`
	Description  string          `json:"description"`
	QtyRecd      decimal.Decimal `json:"qty_recd"`
	QuantityInv  decimal.Decimal `json:"quantity_inv"`
}

func (g *GrnItem) UnmarshalJSON(data []byte) error {
	type alias GrnItem
	aux := struct {
		*alias
		GrnItemId  *int `json:"grn_item_id"`
		BatchId    *int `json:"batch_id"`
		GrnBatchNo *int `json:"grn_batch_no"`
	}{alias: (*alias)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if g.Id == 0 && aux.GrnItemId != nil {
		g.Id = *aux.GrnItemId
	}
	if g.GrnBatchId == 0 {
		if aux.BatchId != nil {
			g.GrnBatchId = *aux.BatchId
		} else if aux.GrnBatchNo != nil {
			g.GrnBatchId = *aux.GrnBatchNo
		}
	}
	return nil
}

// LeftToInvoice is qty_recd - quantity_inv, floored at zero.
func (g GrnItem) LeftToInvoice() decimal.Decimal {
	left := g.QtyRecd.Sub(g.QuantityInv)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}
