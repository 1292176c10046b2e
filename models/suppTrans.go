package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Supplier transaction types in the unified ledger.
const (
	TransTypeSupplierInvoice = 20
	TransTypeSupplierCredit  = 21
	TransTypeSupplierPayment = 22
)

// SuppTrans is one row of the unified supplier ledger. trans_no is a
// per-type sequence computed client-side as max+1.
type SuppTrans struct {
	TransNo       int             `json:"trans_no"`
	TransType     int             `json:"trans_type"`
	SupplierId    int             `json:"supplier_id"`
	Reference     string          `json:"reference"`
	SuppReference string          `json:"supp_reference"`
	TranDate      Date            `json:"tran_date"`
	DueDate       Date            `json:"due_date"`
	OvAmount      decimal.Decimal `json:"ov_amount"`
	OvDiscount    decimal.Decimal `json:"ov_discount"`
	OvGst         decimal.Decimal `json:"ov_gst"`
	Rate          decimal.Decimal `json:"rate"`
	Alloc         decimal.Decimal `json:"alloc"`
	TaxIncluded   bool            `json:"tax_included"`
}

func (t *SuppTrans) UnmarshalJSON(data []byte) error {
	type alias SuppTrans
	aux := struct {
		*alias
		Type      *int `json:"type"`
		TypeCamel *int `json:"transType"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if t.TransType == 0 {
		if aux.Type != nil {
			t.TransType = *aux.Type
		} else if aux.TypeCamel != nil {
			t.TransType = *aux.TypeCamel
		}
	}
	return nil
}

// LeftToAllocate is ov_amount - alloc. The client computes and trusts
// this; concurrent sessions can still over-allocate upstream.
func (t SuppTrans) LeftToAllocate() decimal.Decimal {
	return t.OvAmount.Sub(t.Alloc)
}

// DedupKey is the composite identity used by inquiry tables to drop the
// duplicate rows the backend returns for some joins.
func (t SuppTrans) DedupKey() string {
	return fmt.Sprintf("%d|%d|%s|%d", t.TransType, t.TransNo, t.Reference, t.SupplierId)
}

// NextTransNo computes max(trans_no) + 1 within one trans_type.
func NextTransNo(all []SuppTrans, transType int) int {
	max := 0
	for _, t := range all {
		if t.TransType == transType && t.TransNo > max {
			max = t.TransNo
		}
	}
	return max + 1
}

// SuppInvoiceItem records quantity and price per invoiced line for audit
// and costing, tied to a supplier transaction, a GRN item and a purchase
// order detail.
type SuppInvoiceItem struct {
	Id            int             `json:"id"`
	SuppTransNo   int             `json:"supp_trans_no"`
	SuppTransType int             `json:"supp_trans_type"`
	GrnItemId     int             `json:"grn_item_id"`
	PoDetailItem  int             `json:"po_detail_item_id"`
	StockId       string          `json:"stock_id"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}
