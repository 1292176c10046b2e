package workflow

import (
	"context"

	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"github.com/sirupsen/logrus"
)

type SupplierCreditInput struct {
	SupplierId    int         `json:"supplierId"`
	Reference     string      `json:"reference"`
	SuppReference string      `json:"suppReference"`
	Date          models.Date `json:"date"`
	TaxIncluded   bool        `json:"taxIncluded"`
	Lines         []LineInput `json:"lines"`
}

// ProcessSupplierCreditWorkflow records a credit note against earlier
// invoiced receipts. The ledger row carries the subtotal negated, and
// each referenced GRN item's quantity_inv walks back by the credited
// quantity, floored at zero.
func ProcessSupplierCreditWorkflow(ctx context.Context, backend Backend, logger *logrus.Logger, input SupplierCreditInput) (*InvoiceResult, error) {
	lines, fy, err := validateInvoiceHeader(ctx, backend, input.SupplierId, input.Date, input.Lines)
	if err != nil {
		return nil, err
	}

	result, err := createSupplierTransaction(ctx, backend, logger, fy, transHeader{
		transType:     models.TransTypeSupplierCredit,
		supplierId:    input.SupplierId,
		reference:     input.Reference,
		suppReference: input.SuppReference,
		date:          input.Date,
		dueDate:       input.Date,
		amount:        Subtotal(input.Lines).Neg(),
		taxIncluded:   input.TaxIncluded,
	})
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		item := models.SuppInvoiceItem{
			SuppTransNo:   result.Trans.TransNo,
			SuppTransType: models.TransTypeSupplierCredit,
			GrnItemId:     line.GrnItemId,
			PoDetailItem:  line.PoDetailItem,
			StockId:       line.ItemCode,
			Description:   line.Description,
			Quantity:      line.Quantity.Neg(),
			UnitPrice:     line.Price,
		}
		createInvoiceItem(ctx, backend, logger, result, item)
		if line.GrnItemId != 0 {
			advanceGrnItemInvoiced(ctx, backend, logger, result, line, line.Quantity.Neg())
		}
		markDetailInvoiced(ctx, backend, logger, result, line.OrderNo, line.PoDetailItem, line.Quantity.Neg())
	}

	return result, nil
}
