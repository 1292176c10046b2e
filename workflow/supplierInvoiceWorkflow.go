package workflow

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type DirectInvoiceInput struct {
	SupplierId      int         `json:"supplierId"`
	Location        string      `json:"location"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Reference       string      `json:"reference"`
	SuppReference   string      `json:"suppReference"`
	Date            models.Date `json:"date"`
	DueDate         models.Date `json:"dueDate"`
	TaxIncluded     bool        `json:"taxIncluded"`
	Lines           []LineInput `json:"lines"`
}

type InvoiceFromGrnInput struct {
	SupplierId    int         `json:"supplierId"`
	Reference     string      `json:"reference"`
	SuppReference string      `json:"suppReference"`
	Date          models.Date `json:"date"`
	DueDate       models.Date `json:"dueDate"`
	TaxIncluded   bool        `json:"taxIncluded"`
	Lines         []LineInput `json:"lines"`
}

type InvoiceResult struct {
	Trans      models.SuppTrans         `json:"trans"`
	Items      []models.SuppInvoiceItem `json:"items"`
	Grn        *DirectGrnResult         `json:"grn,omitempty"`
	Reference  string                   `json:"reference"`
	LineErrors []string                 `json:"lineErrors"`
}

// ProcessDirectInvoiceWorkflow records an invoice for goods that never
// went through a separate receipt: the full direct-GRN chain runs first,
// then the supplier transaction and its invoice items are layered on top
// with the received quantities marked fully invoiced.
func ProcessDirectInvoiceWorkflow(ctx context.Context, backend Backend, logger *logrus.Logger, input DirectInvoiceInput) (*InvoiceResult, error) {
	lines, fy, err := validateInvoiceHeader(ctx, backend, input.SupplierId, input.Date, input.Lines)
	if err != nil {
		return nil, err
	}

	grn, err := ProcessDirectGrnWorkflow(ctx, backend, logger, DirectGrnInput{
		SupplierId:      input.SupplierId,
		Location:        input.Location,
		DeliveryAddress: input.DeliveryAddress,
		Reference:       input.Reference,
		Date:            input.Date,
		TaxIncluded:     input.TaxIncluded,
		Lines:           input.Lines,
	})
	if err != nil {
		return nil, err
	}

	result, err := createSupplierTransaction(ctx, backend, logger, fy, transHeader{
		transType:     models.TransTypeSupplierInvoice,
		supplierId:    input.SupplierId,
		reference:     input.Reference,
		suppReference: input.SuppReference,
		date:          input.Date,
		dueDate:       input.DueDate,
		amount:        Subtotal(input.Lines),
		taxIncluded:   input.TaxIncluded,
	})
	if err != nil {
		return nil, err
	}
	result.Grn = grn
	result.LineErrors = append(result.LineErrors, grn.LineErrors...)

	for i, line := range lines {
		item := models.SuppInvoiceItem{
			SuppTransNo:   result.Trans.TransNo,
			SuppTransType: models.TransTypeSupplierInvoice,
			GrnItemId:     grn.Items[i].Id,
			PoDetailItem:  grn.Items[i].PoDetailItem,
			StockId:       line.ItemCode,
			Description:   line.Description,
			Quantity:      line.Quantity,
			UnitPrice:     line.Price,
		}
		createInvoiceItem(ctx, backend, logger, result, item)

		// Direct invoices consume the receipt entirely.
		grnItem := grn.Items[i]
		grnItem.QuantityInv = line.Quantity
		if grnItem.Id != 0 {
			if _, err := backend.UpdateGrnItem(ctx, grnItem.Id, grnItem); err != nil {
				config.LogError(logger, "supplierInvoiceWorkflow.go", "ProcessDirectInvoiceWorkflow", "UpdateGrnItem", grnItem, err)
				result.LineErrors = append(result.LineErrors, fmt.Sprintf("grn item %s: %s", line.ItemCode, err.Error()))
			}
		}
		markDetailInvoiced(ctx, backend, logger, result, grn.Order.OrderNo, grn.Items[i].PoDetailItem, line.Quantity)
	}

	return result, nil
}

// ProcessInvoiceFromGrnWorkflow invoices outstanding received
// quantities against existing GRN items. Each line names the GRN item
// it draws down; quantity_inv on the item and qty_invoiced on the order
// detail advance by the invoiced quantity.
func ProcessInvoiceFromGrnWorkflow(ctx context.Context, backend Backend, logger *logrus.Logger, input InvoiceFromGrnInput) (*InvoiceResult, error) {
	lines, fy, err := validateInvoiceHeader(ctx, backend, input.SupplierId, input.Date, input.Lines)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if line.GrnItemId == 0 {
			return nil, fmt.Errorf("line %s does not reference a received item", line.ItemCode)
		}
	}

	result, err := createSupplierTransaction(ctx, backend, logger, fy, transHeader{
		transType:     models.TransTypeSupplierInvoice,
		supplierId:    input.SupplierId,
		reference:     input.Reference,
		suppReference: input.SuppReference,
		date:          input.Date,
		dueDate:       input.DueDate,
		amount:        Subtotal(input.Lines),
		taxIncluded:   input.TaxIncluded,
	})
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		item := models.SuppInvoiceItem{
			SuppTransNo:   result.Trans.TransNo,
			SuppTransType: models.TransTypeSupplierInvoice,
			GrnItemId:     line.GrnItemId,
			PoDetailItem:  line.PoDetailItem,
			StockId:       line.ItemCode,
			Description:   line.Description,
			Quantity:      line.Quantity,
			UnitPrice:     line.Price,
		}
		createInvoiceItem(ctx, backend, logger, result, item)
		advanceGrnItemInvoiced(ctx, backend, logger, result, line, line.Quantity)
		markDetailInvoiced(ctx, backend, logger, result, line.OrderNo, line.PoDetailItem, line.Quantity)
	}

	return result, nil
}

type transHeader struct {
	transType     int
	supplierId    int
	reference     string
	suppReference string
	date          models.Date
	dueDate       models.Date
	amount        decimal.Decimal
	taxIncluded   bool
}

func validateInvoiceHeader(ctx context.Context, backend Backend, supplierId int, date models.Date, lines []LineInput) ([]LineInput, models.FiscalYear, error) {
	if supplierId <= 0 {
		return nil, models.FiscalYear{}, fmt.Errorf("supplier is required")
	}
	included, err := requireLines(lines)
	if err != nil {
		return nil, models.FiscalYear{}, err
	}
	fy, err := CheckTransactionDate(backend.ListFiscalYears(ctx), date)
	if err != nil {
		return nil, models.FiscalYear{}, err
	}
	return included, fy, nil
}

// createSupplierTransaction assigns trans_no (per-type max+1) and the
// reference under a best-effort lock, creates the ledger row and writes
// the audit trail. The ledger create is fatal; the audit trail is not.
func createSupplierTransaction(ctx context.Context, backend Backend, logger *logrus.Logger, fy models.FiscalYear, h transHeader) (*InvoiceResult, error) {
	lock := obtainLock(ctx, fmt.Sprintf("Seq:SuppTrans:%d", h.transType))
	defer releaseLock(ctx, lock)

	all := backend.ListSuppTrans(ctx)
	reference := h.reference
	if reference == "" {
		reference = NextReferenceNumber(suppTransReferences(all, h.transType), fy.Label())
	}

	trans := models.SuppTrans{
		TransNo:       models.NextTransNo(all, h.transType),
		TransType:     h.transType,
		SupplierId:    h.supplierId,
		Reference:     reference,
		SuppReference: h.suppReference,
		TranDate:      h.date,
		DueDate:       h.dueDate,
		OvAmount:      h.amount,
		Rate:          decimal.NewFromInt(1),
		TaxIncluded:   h.taxIncluded,
	}
	created, err := backend.CreateSuppTrans(ctx, trans)
	if err != nil {
		config.LogError(logger, "supplierInvoiceWorkflow.go", "createSupplierTransaction", "CreateSuppTrans", trans, err)
		return nil, fmt.Errorf("supplier transaction could not be created: %s", err.Error())
	}
	if created.TransNo != 0 {
		trans = *created
	}

	audit := models.AuditTrail{
		TransType:  h.transType,
		TransNo:    trans.TransNo,
		User:       auditUser(ctx),
		Stamp:      time.Now(),
		FiscalYear: fy.Id,
		GlDate:     h.date,
	}
	if err := backend.CreateAuditTrail(ctx, audit); err != nil {
		config.LogError(logger, "supplierInvoiceWorkflow.go", "createSupplierTransaction", "CreateAuditTrail", audit, err)
	}

	return &InvoiceResult{Trans: trans, Reference: trans.Reference}, nil
}

func auditUser(ctx context.Context) string {
	if username, ok := utils.GetUsernameFromContext(ctx); ok {
		return username
	}
	return "system"
}

func createInvoiceItem(ctx context.Context, backend Backend, logger *logrus.Logger, result *InvoiceResult, item models.SuppInvoiceItem) {
	created, err := backend.CreateSuppInvoiceItem(ctx, item)
	if err != nil {
		config.LogError(logger, "supplierInvoiceWorkflow.go", "createInvoiceItem", "CreateSuppInvoiceItem", item, err)
		result.LineErrors = append(result.LineErrors, fmt.Sprintf("invoice item %s: %s", item.StockId, err.Error()))
		result.Items = append(result.Items, item)
		return
	}
	if created.Id != 0 {
		item = *created
	}
	result.Items = append(result.Items, item)
}

// advanceGrnItemInvoiced re-reads the GRN item and moves quantity_inv by
// delta. Negative deltas (credit notes) floor at zero.
func advanceGrnItemInvoiced(ctx context.Context, backend Backend, logger *logrus.Logger, result *InvoiceResult, line LineInput, delta decimal.Decimal) {
	item, err := backend.GetGrnItem(ctx, line.GrnItemId)
	if err != nil {
		config.LogError(logger, "supplierInvoiceWorkflow.go", "advanceGrnItemInvoiced", "GetGrnItem", line.GrnItemId, err)
		result.LineErrors = append(result.LineErrors, fmt.Sprintf("grn item %s: %s", line.ItemCode, err.Error()))
		return
	}
	next := item.QuantityInv.Add(delta)
	if next.IsNegative() {
		next = decimal.Zero
	}
	item.QuantityInv = next
	if _, err := backend.UpdateGrnItem(ctx, item.Id, *item); err != nil {
		config.LogError(logger, "supplierInvoiceWorkflow.go", "advanceGrnItemInvoiced", "UpdateGrnItem", item, err)
		result.LineErrors = append(result.LineErrors, fmt.Sprintf("grn item %s: %s", line.ItemCode, err.Error()))
	}
}

// markDetailInvoiced advances qty_invoiced on the purchase order detail.
// Missing or unreadable details are logged and skipped.
func markDetailInvoiced(ctx context.Context, backend Backend, logger *logrus.Logger, result *InvoiceResult, orderNo int, detailItem int, delta decimal.Decimal) {
	if orderNo == 0 || detailItem == 0 {
		return
	}
	details, err := backend.ListPurchaseOrderDetailsByOrder(ctx, orderNo)
	if err != nil {
		config.LogError(logger, "supplierInvoiceWorkflow.go", "markDetailInvoiced", "ListPurchaseOrderDetailsByOrder", orderNo, err)
		result.LineErrors = append(result.LineErrors, fmt.Sprintf("order %d detail %d: %s", orderNo, detailItem, err.Error()))
		return
	}
	for _, d := range details {
		if d.PoDetailItem != detailItem {
			continue
		}
		next := d.QtyInvoiced.Add(delta)
		if next.IsNegative() {
			next = decimal.Zero
		}
		d.QtyInvoiced = next
		if _, err := backend.UpdatePurchaseOrderDetail(ctx, orderNo, detailItem, d); err != nil {
			config.LogError(logger, "supplierInvoiceWorkflow.go", "markDetailInvoiced", "UpdatePurchaseOrderDetail", d, err)
			result.LineErrors = append(result.LineErrors, fmt.Sprintf("order %d detail %d: %s", orderNo, detailItem, err.Error()))
		}
		return
	}
}
