package workflow

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"github.com/sirupsen/logrus"
)

// batchResolveAttempts bounds the fallback re-list when a GRN batch
// create response comes back without an id.
const batchResolveAttempts = 3

type DirectGrnInput struct {
	SupplierId      int         `json:"supplierId"`
	Location        string      `json:"location"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Reference       string      `json:"reference"`
	Date            models.Date `json:"date"`
	TaxIncluded     bool        `json:"taxIncluded"`
	Lines           []LineInput `json:"lines"`
}

// DirectGrnResult is the locally assembled summary handed to the view
// page; it is not re-fetched from the server. Details and Items carry
// the server's records where a create succeeded and client-constructed
// placeholders where it did not.
type DirectGrnResult struct {
	Order      models.PurchaseOrder         `json:"order"`
	Details    []models.PurchaseOrderDetail `json:"details"`
	Batch      models.GrnBatch              `json:"batch"`
	Items      []models.GrnItem             `json:"items"`
	Reference  string                       `json:"reference"`
	LineErrors []string                     `json:"lineErrors"`
}

func (input *DirectGrnInput) validate(ctx context.Context, backend Backend) ([]LineInput, models.FiscalYear, error) {
	if input.SupplierId <= 0 {
		return nil, models.FiscalYear{}, fmt.Errorf("supplier is required")
	}
	lines, err := requireLines(input.Lines)
	if err != nil {
		return nil, models.FiscalYear{}, err
	}
	fy, err := CheckTransactionDate(backend.ListFiscalYears(ctx), input.Date)
	if err != nil {
		return nil, models.FiscalYear{}, err
	}
	return lines, fy, nil
}

// ProcessDirectGrnWorkflow materializes a goods receipt with no prior
// purchase order: order header, order details, GRN batch and GRN items
// are created in sequence. Header-level failures abort; line-level
// failures are logged and skipped so the rest of the receipt lands.
func ProcessDirectGrnWorkflow(ctx context.Context, backend Backend, logger *logrus.Logger, input DirectGrnInput) (*DirectGrnResult, error) {
	lines, fy, err := input.validate(ctx, backend)
	if err != nil {
		return nil, err
	}

	reference := input.Reference
	if reference == "" {
		reference = NextReferenceNumber(grnBatchReferences(backend.ListGrnBatches(ctx)), fy.Label())
	}

	lock := obtainLock(ctx, "Seq:PurchOrder")
	orders, err := backend.ListPurchaseOrders(ctx)
	if err != nil {
		releaseLock(ctx, lock)
		config.LogError(logger, "directGrnWorkflow.go", "ProcessDirectGrnWorkflow", "ListPurchaseOrders", nil, err)
		return nil, fmt.Errorf("could not determine next order number: %s", err.Error())
	}
	orderNo := models.NextOrderNo(orders)

	order := models.PurchaseOrder{
		OrderNo:           orderNo,
		SupplierId:        input.SupplierId,
		OrdDate:           input.Date,
		Reference:         reference,
		IntoStockLocation: input.Location,
		DeliveryAddress:   input.DeliveryAddress,
		Total:             Subtotal(input.Lines),
		TaxIncluded:       input.TaxIncluded,
	}
	created, err := backend.CreatePurchaseOrder(ctx, order)
	releaseLock(ctx, lock)
	if err != nil {
		config.LogError(logger, "directGrnWorkflow.go", "ProcessDirectGrnWorkflow", "CreatePurchaseOrder", order, err)
		return nil, fmt.Errorf("purchase order could not be created: %s", err.Error())
	}
	if created.OrderNo != 0 {
		order = *created
	}

	result := &DirectGrnResult{Order: order, Reference: reference}

	// Per-line detail creation is non-fatal: a failed line is logged
	// and the client-constructed payload stands in so later steps keep
	// their detail references.
	details := createOrderDetails(ctx, backend, logger, order.OrderNo, input.Date, lines, result)

	batch, err := createAndResolveGrnBatch(ctx, backend, logger, models.GrnBatch{
		SupplierId:   input.SupplierId,
		PurchOrderNo: order.OrderNo,
		Reference:    reference,
		DeliveryDate: input.Date,
		LocCode:      input.Location,
	})
	if err != nil {
		return nil, err
	}
	result.Batch = *batch

	for i, line := range lines {
		item := models.GrnItem{
			GrnBatchId:   batch.Id,
			PoDetailItem: details[i].PoDetailItem,
			ItemCode:     line.ItemCode,
			Description:  line.Description,
			QtyRecd:      line.Quantity,
		}
		createdItem, err := backend.CreateGrnItem(ctx, item)
		if err != nil {
			config.LogError(logger, "directGrnWorkflow.go", "ProcessDirectGrnWorkflow", "CreateGrnItem", item, err)
			result.LineErrors = append(result.LineErrors, fmt.Sprintf("grn item %s: %s", line.ItemCode, err.Error()))
			result.Items = append(result.Items, item)
			continue
		}
		if createdItem.Id != 0 {
			item = *createdItem
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

// createOrderDetails creates one purchase order detail per line, using
// the lowest unused po_detail_item among the order's existing details
// as the starting sequence.
func createOrderDetails(ctx context.Context, backend Backend, logger *logrus.Logger, orderNo int, date models.Date, lines []LineInput, result *DirectGrnResult) []models.PurchaseOrderDetail {
	existing, err := backend.ListPurchaseOrderDetailsByOrder(ctx, orderNo)
	if err != nil {
		config.LogError(logger, "directGrnWorkflow.go", "createOrderDetails", "ListPurchaseOrderDetailsByOrder", orderNo, err)
		existing = nil
	}

	details := make([]models.PurchaseOrderDetail, 0, len(lines))
	for _, line := range lines {
		detail := models.PurchaseOrderDetail{
			OrderNo:      orderNo,
			PoDetailItem: models.NextDetailItemNo(existing),
			ItemCode:     line.ItemCode,
			Description:  line.Description,
			DeliveryDate: date,
			QtyOrdered:   line.Quantity,
			QtyReceived:  line.Quantity,
			UnitPrice:    line.Price,
			ActPrice:     line.Price,
		}
		created, err := backend.CreatePurchaseOrderDetail(ctx, detail)
		if err != nil {
			config.LogError(logger, "directGrnWorkflow.go", "createOrderDetails", "CreatePurchaseOrderDetail", detail, err)
			result.LineErrors = append(result.LineErrors, fmt.Sprintf("order detail %s: %s", line.ItemCode, err.Error()))
		} else if created.PoDetailItem != 0 {
			detail = *created
		}
		existing = append(existing, detail)
		details = append(details, detail)
	}
	result.Details = details
	return details
}

// createAndResolveGrnBatch creates the batch header and, when the
// response omits the id, re-lists batches a bounded number of times to
// find the most recent one matching (purch_order_no, supplier_id,
// delivery_date). Unresolvable batches are a hard failure.
func createAndResolveGrnBatch(ctx context.Context, backend Backend, logger *logrus.Logger, payload models.GrnBatch) (*models.GrnBatch, error) {
	lock := obtainLock(ctx, "Seq:GrnBatch")
	defer releaseLock(ctx, lock)

	created, err := backend.CreateGrnBatch(ctx, payload)
	if err != nil {
		config.LogError(logger, "directGrnWorkflow.go", "createAndResolveGrnBatch", "CreateGrnBatch", payload, err)
		return nil, fmt.Errorf("grn batch could not be created: %s", err.Error())
	}
	if created.Id != 0 {
		return created, nil
	}

	for attempt := 0; attempt < batchResolveAttempts; attempt++ {
		batches := backend.ListGrnBatches(ctx)
		for i := len(batches) - 1; i >= 0; i-- {
			if batches[i].Matches(payload.PurchOrderNo, payload.SupplierId, payload.DeliveryDate) {
				resolved := batches[i]
				return &resolved, nil
			}
		}
	}
	config.LogError(logger, "directGrnWorkflow.go", "createAndResolveGrnBatch", "ResolveBatchId", payload, ErrBatchNotResolved)
	return nil, ErrBatchNotResolved
}
