package workflow

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"github.com/sirupsen/logrus"
)

type PurchaseOrderUpdateInput struct {
	SupplierId      int         `json:"supplierId"`
	Location        string      `json:"location"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Reference       string      `json:"reference"`
	Date            models.Date `json:"date"`
	TaxIncluded     bool        `json:"taxIncluded"`
	Lines           []LineInput `json:"lines"`
}

type PurchaseOrderUpdateResult struct {
	Order      models.PurchaseOrder         `json:"order"`
	Details    []models.PurchaseOrderDetail `json:"details"`
	LineErrors []string                     `json:"lineErrors"`
}

// ProcessPurchaseOrderUpdateWorkflow rewrites an order in place: the
// header is updated, rows carrying a detail number are updated, rows
// without one are created, and previously stored rows missing from the
// submission are deleted in one batched pass at the end.
func ProcessPurchaseOrderUpdateWorkflow(ctx context.Context, backend Backend, logger *logrus.Logger, orderNo int, input PurchaseOrderUpdateInput) (*PurchaseOrderUpdateResult, error) {
	lines, _, err := validateInvoiceHeader(ctx, backend, input.SupplierId, input.Date, input.Lines)
	if err != nil {
		return nil, err
	}

	order, err := backend.GetPurchaseOrder(ctx, orderNo)
	if err != nil {
		config.LogError(logger, "purchaseOrderUpdateWorkflow.go", "ProcessPurchaseOrderUpdateWorkflow", "GetPurchaseOrder", orderNo, err)
		return nil, fmt.Errorf("purchase order %d could not be loaded: %s", orderNo, err.Error())
	}

	order.SupplierId = input.SupplierId
	order.OrdDate = input.Date
	order.IntoStockLocation = input.Location
	order.DeliveryAddress = input.DeliveryAddress
	order.TaxIncluded = input.TaxIncluded
	order.Total = Subtotal(input.Lines)
	if input.Reference != "" {
		order.Reference = input.Reference
	}
	updated, err := backend.UpdatePurchaseOrder(ctx, orderNo, *order)
	if err != nil {
		config.LogError(logger, "purchaseOrderUpdateWorkflow.go", "ProcessPurchaseOrderUpdateWorkflow", "UpdatePurchaseOrder", order, err)
		return nil, fmt.Errorf("purchase order %d could not be updated: %s", orderNo, err.Error())
	}
	if updated.OrderNo != 0 {
		order = updated
	}
	result := &PurchaseOrderUpdateResult{Order: *order}

	existing, err := backend.ListPurchaseOrderDetailsByOrder(ctx, orderNo)
	if err != nil {
		config.LogError(logger, "purchaseOrderUpdateWorkflow.go", "ProcessPurchaseOrderUpdateWorkflow", "ListPurchaseOrderDetailsByOrder", orderNo, err)
		return nil, fmt.Errorf("details for order %d could not be loaded: %s", orderNo, err.Error())
	}
	byItem := make(map[int]models.PurchaseOrderDetail, len(existing))
	for _, d := range existing {
		byItem[d.PoDetailItem] = d
	}

	kept := make(map[int]bool, len(lines))
	assigned := append([]models.PurchaseOrderDetail(nil), existing...)
	for _, line := range lines {
		if prev, ok := byItem[line.PoDetailItem]; ok {
			prev.ItemCode = line.ItemCode
			prev.Description = line.Description
			prev.QtyOrdered = line.Quantity
			prev.UnitPrice = line.Price
			prev.ActPrice = line.Price
			prev.DeliveryDate = input.Date
			if _, err := backend.UpdatePurchaseOrderDetail(ctx, orderNo, prev.PoDetailItem, prev); err != nil {
				config.LogError(logger, "purchaseOrderUpdateWorkflow.go", "ProcessPurchaseOrderUpdateWorkflow", "UpdatePurchaseOrderDetail", prev, err)
				result.LineErrors = append(result.LineErrors, fmt.Sprintf("order detail %d: %s", prev.PoDetailItem, err.Error()))
			}
			kept[prev.PoDetailItem] = true
			result.Details = append(result.Details, prev)
			continue
		}

		detail := models.PurchaseOrderDetail{
			OrderNo:      orderNo,
			PoDetailItem: models.NextDetailItemNo(assigned),
			ItemCode:     line.ItemCode,
			Description:  line.Description,
			DeliveryDate: input.Date,
			QtyOrdered:   line.Quantity,
			UnitPrice:    line.Price,
			ActPrice:     line.Price,
		}
		created, err := backend.CreatePurchaseOrderDetail(ctx, detail)
		if err != nil {
			config.LogError(logger, "purchaseOrderUpdateWorkflow.go", "ProcessPurchaseOrderUpdateWorkflow", "CreatePurchaseOrderDetail", detail, err)
			result.LineErrors = append(result.LineErrors, fmt.Sprintf("order detail %s: %s", line.ItemCode, err.Error()))
		} else if created.PoDetailItem != 0 {
			detail = *created
		}
		assigned = append(assigned, detail)
		kept[detail.PoDetailItem] = true
		result.Details = append(result.Details, detail)
	}

	// Removed rows go last, in one batched pass, so a delete failure
	// never blocks the updates and creates above.
	for _, d := range existing {
		if kept[d.PoDetailItem] {
			continue
		}
		if err := backend.DeletePurchaseOrderDetail(ctx, orderNo, d.PoDetailItem); err != nil {
			config.LogError(logger, "purchaseOrderUpdateWorkflow.go", "ProcessPurchaseOrderUpdateWorkflow", "DeletePurchaseOrderDetail", d, err)
			result.LineErrors = append(result.LineErrors, fmt.Sprintf("order detail %d: %s", d.PoDetailItem, err.Error()))
		}
	}

	return result, nil
}
