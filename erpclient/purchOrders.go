package erpclient

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
)

const (
	purchOrdersPath      = "/api/purch-orders"
	purchOrderDetailPath = "/api/purch-order-details"
)

// invalidateOrderCaches drops both order-related lists. Any mutation of
// an order, detail or GRN can change either, and the next-sequence scans
// must not see stale data from this instance's own writes.
func invalidateOrderCaches() {
	_ = utils.RemoveRedisList[models.PurchaseOrder]()
	_ = utils.RemoveRedisList[models.PurchaseOrderDetail]()
}

// ListPurchaseOrders propagates failures: the order-number scan cannot
// tell "no orders yet" from "list failed" on its own.
func (c *Client) ListPurchaseOrders(ctx context.Context) ([]models.PurchaseOrder, error) {
	if cached, err := utils.RetrieveRedisList[models.PurchaseOrder](); err == nil && cached != nil {
		return cached, nil
	}

	var orders []models.PurchaseOrder
	if err := c.get(ctx, purchOrdersPath, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.PurchaseOrder{}
	}
	_ = utils.StoreRedisList[models.PurchaseOrder](orders)
	return orders, nil
}

func (c *Client) GetPurchaseOrder(ctx context.Context, orderNo int) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	if err := c.get(ctx, fmt.Sprintf("%s/%d", purchOrdersPath, orderNo), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CreatePurchaseOrder(ctx context.Context, payload models.PurchaseOrder) (*models.PurchaseOrder, error) {
	var created models.PurchaseOrder
	if err := c.post(ctx, purchOrdersPath, payload, &created); err != nil {
		return nil, err
	}
	invalidateOrderCaches()
	return &created, nil
}

func (c *Client) UpdatePurchaseOrder(ctx context.Context, orderNo int, payload models.PurchaseOrder) (*models.PurchaseOrder, error) {
	var updated models.PurchaseOrder
	if err := c.put(ctx, fmt.Sprintf("%s/%d", purchOrdersPath, orderNo), payload, &updated); err != nil {
		return nil, err
	}
	invalidateOrderCaches()
	return &updated, nil
}

func (c *Client) DeletePurchaseOrder(ctx context.Context, orderNo int) error {
	if err := c.delete(ctx, fmt.Sprintf("%s/%d", purchOrdersPath, orderNo)); err != nil {
		return err
	}
	invalidateOrderCaches()
	return nil
}

func (c *Client) ListPurchaseOrderDetails(ctx context.Context) ([]models.PurchaseOrderDetail, error) {
	if cached, err := utils.RetrieveRedisList[models.PurchaseOrderDetail](); err == nil && cached != nil {
		return cached, nil
	}

	var details []models.PurchaseOrderDetail
	if err := c.get(ctx, purchOrderDetailPath, &details); err != nil {
		return nil, err
	}
	if details == nil {
		details = []models.PurchaseOrderDetail{}
	}
	_ = utils.StoreRedisList[models.PurchaseOrderDetail](details)
	return details, nil
}

// ListPurchaseOrderDetailsByOrder filters the full detail list
// client-side; the backend exposes no per-order query.
func (c *Client) ListPurchaseOrderDetailsByOrder(ctx context.Context, orderNo int) ([]models.PurchaseOrderDetail, error) {
	all, err := c.ListPurchaseOrderDetails(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]models.PurchaseOrderDetail, 0)
	for _, d := range all {
		if d.OrderNo == orderNo {
			details = append(details, d)
		}
	}
	return details, nil
}

func (c *Client) CreatePurchaseOrderDetail(ctx context.Context, payload models.PurchaseOrderDetail) (*models.PurchaseOrderDetail, error) {
	var created models.PurchaseOrderDetail
	if err := c.post(ctx, purchOrderDetailPath, payload, &created); err != nil {
		return nil, err
	}
	invalidateOrderCaches()
	return &created, nil
}

func (c *Client) UpdatePurchaseOrderDetail(ctx context.Context, orderNo int, detailItem int, payload models.PurchaseOrderDetail) (*models.PurchaseOrderDetail, error) {
	var updated models.PurchaseOrderDetail
	path := fmt.Sprintf("%s/%d/%d", purchOrderDetailPath, orderNo, detailItem)
	if err := c.put(ctx, path, payload, &updated); err != nil {
		return nil, err
	}
	invalidateOrderCaches()
	return &updated, nil
}

func (c *Client) DeletePurchaseOrderDetail(ctx context.Context, orderNo int, detailItem int) error {
	if err := c.delete(ctx, fmt.Sprintf("%s/%d/%d", purchOrderDetailPath, orderNo, detailItem)); err != nil {
		return err
	}
	invalidateOrderCaches()
	return nil
}
