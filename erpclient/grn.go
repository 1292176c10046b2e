package erpclient

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
)

const (
	grnBatchPath = "/api/grn-batch"
	grnItemsPath = "/api/grn-items"
)

// ListGrnBatches swallows failures. The Direct GRN fallback lookup
// treats an empty list and a failed list the same way: batch unresolved.
func (c *Client) ListGrnBatches(ctx context.Context) []models.GrnBatch {
	if cached, err := utils.RetrieveRedisList[models.GrnBatch](); err == nil && cached != nil {
		return cached
	}

	var batches []models.GrnBatch
	if err := c.get(ctx, grnBatchPath, &batches); err != nil {
		config.LogError(c.logger, "grn.go", "ListGrnBatches", "GET "+grnBatchPath, nil, err)
		return []models.GrnBatch{}
	}
	if batches == nil {
		batches = []models.GrnBatch{}
	}
	_ = utils.StoreRedisList[models.GrnBatch](batches)
	return batches
}

func (c *Client) CreateGrnBatch(ctx context.Context, payload models.GrnBatch) (*models.GrnBatch, error) {
	var created models.GrnBatch
	if err := c.post(ctx, grnBatchPath, payload, &created); err != nil {
		return nil, err
	}
	_ = utils.RemoveRedisList[models.GrnBatch]()
	invalidateOrderCaches()
	return &created, nil
}

func (c *Client) ListGrnItems(ctx context.Context) ([]models.GrnItem, error) {
	var items []models.GrnItem
	if err := c.get(ctx, grnItemsPath, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.GrnItem{}
	}
	return items, nil
}

func (c *Client) GetGrnItem(ctx context.Context, id int) (*models.GrnItem, error) {
	var item models.GrnItem
	if err := c.get(ctx, fmt.Sprintf("%s/%d", grnItemsPath, id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) CreateGrnItem(ctx context.Context, payload models.GrnItem) (*models.GrnItem, error) {
	var created models.GrnItem
	if err := c.post(ctx, grnItemsPath, payload, &created); err != nil {
		return nil, err
	}
	invalidateOrderCaches()
	return &created, nil
}

func (c *Client) UpdateGrnItem(ctx context.Context, id int, payload models.GrnItem) (*models.GrnItem, error) {
	var updated models.GrnItem
	if err := c.put(ctx, fmt.Sprintf("%s/%d", grnItemsPath, id), payload, &updated); err != nil {
		return nil, err
	}
	invalidateOrderCaches()
	return &updated, nil
}
