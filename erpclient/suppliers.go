package erpclient

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
)

const suppliersPath = "/api/suppliers"

// ListSuppliers swallows failures: the maintenance and lookup screens
// branch on an empty list, not on an error.
func (c *Client) ListSuppliers(ctx context.Context) []models.Supplier {
	if cached, err := utils.RetrieveRedisList[models.Supplier](); err == nil && cached != nil {
		return cached
	}

	var suppliers []models.Supplier
	if err := c.get(ctx, suppliersPath, &suppliers); err != nil {
		config.LogError(c.logger, "suppliers.go", "ListSuppliers", "GET "+suppliersPath, nil, err)
		return []models.Supplier{}
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	_ = utils.StoreRedisList[models.Supplier](suppliers)
	return suppliers
}

func (c *Client) GetSupplier(ctx context.Context, id int) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := c.get(ctx, fmt.Sprintf("%s/%d", suppliersPath, id), &supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (c *Client) CreateSupplier(ctx context.Context, payload models.Supplier) (*models.Supplier, error) {
	var created models.Supplier
	if err := c.post(ctx, suppliersPath, payload, &created); err != nil {
		return nil, err
	}
	_ = utils.RemoveRedisList[models.Supplier]()
	return &created, nil
}

func (c *Client) UpdateSupplier(ctx context.Context, id int, payload models.Supplier) (*models.Supplier, error) {
	var updated models.Supplier
	if err := c.put(ctx, fmt.Sprintf("%s/%d", suppliersPath, id), payload, &updated); err != nil {
		return nil, err
	}
	_ = utils.RemoveRedisList[models.Supplier]()
	return &updated, nil
}

func (c *Client) DeleteSupplier(ctx context.Context, id int) error {
	if err := c.delete(ctx, fmt.Sprintf("%s/%d", suppliersPath, id)); err != nil {
		return err
	}
	_ = utils.RemoveRedisList[models.Supplier]()
	return nil
}
