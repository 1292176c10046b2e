package erpclient

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
)

const (
	suppTransPath       = "/api/supp-trans"
	suppInvoiceItemPath = "/api/supp-invoice-items"
	auditTrailPath      = "/api/audit-trail"
	bankTransPath       = "/api/bank-trans"
)

// ListSuppTrans swallows failures; allocation inquiry renders an empty
// table rather than an error banner when the backend misbehaves.
func (c *Client) ListSuppTrans(ctx context.Context) []models.SuppTrans {
	if cached, err := utils.RetrieveRedisList[models.SuppTrans](); err == nil && cached != nil {
		return cached
	}

	var trans []models.SuppTrans
	if err := c.get(ctx, suppTransPath, &trans); err != nil {
		config.LogError(c.logger, "suppTrans.go", "ListSuppTrans", "GET "+suppTransPath, nil, err)
		return []models.SuppTrans{}
	}
	if trans == nil {
		trans = []models.SuppTrans{}
	}
	_ = utils.StoreRedisList[models.SuppTrans](trans)
	return trans
}

func (c *Client) CreateSuppTrans(ctx context.Context, payload models.SuppTrans) (*models.SuppTrans, error) {
	var created models.SuppTrans
	if err := c.post(ctx, suppTransPath, payload, &created); err != nil {
		return nil, err
	}
	_ = utils.RemoveRedisList[models.SuppTrans]()
	return &created, nil
}

// UpdateSuppTrans addresses a ledger row by its per-type composite key.
func (c *Client) UpdateSuppTrans(ctx context.Context, transType int, transNo int, payload models.SuppTrans) (*models.SuppTrans, error) {
	var updated models.SuppTrans
	path := fmt.Sprintf("%s/%d/%d", suppTransPath, transType, transNo)
	if err := c.put(ctx, path, payload, &updated); err != nil {
		return nil, err
	}
	_ = utils.RemoveRedisList[models.SuppTrans]()
	return &updated, nil
}

func (c *Client) CreateSuppInvoiceItem(ctx context.Context, payload models.SuppInvoiceItem) (*models.SuppInvoiceItem, error) {
	var created models.SuppInvoiceItem
	if err := c.post(ctx, suppInvoiceItemPath, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateAuditTrail is fire-and-forget traceability; the record is never
// read back by this service.
func (c *Client) CreateAuditTrail(ctx context.Context, payload models.AuditTrail) error {
	return c.post(ctx, auditTrailPath, payload, nil)
}

func (c *Client) CreateBankTrans(ctx context.Context, payload models.BankTrans) (*models.BankTrans, error) {
	var created models.BankTrans
	if err := c.post(ctx, bankTransPath, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
