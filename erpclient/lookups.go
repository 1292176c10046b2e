package erpclient

import (
	"context"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
)

// Lookup endpoints all share one convention: failures are logged and an
// empty list is returned, so a broken reference feed degrades the form
// instead of blocking it.

func swallowList[T any](c *Client, ctx context.Context, path string, funcName string) []T {
	if cached, err := utils.RetrieveRedisList[T](); err == nil && cached != nil {
		return cached
	}

	var records []T
	if err := c.get(ctx, path, &records); err != nil {
		config.LogError(c.logger, "lookups.go", funcName, "GET "+path, nil, err)
		return []T{}
	}
	if records == nil {
		records = []T{}
	}
	_ = utils.StoreRedisList[T](records)
	return records
}

func (c *Client) ListChartMasters(ctx context.Context) []models.ChartMaster {
	return swallowList[models.ChartMaster](c, ctx, "/api/chart-masters", "ListChartMasters")
}

func (c *Client) ListPaymentTypes(ctx context.Context) []models.PaymentType {
	return swallowList[models.PaymentType](c, ctx, "/api/payment-types", "ListPaymentTypes")
}

func (c *Client) ListLocations(ctx context.Context) []models.Location {
	return swallowList[models.Location](c, ctx, "/api/locations", "ListLocations")
}

func (c *Client) ListItems(ctx context.Context) []models.Item {
	return swallowList[models.Item](c, ctx, "/api/items", "ListItems")
}

func (c *Client) ListTaxGroups(ctx context.Context) []models.TaxGroup {
	return swallowList[models.TaxGroup](c, ctx, "/api/tax-groups", "ListTaxGroups")
}

func (c *Client) ListFiscalYears(ctx context.Context) []models.FiscalYear {
	return swallowList[models.FiscalYear](c, ctx, "/api/fiscal-years", "ListFiscalYears")
}

func (c *Client) ListBankAccounts(ctx context.Context) []models.BankAccount {
	return swallowList[models.BankAccount](c, ctx, "/api/bank-accounts", "ListBankAccounts")
}
