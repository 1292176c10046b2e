package workflow

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"github.com/bsm/redislock"
)

// Backend is the slice of the ERP client the workflows sequence against.
// Taking an interface keeps the workflows testable without a server.
type Backend interface {
	ListSuppliers(ctx context.Context) []models.Supplier
	ListFiscalYears(ctx context.Context) []models.FiscalYear
	ListLocations(ctx context.Context) []models.Location
	ListItems(ctx context.Context) []models.Item
	ListTaxGroups(ctx context.Context) []models.TaxGroup
	ListChartMasters(ctx context.Context) []models.ChartMaster
	ListPaymentTypes(ctx context.Context) []models.PaymentType
	ListBankAccounts(ctx context.Context) []models.BankAccount

	ListPurchaseOrders(ctx context.Context) ([]models.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, orderNo int) (*models.PurchaseOrder, error)
	CreatePurchaseOrder(ctx context.Context, payload models.PurchaseOrder) (*models.PurchaseOrder, error)
	UpdatePurchaseOrder(ctx context.Context, orderNo int, payload models.PurchaseOrder) (*models.PurchaseOrder, error)
	ListPurchaseOrderDetailsByOrder(ctx context.Context, orderNo int) ([]models.PurchaseOrderDetail, error)
	CreatePurchaseOrderDetail(ctx context.Context, payload models.PurchaseOrderDetail) (*models.PurchaseOrderDetail, error)
	UpdatePurchaseOrderDetail(ctx context.Context, orderNo int, detailItem int, payload models.PurchaseOrderDetail) (*models.PurchaseOrderDetail, error)
	DeletePurchaseOrderDetail(ctx context.Context, orderNo int, detailItem int) error

	ListGrnBatches(ctx context.Context) []models.GrnBatch
	CreateGrnBatch(ctx context.Context, payload models.GrnBatch) (*models.GrnBatch, error)
	GetGrnItem(ctx context.Context, id int) (*models.GrnItem, error)
	CreateGrnItem(ctx context.Context, payload models.GrnItem) (*models.GrnItem, error)
	UpdateGrnItem(ctx context.Context, id int, payload models.GrnItem) (*models.GrnItem, error)

	ListSuppTrans(ctx context.Context) []models.SuppTrans
	CreateSuppTrans(ctx context.Context, payload models.SuppTrans) (*models.SuppTrans, error)
	UpdateSuppTrans(ctx context.Context, transType int, transNo int, payload models.SuppTrans) (*models.SuppTrans, error)
	CreateSuppInvoiceItem(ctx context.Context, payload models.SuppInvoiceItem) (*models.SuppInvoiceItem, error)
	CreateAuditTrail(ctx context.Context, payload models.AuditTrail) error
	CreateBankTrans(ctx context.Context, payload models.BankTrans) (*models.BankTrans, error)
}

var (
	// ErrBatchNotResolved is the hard failure when a GRN batch create
	// returns no id and the fallback lookup cannot find the batch.
	ErrBatchNotResolved = errors.New("grn batch could not be resolved after create")

	// ErrDateOutsideFiscalYear blocks submission before any create call.
	ErrDateOutsideFiscalYear = errors.New("transaction date is outside the open fiscal year")
)

// obtainLock serializes a sequence-scan window within this service.
// Redis lock is a best-effort optimization; other API clients can still
// race the max+1 scans, which is inherent to the upstream contract.
func obtainLock(ctx context.Context, key string) *redislock.Lock {
	locker := config.GetRedisLock()
	if locker == nil {
		return nil
	}
	lock, err := locker.Obtain(ctx, key, 30*time.Second, nil)
	if err != nil {
		if err != redislock.ErrNotObtained {
			config.LogError(config.GetLogger(), "deps.go", "obtainLock", key, nil, err)
		}
		return nil
	}
	return lock
}

func releaseLock(ctx context.Context, lock *redislock.Lock) {
	if lock != nil {
		_ = lock.Release(ctx)
	}
}
