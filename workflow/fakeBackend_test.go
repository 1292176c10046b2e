package workflow

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
)

// fakeBackend is an in-memory stand-in for the ERP API. Tests flip the
// fail* switches to exercise the partial-failure paths.
type fakeBackend struct {
	suppliers    []models.Supplier
	fiscalYears  []models.FiscalYear
	locations    []models.Location
	items        []models.Item
	taxGroups    []models.TaxGroup
	chartMasters []models.ChartMaster
	paymentTypes []models.PaymentType
	bankAccounts []models.BankAccount

	orders    []models.PurchaseOrder
	details   []models.PurchaseOrderDetail
	batches   []models.GrnBatch
	grnItems  []models.GrnItem
	suppTrans []models.SuppTrans
	invItems  []models.SuppInvoiceItem
	audits    []models.AuditTrail
	bankTrans []models.BankTrans

	nextBatchId   int
	nextGrnItemId int

	failListOrders    bool
	failCreateOrder   bool
	failCreateBatch   bool
	failCreateTrans   bool
	failBankTrans     bool
	failAudit         bool
	createBatchNoId   bool
	dropBatchOnCreate bool
	failDeleteDetail  bool
	failDetailAt      map[int]bool // fail Nth CreatePurchaseOrderDetail call (1-based)
	failGrnItemAt     map[int]bool
	failInvItemAt     map[int]bool
	detailCreateCalls int
	grnItemCalls      int
	invItemCalls      int
	deletedDetails    [][2]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		fiscalYears: []models.FiscalYear{
			{Id: 1, FiscalYearFrom: date("2024-01-01"), FiscalYearTo: date("2024-12-31")},
		},
		suppliers:     []models.Supplier{{SupplierId: 7, SuppName: "Golden Lion Trading"}},
		nextBatchId:   100,
		nextGrnItemId: 500,
	}
}

func date(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (f *fakeBackend) ListSuppliers(ctx context.Context) []models.Supplier { return f.suppliers }
func (f *fakeBackend) ListFiscalYears(ctx context.Context) []models.FiscalYear {
	return f.fiscalYears
}
func (f *fakeBackend) ListLocations(ctx context.Context) []models.Location { return f.locations }
func (f *fakeBackend) ListItems(ctx context.Context) []models.Item         { return f.items }
func (f *fakeBackend) ListTaxGroups(ctx context.Context) []models.TaxGroup { return f.taxGroups }
func (f *fakeBackend) ListChartMasters(ctx context.Context) []models.ChartMaster {
	return f.chartMasters
}
func (f *fakeBackend) ListPaymentTypes(ctx context.Context) []models.PaymentType {
	return f.paymentTypes
}
func (f *fakeBackend) ListBankAccounts(ctx context.Context) []models.BankAccount {
	return f.bankAccounts
}

func (f *fakeBackend) ListPurchaseOrders(ctx context.Context) ([]models.PurchaseOrder, error) {
	if f.failListOrders {
		return nil, fmt.Errorf("list orders unavailable")
	}
	return f.orders, nil
}

func (f *fakeBackend) GetPurchaseOrder(ctx context.Context, orderNo int) (*models.PurchaseOrder, error) {
	for i := range f.orders {
		if f.orders[i].OrderNo == orderNo {
			match := f.orders[i]
			return &match, nil
		}
	}
	return nil, utils.ErrorRecordNotFound
}

func (f *fakeBackend) CreatePurchaseOrder(ctx context.Context, payload models.PurchaseOrder) (*models.PurchaseOrder, error) {
	if f.failCreateOrder {
		return nil, fmt.Errorf("order create rejected")
	}
	f.orders = append(f.orders, payload)
	created := payload
	return &created, nil
}

func (f *fakeBackend) UpdatePurchaseOrder(ctx context.Context, orderNo int, payload models.PurchaseOrder) (*models.PurchaseOrder, error) {
	for i := range f.orders {
		if f.orders[i].OrderNo == orderNo {
			f.orders[i] = payload
			updated := payload
			return &updated, nil
		}
	}
	return nil, utils.ErrorRecordNotFound
}

func (f *fakeBackend) ListPurchaseOrderDetailsByOrder(ctx context.Context, orderNo int) ([]models.PurchaseOrderDetail, error) {
	out := []models.PurchaseOrderDetail{}
	for _, d := range f.details {
		if d.OrderNo == orderNo {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreatePurchaseOrderDetail(ctx context.Context, payload models.PurchaseOrderDetail) (*models.PurchaseOrderDetail, error) {
	f.detailCreateCalls++
	if f.failDetailAt[f.detailCreateCalls] {
		return nil, fmt.Errorf("detail create rejected")
	}
	f.details = append(f.details, payload)
	created := payload
	return &created, nil
}

func (f *fakeBackend) UpdatePurchaseOrderDetail(ctx context.Context, orderNo int, detailItem int, payload models.PurchaseOrderDetail) (*models.PurchaseOrderDetail, error) {
	for i := range f.details {
		if f.details[i].OrderNo == orderNo && f.details[i].PoDetailItem == detailItem {
			f.details[i] = payload
			updated := payload
			return &updated, nil
		}
	}
	return nil, utils.ErrorRecordNotFound
}

func (f *fakeBackend) DeletePurchaseOrderDetail(ctx context.Context, orderNo int, detailItem int) error {
	if f.failDeleteDetail {
		return fmt.Errorf("detail delete rejected")
	}
	f.deletedDetails = append(f.deletedDetails, [2]int{orderNo, detailItem})
	for i := range f.details {
		if f.details[i].OrderNo == orderNo && f.details[i].PoDetailItem == detailItem {
			f.details = append(f.details[:i], f.details[i+1:]...)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

func (f *fakeBackend) ListGrnBatches(ctx context.Context) []models.GrnBatch { return f.batches }

func (f *fakeBackend) CreateGrnBatch(ctx context.Context, payload models.GrnBatch) (*models.GrnBatch, error) {
	if f.failCreateBatch {
		return nil, fmt.Errorf("batch create rejected")
	}
	if f.dropBatchOnCreate {
		lost := payload
		lost.Id = 0
		return &lost, nil
	}
	payload.Id = f.nextBatchId
	f.nextBatchId++
	f.batches = append(f.batches, payload)
	created := payload
	if f.createBatchNoId {
		created.Id = 0
	}
	return &created, nil
}

func (f *fakeBackend) GetGrnItem(ctx context.Context, id int) (*models.GrnItem, error) {
	for i := range f.grnItems {
		if f.grnItems[i].Id == id {
			match := f.grnItems[i]
			return &match, nil
		}
	}
	return nil, utils.ErrorRecordNotFound
}

func (f *fakeBackend) CreateGrnItem(ctx context.Context, payload models.GrnItem) (*models.GrnItem, error) {
	f.grnItemCalls++
	if f.failGrnItemAt[f.grnItemCalls] {
		return nil, fmt.Errorf("grn item create rejected")
	}
	payload.Id = f.nextGrnItemId
	f.nextGrnItemId++
	f.grnItems = append(f.grnItems, payload)
	created := payload
	return &created, nil
}

func (f *fakeBackend) UpdateGrnItem(ctx context.Context, id int, payload models.GrnItem) (*models.GrnItem, error) {
	for i := range f.grnItems {
		if f.grnItems[i].Id == id {
			f.grnItems[i] = payload
			updated := payload
			return &updated, nil
		}
	}
	return nil, utils.ErrorRecordNotFound
}

func (f *fakeBackend) ListSuppTrans(ctx context.Context) []models.SuppTrans { return f.suppTrans }

func (f *fakeBackend) CreateSuppTrans(ctx context.Context, payload models.SuppTrans) (*models.SuppTrans, error) {
	if f.failCreateTrans {
		return nil, fmt.Errorf("supp trans create rejected")
	}
	f.suppTrans = append(f.suppTrans, payload)
	created := payload
	return &created, nil
}

func (f *fakeBackend) UpdateSuppTrans(ctx context.Context, transType int, transNo int, payload models.SuppTrans) (*models.SuppTrans, error) {
	for i := range f.suppTrans {
		if f.suppTrans[i].TransType == transType && f.suppTrans[i].TransNo == transNo {
			f.suppTrans[i] = payload
			updated := payload
			return &updated, nil
		}
	}
	return nil, utils.ErrorRecordNotFound
}

func (f *fakeBackend) CreateSuppInvoiceItem(ctx context.Context, payload models.SuppInvoiceItem) (*models.SuppInvoiceItem, error) {
	f.invItemCalls++
	if f.failInvItemAt[f.invItemCalls] {
		return nil, fmt.Errorf("invoice item create rejected")
	}
	payload.Id = len(f.invItems) + 1
	f.invItems = append(f.invItems, payload)
	created := payload
	return &created, nil
}

func (f *fakeBackend) CreateAuditTrail(ctx context.Context, payload models.AuditTrail) error {
	if f.failAudit {
		return fmt.Errorf("audit trail rejected")
	}
	f.audits = append(f.audits, payload)
	return nil
}

func (f *fakeBackend) CreateBankTrans(ctx context.Context, payload models.BankTrans) (*models.BankTrans, error) {
	if f.failBankTrans {
		return nil, fmt.Errorf("bank trans create rejected")
	}
	payload.Id = len(f.bankTrans) + 1
	f.bankTrans = append(f.bankTrans, payload)
	created := payload
	return &created, nil
}
