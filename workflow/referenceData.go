package workflow

import (
	"context"
	"sync"

	"bitbucket.org/mmdatafocus/purchasing_backend/models"
)

// ReferenceData bundles every lookup the transactional pages need, so
// one round trip primes a whole form.
type ReferenceData struct {
	Suppliers    []models.Supplier     `json:"suppliers"`
	Locations    []models.Location     `json:"locations"`
	Items        []models.Item         `json:"items"`
	ItemsByGroup map[int][]models.Item `json:"itemsByGroup"`
	TaxGroups    []models.TaxGroup     `json:"taxGroups"`
	ChartMasters []models.ChartMaster  `json:"chartMasters"`
	PaymentTypes []models.PaymentType  `json:"paymentTypes"`
	FiscalYears  []models.FiscalYear   `json:"fiscalYears"`
	BankAccounts []models.BankAccount  `json:"bankAccounts"`
}

// LoadReferenceData fans the lookup fetches out concurrently. Each list
// already degrades to empty on failure, so the bundle never errors.
func LoadReferenceData(ctx context.Context, backend Backend) *ReferenceData {
	data := &ReferenceData{}
	var wg sync.WaitGroup

	fetch := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	fetch(func() { data.Suppliers = backend.ListSuppliers(ctx) })
	fetch(func() { data.Locations = backend.ListLocations(ctx) })
	fetch(func() { data.Items = backend.ListItems(ctx) })
	fetch(func() { data.TaxGroups = backend.ListTaxGroups(ctx) })
	fetch(func() { data.ChartMasters = backend.ListChartMasters(ctx) })
	fetch(func() { data.PaymentTypes = backend.ListPaymentTypes(ctx) })
	fetch(func() { data.FiscalYears = backend.ListFiscalYears(ctx) })
	fetch(func() { data.BankAccounts = backend.ListBankAccounts(ctx) })

	wg.Wait()
	data.ItemsByGroup = models.GroupItemsByCategory(data.Items)
	return data
}
