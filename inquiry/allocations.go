package inquiry

import (
	"sort"

	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"github.com/shopspring/decimal"
)

// AllocationRow is one supplier ledger entry as the allocation inquiry
// shows it, with the derived open balance.
type AllocationRow struct {
	models.SuppTrans
	SuppName       string          `json:"supp_name"`
	LeftToAllocate decimal.Decimal `json:"left_to_allocate"`
}

// Allocations builds the supplier allocation inquiry. Backend joins
// return duplicate ledger rows for some transaction types, so rows are
// deduplicated on the composite identity before filtering; first
// occurrence wins. Supplier names come from the caller, which resolves
// them through the request's batch loaders. Newest transactions sort
// first.
func Allocations(all []models.SuppTrans, nameById map[int]string, f Filter) []AllocationRow {
	seen := make(map[string]bool, len(all))
	rows := make([]AllocationRow, 0, len(all))
	for _, t := range all {
		key := t.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true

		if f.SupplierId != 0 && t.SupplierId != f.SupplierId {
			continue
		}
		if f.TransType != 0 && t.TransType != f.TransType {
			continue
		}
		if !textMatches(t.Reference, f.Reference) {
			continue
		}
		if !dateInRange(t.TranDate, f.From, f.To) {
			continue
		}
		left := t.LeftToAllocate()
		if f.OpenOnly && !left.IsPositive() {
			continue
		}
		rows = append(rows, AllocationRow{
			SuppTrans:      t,
			SuppName:       nameById[t.SupplierId],
			LeftToAllocate: left,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TranDate.Equal(rows[j].TranDate.Time) {
			return rows[i].TranDate.After(rows[j].TranDate)
		}
		return rows[i].TransNo > rows[j].TransNo
	})
	return models.Paginate(rows, f.PageRequest)
}
