package workflow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"bitbucket.org/mmdatafocus/purchasing_backend/models"
)

var refPattern = regexp.MustCompile(`^(\d+)/(.+)$`)

// NextReferenceNumber scans existing references of the form
// "<sequence>/<fiscalYearLabel>", takes the max leading integer for the
// given label, adds one and zero-pads to three digits. No matching
// reference yields "001/<label>".
func NextReferenceNumber(existing []string, label string) string {
	max := 0
	for _, ref := range existing {
		m := refPattern.FindStringSubmatch(strings.TrimSpace(ref))
		if m == nil || m[2] != label {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%03d/%s", max+1, label)
}

// CheckTransactionDate resolves the fiscal year for a date and rejects
// dates that fall outside an open year. Must be called before any
// create call is issued.
func CheckTransactionDate(years []models.FiscalYear, date models.Date) (models.FiscalYear, error) {
	fy, ok := models.ResolveFiscalYear(years, date)
	if !ok {
		return models.FiscalYear{}, fmt.Errorf("no fiscal years are configured")
	}
	if fy.Closed || !fy.Contains(date) {
		return fy, ErrDateOutsideFiscalYear
	}
	return fy, nil
}

func suppTransReferences(all []models.SuppTrans, transType int) []string {
	refs := make([]string, 0, len(all))
	for _, t := range all {
		if t.TransType == transType {
			refs = append(refs, t.Reference)
		}
	}
	return refs
}

func grnBatchReferences(batches []models.GrnBatch) []string {
	refs := make([]string, 0, len(batches))
	for _, b := range batches {
		refs = append(refs, b.Reference)
	}
	return refs
}
