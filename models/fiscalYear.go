package models

import "strconv"

type FiscalYear struct {
	Id             int  `json:"id"`
	FiscalYearFrom Date `json:"fiscal_year_from"`
	FiscalYearTo   Date `json:"fiscal_year_to"`
	Closed         bool `json:"closed"`
}

// Label is the accounting-period string that scopes reference-number
// sequences, e.g. "2024".
func (fy FiscalYear) Label() string {
	if fy.FiscalYearFrom.IsZero() {
		return ""
	}
	return strconv.Itoa(fy.FiscalYearFrom.Time.Year())
}

func (fy FiscalYear) Contains(d Date) bool {
	return d.Between(fy.FiscalYearFrom, fy.FiscalYearTo)
}

// ResolveFiscalYear finds the year for a transaction date: first the year
// whose [from, to] interval contains the date, then the most recent year
// starting on or before it, then the first available year.
func ResolveFiscalYear(years []FiscalYear, date Date) (FiscalYear, bool) {
	if len(years) == 0 {
		return FiscalYear{}, false
	}
	for _, fy := range years {
		if fy.Contains(date) {
			return fy, true
		}
	}
	var best *FiscalYear
	for i := range years {
		fy := years[i]
		if fy.FiscalYearFrom.After(date) {
			continue
		}
		if best == nil || fy.FiscalYearFrom.After(best.FiscalYearFrom) {
			best = &years[i]
		}
	}
	if best != nil {
		return *best, true
	}
	return years[0], true
}
