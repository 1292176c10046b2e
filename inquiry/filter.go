package inquiry

import (
	"strings"

	"bitbucket.org/mmdatafocus/purchasing_backend/models"
)

// Filter is the common query surface of the inquiry pages. Zero values
// mean "no constraint"; text matches are case-insensitive containment.
type Filter struct {
	SupplierId int         `json:"supplierId" form:"supplierId"`
	Reference  string      `json:"reference" form:"reference"`
	ItemCode   string      `json:"itemCode" form:"itemCode"`
	TransType  int         `json:"transType" form:"transType"`
	From       models.Date `json:"from" form:"from"`
	To         models.Date `json:"to" form:"to"`
	OpenOnly   bool        `json:"openOnly" form:"openOnly"`
	models.PageRequest
}

func textMatches(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// dateInRange treats a zero bound as unbounded on that side.
func dateInRange(d models.Date, from models.Date, to models.Date) bool {
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}
