package models

// PageSizeAll disables slicing: the whole result set is one page.
const PageSizeAll = -1

type PageRequest struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"pageSize" form:"pageSize"`
}

func (p PageRequest) normalized() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = 25
	}
	// pageSize binds straight from the query string; any negative value
	// means "all", not a window.
	if p.PageSize < 0 {
		p.PageSize = PageSizeAll
	}
	return p
}

// Paginate returns the requested offset window of rows. A page size of
// PageSizeAll returns rows unsliced.
func Paginate[T any](rows []T, req PageRequest) []T {
	req = req.normalized()
	if req.PageSize == PageSizeAll {
		return rows
	}
	start := (req.Page - 1) * req.PageSize
	if start >= len(rows) {
		return []T{}
	}
	end := start + req.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
