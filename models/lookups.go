package models

// Reference data fetched once per workflow. These records are read-only
// from this service's point of view.

type ChartMaster struct {
	AccountCode string `json:"account_code"`
	AccountName string `json:"account_name"`
	AccountType int    `json:"account_type"`
	Inactive    bool   `json:"inactive"`
}

type PaymentType struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	DaysDue   int    `json:"days_before_due"`
	DayNumber int    `json:"day_in_following_month"`
}

type Location struct {
	LocCode         string `json:"loc_code"`
	LocationName    string `json:"location_name"`
	DeliveryAddress string `json:"delivery_address"`
	Inactive        bool   `json:"inactive"`
}

type Item struct {
	StockId     string `json:"stock_id"`
	Description string `json:"description"`
	CategoryId  int    `json:"category_id"`
	TaxTypeId   int    `json:"tax_type_id"`
	Units       string `json:"units"`
	Inactive    bool   `json:"inactive"`
}

type TaxGroup struct {
	Id          int    `json:"id"`
	Description string `json:"description"`
	TaxShipping bool   `json:"tax_shipping"`
	Inactive    bool   `json:"inactive"`
}

type BankAccount struct {
	AccountCode string `json:"account_code"`
	BankName    string `json:"bank_name"`
	AccountName string `json:"bank_account_name"`
	AccountNo   string `json:"bank_account_number"`
	CurrCode    string `json:"bank_curr_code"`
	Inactive    bool   `json:"inactive"`
}

// GroupItemsByCategory reduces a flat item list into a mapping keyed by
// category id, the shape the lookup dropdowns consume.
func GroupItemsByCategory(items []Item) map[int][]Item {
	grouped := make(map[int][]Item)
	for _, item := range items {
		grouped[item.CategoryId] = append(grouped[item.CategoryId], item)
	}
	return grouped
}
