package models

import (
	"strings"

	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
	"github.com/shopspring/decimal"
)

type Supplier struct {
	SupplierId         int             `json:"supplier_id"`
	SuppName           string          `json:"supp_name"`
	SuppRef            string          `json:"supp_ref"`
	Address            string          `json:"address"`
	SuppAddress        string          `json:"supp_address"`
	GstNo              string          `json:"gst_no"`
	ContactName        string          `json:"contact_name"`
	SuppAccountNo      string          `json:"supp_account_no"`
	Website            string          `json:"website"`
	BankName           string          `json:"bank_name"`
	BankAccount        string          `json:"bank_account"`
	CurrCode           string          `json:"curr_code"`
	PaymentTerms       int             `json:"payment_terms"`
	TaxIncluded        bool            `json:"tax_included"`
	TaxGroupId         int             `json:"tax_group_id"`
	CreditLimit        decimal.Decimal `json:"credit_limit"`
	PayableAccount     string          `json:"payable_account"`
	PurchaseAccount    string          `json:"purchase_account"`
	PaymentDiscountAct string          `json:"payment_discount_account"`
	Notes              string          `json:"notes"`
	Inactive           bool            `json:"inactive"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	Phone2             string          `json:"phone2"`
	Fax                string          `json:"fax"`
}

// NewSupplier is the create/update payload as the maintenance form
// submits it (camelCase field names on the wire from the form layer).
type NewSupplier struct {
	SuppName           string          `json:"suppName" binding:"required"`
	SuppRef            string          `json:"suppRef" binding:"required"`
	Address            string          `json:"address"`
	SuppAddress        string          `json:"suppAddress"`
	GstNo              string          `json:"gstNo"`
	ContactName        string          `json:"contactName"`
	SuppAccountNo      string          `json:"suppAccountNo"`
	Website            string          `json:"website"`
	BankName           string          `json:"bankName"`
	BankAccount        string          `json:"bankAccount"`
	CurrCode           string          `json:"currCode"`
	PaymentTerms       int             `json:"paymentTerms"`
	TaxIncluded        bool            `json:"taxIncluded"`
	TaxGroupId         int             `json:"taxGroupId"`
	CreditLimit        decimal.Decimal `json:"creditLimit"`
	PayableAccount     string          `json:"payableAccount"`
	PurchaseAccount    string          `json:"purchaseAccount"`
	PaymentDiscountAct string          `json:"paymentDiscountAccount"`
	Notes              string          `json:"notes"`
	Inactive           bool            `json:"inactive"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	Phone2             string          `json:"phone2"`
	Fax                string          `json:"fax"`
}

// Validate runs the form-level checks and returns a field -> message map.
// An empty map means the payload is submittable.
func (input *NewSupplier) Validate() map[string]string {
	problems := make(map[string]string)

	if strings.TrimSpace(input.SuppName) == "" {
		problems["suppName"] = "supplier name is required"
	}
	if strings.TrimSpace(input.SuppRef) == "" {
		problems["suppRef"] = "supplier short name is required"
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		problems["email"] = "email is not valid"
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			problems["phone"] = "phone number is not valid"
		}
	}
	if input.Phone2 != "" {
		if err := utils.ValidatePhoneNumber(input.Phone2, utils.CountryCode); err != nil {
			problems["phone2"] = "phone number is not valid"
		}
	}
	if input.Website != "" && !utils.IsValidWebsite(input.Website) {
		problems["website"] = "website is not valid"
	}
	if input.BankAccount != "" && !utils.IsNumeric(input.BankAccount) {
		problems["bankAccount"] = "bank account must be numeric"
	}
	if input.CreditLimit.IsNegative() {
		problems["creditLimit"] = "credit limit must not be negative"
	}
	if input.PaymentTerms < 0 {
		problems["paymentTerms"] = "payment terms must not be negative"
	}

	return problems
}

// MapToRecord converts form fields to the snake_case record the backend
// accepts. This is the single camelCase -> snake_case point.
func (input *NewSupplier) MapToRecord() Supplier {
	return Supplier{
		SuppName:           input.SuppName,
		SuppRef:            input.SuppRef,
		Address:            input.Address,
		SuppAddress:        input.SuppAddress,
		GstNo:              input.GstNo,
		ContactName:        input.ContactName,
		SuppAccountNo:      input.SuppAccountNo,
		Website:            input.Website,
		BankName:           input.BankName,
		BankAccount:        input.BankAccount,
		CurrCode:           input.CurrCode,
		PaymentTerms:       input.PaymentTerms,
		TaxIncluded:        input.TaxIncluded,
		TaxGroupId:         input.TaxGroupId,
		CreditLimit:        input.CreditLimit,
		PayableAccount:     input.PayableAccount,
		PurchaseAccount:    input.PurchaseAccount,
		PaymentDiscountAct: input.PaymentDiscountAct,
		Notes:              input.Notes,
		Inactive:           input.Inactive,
		Email:              input.Email,
		Phone:              input.Phone,
		Phone2:             input.Phone2,
		Fax:                input.Fax,
	}
}
