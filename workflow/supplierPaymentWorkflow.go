package workflow

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// AllocationInput directs part of a payment at an open ledger entry or
// an open purchase order.
type AllocationInput struct {
	TransType int             `json:"transType"`
	TransNo   int             `json:"transNo"`
	OrderNo   int             `json:"orderNo"`
	Amount    decimal.Decimal `json:"amount"`
}

type SupplierPaymentInput struct {
	SupplierId  int               `json:"supplierId"`
	BankAccount string            `json:"bankAccount"`
	Reference   string            `json:"reference"`
	Date        models.Date       `json:"date"`
	Amount      decimal.Decimal   `json:"amount"`
	BankCharge  decimal.Decimal   `json:"bankCharge"`
	Allocations []AllocationInput `json:"allocations"`
}

type SupplierPaymentResult struct {
	Trans      models.SuppTrans `json:"trans"`
	BankTrans  models.BankTrans `json:"bankTrans"`
	Reference  string           `json:"reference"`
	LineErrors []string         `json:"lineErrors"`
}

// ProcessSupplierPaymentWorkflow records a supplier payment: the ledger
// row (type 22), the bank movement with the amount plus charge negated,
// and the requested allocations. Allocation amounts are capped at what
// the target can still absorb; failed allocations are logged and
// skipped while the payment itself stands.
func ProcessSupplierPaymentWorkflow(ctx context.Context, backend Backend, logger *logrus.Logger, input SupplierPaymentInput) (*SupplierPaymentResult, error) {
	if input.SupplierId <= 0 {
		return nil, fmt.Errorf("supplier is required")
	}
	if input.BankAccount == "" {
		return nil, fmt.Errorf("bank account is required")
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be greater than zero")
	}
	fy, err := CheckTransactionDate(backend.ListFiscalYears(ctx), input.Date)
	if err != nil {
		return nil, err
	}

	header, err := createSupplierTransaction(ctx, backend, logger, fy, transHeader{
		transType:  models.TransTypeSupplierPayment,
		supplierId: input.SupplierId,
		reference:  input.Reference,
		date:       input.Date,
		dueDate:    input.Date,
		amount:     input.Amount.Neg(),
	})
	if err != nil {
		return nil, err
	}
	result := &SupplierPaymentResult{
		Trans:      header.Trans,
		Reference:  header.Reference,
		LineErrors: header.LineErrors,
	}

	bank := models.BankTrans{
		TransType:    models.TransTypeSupplierPayment,
		TransNo:      result.Trans.TransNo,
		BankAct:      input.BankAccount,
		Ref:          result.Reference,
		TransDate:    input.Date,
		Amount:       input.Amount.Add(input.BankCharge).Neg(),
		PersonTypeId: models.PersonTypeSupplier,
		PersonId:     input.SupplierId,
	}
	createdBank, err := backend.CreateBankTrans(ctx, bank)
	if err != nil {
		config.LogError(logger, "supplierPaymentWorkflow.go", "ProcessSupplierPaymentWorkflow", "CreateBankTrans", bank, err)
		return nil, fmt.Errorf("bank transaction could not be created: %s", err.Error())
	}
	if createdBank.Id != 0 {
		bank = *createdBank
	}
	result.BankTrans = bank

	for _, alloc := range input.Allocations {
		if !alloc.Amount.IsPositive() {
			continue
		}
		if alloc.OrderNo != 0 {
			allocateToOrder(ctx, backend, logger, result, alloc)
			continue
		}
		allocateToTrans(ctx, backend, logger, result, alloc)
	}

	return result, nil
}

// allocateToTrans advances alloc on an open supplier transaction, capped
// at what is left to allocate.
func allocateToTrans(ctx context.Context, backend Backend, logger *logrus.Logger, result *SupplierPaymentResult, alloc AllocationInput) {
	var target *models.SuppTrans
	for _, t := range backend.ListSuppTrans(ctx) {
		if t.TransType == alloc.TransType && t.TransNo == alloc.TransNo {
			match := t
			target = &match
			break
		}
	}
	if target == nil {
		result.LineErrors = append(result.LineErrors, fmt.Sprintf("allocation %d/%d: transaction not found", alloc.TransType, alloc.TransNo))
		return
	}
	amount := alloc.Amount
	if left := target.LeftToAllocate(); amount.GreaterThan(left) {
		amount = left
	}
	if !amount.IsPositive() {
		return
	}
	target.Alloc = target.Alloc.Add(amount)
	if _, err := backend.UpdateSuppTrans(ctx, target.TransType, target.TransNo, *target); err != nil {
		config.LogError(logger, "supplierPaymentWorkflow.go", "allocateToTrans", "UpdateSuppTrans", target, err)
		result.LineErrors = append(result.LineErrors, fmt.Sprintf("allocation %d/%d: %s", alloc.TransType, alloc.TransNo, err.Error()))
	}
}

// allocateToOrder advances alloc on a purchase order (prepayment against
// an order rather than a ledger entry), capped at the order total.
func allocateToOrder(ctx context.Context, backend Backend, logger *logrus.Logger, result *SupplierPaymentResult, alloc AllocationInput) {
	order, err := backend.GetPurchaseOrder(ctx, alloc.OrderNo)
	if err != nil {
		config.LogError(logger, "supplierPaymentWorkflow.go", "allocateToOrder", "GetPurchaseOrder", alloc.OrderNo, err)
		result.LineErrors = append(result.LineErrors, fmt.Sprintf("allocation order %d: %s", alloc.OrderNo, err.Error()))
		return
	}
	amount := alloc.Amount
	if left := order.Total.Sub(order.Alloc); amount.GreaterThan(left) {
		amount = left
	}
	if !amount.IsPositive() {
		return
	}
	order.Alloc = order.Alloc.Add(amount)
	if _, err := backend.UpdatePurchaseOrder(ctx, order.OrderNo, *order); err != nil {
		config.LogError(logger, "supplierPaymentWorkflow.go", "allocateToOrder", "UpdatePurchaseOrder", order, err)
		result.LineErrors = append(result.LineErrors, fmt.Sprintf("allocation order %d: %s", alloc.OrderNo, err.Error()))
	}
}
