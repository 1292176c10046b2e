package workflow

import (
	"context"
	"testing"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"github.com/shopspring/decimal"
)

func TestSupplierPayment_CreatesLedgerAndBankRows(t *testing.T) {
	f := newFakeBackend()
	result, err := ProcessSupplierPaymentWorkflow(context.Background(), f, config.GetLogger(), SupplierPaymentInput{
		SupplierId:  7,
		BankAccount: "1060",
		Date:        date("2024-03-25"),
		Amount:      decimal.NewFromInt(50000),
		BankCharge:  decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Trans.TransType != models.TransTypeSupplierPayment {
		t.Fatalf("expected trans type 22, got %d", result.Trans.TransType)
	}
	if !result.Trans.OvAmount.Equal(decimal.NewFromInt(-50000)) {
		t.Fatalf("payment ledger amount must be negated, got %s", result.Trans.OvAmount)
	}
	if !result.BankTrans.Amount.Equal(decimal.NewFromInt(-50500)) {
		t.Fatalf("bank amount must be -(amount+charge), got %s", result.BankTrans.Amount)
	}
	if result.BankTrans.PersonId != 7 || result.BankTrans.PersonTypeId != models.PersonTypeSupplier {
		t.Fatalf("bank row must name the supplier, got %+v", result.BankTrans)
	}
	if result.Reference != "001/2024" {
		t.Fatalf("expected generated reference, got %s", result.Reference)
	}
}

func TestSupplierPayment_AllocationCappedAtOpenBalance(t *testing.T) {
	f := newFakeBackend()
	f.suppTrans = []models.SuppTrans{
		{
			TransType:  models.TransTypeSupplierInvoice,
			TransNo:    3,
			SupplierId: 7,
			OvAmount:   decimal.NewFromInt(30000),
			Alloc:      decimal.NewFromInt(10000),
		},
	}

	_, err := ProcessSupplierPaymentWorkflow(context.Background(), f, config.GetLogger(), SupplierPaymentInput{
		SupplierId:  7,
		BankAccount: "1060",
		Date:        date("2024-03-25"),
		Amount:      decimal.NewFromInt(50000),
		Allocations: []AllocationInput{
			{TransType: models.TransTypeSupplierInvoice, TransNo: 3, Amount: decimal.NewFromInt(50000)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var invoice *models.SuppTrans
	for i := range f.suppTrans {
		if f.suppTrans[i].TransType == models.TransTypeSupplierInvoice && f.suppTrans[i].TransNo == 3 {
			invoice = &f.suppTrans[i]
		}
	}
	if invoice == nil {
		t.Fatal("invoice vanished")
	}
	if !invoice.Alloc.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("allocation must cap at the open balance, got %s", invoice.Alloc)
	}
}

func TestSupplierPayment_AllocationToOrderAdvancesOrderAlloc(t *testing.T) {
	f := newFakeBackend()
	f.orders = []models.PurchaseOrder{
		{OrderNo: 9, SupplierId: 7, Total: decimal.NewFromInt(20000)},
	}

	_, err := ProcessSupplierPaymentWorkflow(context.Background(), f, config.GetLogger(), SupplierPaymentInput{
		SupplierId:  7,
		BankAccount: "1060",
		Date:        date("2024-03-25"),
		Amount:      decimal.NewFromInt(15000),
		Allocations: []AllocationInput{
			{OrderNo: 9, Amount: decimal.NewFromInt(15000)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.orders[0].Alloc.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("expected order alloc 15000, got %s", f.orders[0].Alloc)
	}
}

func TestSupplierPayment_MissingAllocationTargetIsNotFatal(t *testing.T) {
	f := newFakeBackend()
	result, err := ProcessSupplierPaymentWorkflow(context.Background(), f, config.GetLogger(), SupplierPaymentInput{
		SupplierId:  7,
		BankAccount: "1060",
		Date:        date("2024-03-25"),
		Amount:      decimal.NewFromInt(1000),
		Allocations: []AllocationInput{
			{TransType: models.TransTypeSupplierInvoice, TransNo: 404, Amount: decimal.NewFromInt(1000)},
		},
	})
	if err != nil {
		t.Fatalf("a dangling allocation must not abort the payment: %v", err)
	}
	if len(result.LineErrors) != 1 {
		t.Fatalf("expected one line error, got %v", result.LineErrors)
	}
	if len(f.bankTrans) != 1 {
		t.Fatal("bank row must still be recorded")
	}
}

func TestSupplierPayment_BankFailureIsFatal(t *testing.T) {
	f := newFakeBackend()
	f.failBankTrans = true
	_, err := ProcessSupplierPaymentWorkflow(context.Background(), f, config.GetLogger(), SupplierPaymentInput{
		SupplierId:  7,
		BankAccount: "1060",
		Date:        date("2024-03-25"),
		Amount:      decimal.NewFromInt(1000),
	})
	if err == nil {
		t.Fatal("expected a fatal error when the bank row fails")
	}
}

func TestSupplierPayment_RejectsNonPositiveAmount(t *testing.T) {
	f := newFakeBackend()
	_, err := ProcessSupplierPaymentWorkflow(context.Background(), f, config.GetLogger(), SupplierPaymentInput{
		SupplierId:  7,
		BankAccount: "1060",
		Date:        date("2024-03-25"),
		Amount:      decimal.Zero,
	})
	if err == nil {
		t.Fatal("expected an error for a zero amount")
	}
	if len(f.suppTrans) != 0 {
		t.Fatal("no ledger row may be created")
	}
}
