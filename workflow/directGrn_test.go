package workflow

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"github.com/shopspring/decimal"
)

func grnInput(lines ...LineInput) DirectGrnInput {
	return DirectGrnInput{
		SupplierId: 7,
		Location:   "DEF",
		Date:       date("2024-03-10"),
		Lines:      lines,
	}
}

func line(code string, qty int64, price int64) LineInput {
	return LineInput{
		ItemCode: code,
		Quantity: decimal.NewFromInt(qty),
		Price:    decimal.NewFromInt(price),
		Added:    true,
	}
}

func TestDirectGrn_CreatesFullChain(t *testing.T) {
	f := newFakeBackend()
	result, err := ProcessDirectGrnWorkflow(context.Background(), f, config.GetLogger(), grnInput(
		line("CEMENT-50KG", 10, 9500),
		line("REBAR-12MM", 4, 12000),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Order.OrderNo != 1 {
		t.Fatalf("expected order_no 1 on an empty system, got %d", result.Order.OrderNo)
	}
	wantTotal := decimal.NewFromInt(10*9500 + 4*12000)
	if !result.Order.Total.Equal(wantTotal) {
		t.Fatalf("expected total %s, got %s", wantTotal, result.Order.Total)
	}
	if result.Reference != "001/2024" {
		t.Fatalf("expected generated reference 001/2024, got %s", result.Reference)
	}
	if len(result.Details) != 2 || result.Details[0].PoDetailItem != 1 || result.Details[1].PoDetailItem != 2 {
		t.Fatalf("expected detail items 1 and 2, got %+v", result.Details)
	}
	if result.Batch.Id == 0 {
		t.Fatal("expected a resolved batch id")
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 grn items, got %d", len(result.Items))
	}
	for i, item := range result.Items {
		if item.GrnBatchId != result.Batch.Id {
			t.Fatalf("item %d not linked to batch: %+v", i, item)
		}
		if !item.QuantityInv.IsZero() {
			t.Fatalf("fresh receipt must be uninvoiced, got %s", item.QuantityInv)
		}
	}
	if !result.Details[0].QtyReceived.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("direct receipt must mark quantity received, got %s", result.Details[0].QtyReceived)
	}
	if len(result.LineErrors) != 0 {
		t.Fatalf("unexpected line errors: %v", result.LineErrors)
	}
}

func TestDirectGrn_ExistingOrdersAdvanceOrderNo(t *testing.T) {
	f := newFakeBackend()
	f.orders = []models.PurchaseOrder{{OrderNo: 12, SupplierId: 7}, {OrderNo: 41, SupplierId: 9}}
	result, err := ProcessDirectGrnWorkflow(context.Background(), f, config.GetLogger(), grnInput(line("CEMENT-50KG", 1, 100)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Order.OrderNo != 42 {
		t.Fatalf("expected order_no 42, got %d", result.Order.OrderNo)
	}
}

func TestDirectGrn_LineFailureSkipsButContinues(t *testing.T) {
	f := newFakeBackend()
	f.failDetailAt = map[int]bool{2: true}
	result, err := ProcessDirectGrnWorkflow(context.Background(), f, config.GetLogger(), grnInput(
		line("A", 1, 10),
		line("B", 2, 20),
		line("C", 3, 30),
	))
	if err != nil {
		t.Fatalf("line failure should not abort the workflow: %v", err)
	}
	if len(result.LineErrors) != 1 {
		t.Fatalf("expected 1 line error, got %v", result.LineErrors)
	}
	// All three lines keep a detail row in the result; the failed one is
	// the client-constructed placeholder.
	if len(result.Details) != 3 {
		t.Fatalf("expected 3 result details, got %d", len(result.Details))
	}
	// Only two landed on the backend.
	stored, _ := f.ListPurchaseOrderDetailsByOrder(context.Background(), result.Order.OrderNo)
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored details, got %d", len(stored))
	}
	// GRN items are attempted for every line, including the placeholder.
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 grn items, got %d", len(result.Items))
	}
	if result.Batch.Id == 0 {
		t.Fatal("batch must still be created after a line failure")
	}
}

func TestDirectGrn_HeaderFailureAborts(t *testing.T) {
	f := newFakeBackend()
	f.failCreateOrder = true
	_, err := ProcessDirectGrnWorkflow(context.Background(), f, config.GetLogger(), grnInput(line("A", 1, 10)))
	if err == nil {
		t.Fatal("expected a fatal error when the order header fails")
	}
	if len(f.batches) != 0 {
		t.Fatal("no batch may be created after a header failure")
	}
}

func TestDirectGrn_BatchIdResolvedByFallbackLookup(t *testing.T) {
	f := newFakeBackend()
	f.createBatchNoId = true
	result, err := ProcessDirectGrnWorkflow(context.Background(), f, config.GetLogger(), grnInput(line("A", 1, 10)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Batch.Id != 100 {
		t.Fatalf("expected fallback to find batch 100, got %d", result.Batch.Id)
	}
}

func TestDirectGrn_UnresolvableBatchIsFatal(t *testing.T) {
	f := newFakeBackend()
	f.dropBatchOnCreate = true
	_, err := ProcessDirectGrnWorkflow(context.Background(), f, config.GetLogger(), grnInput(line("A", 1, 10)))
	if !errors.Is(err, ErrBatchNotResolved) {
		t.Fatalf("expected ErrBatchNotResolved, got %v", err)
	}
}

func TestDirectGrn_DateOutsideFiscalYearBlocksAllCreates(t *testing.T) {
	f := newFakeBackend()
	input := grnInput(line("A", 1, 10))
	input.Date = date("2030-01-01")
	_, err := ProcessDirectGrnWorkflow(context.Background(), f, config.GetLogger(), input)
	if !errors.Is(err, ErrDateOutsideFiscalYear) {
		t.Fatalf("expected ErrDateOutsideFiscalYear, got %v", err)
	}
	if len(f.orders) != 0 || f.detailCreateCalls != 0 || len(f.batches) != 0 {
		t.Fatal("validation must run before any create call")
	}
}

func TestDirectGrn_SkippedRowsDoNotParticipate(t *testing.T) {
	f := newFakeBackend()
	notAdded := line("GHOST", 5, 100)
	notAdded.Added = false
	zeroQty := line("EMPTY", 0, 100)
	result, err := ProcessDirectGrnWorkflow(context.Background(), f, config.GetLogger(), grnInput(
		line("REAL", 2, 50),
		notAdded,
		zeroQty,
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Details) != 1 || len(result.Items) != 1 {
		t.Fatalf("only the added positive-quantity row may be created, got %d details, %d items", len(result.Details), len(result.Items))
	}
	if !result.Order.Total.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("total must cover included rows only, got %s", result.Order.Total)
	}
}

func TestDirectGrn_ExplicitReferenceIsKept(t *testing.T) {
	f := newFakeBackend()
	input := grnInput(line("A", 1, 10))
	input.Reference = "archive/2024-migration"
	result, err := ProcessDirectGrnWorkflow(context.Background(), f, config.GetLogger(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reference != "archive/2024-migration" {
		t.Fatalf("explicit reference must not be regenerated, got %s", result.Reference)
	}
}

func TestDirectGrn_ReferenceSequenceFollowsExistingBatches(t *testing.T) {
	f := newFakeBackend()
	f.batches = []models.GrnBatch{
		{Id: 1, Reference: "001/2024"},
		{Id: 2, Reference: "007/2024"},
		{Id: 3, Reference: "099/2023"},
	}
	result, err := ProcessDirectGrnWorkflow(context.Background(), f, config.GetLogger(), grnInput(line("A", 1, 10)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reference != "008/2024" {
		t.Fatalf("expected 008/2024, got %s", result.Reference)
	}
}
