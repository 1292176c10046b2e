package erpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("ERP_API_BASE_URL", srv.URL)
	return New(config.GetLogger())
}

func TestErrorMessage_PrefersMessageThenErrorThenRaw(t *testing.T) {
	cases := map[string]string{
		`{"message": "supplier not found"}`: "supplier not found",
		`{"error": "bad payload"}`:          "bad payload",
		`{"detail": "other shape"}`:         `{"detail": "other shape"}`,
		"plain text failure\n":              "plain text failure",
	}
	for body, want := range cases {
		if got := errorMessage([]byte(body)); got != want {
			t.Fatalf("errorMessage(%q) = %q, want %q", body, got, want)
		}
	}
}

func TestGetSupplier_PropagatesAPIError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "supplier not found"}`))
	}))

	_, err := c.GetSupplier(context.Background(), 404)
	if err == nil {
		t.Fatal("expected an error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "supplier not found" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestListSuppliers_SwallowsServerFailure(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	suppliers := c.ListSuppliers(context.Background())
	if suppliers == nil {
		t.Fatal("expected an empty slice, not nil")
	}
	if len(suppliers) != 0 {
		t.Fatalf("expected no suppliers, got %d", len(suppliers))
	}
}

func TestListPurchaseOrders_PropagatesFailure(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	if _, err := c.ListPurchaseOrders(context.Background()); err == nil {
		t.Fatal("order list failures must surface to the caller")
	}
}

func TestDo_ForwardsCorrelationId(t *testing.T) {
	var got string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("x-correlation-id")
		w.Write([]byte(`[]`))
	}))

	ctx := utils.SetCorrelationIdInContext(context.Background(), "req-123")
	if _, err := c.ListPurchaseOrders(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "req-123" {
		t.Fatalf("expected correlation id forwarded, got %q", got)
	}
}

func TestListSuppliers_ParsesPayload(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/suppliers") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`[{"supplier_id": 7, "supp_name": "Golden Lion Trading"}]`))
	}))

	suppliers := c.ListSuppliers(context.Background())
	if len(suppliers) != 1 || suppliers[0].SupplierId != 7 {
		t.Fatalf("unexpected result: %+v", suppliers)
	}
}
