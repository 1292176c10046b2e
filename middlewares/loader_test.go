package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
	"bitbucket.org/mmdatafocus/purchasing_backend/erpclient"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
)

func loaderContext(t *testing.T, handler http.Handler) context.Context {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("ERP_API_BASE_URL", srv.URL)
	client := erpclient.New(config.GetLogger())
	return context.WithValue(context.Background(), loadersKey, NewLoaders(client))
}

func TestGetSuppliers_BatchesOneListFetch(t *testing.T) {
	listCalls := 0
	ctx := loaderContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/suppliers") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		listCalls++
		w.Write([]byte(`[{"supplier_id": 7, "supp_name": "Golden Lion Trading"}, {"supplier_id": 9, "supp_name": "Shwe Taung Cement"}]`))
	}))

	suppliers, errs := GetSuppliers(ctx, []int{7, 9})
	for _, err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(suppliers) != 2 || suppliers[0] == nil || suppliers[1] == nil {
		t.Fatalf("unexpected suppliers: %+v", suppliers)
	}
	if suppliers[0].SuppName != "Golden Lion Trading" || suppliers[1].SuppName != "Shwe Taung Cement" {
		t.Fatalf("unexpected names: %q, %q", suppliers[0].SuppName, suppliers[1].SuppName)
	}
	if listCalls != 1 {
		t.Fatalf("expected the whole batch served from 1 list fetch, got %d", listCalls)
	}
}

func TestGetSupplier_MissingIdReportsNotFound(t *testing.T) {
	ctx := loaderContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"supplier_id": 7, "supp_name": "Golden Lion Trading"}]`))
	}))

	if _, err := GetSupplier(ctx, 99); err != utils.ErrorRecordNotFound {
		t.Fatalf("expected record-not-found, got %v", err)
	}
}

func TestGetAccount_ResolvesByCode(t *testing.T) {
	ctx := loaderContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/chart-masters") {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"account_code": "2100", "account_name": "Accounts Payable"}]`))
	}))

	account, err := GetAccount(ctx, "2100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.AccountName != "Accounts Payable" {
		t.Fatalf("unexpected account: %+v", account)
	}
	if _, err := GetAccount(ctx, "9999"); err != utils.ErrorRecordNotFound {
		t.Fatalf("expected record-not-found for unknown code, got %v", err)
	}
}
