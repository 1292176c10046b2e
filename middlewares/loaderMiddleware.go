package middlewares

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/purchasing_backend/erpclient"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/dataloader/v7"
)

type ctxKey string

const (
	loadersKey = ctxKey("dataloaders")
)

// Loaders batch per-id lookups within one request so handlers that
// decorate many rows hit the supplier and account lists once each.
type Loaders struct {
	supplierLoader *dataloader.Loader[int, *models.Supplier]
	accountLoader  *dataloader.Loader[string, *models.ChartMaster]
}

func NewLoaders(client *erpclient.Client) *Loaders {
	supplierReader := &supplierReader{client: client}
	accountReader := &accountReader{client: client}
	return &Loaders{
		supplierLoader: dataloader.NewBatchedLoader(supplierReader.getSuppliers, dataloader.WithWait[int, *models.Supplier](time.Millisecond)),
		accountLoader:  dataloader.NewBatchedLoader(accountReader.getAccounts, dataloader.WithWait[string, *models.ChartMaster](time.Millisecond)),
	}
}

func LoaderMiddleware(client *erpclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		loader := NewLoaders(client)
		ctx := context.WithValue(c.Request.Context(), loadersKey, loader)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func For(ctx context.Context) *Loaders {
	return ctx.Value(loadersKey).(*Loaders)
}
