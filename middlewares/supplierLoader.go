package middlewares

import (
	"context"

	"bitbucket.org/mmdatafocus/purchasing_backend/erpclient"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
	"github.com/graph-gophers/dataloader/v7"
)

type supplierReader struct {
	client *erpclient.Client
}

// getSuppliers satisfies a whole batch from one list fetch; the list is
// redis-cached in the client, so repeated batches stay cheap.
func (r *supplierReader) getSuppliers(ctx context.Context, ids []int) []*dataloader.Result[*models.Supplier] {
	all := r.client.ListSuppliers(ctx)
	byId := make(map[int]models.Supplier, len(all))
	for _, s := range all {
		byId[s.SupplierId] = s
	}

	results := make([]*dataloader.Result[*models.Supplier], 0, len(ids))
	for _, id := range ids {
		s, ok := byId[id]
		if !ok {
			results = append(results, &dataloader.Result[*models.Supplier]{Error: utils.ErrorRecordNotFound})
			continue
		}
		match := s
		results = append(results, &dataloader.Result[*models.Supplier]{Data: &match})
	}
	return results
}

func GetSupplier(ctx context.Context, id int) (*models.Supplier, error) {
	loaders := For(ctx)
	return loaders.supplierLoader.Load(ctx, id)()
}

func GetSuppliers(ctx context.Context, ids []int) ([]*models.Supplier, []error) {
	loaders := For(ctx)
	return loaders.supplierLoader.LoadMany(ctx, ids)()
}
