package middlewares

import (
	"context"

	"bitbucket.org/mmdatafocus/purchasing_backend/erpclient"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
	"github.com/graph-gophers/dataloader/v7"
)

type accountReader struct {
	client *erpclient.Client
}

func (r *accountReader) getAccounts(ctx context.Context, codes []string) []*dataloader.Result[*models.ChartMaster] {
	all := r.client.ListChartMasters(ctx)
	byCode := make(map[string]models.ChartMaster, len(all))
	for _, a := range all {
		byCode[a.AccountCode] = a
	}

	results := make([]*dataloader.Result[*models.ChartMaster], 0, len(codes))
	for _, code := range codes {
		a, ok := byCode[code]
		if !ok {
			results = append(results, &dataloader.Result[*models.ChartMaster]{Error: utils.ErrorRecordNotFound})
			continue
		}
		match := a
		results = append(results, &dataloader.Result[*models.ChartMaster]{Data: &match})
	}
	return results
}

func GetAccount(ctx context.Context, code string) (*models.ChartMaster, error) {
	loaders := For(ctx)
	return loaders.accountLoader.Load(ctx, code)()
}
