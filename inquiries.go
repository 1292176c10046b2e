package main

import (
	"context"
	"net/http"

	"bitbucket.org/mmdatafocus/purchasing_backend/erpclient"
	"bitbucket.org/mmdatafocus/purchasing_backend/inquiry"
	"bitbucket.org/mmdatafocus/purchasing_backend/middlewares"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// supplierNames batch-resolves supplier ids through the request's
// dataloader so a whole inquiry grid costs one supplier fetch.
func supplierNames(ctx context.Context, ids []int) map[int]string {
	names := make(map[int]string, len(ids))
	suppliers, _ := middlewares.GetSuppliers(ctx, utils.UniqueSlice(ids))
	for _, s := range suppliers {
		if s != nil {
			names[s.SupplierId] = s.SuppName
		}
	}
	return names
}

func purchaseOrderInquiryHandler(erp *erpclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f inquiry.Filter
		if err := c.ShouldBindQuery(&f); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx := c.Request.Context()
		orders, err := erp.ListPurchaseOrders(ctx)
		if err != nil {
			writeErpError(c, err)
			return
		}
		details, err := erp.ListPurchaseOrderDetails(ctx)
		if err != nil {
			writeErpError(c, err)
			return
		}
		ids := make([]int, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.SupplierId)
		}
		rows := inquiry.PurchaseOrders(orders, details, supplierNames(ctx, ids), f)

		if c.Query("format") == "xlsx" {
			c.Header("Content-Type", xlsxContentType)
			c.Header("Content-Disposition", "attachment; filename=purchase-orders.xlsx")
			if err := inquiry.WritePurchaseOrdersXlsx(c.Writer, rows); err != nil {
				c.AbortWithError(http.StatusInternalServerError, err)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"rows": rows})
	}
}

func outstandingDetailsHandler(erp *erpclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f inquiry.Filter
		if err := c.ShouldBindQuery(&f); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx := c.Request.Context()
		orders, err := erp.ListPurchaseOrders(ctx)
		if err != nil {
			writeErpError(c, err)
			return
		}
		details, err := erp.ListPurchaseOrderDetails(ctx)
		if err != nil {
			writeErpError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rows": inquiry.OutstandingDetails(orders, details, f)})
	}
}

func allocationInquiryHandler(erp *erpclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f inquiry.Filter
		if err := c.ShouldBindQuery(&f); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx := c.Request.Context()
		trans := erp.ListSuppTrans(ctx)
		ids := make([]int, 0, len(trans))
		for _, t := range trans {
			ids = append(ids, t.SupplierId)
		}
		rows := inquiry.Allocations(trans, supplierNames(ctx, ids), f)

		if c.Query("format") == "xlsx" {
			c.Header("Content-Type", xlsxContentType)
			c.Header("Content-Disposition", "attachment; filename=supplier-allocations.xlsx")
			if err := inquiry.WriteAllocationsXlsx(c.Writer, rows); err != nil {
				c.AbortWithError(http.StatusInternalServerError, err)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"rows": rows})
	}
}
