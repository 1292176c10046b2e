package main

import (
	"context"
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/purchasing_backend/erpclient"
	"bitbucket.org/mmdatafocus/purchasing_backend/middlewares"
	"bitbucket.org/mmdatafocus/purchasing_backend/models"
	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
	"github.com/gin-gonic/gin"
)

func listSuppliersHandler(erp *erpclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var page models.PageRequest
		if err := c.ShouldBindQuery(&page); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		suppliers := erp.ListSuppliers(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"suppliers": models.Paginate(suppliers, page),
			"total":     len(suppliers),
		})
	}
}

func getSupplierHandler(erp *erpclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "supplier id must be numeric"})
			return
		}
		ctx := c.Request.Context()
		supplier, err := erp.GetSupplier(ctx, id)
		if err != nil {
			writeErpError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"supplier":              supplier,
			"payable_account_name":  accountName(ctx, supplier.PayableAccount),
			"purchase_account_name": accountName(ctx, supplier.PurchaseAccount),
		})
	}
}

// accountName resolves a GL account code through the request's batch
// loader. Unknown or blank codes render empty.
func accountName(ctx context.Context, code string) string {
	if code == "" {
		return ""
	}
	account, err := middlewares.GetAccount(ctx, code)
	if err != nil {
		return ""
	}
	return account.AccountName
}

func createSupplierHandler(erp *erpclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSupplier
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
			return
		}
		if problems := input.Validate(); len(problems) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": problems})
			return
		}
		created, err := erp.CreateSupplier(c.Request.Context(), input.MapToRecord())
		if err != nil {
			writeErpError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateSupplierHandler(erp *erpclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "supplier id must be numeric"})
			return
		}
		var input models.NewSupplier
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
			return
		}
		if problems := input.Validate(); len(problems) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": problems})
			return
		}
		record := input.MapToRecord()
		record.SupplierId = id
		updated, err := erp.UpdateSupplier(c.Request.Context(), id, record)
		if err != nil {
			writeErpError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteSupplierHandler(erp *erpclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "supplier id must be numeric"})
			return
		}
		if err := erp.DeleteSupplier(c.Request.Context(), id); err != nil {
			writeErpError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// writeErpError maps upstream API failures onto this service's responses,
// passing the upstream status through where one exists.
func writeErpError(c *gin.Context, err error) {
	if apiErr, ok := err.(*erpclient.APIError); ok {
		status := apiErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
