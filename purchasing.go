package main

import (
	"errors"
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/purchasing_backend/erpclient"
	"bitbucket.org/mmdatafocus/purchasing_backend/workflow"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func referenceDataHandler(erp *erpclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, workflow.LoadReferenceData(c.Request.Context(), erp))
	}
}

func directGrnHandler(erp *erpclient.Client, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input workflow.DirectGrnInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err := workflow.ProcessDirectGrnWorkflow(c.Request.Context(), erp, logger, input)
		if err != nil {
			writeWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func directInvoiceHandler(erp *erpclient.Client, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input workflow.DirectInvoiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err := workflow.ProcessDirectInvoiceWorkflow(c.Request.Context(), erp, logger, input)
		if err != nil {
			writeWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func invoiceFromGrnHandler(erp *erpclient.Client, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input workflow.InvoiceFromGrnInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err := workflow.ProcessInvoiceFromGrnWorkflow(c.Request.Context(), erp, logger, input)
		if err != nil {
			writeWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func creditNoteHandler(erp *erpclient.Client, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input workflow.SupplierCreditInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err := workflow.ProcessSupplierCreditWorkflow(c.Request.Context(), erp, logger, input)
		if err != nil {
			writeWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func supplierPaymentHandler(erp *erpclient.Client, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input workflow.SupplierPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err := workflow.ProcessSupplierPaymentWorkflow(c.Request.Context(), erp, logger, input)
		if err != nil {
			writeWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func updatePurchaseOrderHandler(erp *erpclient.Client, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNo, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order number must be numeric"})
			return
		}
		var input workflow.PurchaseOrderUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err := workflow.ProcessPurchaseOrderUpdateWorkflow(c.Request.Context(), erp, logger, orderNo, input)
		if err != nil {
			writeWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// writeWorkflowError distinguishes pre-flight validation failures (the
// caller can fix the payload) from mid-sequence failures (the upstream
// state may be partial).
func writeWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrDateOutsideFiscalYear):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrBatchNotResolved):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		var apiErr *erpclient.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
