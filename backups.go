package main

import (
	"net/http"

	"bitbucket.org/mmdatafocus/purchasing_backend/erpclient"
	"github.com/gin-gonic/gin"
)

type backupActionInput struct {
	Action string `json:"action" binding:"required"`
	Id     string `json:"id"`
}

// backupActionHandler forwards backup maintenance requests upstream on
// the long-timeout client. Restores can run for minutes; the caller is
// expected to wait.
func backupActionHandler(erp *erpclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input backupActionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		switch input.Action {
		case erpclient.BackupActionView, erpclient.BackupActionDownload,
			erpclient.BackupActionRestore, erpclient.BackupActionDelete:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown backup action"})
			return
		}
		result, err := erp.BackupAction(c.Request.Context(), input.Action, input.Id)
		if err != nil {
			writeErpError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json", result)
	}
}

func backupStatsHandler(erp *erpclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := erp.GetBackupStats(c.Request.Context())
		if err != nil {
			writeErpError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
