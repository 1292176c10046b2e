package erpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const backupsPath = "/api/backups"

// Valid backup actions on the ERP's backup sub-API.
const (
	BackupActionView     = "view"
	BackupActionDownload = "download"
	BackupActionRestore  = "restore"
	BackupActionDelete   = "delete"
)

type BackupActionRequest struct {
	Action string `json:"action"`
	Id     string `json:"id,omitempty"`
}

type BackupStats struct {
	TotalBackups int             `json:"total_backups"`
	TotalBytes   int64           `json:"total_bytes"`
	LastBackupAt string          `json:"last_backup_at"`
	Storage      json.RawMessage `json:"storage"`
}

func validBackupAction(action string) bool {
	switch action {
	case BackupActionView, BackupActionDownload, BackupActionRestore, BackupActionDelete:
		return true
	}
	return false
}

// BackupAction posts the action envelope on the long-timeout client;
// restores of large dumps run for minutes.
func (c *Client) BackupAction(ctx context.Context, action string, id string) (json.RawMessage, error) {
	if !validBackupAction(action) {
		return nil, fmt.Errorf("unknown backup action %q", action)
	}
	var result json.RawMessage
	err := c.do(ctx, c.backupHTTP, http.MethodPost, backupsPath+"/action", BackupActionRequest{Action: action, Id: id}, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetBackupStats(ctx context.Context) (*BackupStats, error) {
	var stats BackupStats
	if err := c.do(ctx, c.backupHTTP, http.MethodGet, backupsPath+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
