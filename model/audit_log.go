package model

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions
const (
	AuditCreate     = "create"
	AuditUpdate     = "update"
	AuditDelete     = "delete"
	AuditRestore    = "restore"
	AuditHardDelete = "hard_delete"
)

// AuditLog is the trail of catalog writes. It is written in the same
// transaction as the change it records.
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Action     string         `gorm:"type:varchar(50);not null;index" json:"action"`
	Resource   string         `gorm:"type:varchar(100);not null;index" json:"resource"`
	ResourceID uint           `gorm:"index" json:"resource_id"`
	Changes    datatypes.JSON `json:"changes"`
	Actor      string         `gorm:"type:varchar(255)" json:"actor"`
	IPAddress  string         `gorm:"type:varchar(45)" json:"ip_address"`
	RequestID  string         `gorm:"type:varchar(64)" json:"request_id"`
	CreatedAt  time.Time      `json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
