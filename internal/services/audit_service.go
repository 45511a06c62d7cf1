package services

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"goldbook/internal/logger"
	"goldbook/internal/models"
)

// Audited actions.
const (
	ActionRegister          = "REGISTER"
	ActionLogin             = "LOGIN"
	ActionRecordTransaction = "RECORD_TRANSACTION"
	ActionAppendRecord      = "APPEND_RECORD"
)

// Audited resource types.
const (
	ResourceUser        = "user"
	ResourceTransaction = "transaction"
)

// TransactionChanges is the audit payload describing a stored transaction.
func TransactionChanges(tx models.Transaction) map[string]any {
	return map[string]any{
		"type":        tx.Type,
		"asset_type":  tx.AssetType,
		"weight":      tx.Weight,
		"total_value": tx.TotalValue,
		"date":        tx.Date.Format(time.DateOnly),
	}
}

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Named("audit").Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Named("audit").Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}
