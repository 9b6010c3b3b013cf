package entity

import "time"

// ActivityLog is the audit trail of procurement actions. One row per
// create, update or status change on a workflow record.
type ActivityLog struct {
	ID         string `json:"id" gorm:"primaryKey;size:32"`
	EntityType string `json:"entity_type" gorm:"size:50;not null;index:idx_activity_entity"`
	EntityID   string `json:"entity_id" gorm:"size:32;not null;index:idx_activity_entity"`
	EntityCode string `json:"entity_code" gorm:"size:50"`

	Action     string `json:"action" gorm:"size:50;not null"`
	FromStatus string `json:"from_status" gorm:"size:20"`
	ToStatus   string `json:"to_status" gorm:"size:20"`
	Content    string `json:"content" gorm:"type:text"`

	OperatorID string    `json:"operator_id" gorm:"size:32"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "procurement_activity_logs"
}

// Activity entity types
const (
	ActivityRequisition = "requisition"
	ActivityRFQ         = "rfq"
	ActivityQuotation   = "quotation"
	ActivityPO          = "purchase_order"
)
