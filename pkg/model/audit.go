package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Audit action tags.
const (
	ActionUserRegister       = "USER_REGISTER"
	ActionUserLogin          = "USER_LOGIN"
	ActionUserQuickRegister  = "USER_QUICK_REGISTER"
	ActionEventInscription   = "EVENT_INSCRIPTION"
	ActionEventUninscribe    = "EVENT_UNINSCRIPTION"
	ActionAttendanceRegister = "ATTENDANCE_REGISTER"
)

// AuditEntry is an immutable record of a sensitive action. Entries are only
// ever appended, there is no mutation or deletion path.
// swagger:model
type AuditEntry struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UserID     uint      `gorm:"index;not null" json:"userId"`
	User       *User     `json:"-"`
	Action     string    `gorm:"index;not null" json:"action"`
	EntityType *string   `json:"entityType,omitempty"`
	EntityID   *uint     `json:"entityId,omitempty"`
	Details    JSONMap   `gorm:"type:jsonb" json:"details"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
}

// JSONMap stores a free-form string keyed mapping as a jsonb column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONMap: %T", value)
	}

	return json.Unmarshal(bytes, m)
}
