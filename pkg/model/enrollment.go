package model

import "time"

// Enrollment pairs a user with an event they registered for. The composite
// unique index is the authoritative guard against double enrollment, the
// service-level existence check is only an optimization.
// swagger:model
type Enrollment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_enrollments_user_event" json:"userId"`
	User      *User     `json:"-"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_enrollments_user_event" json:"eventId"`
	Event     *Event    `json:"-"`
}
