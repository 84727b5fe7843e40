package model

import "time"

// Attendance records a staff-confirmed presence decision for an enrolled user.
// Created lazily on the first decision for a (user, event) pair and mutated in
// place afterwards, never deleted. Only the latest confirming actor and time
// are retained. An attendance row deliberately survives deletion of the
// enrollment that allowed its creation.
// swagger:model
type Attendance struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_attendances_user_event" json:"userId"`
	User        *User      `json:"-"`
	EventID     uint       `gorm:"not null;uniqueIndex:idx_attendances_user_event" json:"eventId"`
	Event       *Event     `json:"-"`
	Present     bool       `gorm:"not null;default:false" json:"present"`
	ConfirmedBy *uint      `json:"confirmedBy,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
}
