package model

import "time"

// Event domain object defining an event
// swagger:model
type Event struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"index" json:"slug"`
	Details   string    `json:"details,omitempty"`
	StartsAt  time.Time `gorm:"not null" json:"startsAt"`
	EndsAt    time.Time `gorm:"not null" json:"endsAt"`
	Location  string    `json:"location,omitempty"`
	Category  string    `json:"category,omitempty"`
	// Capacity limits the number of enrollments. nil means unlimited.
	Capacity *int    `json:"capacity,omitempty"`
	Price    float64 `gorm:"type:numeric(10,2)" json:"price"`
	Active   bool    `gorm:"not null;default:true" json:"active"`
}
