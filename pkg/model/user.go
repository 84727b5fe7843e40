package model

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User domain object defining a registered user
// swagger:model
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"index;unique" json:"email"`
	Password  string    `json:"-"`
	Role      string    `gorm:"not null;default:USER" json:"role"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	Phone     string    `json:"phone,omitempty"`
	Document  string    `json:"document,omitempty"`
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdmin
}
