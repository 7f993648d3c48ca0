package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUsta  Role = "usta"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUsta
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"size:60;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"size:140;not null" json:"-"`
	Name      string    `gorm:"size:140" json:"name"`
	Email     string    `gorm:"size:140;index" json:"email,omitempty"`
	Role      Role      `gorm:"type:varchar(10);not null" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
