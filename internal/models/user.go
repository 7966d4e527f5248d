package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleSalesman UserRole = "salesman"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"size:100;uniqueIndex;not null"` // stored lowercase
	PasswordHash string   `gorm:"size:255;not null"`
	Name         string   `gorm:"size:100;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	SalesmanID   *string  `gorm:"size:50;uniqueIndex"` // set only for role=salesman
	Email        string   `gorm:"size:100"`            // optional, needed for password reset
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
