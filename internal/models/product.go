package models

import "time"

type Product struct {
	ID          uint    `gorm:"primaryKey"`
	Brand       string  `gorm:"size:100;index"`
	ItemCode    string  `gorm:"size:50;index"` // dedup key when present
	ModelNumber string  `gorm:"size:100"`
	EAN         string  `gorm:"size:50"`
	Description string  `gorm:"size:255"`
	Price       float64 `gorm:"not null;default:0"`
	Stock       int     `gorm:"not null;default:0"`
	Category    string  `gorm:"size:100"`
	Status      string  `gorm:"size:20"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
