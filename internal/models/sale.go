package models

import "time"

// Sale rows are append-only: a re-imported file creates new rows on purpose.
// Date is kept as a "YYYY-MM-DD" string so monthly reports can prefix-match.
type Sale struct {
	ID           uint    `gorm:"primaryKey"`
	SalesmanID   string  `gorm:"size:50;index;not null"`
	SalesmanName string  `gorm:"size:100"`
	Date         string  `gorm:"size:10;index;not null"`
	Brand        string  `gorm:"size:100;index"`
	ItemCode     string  `gorm:"size:50"`
	Quantity     int     `gorm:"not null"`
	Price        float64 `gorm:"not null"`
	TotalAmount  float64 `gorm:"not null"` // quantity*price when not supplied
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EffectiveTotal tolerates legacy rows that were stored without a total.
func (s *Sale) EffectiveTotal() float64 {
	if s.TotalAmount > 0 {
		return s.TotalAmount
	}
	return float64(s.Quantity) * s.Price
}
