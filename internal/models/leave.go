package models

import "time"

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

type LeaveType string

const (
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypePersonal  LeaveType = "personal"
	LeaveTypeVacation  LeaveType = "vacation"
	LeaveTypeEmergency LeaveType = "emergency"
	LeaveTypeOther     LeaveType = "other"
)

// Leave holds one application per salesman per start date. The composite
// unique index is what makes concurrent submissions safe; the handler's
// pre-check only exists to return a friendly message.
type Leave struct {
	ID           uint        `gorm:"primaryKey"`
	SalesmanID   string      `gorm:"size:50;not null;uniqueIndex:idx_leaves_salesman_from"`
	SalesmanName string      `gorm:"size:100"`
	FromDate     string      `gorm:"size:10;not null;uniqueIndex:idx_leaves_salesman_from"`
	ToDate       string      `gorm:"size:10;not null"`
	Date         string      `gorm:"size:10;index"` // = FromDate, single-day compatibility
	Reason       string      `gorm:"size:255"`
	Status       LeaveStatus `gorm:"size:20;not null"`
	IsCritical   bool        `gorm:"not null;default:false"`
	LeaveType    LeaveType   `gorm:"size:20;not null"`

	// Set only on approve/reject.
	ApprovedBy      string `gorm:"size:100"`
	ApprovedAt      *time.Time
	RejectionReason string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
