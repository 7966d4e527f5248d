package leave

import (
	"fmt"
	"time"

	"salestrack-backend/internal/models"
)

// applyTransition moves a leave to the target status. Re-applying the
// current status is a no-op (changed=false); only pending leaves can move,
// anything else is a conflict for the caller to report.
func applyTransition(l *models.Leave, target models.LeaveStatus, adminName, rejectionReason string, now time.Time) (changed bool, err error) {
	if l.Status == target {
		return false, nil
	}
	if l.Status != models.LeaveStatusPending {
		return false, fmt.Errorf("leave is already %s", l.Status)
	}

	switch target {
	case models.LeaveStatusApproved:
		l.Status = models.LeaveStatusApproved
		l.ApprovedBy = adminName
		l.ApprovedAt = &now
		l.RejectionReason = ""
	case models.LeaveStatusRejected:
		if rejectionReason == "" {
			return false, fmt.Errorf("rejection reason is required")
		}
		l.Status = models.LeaveStatusRejected
		l.ApprovedBy = adminName
		l.ApprovedAt = &now
		l.RejectionReason = rejectionReason
	default:
		return false, fmt.Errorf("invalid target status %q", target)
	}
	return true, nil
}
