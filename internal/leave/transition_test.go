package leave

import (
	"testing"
	"time"

	"salestrack-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingLeave() models.Leave {
	return models.Leave{
		SalesmanID: "S1",
		FromDate:   "2024-02-15",
		ToDate:     "2024-02-16",
		Status:     models.LeaveStatusPending,
	}
}

func TestApproveTransition(t *testing.T) {
	l := pendingLeave()
	now := time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC)

	changed, err := applyTransition(&l, models.LeaveStatusApproved, "Admin", "", now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.LeaveStatusApproved, l.Status)
	assert.Equal(t, "Admin", l.ApprovedBy)
	require.NotNil(t, l.ApprovedAt)
	assert.Equal(t, now, *l.ApprovedAt)
	assert.Empty(t, l.RejectionReason)
}

func TestRejectTransitionRequiresReason(t *testing.T) {
	l := pendingLeave()

	_, err := applyTransition(&l, models.LeaveStatusRejected, "Admin", "", time.Now())
	assert.Error(t, err)
	assert.Equal(t, models.LeaveStatusPending, l.Status, "failed transition leaves the record untouched")

	changed, err := applyTransition(&l, models.LeaveStatusRejected, "Admin", "no cover", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "no cover", l.RejectionReason)
}

func TestTransitionIsIdempotent(t *testing.T) {
	l := pendingLeave()
	_, err := applyTransition(&l, models.LeaveStatusApproved, "Admin", "", time.Now())
	require.NoError(t, err)
	firstApprovedAt := l.ApprovedAt

	changed, err := applyTransition(&l, models.LeaveStatusApproved, "Other Admin", "", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed, "re-approving an approved leave is a no-op")
	assert.Equal(t, "Admin", l.ApprovedBy)
	assert.Equal(t, firstApprovedAt, l.ApprovedAt)
}

func TestDecidedLeaveCannotFlip(t *testing.T) {
	l := pendingLeave()
	_, err := applyTransition(&l, models.LeaveStatusApproved, "Admin", "", time.Now())
	require.NoError(t, err)

	_, err = applyTransition(&l, models.LeaveStatusRejected, "Admin", "changed my mind", time.Now())
	assert.Error(t, err)
	assert.Equal(t, models.LeaveStatusApproved, l.Status)
}
