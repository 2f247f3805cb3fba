//go:build unit

package voucher_test

import (
	"testing"
	"time"

	"school-rewards/internal/domain/voucher"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherLifecycle(t *testing.T) {
	studentID := uuid.New()
	issuerID := uuid.New()
	approverID := uuid.New()
	now := time.Now()

	t.Run("pending voucher carries no approval", func(t *testing.T) {
		v := voucher.NewPending(studentID, issuerID, nil)

		assert.Equal(t, voucher.StatusPending, v.Status())
		assert.Nil(t, v.ApprovedBy())
		assert.Nil(t, v.ApprovedAt())
		assert.False(t, v.IsApproved())
		assert.False(t, v.IsRedeemed())
	})

	t.Run("approved at issue is self-approved", func(t *testing.T) {
		week := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		v := voucher.NewApproved(studentID, issuerID, nil, &week, now)

		assert.Equal(t, voucher.StatusApproved, v.Status())
		require.NotNil(t, v.ApprovedBy())
		assert.Equal(t, issuerID, *v.ApprovedBy())
		require.NotNil(t, v.WeekStart())
		assert.True(t, week.Equal(*v.WeekStart()))
	})

	t.Run("approve records the approver", func(t *testing.T) {
		v := voucher.NewPending(studentID, issuerID, nil)
		require.NoError(t, v.Approve(approverID, now))

		assert.Equal(t, voucher.StatusApproved, v.Status())
		require.NotNil(t, v.ApprovedBy())
		assert.Equal(t, approverID, *v.ApprovedBy())
	})

	t.Run("approving twice reports already in state", func(t *testing.T) {
		v := voucher.NewPending(studentID, issuerID, nil)
		require.NoError(t, v.Approve(approverID, now))
		assert.ErrorIs(t, v.Approve(approverID, now), voucher.ErrAlreadyInState)
	})

	t.Run("rejected voucher cannot be approved", func(t *testing.T) {
		v := voucher.NewPending(studentID, issuerID, nil)
		require.NoError(t, v.Reject(approverID, now))
		assert.ErrorIs(t, v.Approve(approverID, now), voucher.ErrAlreadyInState)
	})

	t.Run("rejecting twice reports already in state", func(t *testing.T) {
		v := voucher.NewPending(studentID, issuerID, nil)
		require.NoError(t, v.Reject(approverID, now))
		assert.ErrorIs(t, v.Reject(approverID, now), voucher.ErrAlreadyInState)
	})
}

func TestVoucherRedeem(t *testing.T) {
	studentID := uuid.New()
	issuerID := uuid.New()
	orderID := uuid.New()
	now := time.Now()

	t.Run("only approved vouchers redeem", func(t *testing.T) {
		v := voucher.NewPending(studentID, issuerID, nil)
		assert.ErrorIs(t, v.Redeem(orderID), voucher.ErrNotApproved)
	})

	t.Run("redeem pins the order reference", func(t *testing.T) {
		v := voucher.NewApproved(studentID, issuerID, nil, nil, now)
		require.NoError(t, v.Redeem(orderID))

		assert.True(t, v.IsRedeemed())
		require.NotNil(t, v.OrderID())
		assert.Equal(t, orderID, *v.OrderID())
	})

	t.Run("redeeming twice fails", func(t *testing.T) {
		v := voucher.NewApproved(studentID, issuerID, nil, nil, now)
		require.NoError(t, v.Redeem(orderID))
		assert.ErrorIs(t, v.Redeem(uuid.New()), voucher.ErrAlreadyRedeemed)
	})

	t.Run("redeemed voucher is immutable", func(t *testing.T) {
		v := voucher.NewApproved(studentID, issuerID, nil, nil, now)
		require.NoError(t, v.Redeem(orderID))
		assert.ErrorIs(t, v.CanDelete(), voucher.ErrRedeemedImmutable)
	})

	t.Run("unredeemed vouchers may be deleted", func(t *testing.T) {
		assert.NoError(t, voucher.NewPending(studentID, issuerID, nil).CanDelete())
		assert.NoError(t, voucher.NewApproved(studentID, issuerID, nil, nil, now).CanDelete())
	})
}

func TestVoucherStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		status, err := voucher.NewStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, status.String())
	}

	_, err := voucher.NewStatus("redeemed")
	assert.ErrorIs(t, err, voucher.ErrInvalidVoucherStatus)
}
