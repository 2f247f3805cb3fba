package voucher

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyInState    = errors.New("voucher has already been resolved")
	ErrNotApproved       = errors.New("only approved vouchers can be redeemed")
	ErrAlreadyRedeemed   = errors.New("voucher has already been redeemed")
	ErrRedeemedImmutable = errors.New("redeemed vouchers cannot be deleted")
)

// Voucher is one unit of redeemable credit. Lifecycle:
// pending -> approved | rejected; approved -> redeemed (order set, terminal).
// A voucher with a non-nil order reference is approved by invariant and must
// never be deleted or have the reference cleared.
type Voucher struct {
	id         uuid.UUID
	studentID  uuid.UUID
	issuedBy   uuid.UUID
	orderID    *uuid.UUID
	periodID   *uuid.UUID
	weekStart  *time.Time
	status     Status
	approvedBy *uuid.UUID
	approvedAt *time.Time
}

// NewPending issues an unapproved voucher; it carries no balance effect until
// an authorized approver acts on it.
func NewPending(studentID, issuedBy uuid.UUID, periodID *uuid.UUID) *Voucher {
	return &Voucher{
		id:        uuid.New(),
		studentID: studentID,
		issuedBy:  issuedBy,
		periodID:  periodID,
		status:    StatusPending,
	}
}

// NewApproved issues a voucher that is approved at creation: teacher issuing
// to their own assigned student, or the self-approving weekly grant.
func NewApproved(studentID, issuedBy uuid.UUID, periodID *uuid.UUID, weekStart *time.Time, now time.Time) *Voucher {
	approver := issuedBy
	return &Voucher{
		id:         uuid.New(),
		studentID:  studentID,
		issuedBy:   issuedBy,
		periodID:   periodID,
		weekStart:  weekStart,
		status:     StatusApproved,
		approvedBy: &approver,
		approvedAt: &now,
	}
}

// ReconstructVoucher rehydrates a persisted voucher so the write path can run
// transitions through the entity before touching the database.
func ReconstructVoucher(
	id, studentID, issuedBy uuid.UUID,
	orderID, periodID *uuid.UUID,
	weekStart *time.Time,
	status Status,
	approvedBy *uuid.UUID,
	approvedAt *time.Time,
) *Voucher {
	return &Voucher{
		id:         id,
		studentID:  studentID,
		issuedBy:   issuedBy,
		orderID:    orderID,
		periodID:   periodID,
		weekStart:  weekStart,
		status:     status,
		approvedBy: approvedBy,
		approvedAt: approvedAt,
	}
}

// Approve and Reject are single-shot: any voucher that already left pending,
// in either direction, reports ErrAlreadyInState.
func (v *Voucher) Approve(approverID uuid.UUID, now time.Time) error {
	if v.status != StatusPending {
		return ErrAlreadyInState
	}
	v.status = StatusApproved
	v.approvedBy = &approverID
	v.approvedAt = &now
	return nil
}

func (v *Voucher) Reject(approverID uuid.UUID, now time.Time) error {
	if v.status != StatusPending {
		return ErrAlreadyInState
	}
	v.status = StatusRejected
	v.approvedBy = &approverID
	v.approvedAt = &now
	return nil
}

func (v *Voucher) Redeem(orderID uuid.UUID) error {
	if v.orderID != nil {
		return ErrAlreadyRedeemed
	}
	if v.status != StatusApproved {
		return ErrNotApproved
	}
	v.orderID = &orderID
	return nil
}

// CanDelete: redemption pins the voucher forever; everything else may go.
func (v *Voucher) CanDelete() error {
	if v.orderID != nil {
		return ErrRedeemedImmutable
	}
	return nil
}

func (v *Voucher) IsRedeemed() bool { return v.orderID != nil }
func (v *Voucher) IsApproved() bool { return v.status == StatusApproved }

func (v *Voucher) ID() uuid.UUID          { return v.id }
func (v *Voucher) StudentID() uuid.UUID   { return v.studentID }
func (v *Voucher) IssuedBy() uuid.UUID    { return v.issuedBy }
func (v *Voucher) OrderID() *uuid.UUID    { return v.orderID }
func (v *Voucher) PeriodID() *uuid.UUID   { return v.periodID }
func (v *Voucher) WeekStart() *time.Time  { return v.weekStart }
func (v *Voucher) Status() Status         { return v.status }
func (v *Voucher) ApprovedBy() *uuid.UUID { return v.approvedBy }
func (v *Voucher) ApprovedAt() *time.Time { return v.approvedAt }
