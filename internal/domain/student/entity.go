package student

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInsufficientVouchers = errors.New("insufficient voucher balance")
	ErrNegativeAmount       = errors.New("amount cannot be negative")
)

// Account holds the per-student counters: the voucher balance the settlement
// engine debits, the weekly-points accumulator, and the certificate count.
// The balance invariant (never negative) is also enforced by the storage
// layer's conditional writes; this entity is the in-memory mirror.
type Account struct {
	studentID    uuid.UUID
	balance      int
	weeklyPoints int
	certificates int
}

func NewAccount(studentID uuid.UUID) *Account {
	return &Account{studentID: studentID}
}

func ReconstructAccount(studentID uuid.UUID, balance, weeklyPoints, certificates int) *Account {
	return &Account{
		studentID:    studentID,
		balance:      balance,
		weeklyPoints: weeklyPoints,
		certificates: certificates,
	}
}

// CanAfford reports whether the balance covers a cost in vouchers.
func (a *Account) CanAfford(cost int) bool {
	return a.balance >= cost
}

func (a *Account) Debit(amount int) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if a.balance < amount {
		return ErrInsufficientVouchers
	}
	a.balance -= amount
	return nil
}

func (a *Account) Credit(amount int) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	a.balance += amount
	return nil
}

func (a *Account) AddWeeklyPoints(delta int) {
	a.weeklyPoints += delta
	if a.weeklyPoints < 0 {
		a.weeklyPoints = 0
	}
}

func (a *Account) StudentID() uuid.UUID { return a.studentID }
func (a *Account) Balance() int         { return a.balance }
func (a *Account) WeeklyPoints() int    { return a.weeklyPoints }
func (a *Account) Certificates() int    { return a.certificates }
