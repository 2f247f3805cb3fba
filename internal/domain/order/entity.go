package order

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart        = errors.New("cart must contain at least one item")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrStatusNotForward = errors.New("order status may only move forward")
)

// Line is one ordered item with the unit price locked at order time, so later
// catalog price changes never touch a persisted order.
type Line struct {
	ProductID    uuid.UUID
	Quantity     int
	PriceAtOrder int
}

func (l Line) Cost() int {
	return l.PriceAtOrder * l.Quantity
}

type Order struct {
	id        uuid.UUID
	studentID uuid.UUID
	lines     []Line
	totalCost int
	status    Status
}

// NewOrder builds a settled order from priced lines. Lines must already be
// merged per product and priced; the total is derived, never supplied.
func NewOrder(studentID uuid.UUID, lines []Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := 0
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		total += l.Cost()
	}

	return &Order{
		id:        uuid.New(),
		studentID: studentID,
		lines:     lines,
		totalCost: total,
		status:    StatusNew,
	}, nil
}

// ReconstructOrder rehydrates a persisted order; lines may be empty when the
// caller only needs the status machine.
func ReconstructOrder(id, studentID uuid.UUID, lines []Line, totalCost int, status Status) *Order {
	return &Order{
		id:        id,
		studentID: studentID,
		lines:     lines,
		totalCost: totalCost,
		status:    status,
	}
}

// ChangeStatus enforces the forward-only lifecycle new_order -> preparing -> delivered.
func (o *Order) ChangeStatus(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !o.status.CanTransitionTo(next) {
		return ErrStatusNotForward
	}
	o.status = next
	return nil
}

func (o *Order) ID() uuid.UUID        { return o.id }
func (o *Order) StudentID() uuid.UUID { return o.studentID }
func (o *Order) Lines() []Line        { return o.lines }
func (o *Order) TotalCost() int       { return o.totalCost }
func (o *Order) Status() Status       { return o.status }
