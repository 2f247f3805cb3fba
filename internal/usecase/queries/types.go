package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type ProductView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int       `json:"price"`
	Stock       int       `json:"stock"`
	Purchases   int       `json:"purchases"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OrderItemView struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	PriceAtOrder int       `json:"price_at_order"`
}

type OrderView struct {
	ID          uuid.UUID       `json:"id"`
	StudentID   uuid.UUID       `json:"student_id"`
	StudentName string          `json:"student_name"`
	Items       []OrderItemView `json:"items"`
	TotalCost   int             `json:"total_cost"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type VoucherView struct {
	ID         uuid.UUID  `json:"id"`
	StudentID  uuid.UUID  `json:"student_id"`
	IssuedBy   uuid.UUID  `json:"issued_by"`
	OrderID    *uuid.UUID `json:"order_id,omitempty"`
	PeriodID   *uuid.UUID `json:"period_id,omitempty"`
	WeekStart  *time.Time `json:"week_start,omitempty"`
	Status     string     `json:"status"`
	ApprovedBy *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type WeeklyLogView struct {
	ID         uuid.UUID `json:"id"`
	StudentID  uuid.UUID `json:"student_id"`
	Points     int       `json:"points"`
	WeekStart  time.Time `json:"week_start"`
	ApprovedBy uuid.UUID `json:"approved_by"`
	// HasVoucher is derived from the voucher ledger, not stored on the log.
	HasVoucher bool      `json:"has_voucher"`
	CreatedAt  time.Time `json:"created_at"`
}

type PeriodView struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	StartDate              time.Time `json:"start_date"`
	EndDate                time.Time `json:"end_date"`
	MaxVouchers            int       `json:"max_vouchers"`
	RequiredForCertificate int       `json:"required_for_certificate"`
	Active                 bool      `json:"active"`
}

type StudentProfileView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Balance      int       `json:"voucher_balance"`
	WeeklyPoints int       `json:"weekly_points"`
	Certificates int       `json:"certificates"`
	IsActive     bool      `json:"is_active"`
}

type AuthorizedUserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
}
