package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal write-side snapshots for command validation (CQRS separation;
// the read side has its own view types under usecase/queries).

type ProductSnapshot struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       int
	Stock       int
	Purchases   int
	Active      bool
}

type AccountSnapshot struct {
	StudentID    uuid.UUID
	Balance      int
	WeeklyPoints int
	Certificates int
}

type UserSnapshot struct {
	ID       uuid.UUID
	Name     string
	Role     string
	IsActive bool
}

type OrderSnapshot struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	TotalCost int
	Status    string
}

type VoucherSnapshot struct {
	ID         uuid.UUID
	StudentID  uuid.UUID
	IssuedBy   uuid.UUID
	OrderID    *uuid.UUID
	PeriodID   *uuid.UUID
	WeekStart  *time.Time
	Status     string
	ApprovedBy *uuid.UUID
	ApprovedAt *time.Time
}

type WeeklyLogSnapshot struct {
	ID         uuid.UUID
	StudentID  uuid.UUID
	Points     int
	WeekStart  time.Time
	ApprovedBy uuid.UUID
}

type PeriodSnapshot struct {
	ID                     uuid.UUID
	Name                   string
	StartDate              time.Time
	EndDate                time.Time
	MaxVouchers            int
	RequiredForCertificate int
	Active                 bool
}
