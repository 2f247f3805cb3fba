package period

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("period name is required")
	ErrInvalidDates  = errors.New("end date must be after start date")
	ErrInvalidBounds = errors.New("voucher bounds must be at least 1")
)

const (
	DefaultMaxVouchers            = 6
	DefaultRequiredForCertificate = 5
)

// Period is an administrator-defined date range that vouchers are tagged with
// for excellence-certificate eligibility counting. At most one period is
// active at a time and periods never overlap.
type Period struct {
	id                     uuid.UUID
	name                   string
	startDate              time.Time
	endDate                time.Time
	maxVouchers            int
	requiredForCertificate int
	active                 bool
	createdAt              time.Time
	updatedAt              time.Time
}

func NewPeriod(name string, startDate, endDate time.Time, maxVouchers, requiredForCertificate int, active bool) (*Period, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !endDate.After(startDate) {
		return nil, ErrInvalidDates
	}
	if maxVouchers < 1 || requiredForCertificate < 1 {
		return nil, ErrInvalidBounds
	}

	return &Period{
		id:                     uuid.New(),
		name:                   name,
		startDate:              startDate,
		endDate:                endDate,
		maxVouchers:            maxVouchers,
		requiredForCertificate: requiredForCertificate,
		active:                 active,
	}, nil
}

func ReconstructPeriod(id uuid.UUID, name string, startDate, endDate time.Time, maxVouchers, requiredForCertificate int, active bool, createdAt, updatedAt time.Time) *Period {
	return &Period{
		id:                     id,
		name:                   name,
		startDate:              startDate,
		endDate:                endDate,
		maxVouchers:            maxVouchers,
		requiredForCertificate: requiredForCertificate,
		active:                 active,
		createdAt:              createdAt,
		updatedAt:              updatedAt,
	}
}

// Covers reports whether the date falls inside the period, bounds inclusive.
func (p *Period) Covers(t time.Time) bool {
	return !t.Before(p.startDate) && !t.After(p.endDate)
}

// Overlaps reports whether [start, end] intersects this period.
func (p *Period) Overlaps(start, end time.Time) bool {
	return !start.After(p.endDate) && !end.Before(p.startDate)
}

func (p *Period) Deactivate() {
	p.active = false
}

func (p *Period) ID() uuid.UUID               { return p.id }
func (p *Period) Name() string                { return p.name }
func (p *Period) StartDate() time.Time        { return p.startDate }
func (p *Period) EndDate() time.Time          { return p.endDate }
func (p *Period) MaxVouchers() int            { return p.maxVouchers }
func (p *Period) RequiredForCertificate() int { return p.requiredForCertificate }
func (p *Period) IsActive() bool              { return p.active }
func (p *Period) CreatedAt() time.Time        { return p.createdAt }
func (p *Period) UpdatedAt() time.Time        { return p.updatedAt }
