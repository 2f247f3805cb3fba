package weeklylog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativePoints = errors.New("points cannot be negative")
	ErrZeroWeekStart  = errors.New("week start date is required")
)

// Log is one student's points entry for one calendar week. Whether the week
// also carries a voucher grant is not stored here; it is derived from the
// voucher ledger keyed by (student, week start).
type Log struct {
	id         uuid.UUID
	studentID  uuid.UUID
	points     int
	weekStart  time.Time
	approvedBy uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

func NewLog(studentID uuid.UUID, points int, weekStart time.Time, approvedBy uuid.UUID) (*Log, error) {
	if points < 0 {
		return nil, ErrNegativePoints
	}
	if weekStart.IsZero() {
		return nil, ErrZeroWeekStart
	}

	return &Log{
		id:         uuid.New(),
		studentID:  studentID,
		points:     points,
		weekStart:  WeekStart(weekStart),
		approvedBy: approvedBy,
	}, nil
}

func ReconstructLog(id, studentID uuid.UUID, points int, weekStart time.Time, approvedBy uuid.UUID, createdAt, updatedAt time.Time) *Log {
	return &Log{
		id:         id,
		studentID:  studentID,
		points:     points,
		weekStart:  weekStart,
		approvedBy: approvedBy,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (l *Log) SetPoints(points int) error {
	if points < 0 {
		return ErrNegativePoints
	}
	l.points = points
	return nil
}

func (l *Log) ID() uuid.UUID         { return l.id }
func (l *Log) StudentID() uuid.UUID  { return l.studentID }
func (l *Log) Points() int           { return l.points }
func (l *Log) WeekStart() time.Time  { return l.weekStart }
func (l *Log) ApprovedBy() uuid.UUID { return l.approvedBy }
func (l *Log) CreatedAt() time.Time  { return l.createdAt }
func (l *Log) UpdatedAt() time.Time  { return l.updatedAt }

// WeekStart normalizes any date to its calendar week key: the preceding
// Sunday at 00:00 UTC. School weeks run Sunday through Saturday.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := t.Truncate(24 * time.Hour)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
