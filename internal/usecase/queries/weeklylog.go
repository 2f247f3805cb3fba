package queries

import (
	"context"
	"time"

	"school-rewards/internal/domain/weeklylog"
	"school-rewards/internal/infra"
	"school-rewards/internal/pkg/clock"
	"school-rewards/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrWeeklyLogNotFound = errs.New("weekly points log not found")

type WeeklyLogQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*WeeklyLogView, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*WeeklyLogView, error)
	ListByApprover(ctx context.Context, approverID uuid.UUID) ([]*WeeklyLogView, error)
	CurrentWeekForStudent(ctx context.Context, studentID uuid.UUID) (*WeeklyLogView, error)
}

type WeeklyLogReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WeeklyLogView, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*WeeklyLogView, error)
	FindByApprover(ctx context.Context, approverID uuid.UUID) ([]*WeeklyLogView, error)
	FindByStudentWeek(ctx context.Context, studentID uuid.UUID, weekStart time.Time) (*WeeklyLogView, error)
}

type weeklyLogQueriesImpl struct {
	store WeeklyLogReadStore
	clock clock.Clock
}

func NewWeeklyLogQueries(store WeeklyLogReadStore, clk clock.Clock) WeeklyLogQueries {
	return &weeklyLogQueriesImpl{store: store, clock: clk}
}

func (q *weeklyLogQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*WeeklyLogView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrWeeklyLogNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *weeklyLogQueriesImpl) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*WeeklyLogView, error) {
	return q.store.FindByStudent(ctx, studentID)
}

func (q *weeklyLogQueriesImpl) ListByApprover(ctx context.Context, approverID uuid.UUID) ([]*WeeklyLogView, error) {
	return q.store.FindByApprover(ctx, approverID)
}

// CurrentWeekForStudent returns nil without error when the student has no
// entry for the running week; the dashboard renders that as "not yet scored".
func (q *weeklyLogQueriesImpl) CurrentWeekForStudent(ctx context.Context, studentID uuid.UUID) (*WeeklyLogView, error) {
	weekStart := weeklylog.WeekStart(q.clock.Now())
	view, err := q.store.FindByStudentWeek(ctx, studentID, weekStart)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return view, nil
}
