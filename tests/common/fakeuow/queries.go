package fakeuow

import (
	"context"

	"school-rewards/internal/usecase/queries"

	"github.com/google/uuid"
)

// Read-side fakes backed by the same committed state, so commands that
// re-read their result after the transaction see what they wrote.

type OrderQueries struct {
	Store *Store
}

func (q *OrderQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.OrderView, error) {
	o, ok := q.Store.Order(id)
	if !ok {
		return nil, queries.ErrOrderNotFound
	}
	return q.view(o), nil
}

func (q *OrderQueries) ListByStudent(_ context.Context, studentID uuid.UUID) ([]*queries.OrderView, error) {
	var views []*queries.OrderView
	for _, o := range q.Store.st.Orders {
		if o.Snap.StudentID == studentID {
			views = append(views, q.view(o))
		}
	}
	return views, nil
}

func (q *OrderQueries) ListByStatus(_ context.Context, status string) ([]*queries.OrderView, error) {
	var views []*queries.OrderView
	for _, o := range q.Store.st.Orders {
		if o.Snap.Status == status {
			views = append(views, q.view(o))
		}
	}
	return views, nil
}

func (q *OrderQueries) ListAll(_ context.Context) ([]*queries.OrderView, error) {
	var views []*queries.OrderView
	for _, o := range q.Store.st.Orders {
		views = append(views, q.view(o))
	}
	return views, nil
}

func (q *OrderQueries) view(o StoredOrder) *queries.OrderView {
	items := make([]queries.OrderItemView, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, queries.OrderItemView{
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			PriceAtOrder: l.PriceAtOrder,
		})
	}
	return &queries.OrderView{
		ID:        o.Snap.ID,
		StudentID: o.Snap.StudentID,
		Items:     items,
		TotalCost: o.Snap.TotalCost,
		Status:    o.Snap.Status,
	}
}

type VoucherQueries struct {
	Store *Store
}

func (q *VoucherQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.VoucherView, error) {
	v, ok := q.Store.Voucher(id)
	if !ok {
		return nil, queries.ErrVoucherNotFound
	}
	return &queries.VoucherView{
		ID:         v.ID,
		StudentID:  v.StudentID,
		IssuedBy:   v.IssuedBy,
		OrderID:    v.OrderID,
		PeriodID:   v.PeriodID,
		WeekStart:  v.WeekStart,
		Status:     v.Status,
		ApprovedBy: v.ApprovedBy,
		ApprovedAt: v.ApprovedAt,
	}, nil
}

func (q *VoucherQueries) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*queries.VoucherView, error) {
	var views []*queries.VoucherView
	for id, v := range q.Store.st.Vouchers {
		if v.StudentID == studentID {
			view, _ := q.GetByID(ctx, id)
			views = append(views, view)
		}
	}
	return views, nil
}

func (q *VoucherQueries) ListUnredeemedByStudent(ctx context.Context, studentID uuid.UUID) ([]*queries.VoucherView, error) {
	var views []*queries.VoucherView
	for id, v := range q.Store.st.Vouchers {
		if v.StudentID == studentID && v.Status == "approved" && v.OrderID == nil {
			view, _ := q.GetByID(ctx, id)
			views = append(views, view)
		}
	}
	return views, nil
}

func (q *VoucherQueries) ListByIssuer(ctx context.Context, issuerID uuid.UUID) ([]*queries.VoucherView, error) {
	var views []*queries.VoucherView
	for id, v := range q.Store.st.Vouchers {
		if v.IssuedBy == issuerID {
			view, _ := q.GetByID(ctx, id)
			views = append(views, view)
		}
	}
	return views, nil
}

type WeeklyLogQueries struct {
	Store *Store
}

func (q *WeeklyLogQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.WeeklyLogView, error) {
	l, ok := q.Store.Log(id)
	if !ok {
		return nil, queries.ErrWeeklyLogNotFound
	}
	hasVoucher := false
	for _, v := range q.Store.st.Vouchers {
		if v.StudentID == l.StudentID && v.WeekStart != nil && v.WeekStart.Equal(l.WeekStart) {
			hasVoucher = true
			break
		}
	}
	return &queries.WeeklyLogView{
		ID:         l.ID,
		StudentID:  l.StudentID,
		Points:     l.Points,
		WeekStart:  l.WeekStart,
		ApprovedBy: l.ApprovedBy,
		HasVoucher: hasVoucher,
	}, nil
}

func (q *WeeklyLogQueries) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*queries.WeeklyLogView, error) {
	var views []*queries.WeeklyLogView
	for id, l := range q.Store.st.Logs {
		if l.StudentID == studentID {
			view, _ := q.GetByID(ctx, id)
			views = append(views, view)
		}
	}
	return views, nil
}

func (q *WeeklyLogQueries) ListByApprover(ctx context.Context, approverID uuid.UUID) ([]*queries.WeeklyLogView, error) {
	var views []*queries.WeeklyLogView
	for id, l := range q.Store.st.Logs {
		if l.ApprovedBy == approverID {
			view, _ := q.GetByID(ctx, id)
			views = append(views, view)
		}
	}
	return views, nil
}

func (q *WeeklyLogQueries) CurrentWeekForStudent(_ context.Context, _ uuid.UUID) (*queries.WeeklyLogView, error) {
	return nil, queries.ErrWeeklyLogNotFound
}

type ProductQueries struct {
	Store *Store
}

func (q *ProductQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.ProductView, error) {
	p, ok := q.Store.st.Products[id]
	if !ok {
		return nil, queries.ErrProductNotFound
	}
	return &queries.ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Purchases:   p.Purchases,
		Active:      p.Active,
	}, nil
}

func (q *ProductQueries) ListAll(ctx context.Context) ([]*queries.ProductView, error) {
	var views []*queries.ProductView
	for id := range q.Store.st.Products {
		view, _ := q.GetByID(ctx, id)
		views = append(views, view)
	}
	return views, nil
}

func (q *ProductQueries) ListAvailable(ctx context.Context) ([]*queries.ProductView, error) {
	var views []*queries.ProductView
	for id, p := range q.Store.st.Products {
		if p.Active && p.Stock > 0 {
			view, _ := q.GetByID(ctx, id)
			views = append(views, view)
		}
	}
	return views, nil
}

type PeriodQueries struct {
	Store *Store
}

func (q *PeriodQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.PeriodView, error) {
	p, ok := q.Store.Period(id)
	if !ok {
		return nil, queries.ErrPeriodNotFound
	}
	return &queries.PeriodView{
		ID:                     p.ID,
		Name:                   p.Name,
		StartDate:              p.StartDate,
		EndDate:                p.EndDate,
		MaxVouchers:            p.MaxVouchers,
		RequiredForCertificate: p.RequiredForCertificate,
		Active:                 p.Active,
	}, nil
}

func (q *PeriodQueries) GetActive(ctx context.Context) (*queries.PeriodView, error) {
	for id, p := range q.Store.st.Periods {
		if p.Active {
			return q.GetByID(ctx, id)
		}
	}
	return nil, queries.ErrNoActivePeriod
}

func (q *PeriodQueries) ListAll(ctx context.Context) ([]*queries.PeriodView, error) {
	var views []*queries.PeriodView
	for id := range q.Store.st.Periods {
		view, _ := q.GetByID(ctx, id)
		views = append(views, view)
	}
	return views, nil
}
