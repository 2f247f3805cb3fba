// Package fakeuow provides an in-memory UnitOfWork with transactional
// semantics for command tests: writes inside Within land on a copy of the
// store and are discarded when the closure errors, mirroring a rollback.
// Repository conditions (balance floor, stock floor, pending-only resolve)
// replicate the conditional UPDATEs of the real storage layer.
package fakeuow

import (
	"context"
	"sync"
	"time"

	"school-rewards/internal/domain/order"
	"school-rewards/internal/domain/period"
	"school-rewards/internal/domain/voucher"
	"school-rewards/internal/domain/weeklylog"
	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"
	"school-rewards/internal/usecase/shared"

	"github.com/google/uuid"
)

type StoredOrder struct {
	Snap  shared.OrderSnapshot
	Lines []order.Line
}

type state struct {
	Users       map[uuid.UUID]shared.UserSnapshot
	Accounts    map[uuid.UUID]shared.AccountSnapshot
	Products    map[uuid.UUID]shared.ProductSnapshot
	Orders      map[uuid.UUID]StoredOrder
	Vouchers    map[uuid.UUID]shared.VoucherSnapshot
	Logs        map[uuid.UUID]shared.WeeklyLogSnapshot
	Periods     map[uuid.UUID]shared.PeriodSnapshot
	Assignments map[[2]uuid.UUID]bool // [teacherID, studentID]
}

func newState() *state {
	return &state{
		Users:       make(map[uuid.UUID]shared.UserSnapshot),
		Accounts:    make(map[uuid.UUID]shared.AccountSnapshot),
		Products:    make(map[uuid.UUID]shared.ProductSnapshot),
		Orders:      make(map[uuid.UUID]StoredOrder),
		Vouchers:    make(map[uuid.UUID]shared.VoucherSnapshot),
		Logs:        make(map[uuid.UUID]shared.WeeklyLogSnapshot),
		Periods:     make(map[uuid.UUID]shared.PeriodSnapshot),
		Assignments: make(map[[2]uuid.UUID]bool),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.Users {
		c.Users[k] = v
	}
	for k, v := range s.Accounts {
		c.Accounts[k] = v
	}
	for k, v := range s.Products {
		c.Products[k] = v
	}
	for k, v := range s.Orders {
		lines := make([]order.Line, len(v.Lines))
		copy(lines, v.Lines)
		c.Orders[k] = StoredOrder{Snap: v.Snap, Lines: lines}
	}
	for k, v := range s.Vouchers {
		c.Vouchers[k] = v
	}
	for k, v := range s.Logs {
		c.Logs[k] = v
	}
	for k, v := range s.Periods {
		c.Periods[k] = v
	}
	for k, v := range s.Assignments {
		c.Assignments[k] = v
	}
	return c
}

// Store is the committed state plus the UnitOfWork over it.
type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

// Seed helpers. All of them write committed state directly.

func (s *Store) SeedUser(id uuid.UUID, name, role string, active bool) {
	s.st.Users[id] = shared.UserSnapshot{ID: id, Name: name, Role: role, IsActive: active}
}

func (s *Store) SeedStudent(id uuid.UUID, name string, balance int) {
	s.SeedUser(id, name, "student", true)
	s.st.Accounts[id] = shared.AccountSnapshot{StudentID: id, Balance: balance}
}

func (s *Store) SeedInactiveStudent(id uuid.UUID, name string) {
	s.SeedUser(id, name, "student", false)
	s.st.Accounts[id] = shared.AccountSnapshot{StudentID: id}
}

func (s *Store) SeedProduct(p shared.ProductSnapshot) {
	s.st.Products[p.ID] = p
}

func (s *Store) SeedVoucher(v shared.VoucherSnapshot) {
	s.st.Vouchers[v.ID] = v
}

func (s *Store) SeedOrder(o shared.OrderSnapshot) {
	s.st.Orders[o.ID] = StoredOrder{Snap: o}
}

func (s *Store) SeedLog(l shared.WeeklyLogSnapshot) {
	s.st.Logs[l.ID] = l
}

func (s *Store) SeedPeriod(p shared.PeriodSnapshot) {
	s.st.Periods[p.ID] = p
}

func (s *Store) Assign(teacherID, studentID uuid.UUID) {
	s.st.Assignments[[2]uuid.UUID{teacherID, studentID}] = true
}

// Committed state accessors for assertions.

func (s *Store) Account(studentID uuid.UUID) shared.AccountSnapshot {
	return s.st.Accounts[studentID]
}

func (s *Store) Product(id uuid.UUID) shared.ProductSnapshot {
	return s.st.Products[id]
}

func (s *Store) Voucher(id uuid.UUID) (shared.VoucherSnapshot, bool) {
	v, ok := s.st.Vouchers[id]
	return v, ok
}

func (s *Store) VoucherCount() int {
	return len(s.st.Vouchers)
}

func (s *Store) Order(id uuid.UUID) (StoredOrder, bool) {
	o, ok := s.st.Orders[id]
	return o, ok
}

func (s *Store) OrderCount() int {
	return len(s.st.Orders)
}

func (s *Store) Log(id uuid.UUID) (shared.WeeklyLogSnapshot, bool) {
	l, ok := s.st.Logs[id]
	return l, ok
}

func (s *Store) LogCount() int {
	return len(s.st.Logs)
}

func (s *Store) Period(id uuid.UUID) (shared.PeriodSnapshot, bool) {
	p, ok := s.st.Periods[id]
	return p, ok
}

// UnitOfWork implementation.

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.st.clone()
	if err := fn(ctx, &fakeTx{st: working}); err != nil {
		return err
	}
	s.st = working
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{st: func() *state { return s.st }}
}

type fakeTx struct {
	st *state
}

func (t *fakeTx) Orders() shared.OrderRepository         { return &orderRepo{st: t.st} }
func (t *fakeTx) Vouchers() shared.VoucherRepository     { return &voucherRepo{st: t.st} }
func (t *fakeTx) WeeklyLogs() shared.WeeklyLogRepository { return &weeklyLogRepo{st: t.st} }
func (t *fakeTx) Products() shared.ProductRepository     { return &productRepo{st: t.st} }
func (t *fakeTx) Accounts() shared.AccountRepository     { return &accountRepo{st: t.st} }
func (t *fakeTx) Periods() shared.PeriodRepository       { return &periodRepo{st: t.st} }
func (t *fakeTx) Reads() shared.CommandReads {
	return &reads{st: func() *state { return t.st }}
}
func (t *fakeTx) DB() db.DBTX { return nil }

func notFound(entity string) error {
	return infra.WrapRepoErr(entity+" not found", nil, infra.KindNotFound)
}

func conflict(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindConflict)
}

func duplicate(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindDuplicateKey)
}

// reads resolves the state lazily so the same value works for committed and
// transactional views.
type reads struct {
	st func() *state
}

func (r *reads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	p, ok := r.st().Products[id]
	if !ok {
		return nil, notFound("product")
	}
	return &p, nil
}

func (r *reads) AccountByStudent(_ context.Context, studentID uuid.UUID) (*shared.AccountSnapshot, error) {
	a, ok := r.st().Accounts[studentID]
	if !ok {
		return nil, notFound("account")
	}
	return &a, nil
}

func (r *reads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	u, ok := r.st().Users[id]
	if !ok {
		return nil, notFound("user")
	}
	return &u, nil
}

func (r *reads) IsAssignedTeacher(_ context.Context, teacherID, studentID uuid.UUID) (bool, error) {
	return r.st().Assignments[[2]uuid.UUID{teacherID, studentID}], nil
}

func (r *reads) OrderByID(_ context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	o, ok := r.st().Orders[id]
	if !ok {
		return nil, notFound("order")
	}
	snap := o.Snap
	return &snap, nil
}

func (r *reads) VoucherByID(_ context.Context, id uuid.UUID) (*shared.VoucherSnapshot, error) {
	v, ok := r.st().Vouchers[id]
	if !ok {
		return nil, notFound("voucher")
	}
	return &v, nil
}

func (r *reads) VoucherByStudentWeek(_ context.Context, studentID uuid.UUID, weekStart time.Time) (*shared.VoucherSnapshot, error) {
	for _, v := range r.st().Vouchers {
		if v.StudentID == studentID && v.WeekStart != nil && v.WeekStart.Equal(weekStart) {
			found := v
			return &found, nil
		}
	}
	return nil, notFound("voucher")
}

func (r *reads) WeeklyLogByID(_ context.Context, id uuid.UUID) (*shared.WeeklyLogSnapshot, error) {
	l, ok := r.st().Logs[id]
	if !ok {
		return nil, notFound("weekly log")
	}
	return &l, nil
}

func (r *reads) PeriodByID(_ context.Context, id uuid.UUID) (*shared.PeriodSnapshot, error) {
	p, ok := r.st().Periods[id]
	if !ok {
		return nil, notFound("period")
	}
	return &p, nil
}

func (r *reads) PeriodForDate(_ context.Context, at time.Time) (*shared.PeriodSnapshot, error) {
	for _, p := range r.st().Periods {
		if !at.Before(p.StartDate) && !at.After(p.EndDate) {
			found := p
			return &found, nil
		}
	}
	return nil, notFound("period")
}

func (r *reads) ActivePeriod(_ context.Context) (*shared.PeriodSnapshot, error) {
	for _, p := range r.st().Periods {
		if p.Active {
			found := p
			return &found, nil
		}
	}
	return nil, notFound("period")
}

func (r *reads) HasOverlappingPeriod(_ context.Context, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	for _, p := range r.st().Periods {
		if p.ID == excludeID {
			continue
		}
		if !start.After(p.EndDate) && !end.Before(p.StartDate) {
			return true, nil
		}
	}
	return false, nil
}

type orderRepo struct {
	st *state
}

func (r *orderRepo) Create(_ context.Context, _ db.DBTX, o *order.Order) (uuid.UUID, error) {
	lines := make([]order.Line, len(o.Lines()))
	copy(lines, o.Lines())
	r.st.Orders[o.ID()] = StoredOrder{
		Snap: shared.OrderSnapshot{
			ID:        o.ID(),
			StudentID: o.StudentID(),
			TotalCost: o.TotalCost(),
			Status:    o.Status().String(),
		},
		Lines: lines,
	}
	return o.ID(), nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, _ db.DBTX, orderID uuid.UUID, status order.Status) error {
	o, ok := r.st.Orders[orderID]
	if !ok {
		return notFound("order")
	}
	o.Snap.Status = status.String()
	r.st.Orders[orderID] = o
	return nil
}

type voucherRepo struct {
	st *state
}

func (r *voucherRepo) Create(_ context.Context, _ db.DBTX, v *voucher.Voucher) (uuid.UUID, error) {
	if v.WeekStart() != nil {
		for _, existing := range r.st.Vouchers {
			if existing.StudentID == v.StudentID() && existing.WeekStart != nil && existing.WeekStart.Equal(*v.WeekStart()) {
				return uuid.Nil, duplicate("voucher week already granted")
			}
		}
	}
	r.st.Vouchers[v.ID()] = shared.VoucherSnapshot{
		ID:         v.ID(),
		StudentID:  v.StudentID(),
		IssuedBy:   v.IssuedBy(),
		OrderID:    v.OrderID(),
		PeriodID:   v.PeriodID(),
		WeekStart:  v.WeekStart(),
		Status:     v.Status().String(),
		ApprovedBy: v.ApprovedBy(),
		ApprovedAt: v.ApprovedAt(),
	}
	return v.ID(), nil
}

func (r *voucherRepo) Resolve(_ context.Context, _ db.DBTX, voucherID, approverID uuid.UUID, status voucher.Status, at time.Time) error {
	v, ok := r.st.Vouchers[voucherID]
	if !ok || v.Status != voucher.StatusPending.String() {
		return conflict("voucher is not pending")
	}
	approver := approverID
	when := at
	v.Status = status.String()
	v.ApprovedBy = &approver
	v.ApprovedAt = &when
	r.st.Vouchers[voucherID] = v
	return nil
}

func (r *voucherRepo) MarkRedeemed(_ context.Context, _ db.DBTX, voucherID, orderID uuid.UUID) error {
	v, ok := r.st.Vouchers[voucherID]
	if !ok || v.Status != voucher.StatusApproved.String() || v.OrderID != nil {
		return conflict("voucher is not redeemable")
	}
	oid := orderID
	v.OrderID = &oid
	r.st.Vouchers[voucherID] = v
	return nil
}

func (r *voucherRepo) Delete(_ context.Context, _ db.DBTX, voucherID uuid.UUID) error {
	snap, ok := r.st.Vouchers[voucherID]
	if !ok || snap.OrderID != nil {
		return conflict("voucher is not deletable")
	}
	delete(r.st.Vouchers, voucherID)
	return nil
}

type weeklyLogRepo struct {
	st *state
}

func (r *weeklyLogRepo) Create(_ context.Context, _ db.DBTX, l *weeklylog.Log) (uuid.UUID, error) {
	for _, existing := range r.st.Logs {
		if existing.StudentID == l.StudentID() && existing.WeekStart.Equal(l.WeekStart()) {
			return uuid.Nil, duplicate("week already logged")
		}
	}
	r.st.Logs[l.ID()] = shared.WeeklyLogSnapshot{
		ID:         l.ID(),
		StudentID:  l.StudentID(),
		Points:     l.Points(),
		WeekStart:  l.WeekStart(),
		ApprovedBy: l.ApprovedBy(),
	}
	return l.ID(), nil
}

func (r *weeklyLogRepo) UpdatePoints(_ context.Context, _ db.DBTX, logID uuid.UUID, points int) error {
	l, ok := r.st.Logs[logID]
	if !ok {
		return notFound("weekly log")
	}
	l.Points = points
	r.st.Logs[logID] = l
	return nil
}

func (r *weeklyLogRepo) Delete(_ context.Context, _ db.DBTX, logID uuid.UUID) error {
	if _, ok := r.st.Logs[logID]; !ok {
		return notFound("weekly log")
	}
	delete(r.st.Logs, logID)
	return nil
}

type productRepo struct {
	st *state
}

func (r *productRepo) Create(_ context.Context, _ db.DBTX, name, description string, price, stock int) (uuid.UUID, error) {
	id := uuid.New()
	r.st.Products[id] = shared.ProductSnapshot{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Active:      true,
	}
	return id, nil
}

func (r *productRepo) Update(_ context.Context, _ db.DBTX, id uuid.UUID, name, description string, price int, active bool) error {
	p, ok := r.st.Products[id]
	if !ok {
		return notFound("product")
	}
	p.Name = name
	p.Description = description
	p.Price = price
	p.Active = active
	r.st.Products[id] = p
	return nil
}

func (r *productRepo) DebitStock(_ context.Context, _ db.DBTX, productID uuid.UUID, qty int) error {
	p, ok := r.st.Products[productID]
	if !ok || !p.Active || p.Stock < qty {
		return conflict("stock does not cover the quantity")
	}
	p.Stock -= qty
	p.Purchases += qty
	r.st.Products[productID] = p
	return nil
}

func (r *productRepo) AdjustStock(_ context.Context, _ db.DBTX, productID uuid.UUID, delta int) error {
	p, ok := r.st.Products[productID]
	if !ok {
		return notFound("product")
	}
	if p.Stock+delta < 0 {
		return conflict("stock cannot go negative")
	}
	p.Stock += delta
	r.st.Products[productID] = p
	return nil
}

type accountRepo struct {
	st *state
}

func (r *accountRepo) DebitBalance(_ context.Context, _ db.DBTX, studentID uuid.UUID, amount int) error {
	a, ok := r.st.Accounts[studentID]
	if !ok || a.Balance < amount {
		return conflict("balance does not cover the amount")
	}
	a.Balance -= amount
	r.st.Accounts[studentID] = a
	return nil
}

func (r *accountRepo) CreditBalance(_ context.Context, _ db.DBTX, studentID uuid.UUID, amount int) error {
	a, ok := r.st.Accounts[studentID]
	if !ok {
		return notFound("account")
	}
	a.Balance += amount
	r.st.Accounts[studentID] = a
	return nil
}

func (r *accountRepo) AddWeeklyPoints(_ context.Context, _ db.DBTX, studentID uuid.UUID, delta int) error {
	a, ok := r.st.Accounts[studentID]
	if !ok {
		return notFound("account")
	}
	a.WeeklyPoints += delta
	if a.WeeklyPoints < 0 {
		a.WeeklyPoints = 0
	}
	r.st.Accounts[studentID] = a
	return nil
}

type periodRepo struct {
	st *state
}

func (r *periodRepo) Create(_ context.Context, _ db.DBTX, p *period.Period) (uuid.UUID, error) {
	r.st.Periods[p.ID()] = shared.PeriodSnapshot{
		ID:                     p.ID(),
		Name:                   p.Name(),
		StartDate:              p.StartDate(),
		EndDate:                p.EndDate(),
		MaxVouchers:            p.MaxVouchers(),
		RequiredForCertificate: p.RequiredForCertificate(),
		Active:                 p.IsActive(),
	}
	return p.ID(), nil
}

func (r *periodRepo) Update(_ context.Context, _ db.DBTX, p *period.Period) error {
	if _, ok := r.st.Periods[p.ID()]; !ok {
		return notFound("period")
	}
	r.st.Periods[p.ID()] = shared.PeriodSnapshot{
		ID:                     p.ID(),
		Name:                   p.Name(),
		StartDate:              p.StartDate(),
		EndDate:                p.EndDate(),
		MaxVouchers:            p.MaxVouchers(),
		RequiredForCertificate: p.RequiredForCertificate(),
		Active:                 p.IsActive(),
	}
	return nil
}

func (r *periodRepo) Deactivate(_ context.Context, _ db.DBTX, periodID uuid.UUID) error {
	p, ok := r.st.Periods[periodID]
	if !ok {
		return notFound("period")
	}
	p.Active = false
	r.st.Periods[periodID] = p
	return nil
}
