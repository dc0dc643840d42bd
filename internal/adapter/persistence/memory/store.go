package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"
)

// Store is an in-process IWorkflowStore with optimistic concurrency.
//
// Transactions read committed rows under the store mutex and stage their
// writes privately. Commit re-validates every staged row against the committed
// revision and applies all of them, or none, under the same mutex.
type Store struct {
	mu sync.Mutex

	orders       map[string]entities.Order
	estimates    map[string]entities.CostEstimate
	parts        map[string]entities.Part
	reservations map[string]entities.PartUsageReservation
	sessions     map[string]entities.InventorySession

	statusHistory   []entities.StatusHistoryEntry
	estimateHistory []entities.EstimateHistoryEntry
	movements       []entities.StockMovement
	feePayments     []entities.FeePayment
}

var _ interfaces.IWorkflowStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		orders:       make(map[string]entities.Order),
		estimates:    make(map[string]entities.CostEstimate),
		parts:        make(map[string]entities.Part),
		reservations: make(map[string]entities.PartUsageReservation),
		sessions:     make(map[string]entities.InventorySession),
	}
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.IWorkflowTx) error) error {
	t := &tx{
		s:            s,
		orders:       staged[entities.Order]{},
		estimates:    staged[entities.CostEstimate]{},
		parts:        staged[entities.Part]{},
		reservations: staged[entities.PartUsageReservation]{},
		sessions:     staged[entities.InventorySession]{},
	}
	if err := fn(ctx, t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.commit()
}

type stagedRow[T any] struct {
	val    T
	create bool
	expect int64
}

type staged[T any] map[string]stagedRow[T]

type tx struct {
	s *Store

	orders       staged[entities.Order]
	estimates    staged[entities.CostEstimate]
	parts        staged[entities.Part]
	reservations staged[entities.PartUsageReservation]
	sessions     staged[entities.InventorySession]

	statusHistory   []entities.StatusHistoryEntry
	estimateHistory []entities.EstimateHistoryEntry
	movements       []entities.StockMovement
	feePayments     []entities.FeePayment
}

func lookup[T any](committed map[string]T, st staged[T], key string) (T, bool) {
	if r, ok := st[key]; ok {
		return r.val, true
	}
	v, ok := committed[key]
	return v, ok
}

// stage records a write. Rows staged earlier in the same transaction keep
// their original commit condition.
func stage[T any](committed map[string]T, st staged[T], key string, val T, rev func(T) int64, readRev int64, what string) error {
	if r, ok := st[key]; ok {
		if rev(r.val) != readRev {
			return entities.ConcurrentModification(what, key)
		}
		st[key] = stagedRow[T]{val: val, create: r.create, expect: r.expect}
		return nil
	}
	cur, ok := committed[key]
	if !ok {
		return entities.NotFound(what, key)
	}
	if rev(cur) != readRev {
		return entities.ConcurrentModification(what, key)
	}
	st[key] = stagedRow[T]{val: val, expect: readRev}
	return nil
}

func stageCreate[T any](committed map[string]T, st staged[T], key string, val T, what string) error {
	if _, ok := lookup(committed, st, key); ok {
		return entities.NewDomainError(entities.ErrAlreadyExists, "%s %q", what, key)
	}
	st[key] = stagedRow[T]{val: val, create: true}
	return nil
}

func validate[T any](committed map[string]T, st staged[T], rev func(T) int64, what string) error {
	for key, r := range st {
		cur, ok := committed[key]
		if r.create {
			if ok {
				return entities.ConcurrentModification(what, key)
			}
			continue
		}
		if !ok || rev(cur) != r.expect {
			return entities.ConcurrentModification(what, key)
		}
	}
	return nil
}

func apply[T any](committed map[string]T, st staged[T]) {
	for key, r := range st {
		committed[key] = r.val
	}
}

func orderRev(o entities.Order) int64 { return o.Revision }
func estimateRev(e entities.CostEstimate) int64 { return e.Revision }
func partRev(p entities.Part) int64 { return p.Revision }
func reservationRev(r entities.PartUsageReservation) int64 { return r.Revision }
func sessionRev(s entities.InventorySession) int64 { return s.Revision }

func (t *tx) commit() error {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validate(s.orders, t.orders, orderRev, "order"); err != nil {
		return err
	}
	if err := validate(s.estimates, t.estimates, estimateRev, "estimate"); err != nil {
		return err
	}
	if err := validate(s.parts, t.parts, partRev, "part"); err != nil {
		return err
	}
	if err := validate(s.reservations, t.reservations, reservationRev, "reservation"); err != nil {
		return err
	}
	if err := validate(s.sessions, t.sessions, sessionRev, "inventory session"); err != nil {
		return err
	}

	apply(s.orders, t.orders)
	apply(s.estimates, t.estimates)
	apply(s.parts, t.parts)
	apply(s.reservations, t.reservations)
	apply(s.sessions, t.sessions)
	s.statusHistory = append(s.statusHistory, t.statusHistory...)
	s.estimateHistory = append(s.estimateHistory, t.estimateHistory...)
	s.movements = append(s.movements, t.movements...)
	s.feePayments = append(s.feePayments, t.feePayments...)
	return nil
}

func estimateKey(orderNumber string, version int) string {
	return orderNumber + "#" + strconv.Itoa(version)
}

func reservationKey(orderNumber, id string) string {
	return orderNumber + "#" + id
}

// orders

func (t *tx) GetOrder(_ context.Context, number string) (entities.Order, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	o, ok := lookup(t.s.orders, t.orders, number)
	if !ok {
		return entities.Order{}, entities.NotFound("order", number)
	}
	return cloneOrder(o), nil
}

func (t *tx) CreateOrder(_ context.Context, o *entities.Order) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	o.Revision = 1
	return stageCreate(t.s.orders, t.orders, o.Number, cloneOrder(*o), "order")
}

func (t *tx) UpdateOrder(_ context.Context, o *entities.Order) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	next := cloneOrder(*o)
	next.Revision++
	if err := stage(t.s.orders, t.orders, o.Number, next, orderRev, o.Revision, "order"); err != nil {
		return err
	}
	o.Revision = next.Revision
	return nil
}

func (t *tx) AppendStatusHistory(_ context.Context, h entities.StatusHistoryEntry) error {
	t.statusHistory = append(t.statusHistory, h)
	return nil
}

func (t *tx) ListStatusHistory(_ context.Context, orderNumber string) ([]entities.StatusHistoryEntry, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []entities.StatusHistoryEntry
	for _, h := range append(append([]entities.StatusHistoryEntry(nil), t.s.statusHistory...), t.statusHistory...) {
		if h.OrderNumber == orderNumber {
			out = append(out, h)
		}
	}
	return out, nil
}

// estimates

func (t *tx) GetEstimate(_ context.Context, orderNumber string, version int) (entities.CostEstimate, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	key := estimateKey(orderNumber, version)
	e, ok := lookup(t.s.estimates, t.estimates, key)
	if !ok {
		return entities.CostEstimate{}, entities.NotFound("estimate", key)
	}
	return e, nil
}

func (t *tx) ListEstimates(_ context.Context, orderNumber string) ([]entities.CostEstimate, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	seen := map[string]bool{}
	var out []entities.CostEstimate
	for key, r := range t.estimates {
		if r.val.OrderNumber == orderNumber {
			out = append(out, r.val)
			seen[key] = true
		}
	}
	for key, e := range t.s.estimates {
		if e.OrderNumber == orderNumber && !seen[key] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func (t *tx) CreateEstimate(_ context.Context, e *entities.CostEstimate) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	e.Revision = 1
	key := estimateKey(e.OrderNumber, e.Version)
	if err := stageCreate(t.s.estimates, t.estimates, key, *e, "estimate"); err != nil {
		return entities.ConcurrentModification("estimate", key)
	}
	return nil
}

func (t *tx) UpdateEstimate(_ context.Context, e *entities.CostEstimate) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	next := *e
	next.Revision++
	if err := stage(t.s.estimates, t.estimates, estimateKey(e.OrderNumber, e.Version), next, estimateRev, e.Revision, "estimate"); err != nil {
		return err
	}
	e.Revision = next.Revision
	return nil
}

func (t *tx) AppendEstimateHistory(_ context.Context, h entities.EstimateHistoryEntry) error {
	t.estimateHistory = append(t.estimateHistory, h)
	return nil
}

func (t *tx) ListEstimateHistory(_ context.Context, orderNumber string, version int) ([]entities.EstimateHistoryEntry, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []entities.EstimateHistoryEntry
	for _, h := range append(append([]entities.EstimateHistoryEntry(nil), t.s.estimateHistory...), t.estimateHistory...) {
		if h.OrderNumber == orderNumber && h.EstimateVersion == version {
			out = append(out, h)
		}
	}
	return out, nil
}

// parts and ledger

func (t *tx) GetPart(_ context.Context, id string) (entities.Part, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	p, ok := lookup(t.s.parts, t.parts, id)
	if !ok {
		return entities.Part{}, entities.NotFound("part", id)
	}
	return p, nil
}

func (t *tx) ListParts(_ context.Context) ([]entities.Part, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	out := make([]entities.Part, 0, len(t.s.parts)+len(t.parts))
	for id, p := range t.s.parts {
		if r, ok := t.parts[id]; ok {
			p = r.val
		}
		out = append(out, p)
	}
	for id, r := range t.parts {
		if _, ok := t.s.parts[id]; !ok {
			out = append(out, r.val)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *tx) CreatePart(_ context.Context, p *entities.Part) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	p.Revision = 1
	return stageCreate(t.s.parts, t.parts, p.ID, *p, "part")
}

func (t *tx) UpdatePart(_ context.Context, p *entities.Part) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	next := *p
	next.Revision++
	if err := stage(t.s.parts, t.parts, p.ID, next, partRev, p.Revision, "part"); err != nil {
		return err
	}
	p.Revision = next.Revision
	return nil
}

func (t *tx) AppendMovement(_ context.Context, m entities.StockMovement) error {
	t.movements = append(t.movements, m)
	return nil
}

func (t *tx) ListMovements(_ context.Context, partID string) ([]entities.StockMovement, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []entities.StockMovement
	for _, m := range append(append([]entities.StockMovement(nil), t.s.movements...), t.movements...) {
		if m.PartID == partID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

// reservations

func (t *tx) GetReservation(_ context.Context, orderNumber, id string) (entities.PartUsageReservation, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	r, ok := lookup(t.s.reservations, t.reservations, reservationKey(orderNumber, id))
	if !ok {
		return entities.PartUsageReservation{}, entities.NotFound("reservation", id)
	}
	return r, nil
}

func (t *tx) ListReservations(_ context.Context, orderNumber string) ([]entities.PartUsageReservation, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []entities.PartUsageReservation
	for key, r := range t.s.reservations {
		if r.OrderNumber != orderNumber {
			continue
		}
		if st, ok := t.reservations[key]; ok {
			r = st.val
		}
		out = append(out, r)
	}
	for key, st := range t.reservations {
		if _, ok := t.s.reservations[key]; !ok && st.val.OrderNumber == orderNumber {
			out = append(out, st.val)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (t *tx) CreateReservation(_ context.Context, r *entities.PartUsageReservation) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	r.Revision = 1
	return stageCreate(t.s.reservations, t.reservations, reservationKey(r.OrderNumber, r.ID), *r, "reservation")
}

func (t *tx) UpdateReservation(_ context.Context, r *entities.PartUsageReservation) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	next := *r
	next.Revision++
	if err := stage(t.s.reservations, t.reservations, reservationKey(r.OrderNumber, r.ID), next, reservationRev, r.Revision, "reservation"); err != nil {
		return err
	}
	r.Revision = next.Revision
	return nil
}

// inventory sessions

func (t *tx) GetSession(_ context.Context, id string) (entities.InventorySession, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	s, ok := lookup(t.s.sessions, t.sessions, id)
	if !ok {
		return entities.InventorySession{}, entities.NotFound("inventory session", id)
	}
	return cloneSession(s), nil
}

func (t *tx) CreateSession(_ context.Context, s *entities.InventorySession) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	s.Revision = 1
	return stageCreate(t.s.sessions, t.sessions, s.ID, cloneSession(*s), "inventory session")
}

func (t *tx) UpdateSession(_ context.Context, s *entities.InventorySession) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	next := cloneSession(*s)
	next.Revision++
	if err := stage(t.s.sessions, t.sessions, s.ID, next, sessionRev, s.Revision, "inventory session"); err != nil {
		return err
	}
	s.Revision = next.Revision
	return nil
}

// fee payments

func (t *tx) CreateFeePayment(_ context.Context, p entities.FeePayment) error {
	t.feePayments = append(t.feePayments, p)
	return nil
}

func (t *tx) ListFeePayments(_ context.Context, orderNumber string, version int) ([]entities.FeePayment, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []entities.FeePayment
	for _, p := range append(append([]entities.FeePayment(nil), t.s.feePayments...), t.feePayments...) {
		if p.OrderNumber == orderNumber && p.EstimateVersion == version {
			out = append(out, p)
		}
	}
	return out, nil
}

func cloneOrder(o entities.Order) entities.Order {
	if o.Checklist != nil {
		o.Checklist = append([]entities.ChecklistItem(nil), o.Checklist...)
	}
	return o
}

func cloneSession(s entities.InventorySession) entities.InventorySession {
	if s.Counts != nil {
		s.Counts = append([]entities.InventoryCount(nil), s.Counts...)
	}
	return s
}
