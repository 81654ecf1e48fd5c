package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory store backing every repository port. A single mutex keeps the
// stubs safe for the concurrency tests; stubTx snapshots the whole store so a
// failed transaction leaves no partial writes behind.
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type memStore struct {
	mu       sync.Mutex
	users    map[string]*domain.User
	jobs     map[string]*domain.Job
	bids     map[string]*domain.Bid
	payments map[string]*domain.Payment
	messages []*domain.Message
	ratings  map[string]*domain.Rating

	creditErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*domain.User),
		jobs:     make(map[string]*domain.Job),
		bids:     make(map[string]*domain.Bid),
		payments: make(map[string]*domain.Payment),
		ratings:  make(map[string]*domain.Rating),
	}
}

type memSnapshot struct {
	users    map[string]domain.User
	jobs     map[string]domain.Job
	bids     map[string]domain.Bid
	payments map[string]domain.Payment
	messages int
	ratings  map[string]domain.Rating
}

func (m *memStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := memSnapshot{
		users:    make(map[string]domain.User, len(m.users)),
		jobs:     make(map[string]domain.Job, len(m.jobs)),
		bids:     make(map[string]domain.Bid, len(m.bids)),
		payments: make(map[string]domain.Payment, len(m.payments)),
		messages: len(m.messages),
		ratings:  make(map[string]domain.Rating, len(m.ratings)),
	}
	for k, v := range m.users {
		s.users[k] = *v
	}
	for k, v := range m.jobs {
		s.jobs[k] = *v
	}
	for k, v := range m.bids {
		s.bids[k] = *v
	}
	for k, v := range m.payments {
		s.payments[k] = *v
	}
	for k, v := range m.ratings {
		s.ratings[k] = *v
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = make(map[string]*domain.User, len(s.users))
	for k, v := range s.users {
		v := v
		m.users[k] = &v
	}
	m.jobs = make(map[string]*domain.Job, len(s.jobs))
	for k, v := range s.jobs {
		v := v
		m.jobs[k] = &v
	}
	m.bids = make(map[string]*domain.Bid, len(s.bids))
	for k, v := range s.bids {
		v := v
		m.bids[k] = &v
	}
	m.payments = make(map[string]*domain.Payment, len(s.payments))
	for k, v := range s.payments {
		v := v
		m.payments[k] = &v
	}
	m.messages = m.messages[:s.messages]
	m.ratings = make(map[string]*domain.Rating, len(s.ratings))
	for k, v := range s.ratings {
		v := v
		m.ratings[k] = &v
	}
}

// ---------------------------------------------------------------------------
// Transactor and locker
// ---------------------------------------------------------------------------

type stubTx struct {
	store *memStore
	// txMu serialises transactions the way a real session would conflict.
	txMu  sync.Mutex
	calls int
}

func (t *stubTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()
	t.calls++
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type stubLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newStubLocker() *stubLocker {
	return &stubLocker{held: make(map[string]bool)}
}

func (l *stubLocker) Lock(_ context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, domain.ErrOperationInProgress
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type memUserRepo struct{ *memStore }

func (r memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r memUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			clone := *u
			out[id] = &clone
		}
	}
	return out, nil
}

func (r memUserRepo) CreditWallet(_ context.Context, id string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.creditErr != nil {
		return r.creditErr
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.WalletBalance += amount
	return nil
}

func (r memUserRepo) UpdateRating(_ context.Context, id string, rating float64, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Rating = rating
	u.TotalRatings = total
	return nil
}

// ---------------------------------------------------------------------------
// Jobs
// ---------------------------------------------------------------------------

type memJobRepo struct{ *memStore }

func (r memJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r memJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r memJobRepo) match(f ports.JobFilter) []*domain.Job {
	var out []*domain.Job
	for _, j := range r.jobs {
		if f.CreatorID != "" && j.CreatorID != f.CreatorID {
			continue
		}
		if f.Category != "" && j.Category != f.Category {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		clone := *j
		out = append(out, &clone)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out
}

func (r memJobRepo) List(_ context.Context, f ports.JobFilter) ([]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := r.match(f)
	if f.Skip >= len(matched) {
		return []*domain.Job{}, nil
	}
	matched = matched[f.Skip:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (r memJobRepo) Count(_ context.Context, f ports.JobFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.match(f))), nil
}

func (r memJobRepo) IncrementBids(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.Status != domain.JobOpen {
		return domain.ErrJobNotOpen
	}
	j.BidsCount++
	return nil
}

// closingJobRepo moves the job to in_progress right after it is read, the way
// a concurrent bid selection would.
type closingJobRepo struct{ memJobRepo }

func (r closingJobRepo) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	job, err := r.memJobRepo.FindByID(ctx, id)
	if err == nil {
		r.mu.Lock()
		r.jobs[id].Status = domain.JobInProgress
		r.mu.Unlock()
	}
	return job, err
}

func (r memJobRepo) MarkInProgress(_ context.Context, id, bidID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	if !j.Status.CanTransitionTo(domain.JobInProgress) {
		return domain.ErrJobNotSelectable
	}
	j.Status = domain.JobInProgress
	j.SelectedBidID = &bidID
	j.SelectedAt = &at
	return nil
}

func (r memJobRepo) MarkCompleted(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	j.Status = domain.JobCompleted
	j.CompletedAt = &at
	return nil
}

// ---------------------------------------------------------------------------
// Bids
// ---------------------------------------------------------------------------

type memBidRepo struct{ *memStore }

func (r memBidRepo) Create(_ context.Context, bid *domain.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bids {
		if b.JobID == bid.JobID && b.BidderID == bid.BidderID {
			return domain.ErrDuplicateBid
		}
	}
	clone := *bid
	r.bids[bid.ID] = &clone
	return nil
}

func (r memBidRepo) FindByID(_ context.Context, id string) (*domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bids[id]
	if !ok {
		return nil, domain.ErrBidNotFound
	}
	clone := *b
	return &clone, nil
}

func (r memBidRepo) FindByJobAndBidder(_ context.Context, jobID, bidderID string) (*domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bids {
		if b.JobID == jobID && b.BidderID == bidderID {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBidNotFound
}

func (r memBidRepo) ListByJob(_ context.Context, jobID string) ([]*domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Bid{}
	for _, b := range r.bids {
		if b.JobID == jobID {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (r memBidRepo) MarkSelected(_ context.Context, jobID, bidID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bids {
		if b.JobID == jobID {
			b.IsSelected = b.ID == bidID
		}
	}
	return nil
}

func (r memBidRepo) CountByBidder(_ context.Context, bidderID string, selectedOnly bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bids {
		if b.BidderID == bidderID && (!selectedOnly || b.IsSelected) {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------------

type memPaymentRepo struct{ *memStore }

func (r memPaymentRepo) Create(_ context.Context, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.payments[p.ID] = &clone
	return nil
}

func (r memPaymentRepo) FindByID(_ context.Context, id string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (r memPaymentRepo) Transition(_ context.Context, t ports.PaymentTransition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[t.PaymentID]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	if p.Status != t.From || !t.From.CanTransitionTo(t.To) {
		return domain.ErrInvalidTransition
	}
	at := t.At
	p.Status = t.To
	switch t.To {
	case domain.PaymentPaid, domain.PaymentHeldInEscrow:
		p.PaidAt = &at
	case domain.PaymentReleased:
		p.ReleasedAt = &at
	case domain.PaymentRefunded:
		p.RefundedAt = &at
		p.RefundID = t.RefundID
	}
	return nil
}

func (r memPaymentRepo) ListByParticipant(_ context.Context, userID string, limit int) ([]*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Payment{}
	for _, p := range r.payments {
		if p.PayerID == userID || p.ReceiverID == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memPaymentRepo) SumReleasedTo(_ context.Context, receiverID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, p := range r.payments {
		if p.ReceiverID == receiverID && p.Status == domain.PaymentReleased {
			sum += p.Amount
		}
	}
	return sum, nil
}

// ---------------------------------------------------------------------------
// Messages and ratings
// ---------------------------------------------------------------------------

type memMessageRepo struct{ *memStore }

func (r memMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *msg
	r.messages = append(r.messages, &clone)
	return nil
}

func (r memMessageRepo) Conversation(_ context.Context, a, b string) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Message{}
	for _, m := range r.messages {
		if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
			clone := *m
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type memRatingRepo struct{ *memStore }

func ratingKey(rater, target, job string) string { return rater + "|" + target + "|" + job }

func (r memRatingRepo) Create(_ context.Context, rating *domain.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ratingKey(rating.RaterID, rating.TargetUserID, rating.JobID)
	if _, ok := r.ratings[key]; ok {
		return domain.ErrAlreadyRated
	}
	clone := *rating
	r.ratings[key] = &clone
	return nil
}

func (r memRatingRepo) Exists(_ context.Context, raterID, targetID, jobID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ratings[ratingKey(raterID, targetID, jobID)]
	return ok, nil
}

func (r memRatingRepo) StatsFor(_ context.Context, targetID string) (ports.RatingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats ports.RatingStats
	for _, rt := range r.ratings {
		if rt.TargetUserID == targetID {
			stats.Sum += int64(rt.Score)
			stats.Count++
		}
	}
	return stats, nil
}

// ---------------------------------------------------------------------------
// Gateway
// ---------------------------------------------------------------------------

type stubGateway struct {
	mu          sync.Mutex
	initiateErr error
	statusErr   error
	refundErr   error
	status      ports.SettlementStatus
	refunds     int
	checks      int
	// checkHook runs inside CheckStatus, letting tests interleave calls.
	checkHook func()
}

func (g *stubGateway) Initiate(_ context.Context, method domain.PaymentMethod, _ int64, orderID string) (*ports.GatewayPayment, error) {
	if g.initiateErr != nil {
		return nil, g.initiateErr
	}
	return &ports.GatewayPayment{
		CorrelationID: "pay_0123456789ab",
		RedirectURL:   "https://mock-" + string(method) + ".com/pay/" + orderID,
	}, nil
}

func (g *stubGateway) CheckStatus(_ context.Context, _ string) (ports.SettlementStatus, error) {
	g.mu.Lock()
	g.checks++
	hook := g.checkHook
	g.mu.Unlock()
	if hook != nil {
		hook()
	}
	if g.statusErr != nil {
		return "", g.statusErr
	}
	if g.status == "" {
		return ports.SettlementSettled, nil
	}
	return g.status, nil
}

func (g *stubGateway) Refund(_ context.Context, _ string, _ int64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.refundErr != nil {
		return "", g.refundErr
	}
	g.refunds++
	return "ref_0123456789ab", nil
}

var errDBDown = errors.New("db unavailable")

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

type fixture struct {
	store    *memStore
	tx       *stubTx
	locker   *stubLocker
	gateway  *stubGateway
	users    memUserRepo
	jobs     memJobRepo
	bids     memBidRepo
	payments memPaymentRepo
	messages memMessageRepo
	ratings  memRatingRepo
}

func newFixture() *fixture {
	store := newMemStore()
	return &fixture{
		store:    store,
		tx:       &stubTx{store: store},
		locker:   newStubLocker(),
		gateway:  &stubGateway{},
		users:    memUserRepo{store},
		jobs:     memJobRepo{store},
		bids:     memBidRepo{store},
		payments: memPaymentRepo{store},
		messages: memMessageRepo{store},
		ratings:  memRatingRepo{store},
	}
}

func (f *fixture) jobService() *JobService {
	return NewJobService(f.jobs, f.bids, f.users, f.tx, discardLogger)
}

func (f *fixture) paymentService() *PaymentService {
	return NewPaymentService(PaymentDeps{
		Payments: f.payments,
		Jobs:     f.jobs,
		Bids:     f.bids,
		Users:    f.users,
		Gateway:  f.gateway,
		Tx:       f.tx,
		Locker:   f.locker,
	}, 0, discardLogger)
}

func (f *fixture) seedUser(id string, role domain.Role) *domain.User {
	u := &domain.User{
		ID:        id,
		Email:     id + "@example.com",
		FullName:  "User " + id,
		Role:      role,
		Location:  domain.DefaultLocation,
		CreatedAt: time.Now().UTC(),
	}
	f.store.users[id] = u
	return u
}

func (f *fixture) seedJob(id, creatorID string, status domain.JobStatus) *domain.Job {
	j := &domain.Job{
		ID:           id,
		Title:        "Fix sink",
		Category:     domain.CategoryHomeRepair,
		BudgetMin:    100_000,
		BudgetMax:    200_000,
		Requirements: []string{},
		Status:       status,
		CreatorID:    creatorID,
		CreatedAt:    time.Now().UTC(),
	}
	f.store.jobs[id] = j
	return j
}

func (f *fixture) seedBid(id, jobID, bidderID string, amount int64) *domain.Bid {
	b := &domain.Bid{
		ID:        id,
		JobID:     jobID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	f.store.bids[id] = b
	return b
}

func (f *fixture) seedPayment(id, jobID, bidID, payerID, receiverID string, amount int64, status domain.PaymentStatus) *domain.Payment {
	p := &domain.Payment{
		ID:               id,
		JobID:            jobID,
		BidID:            bidID,
		PayerID:          payerID,
		ReceiverID:       receiverID,
		Amount:           amount,
		Method:           domain.MethodGoPay,
		Status:           status,
		GatewayPaymentID: "pay_0123456789ab",
		CreatedAt:        time.Now().UTC(),
	}
	f.store.payments[id] = p
	return p
}

func seeker(id string) ports.Caller   { return ports.Caller{UserID: id, Role: domain.RoleSeeker} }
func provider(id string) ports.Caller { return ports.Caller{UserID: id, Role: domain.RoleProvider} }
