package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/membership"
	"github.com/net2mulu/signature-gym/internal/domain/payment"
	"github.com/net2mulu/signature-gym/internal/domain/subscription"
	"github.com/net2mulu/signature-gym/internal/domain/user"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/receipts"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	Resets      map[string]*user.PasswordReset
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		Resets:     make(map[string]*user.PasswordReset),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	u.Email = strings.ToLower(u.Email)
	if _, ok := m.EmailIndex[u.Email]; ok {
		return errors.Conflict("An account with this email already exists")
	}
	u.ID = m.NextID
	m.NextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[strings.ToLower(email)]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByReferralCode(ctx context.Context, code string) (*user.User, error) {
	for _, u := range m.Users {
		if strings.EqualFold(u.ReferralCode, code) {
			return u, nil
		}
	}
	return nil, errors.NotFound("User")
}

func (m *MockUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*user.User, error) {
	for _, u := range m.Users {
		if u.GoogleID != "" && u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, errors.NotFound("User")
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return errors.NotFound("User")
	}
	u.UpdatedAt = time.Now()
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

// AdjustReferralCredits fails like a database driver would when ctx is already done
func (m *MockUserRepository) AdjustReferralCredits(ctx context.Context, id int64, delta int) error {
	if err := ctx.Err(); err != nil {
		return errors.DatabaseError("Failed to adjust referral credits", err)
	}
	u, ok := m.Users[id]
	if !ok {
		return errors.NotFound("User")
	}
	if u.ReferralCredits+delta < 0 {
		return errors.BadRequest("No referral credits available")
	}
	u.ReferralCredits += delta
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if u, ok := m.Users[id]; ok {
		delete(m.EmailIndex, u.Email)
		delete(m.Users, id)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var result []*user.User
	for _, u := range m.Users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockUserRepository) CreatePasswordReset(ctx context.Context, reset *user.PasswordReset) error {
	m.Resets[reset.Token] = reset
	return nil
}

func (m *MockUserRepository) GetPasswordReset(ctx context.Context, token string) (*user.PasswordReset, error) {
	r, ok := m.Resets[token]
	if !ok {
		return nil, errors.NotFound("Reset token")
	}
	return r, nil
}

func (m *MockUserRepository) MarkPasswordResetUsed(ctx context.Context, token string, at time.Time) error {
	r, ok := m.Resets[token]
	if !ok {
		return errors.NotFound("Reset token")
	}
	r.UsedAt = &at
	return nil
}

// MockMembershipRepository is a mock implementation of membership.Repository
type MockMembershipRepository struct {
	Memberships map[string]*membership.Membership
	ListError   error
}

func NewMockMembershipRepository() *MockMembershipRepository {
	return &MockMembershipRepository{
		Memberships: make(map[string]*membership.Membership),
	}
}

func (m *MockMembershipRepository) Upsert(ctx context.Context, ms *membership.Membership) error {
	m.Memberships[ms.ID] = ms
	return nil
}

func (m *MockMembershipRepository) GetByID(ctx context.Context, id string) (*membership.Membership, error) {
	ms, ok := m.Memberships[id]
	if !ok {
		return nil, errors.NotFound("Membership")
	}
	return ms, nil
}

func (m *MockMembershipRepository) List(ctx context.Context, filter membership.Filter) ([]*membership.Membership, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var result []*membership.Membership
	for _, ms := range m.Memberships {
		if filter.Type != "" && ms.Type != filter.Type {
			continue
		}
		if filter.ActiveOnly && !ms.Active {
			continue
		}
		result = append(result, ms)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockMembershipRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.Memberships))
	for id := range m.Memberships {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// MockSubscriptionRepository is a mock implementation of subscription.Repository
type MockSubscriptionRepository struct {
	Subscriptions map[string]*subscription.Subscription
	CreateError   error
	UpdateError   error
}

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{
		Subscriptions: make(map[string]*subscription.Subscription),
	}
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	m.Subscriptions[s.ID] = s
	return nil
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, id string) (*subscription.Subscription, error) {
	s, ok := m.Subscriptions[id]
	if !ok {
		return nil, errors.NotFound("Subscription")
	}
	return s, nil
}

func (m *MockSubscriptionRepository) filter(keep func(*subscription.Subscription) bool) []*subscription.Subscription {
	var result []*subscription.Subscription
	for _, s := range m.Subscriptions {
		if keep(s) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (m *MockSubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]*subscription.Subscription, error) {
	return m.filter(func(s *subscription.Subscription) bool { return s.UserID == userID }), nil
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Subscriptions[s.ID]; !ok {
		return errors.NotFound("Subscription")
	}
	s.UpdatedAt = time.Now()
	m.Subscriptions[s.ID] = s
	return nil
}

func (m *MockSubscriptionRepository) ListDueForExpiry(ctx context.Context, now time.Time) ([]*subscription.Subscription, error) {
	return m.filter(func(s *subscription.Subscription) bool {
		return s.Status == subscription.StatusActive && !s.EndDate.After(now)
	}), nil
}

func (m *MockSubscriptionRepository) ListPaused(ctx context.Context) ([]*subscription.Subscription, error) {
	return m.filter(func(s *subscription.Subscription) bool { return s.Status == subscription.StatusPaused }), nil
}

func (m *MockSubscriptionRepository) ListEndingBetween(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error) {
	return m.filter(func(s *subscription.Subscription) bool {
		return s.Status == subscription.StatusActive && s.RenewalNotifiedAt == nil &&
			!s.EndDate.Before(from) && s.EndDate.Before(to)
	}), nil
}

func (m *MockSubscriptionRepository) CountByStatus(ctx context.Context) (map[subscription.Status]int, error) {
	counts := make(map[subscription.Status]int)
	for _, st := range subscription.Statuses {
		counts[st] = 0
	}
	for _, s := range m.Subscriptions {
		counts[s.Status]++
	}
	return counts, nil
}

// MockPaymentRepository is a mock implementation of payment.Repository.
// Reads return copies so concurrent callers never share a payment.
type MockPaymentRepository struct {
	mu          sync.Mutex
	Payments    map[string]*payment.Payment
	CreateError error
	UpdateError error
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		Payments: make(map[string]*payment.Payment),
	}
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.Payments[p.ID] = p
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*payment.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Payments[id]
	if !ok {
		return nil, errors.NotFound("Payment")
	}
	cp := *p
	return &cp, nil
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*payment.Payment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*payment.Payment
	for _, p := range m.Payments {
		if p.UserID == userID {
			cp := *p
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// Update fails like a database driver would when ctx is already done
func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	if err := ctx.Err(); err != nil {
		return errors.DatabaseError("Failed to update payment", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	stored, ok := m.Payments[p.ID]
	if !ok {
		return errors.NotFound("Payment")
	}
	p.UpdatedAt = time.Now()
	if stored != p {
		*stored = *p
	}
	return nil
}

func (m *MockPaymentRepository) TransitionStatus(ctx context.Context, id string, from, to payment.Status) error {
	if err := ctx.Err(); err != nil {
		return errors.DatabaseError("Failed to update payment status", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Payments[id]
	if !ok || p.Status != from {
		return errors.InvalidState("Payment is no longer " + string(from))
	}
	p.Status = to
	p.UpdatedAt = time.Now()
	return nil
}

func (m *MockPaymentRepository) CountCompletedByUser(ctx context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.Payments {
		if p.UserID != userID {
			continue
		}
		switch p.Status {
		case payment.StatusCompleted, payment.StatusRefunding, payment.StatusRefunded:
			n++
		}
	}
	return n, nil
}

// StubGateway approves or declines every charge. Delay holds each call
// until it elapses or ctx is done.
type StubGateway struct {
	Decline       bool
	DeclineRefund bool
	Err           error
	RefundErr     error
	Delay         time.Duration
	Charges       []payment.Charge
	Refunds       []string
	mu            sync.Mutex
}

func (g *StubGateway) wait(ctx context.Context) error {
	if g.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (g *StubGateway) Process(ctx context.Context, charge payment.Charge) (*payment.Result, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	g.Charges = append(g.Charges, charge)
	if g.Decline {
		return &payment.Result{Success: false, Status: payment.StatusFailed, Message: "Payment declined. Please try a different payment method."}, nil
	}
	return &payment.Result{Success: true, Status: payment.StatusCompleted, TransactionID: "txn_stub0001", Message: "Payment processed successfully"}, nil
}

func (g *StubGateway) Refund(ctx context.Context, transactionID string, amount int64) (*payment.RefundResult, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	if g.RefundErr != nil {
		return nil, g.RefundErr
	}
	g.Refunds = append(g.Refunds, transactionID)
	if g.DeclineRefund {
		return &payment.RefundResult{Success: false, Status: payment.StatusFailed, Message: "Refund failed. Please contact support."}, nil
	}
	return &payment.RefundResult{Success: true, Status: payment.StatusRefunded, RefundID: "ref_stub0001", Message: "Refund processed successfully"}, nil
}

// RefundCount returns how many refunds reached the gateway
func (g *StubGateway) RefundCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Refunds)
}

// PublishedEvent is an event captured by RecordingPublisher
type PublishedEvent struct {
	Stream string
	Type   string
	Data   any
}

// RecordingPublisher keeps every published event in memory
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

func (p *RecordingPublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, PublishedEvent{Stream: stream, Type: eventType, Data: data})
	return nil
}

// Types returns the published event types in order
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.Events))
	for i, e := range p.Events {
		out[i] = e.Type
	}
	return out
}

// MemoryStore is an in-memory receipts.Store
type MemoryStore struct {
	mu    sync.Mutex
	Blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Blobs[key] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.Blobs[key]
	if !ok {
		return nil, receipts.ErrNotFound
	}
	return data, nil
}
