package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
)

var ErrUnknownIntent = errors.New("unknown or already consumed payment intent")
var ErrInvalidAmount = errors.New("amount must be a positive number")

// PaymentProvider is the boundary to the hosted payment flow. The
// console never talks to card networks itself; it creates an intent,
// the browser confirms it with the provider, and the server verifies
// the intent before crediting the balance.
type PaymentProvider interface {
	// CreateIntent binds the intent to the tenant that opened it; no
	// other tenant can verify or consume it.
	CreateIntent(ctx context.Context, tenantID string, amount decimal.Decimal, currency string) (*model.PaymentIntent, error)
	// VerifyIntent reports the settled intent without consuming it, so a
	// failed credit leaves the intent usable for a retry.
	VerifyIntent(ctx context.Context, tenantID string, intentID string) (*model.PaymentIntent, error)
	// ConsumeIntent retires the intent once it has been credited; a
	// replayed confirmation cannot credit twice.
	ConsumeIntent(ctx context.Context, intentID string) error
}

type BillingService struct {
	tenants      persistence.TenantStorage
	transactions persistence.TransactionStorage
	provider     PaymentProvider
}

func NewBillingService(tenants persistence.TenantStorage, transactions persistence.TransactionStorage, provider PaymentProvider) *BillingService {
	return &BillingService{
		tenants:      tenants,
		transactions: transactions,
		provider:     provider,
	}
}

func (s *BillingService) CreateIntent(ctx context.Context, tenantID string, amount string) (*model.PaymentIntent, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil || !value.IsPositive() {
		return nil, ErrInvalidAmount
	}
	tenant, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return s.provider.CreateIntent(ctx, tenantID, value, tenant.CurrencyCode)
}

// ConfirmTopup verifies the payment intent and credits the balance. The
// ledger insert and balance update are one storage transaction, so a
// crash cannot leave a credited balance without its ledger row. The
// intent is consumed only after the credit lands; a storage fault keeps
// it usable for a retry.
func (s *BillingService) ConfirmTopup(ctx context.Context, tenantID string, intentID string) (*model.Tenant, *model.Transaction, error) {
	intent, err := s.provider.VerifyIntent(ctx, tenantID, intentID)
	if err != nil {
		return nil, nil, err
	}
	txn := &model.Transaction{
		ID:        newTransactionID(),
		TenantID:  tenantID,
		Type:      model.TRANSACTION_TYPE_TOPUP,
		Amount:    intent.Amount,
		Currency:  intent.Currency,
		Reference: intent.ID,
	}
	tenant, err := s.transactions.Apply(ctx, txn)
	if err != nil {
		return nil, nil, err
	}
	if err := s.provider.ConsumeIntent(ctx, intent.ID); err != nil {
		return nil, nil, err
	}
	return tenant, txn, nil
}

// Charge debits the balance through the same transactional path as
// topups. Overdraft is rejected by the storage layer.
func (s *BillingService) Charge(ctx context.Context, tenantID string, amount string, reference string) (*model.Tenant, *model.Transaction, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil || !value.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}
	txn := &model.Transaction{
		ID:        newTransactionID(),
		TenantID:  tenantID,
		Type:      model.TRANSACTION_TYPE_CHARGE,
		Amount:    value,
		Reference: reference,
	}
	tenant, err := s.transactions.Apply(ctx, txn)
	if err != nil {
		return nil, nil, err
	}
	return tenant, txn, nil
}

func (s *BillingService) Transactions(ctx context.Context, tenantID string) ([]model.Transaction, error) {
	return s.transactions.List(ctx, tenantID)
}

var ulidMu sync.Mutex
var ulidEntropy = ulid.Monotonic(rand.Reader, 0)

// newTransactionID returns a ulid; ledger ids sort by creation time,
// monotonic within the same millisecond.
func newTransactionID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

// MockPaymentProvider fakes the hosted payment element. Every created
// intent settles immediately and stays verifiable until it is consumed.
type MockPaymentProvider struct {
	mu      sync.Mutex
	intents map[string]mockIntent
	counter int
}

type mockIntent struct {
	intent   *model.PaymentIntent
	tenantID string
}

var _ PaymentProvider = new(MockPaymentProvider)

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{intents: make(map[string]mockIntent)}
}

func (p *MockPaymentProvider) CreateIntent(ctx context.Context, tenantID string, amount decimal.Decimal, currency string) (*model.PaymentIntent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counter++
	intent := &model.PaymentIntent{
		ID:           fmt.Sprintf("pi_mock_%d", p.counter),
		Amount:       amount,
		Currency:     currency,
		ClientSecret: fmt.Sprintf("pi_mock_%d_secret", p.counter),
		Status:       "succeeded",
	}
	p.intents[intent.ID] = mockIntent{intent: intent, tenantID: tenantID}
	return intent, nil
}

// A tenant mismatch answers the same as a missing intent, so one tenant
// cannot confirm or enumerate another's intents.
func (p *MockPaymentProvider) VerifyIntent(ctx context.Context, tenantID string, intentID string) (*model.PaymentIntent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	held, ok := p.intents[intentID]
	if !ok || held.tenantID != tenantID {
		return nil, ErrUnknownIntent
	}
	return held.intent, nil
}

func (p *MockPaymentProvider) ConsumeIntent(ctx context.Context, intentID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.intents[intentID]; !ok {
		return ErrUnknownIntent
	}
	delete(p.intents, intentID)
	return nil
}
