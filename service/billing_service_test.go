package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
	"github.com/omnirelay/console/persistence/inmem"
)

func TestBillingService(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, svc *BillingService, storage *inmem.Storage, tenantID string,
	){
		"test topup credits balance":        testTopupCreditsBalance,
		"test topup replay is rejected":     testTopupReplayRejected,
		"test intent bound to tenant":       testIntentBoundToTenant,
		"test failed credit keeps intent":   testFailedCreditKeepsIntent,
		"test charge debits balance":        testChargeDebitsBalance,
		"test overdraft is rejected":        testOverdraftRejected,
		"test invalid amount":               testInvalidAmount,
		"test ledger matches balance":       testLedgerMatchesBalance,
		"test transactions sort newest out": testTransactionsNewestFirst,
	} {
		t.Run(scenario, func(t *testing.T) {
			storage := inmem.NewStorage()
			tenant := &model.Tenant{ID: "t-1", Name: "Acme", Email: "acme@example.com", LevelID: 1}
			require.NoError(t, storage.Tenants().Save(context.Background(), tenant))

			svc := NewBillingService(storage.Tenants(), storage.Transactions(), NewMockPaymentProvider())
			fn(t, svc, storage, tenant.ID)
		})
	}
}

func topup(t *testing.T, svc *BillingService, tenantID, amount string) *model.Tenant {
	ctx := context.Background()
	intent, err := svc.CreateIntent(ctx, tenantID, amount)
	require.NoError(t, err)
	tenant, txn, err := svc.ConfirmTopup(ctx, tenantID, intent.ID)
	require.NoError(t, err)
	require.Equal(t, model.TRANSACTION_TYPE_TOPUP, txn.Type)
	return tenant
}

func testTopupCreditsBalance(t *testing.T, svc *BillingService, storage *inmem.Storage, tenantID string) {
	tenant := topup(t, svc, tenantID, "25.50")
	require.True(t, tenant.Balance.Equal(decimal.RequireFromString("25.50")))
	require.Equal(t, "USD", tenant.CurrencyCode)
}

func testTopupReplayRejected(t *testing.T, svc *BillingService, storage *inmem.Storage, tenantID string) {
	ctx := context.Background()
	intent, err := svc.CreateIntent(ctx, tenantID, "10")
	require.NoError(t, err)

	_, _, err = svc.ConfirmTopup(ctx, tenantID, intent.ID)
	require.NoError(t, err)

	_, _, err = svc.ConfirmTopup(ctx, tenantID, intent.ID)
	require.ErrorIs(t, err, ErrUnknownIntent)

	tenant, err := storage.Tenants().Get(ctx, tenantID)
	require.NoError(t, err)
	require.True(t, tenant.Balance.Equal(decimal.RequireFromString("10")))
}

func testIntentBoundToTenant(t *testing.T, svc *BillingService, storage *inmem.Storage, tenantID string) {
	ctx := context.Background()
	other := &model.Tenant{ID: "t-2", Name: "Globex", Email: "globex@example.com", LevelID: 1}
	require.NoError(t, storage.Tenants().Save(ctx, other))

	intent, err := svc.CreateIntent(ctx, tenantID, "10")
	require.NoError(t, err)

	// another tenant cannot confirm an intent it did not open
	_, _, err = svc.ConfirmTopup(ctx, other.ID, intent.ID)
	require.ErrorIs(t, err, ErrUnknownIntent)
	otherTenant, err := storage.Tenants().Get(ctx, other.ID)
	require.NoError(t, err)
	require.True(t, otherTenant.Balance.IsZero())

	// the failed attempt did not consume it for the owner
	tenant, _, err := svc.ConfirmTopup(ctx, tenantID, intent.ID)
	require.NoError(t, err)
	require.True(t, tenant.Balance.Equal(decimal.RequireFromString("10")))
}

func testFailedCreditKeepsIntent(t *testing.T, svc *BillingService, storage *inmem.Storage, tenantID string) {
	ctx := context.Background()
	intent, err := svc.CreateIntent(ctx, tenantID, "10")
	require.NoError(t, err)

	// a storage fault between verification and credit must not retire
	// the settled intent
	require.NoError(t, storage.Tenants().Delete(ctx, tenantID))
	_, _, err = svc.ConfirmTopup(ctx, tenantID, intent.ID)
	require.Error(t, err)
	_, ok := err.(persistence.NotFoundError)
	require.True(t, ok)

	tenant := &model.Tenant{ID: tenantID, Name: "Acme", Email: "acme@example.com", LevelID: 1}
	require.NoError(t, storage.Tenants().Save(ctx, tenant))
	restored, _, err := svc.ConfirmTopup(ctx, tenantID, intent.ID)
	require.NoError(t, err)
	require.True(t, restored.Balance.Equal(decimal.RequireFromString("10")))
}

func testChargeDebitsBalance(t *testing.T, svc *BillingService, storage *inmem.Storage, tenantID string) {
	topup(t, svc, tenantID, "20")
	tenant, txn, err := svc.Charge(context.Background(), tenantID, "7.25", "campaign c-1")
	require.NoError(t, err)
	require.Equal(t, model.TRANSACTION_TYPE_CHARGE, txn.Type)
	require.Equal(t, "campaign c-1", txn.Reference)
	require.True(t, tenant.Balance.Equal(decimal.RequireFromString("12.75")))
}

func testOverdraftRejected(t *testing.T, svc *BillingService, storage *inmem.Storage, tenantID string) {
	ctx := context.Background()
	topup(t, svc, tenantID, "5")

	_, _, err := svc.Charge(ctx, tenantID, "5.01", "")
	require.Error(t, err)
	_, ok := err.(persistence.InsufficientBalanceError)
	require.True(t, ok)

	// the failed charge left neither a ledger row nor a balance change
	tenant, err := storage.Tenants().Get(ctx, tenantID)
	require.NoError(t, err)
	require.True(t, tenant.Balance.Equal(decimal.RequireFromString("5")))
	txns, err := svc.Transactions(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
}

func testInvalidAmount(t *testing.T, svc *BillingService, storage *inmem.Storage, tenantID string) {
	ctx := context.Background()
	for _, amount := range []string{"", "abc", "-3", "0"} {
		_, err := svc.CreateIntent(ctx, tenantID, amount)
		require.ErrorIs(t, err, ErrInvalidAmount, "amount %q", amount)
		_, _, err = svc.Charge(ctx, tenantID, amount, "")
		require.ErrorIs(t, err, ErrInvalidAmount, "amount %q", amount)
	}
}

func testLedgerMatchesBalance(t *testing.T, svc *BillingService, storage *inmem.Storage, tenantID string) {
	ctx := context.Background()
	topup(t, svc, tenantID, "100")
	_, _, err := svc.Charge(ctx, tenantID, "30", "")
	require.NoError(t, err)
	topup(t, svc, tenantID, "12.50")

	txns, err := svc.Transactions(ctx, tenantID)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, txn := range txns {
		if txn.Type == model.TRANSACTION_TYPE_CHARGE {
			sum = sum.Sub(txn.Amount)
		} else {
			sum = sum.Add(txn.Amount)
		}
	}
	tenant, err := storage.Tenants().Get(ctx, tenantID)
	require.NoError(t, err)
	require.True(t, tenant.Balance.Equal(sum))
}

func testTransactionsNewestFirst(t *testing.T, svc *BillingService, storage *inmem.Storage, tenantID string) {
	topup(t, svc, tenantID, "1")
	topup(t, svc, tenantID, "2")
	topup(t, svc, tenantID, "3")

	txns, err := svc.Transactions(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	require.True(t, txns[0].Amount.Equal(decimal.RequireFromString("3")))
	require.True(t, txns[2].Amount.Equal(decimal.RequireFromString("1")))
}
