package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
	"github.com/shopspring/decimal"
)

type transactionDao struct {
	*baseDao
}

var _ persistence.TransactionStorage = new(transactionDao)

// Apply writes the ledger row and the balance adjustment in one
// database transaction. The tenant row is locked for the duration so
// concurrent topups serialize and the invariant
// balance == sum(transactions) holds.
func (d *transactionDao) Apply(ctx context.Context, txn *model.Transaction) (*model.Tenant, error) {
	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`SELECT balance::text, currency_code FROM tenants WHERE id = $1 FOR UPDATE`, txn.TenantID)
	var balanceStr, currency string
	if err := row.Scan(&balanceStr, &currency); err != nil {
		return nil, notFound(err, "tenant", txn.TenantID)
	}
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}

	delta := txn.Amount
	if txn.Type == model.TRANSACTION_TYPE_CHARGE {
		delta = delta.Neg()
	}
	newBalance := balance.Add(delta)
	if newBalance.IsNegative() {
		return nil, persistence.InsufficientBalanceError{TenantID: txn.TenantID}
	}
	if txn.Currency == "" {
		txn.Currency = currency
	}

	row = tx.QueryRow(ctx,
		`INSERT INTO transactions (id, tenant_id, type, amount, currency, reference)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		txn.ID, txn.TenantID, txn.Type, txn.Amount.String(), txn.Currency, txn.Reference)
	if err := row.Scan(&txn.CreatedAt); err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}

	row = tx.QueryRow(ctx,
		`UPDATE tenants SET balance = $2, updated_at = NOW() WHERE id = $1
		 RETURNING id, name, email, level_id, balance::text, currency_code, is_active, created_at, updated_at`,
		txn.TenantID, newBalance.String())
	tenant, err := scanTenant(row, txn.TenantID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return tenant, nil
}

func (d *transactionDao) List(ctx context.Context, tenantID string) ([]model.Transaction, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT id, tenant_id, type, amount::text, currency, reference, created_at
		 FROM transactions WHERE tenant_id = $1 ORDER BY id DESC`, tenantID)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()
	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var amount string
		if err := rows.Scan(&t.ID, &t.TenantID, &t.Type, &amount, &t.Currency, &t.Reference, &t.CreatedAt); err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
