package postgres

import (
	"context"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
	"github.com/shopspring/decimal"
)

type tenantDao struct {
	*baseDao
}

var _ persistence.TenantStorage = new(tenantDao)

func (d *tenantDao) Save(ctx context.Context, tenant *model.Tenant) error {
	row := d.pool.QueryRow(ctx,
		`INSERT INTO tenants (id, name, email, level_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING balance::text, currency_code, is_active, created_at, updated_at`,
		tenant.ID, tenant.Name, tenant.Email, tenant.LevelID)
	var balance string
	if err := row.Scan(&balance, &tenant.CurrencyCode, &tenant.IsActive, &tenant.CreatedAt, &tenant.UpdatedAt); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	var err error
	tenant.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *tenantDao) Update(ctx context.Context, tenant *model.Tenant) error {
	tag, err := d.pool.Exec(ctx,
		`UPDATE tenants SET name = $2, email = $3, level_id = $4, is_active = $5, updated_at = NOW()
		 WHERE id = $1`,
		tenant.ID, tenant.Name, tenant.Email, tenant.LevelID, tenant.IsActive)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "tenant", ID: tenant.ID}
	}
	return nil
}

func (d *tenantDao) Get(ctx context.Context, id string) (*model.Tenant, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT id, name, email, level_id, balance::text, currency_code, is_active, created_at, updated_at
		 FROM tenants WHERE id = $1`, id)
	return scanTenant(row, id)
}

func (d *tenantDao) List(ctx context.Context) ([]model.Tenant, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT id, name, email, level_id, balance::text, currency_code, is_active, created_at, updated_at
		 FROM tenants ORDER BY created_at`)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()
	var out []model.Tenant
	for rows.Next() {
		t, err := scanTenant(rows, "")
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (d *tenantDao) Delete(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "tenant", ID: id}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner, id string) (*model.Tenant, error) {
	var t model.Tenant
	var balance string
	err := row.Scan(&t.ID, &t.Name, &t.Email, &t.LevelID, &balance, &t.CurrencyCode, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "tenant", id)
	}
	t.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return &t, nil
}
