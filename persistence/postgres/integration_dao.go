package postgres

import (
	"context"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
)

type integrationDao struct {
	*baseDao
}

var _ persistence.IntegrationStorage = new(integrationDao)

func (d *integrationDao) Save(ctx context.Context, integration *model.ApiIntegration) error {
	if integration.Config == nil {
		integration.Config = map[string]any{}
	}
	row := d.pool.QueryRow(ctx,
		`INSERT INTO api_integrations (id, tenant_id, name, provider, api_key, config, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		integration.ID, integration.TenantID, integration.Name, integration.Provider,
		integration.ApiKey, integration.Config, integration.IsActive)
	if err := row.Scan(&integration.CreatedAt, &integration.UpdatedAt); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *integrationDao) Update(ctx context.Context, integration *model.ApiIntegration) error {
	if integration.Config == nil {
		integration.Config = map[string]any{}
	}
	tag, err := d.pool.Exec(ctx,
		`UPDATE api_integrations SET name = $3, provider = $4, api_key = $5, config = $6,
		 is_active = $7, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2`,
		integration.TenantID, integration.ID, integration.Name, integration.Provider,
		integration.ApiKey, integration.Config, integration.IsActive)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "integration", ID: integration.ID}
	}
	return nil
}

func (d *integrationDao) Get(ctx context.Context, tenantID, id string) (*model.ApiIntegration, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, provider, api_key, config, is_active, created_at, updated_at
		 FROM api_integrations WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	var a model.ApiIntegration
	err := row.Scan(&a.ID, &a.TenantID, &a.Name, &a.Provider, &a.ApiKey, &a.Config, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "integration", id)
	}
	return &a, nil
}

func (d *integrationDao) List(ctx context.Context, tenantID string) ([]model.ApiIntegration, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT id, tenant_id, name, provider, api_key, config, is_active, created_at, updated_at
		 FROM api_integrations WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()
	var out []model.ApiIntegration
	for rows.Next() {
		var a model.ApiIntegration
		err := rows.Scan(&a.ID, &a.TenantID, &a.Name, &a.Provider, &a.ApiKey, &a.Config, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (d *integrationDao) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM api_integrations WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "integration", ID: id}
	}
	return nil
}
