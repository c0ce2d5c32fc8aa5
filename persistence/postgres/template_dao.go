package postgres

import (
	"context"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
)

type templateDao struct {
	*baseDao
}

var _ persistence.TemplateStorage = new(templateDao)

func (d *templateDao) Save(ctx context.Context, template *model.Template) error {
	row := d.pool.QueryRow(ctx,
		`INSERT INTO templates (id, tenant_id, name, channel_id, content, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		template.ID, template.TenantID, template.Name, template.ChannelID, template.Content, template.IsActive)
	if err := row.Scan(&template.CreatedAt, &template.UpdatedAt); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *templateDao) Update(ctx context.Context, template *model.Template) error {
	tag, err := d.pool.Exec(ctx,
		`UPDATE templates SET name = $3, channel_id = $4, content = $5, is_active = $6, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2`,
		template.TenantID, template.ID, template.Name, template.ChannelID, template.Content, template.IsActive)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "template", ID: template.ID}
	}
	return nil
}

func (d *templateDao) Get(ctx context.Context, tenantID, id string) (*model.Template, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, channel_id, content, is_active, created_at, updated_at
		 FROM templates WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	var t model.Template
	if err := row.Scan(&t.ID, &t.TenantID, &t.Name, &t.ChannelID, &t.Content, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, notFound(err, "template", id)
	}
	return &t, nil
}

func (d *templateDao) List(ctx context.Context, tenantID string) ([]model.Template, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT id, tenant_id, name, channel_id, content, is_active, created_at, updated_at
		 FROM templates WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()
	var out []model.Template
	for rows.Next() {
		var t model.Template
		if err := rows.Scan(&t.ID, &t.TenantID, &t.Name, &t.ChannelID, &t.Content, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (d *templateDao) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM templates WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "template", ID: id}
	}
	return nil
}
