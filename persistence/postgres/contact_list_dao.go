package postgres

import (
	"context"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
)

type contactListDao struct {
	*baseDao
}

var _ persistence.ContactListStorage = new(contactListDao)

func (d *contactListDao) Save(ctx context.Context, list *model.ContactList) error {
	row := d.pool.QueryRow(ctx,
		`INSERT INTO contact_lists (id, tenant_id, name, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		list.ID, list.TenantID, list.Name, list.Description)
	if err := row.Scan(&list.CreatedAt, &list.UpdatedAt); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *contactListDao) Update(ctx context.Context, list *model.ContactList) error {
	row := d.pool.QueryRow(ctx,
		`UPDATE contact_lists SET name = $3, description = $4, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2
		 RETURNING created_at, updated_at`,
		list.TenantID, list.ID, list.Name, list.Description)
	if err := row.Scan(&list.CreatedAt, &list.UpdatedAt); err != nil {
		return notFound(err, "contact list", list.ID)
	}
	return nil
}

func (d *contactListDao) Get(ctx context.Context, tenantID, id string) (*model.ContactList, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, description, created_at, updated_at
		 FROM contact_lists WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	var l model.ContactList
	if err := row.Scan(&l.ID, &l.TenantID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, notFound(err, "contact list", id)
	}
	return &l, nil
}

func (d *contactListDao) List(ctx context.Context, tenantID string) ([]model.ContactList, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT id, tenant_id, name, description, created_at, updated_at
		 FROM contact_lists WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()
	var out []model.ContactList
	for rows.Next() {
		var l model.ContactList
		if err := rows.Scan(&l.ID, &l.TenantID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (d *contactListDao) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM contact_lists WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "contact list", ID: id}
	}
	return nil
}
