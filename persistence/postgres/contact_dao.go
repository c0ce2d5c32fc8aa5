package postgres

import (
	"context"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
)

type contactDao struct {
	*baseDao
}

var _ persistence.ContactStorage = new(contactDao)

func (d *contactDao) Save(ctx context.Context, contact *model.Contact) error {
	row := d.pool.QueryRow(ctx,
		`INSERT INTO contacts (id, tenant_id, first_name, last_name, email, phone, whatsapp, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		contact.ID, contact.TenantID, contact.FirstName, contact.LastName,
		contact.Email, contact.Phone, contact.Whatsapp, contact.Status)
	if err := row.Scan(&contact.CreatedAt, &contact.UpdatedAt); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *contactDao) Update(ctx context.Context, contact *model.Contact) error {
	row := d.pool.QueryRow(ctx,
		`UPDATE contacts SET first_name = $3, last_name = $4, email = $5, phone = $6,
		 whatsapp = $7, status = $8, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2
		 RETURNING created_at, updated_at`,
		contact.TenantID, contact.ID, contact.FirstName, contact.LastName,
		contact.Email, contact.Phone, contact.Whatsapp, contact.Status)
	if err := row.Scan(&contact.CreatedAt, &contact.UpdatedAt); err != nil {
		return notFound(err, "contact", contact.ID)
	}
	return nil
}

func (d *contactDao) Get(ctx context.Context, tenantID, id string) (*model.Contact, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT id, tenant_id, first_name, last_name, email, phone, whatsapp, status, created_at, updated_at
		 FROM contacts WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	var c model.Contact
	err := row.Scan(&c.ID, &c.TenantID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Whatsapp, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "contact", id)
	}
	return &c, nil
}

func (d *contactDao) List(ctx context.Context, tenantID string) ([]model.Contact, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT id, tenant_id, first_name, last_name, email, phone, whatsapp, status, created_at, updated_at
		 FROM contacts WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()
	var out []model.Contact
	for rows.Next() {
		var c model.Contact
		err := rows.Scan(&c.ID, &c.TenantID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Whatsapp, &c.Status, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (d *contactDao) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM contacts WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "contact", ID: id}
	}
	return nil
}
