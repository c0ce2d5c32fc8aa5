package postgres

import (
	"context"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
)

type userDao struct {
	*baseDao
}

var _ persistence.UserStorage = new(userDao)

func (d *userDao) Save(ctx context.Context, user *model.User) error {
	row := d.pool.QueryRow(ctx,
		`INSERT INTO users (id, tenant_id, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		user.ID, user.TenantID, user.Email, user.PasswordHash, user.Role)
	if err := row.Scan(&user.CreatedAt); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *userDao) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT id, tenant_id, email, password_hash, role, created_at FROM users WHERE email = $1`, email)
	var u model.User
	if err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, notFound(err, "user", email)
	}
	return &u, nil
}

func (d *userDao) Get(ctx context.Context, id string) (*model.User, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT id, tenant_id, email, password_hash, role, created_at FROM users WHERE id = $1`, id)
	var u model.User
	if err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}
