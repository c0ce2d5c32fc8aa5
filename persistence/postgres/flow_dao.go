package postgres

import (
	"context"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
)

// flowDao stores graphs in native JSONB columns. Nodes and edges are
// marshalled and scanned structurally by the driver in both directions,
// so a saved graph reloads as the same value.
type flowDao struct {
	*baseDao
}

var _ persistence.FlowStorage = new(flowDao)

func (d *flowDao) Save(ctx context.Context, flow *model.Flow) error {
	row := d.pool.QueryRow(ctx,
		`INSERT INTO flows (id, tenant_id, name, description, schema_version, nodes, edges, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		flow.ID, flow.TenantID, flow.Name, flow.Description,
		flow.Graph.SchemaVersion, flow.Graph.Nodes, flow.Graph.Edges, flow.IsActive)
	if err := row.Scan(&flow.CreatedAt, &flow.UpdatedAt); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *flowDao) Update(ctx context.Context, flow *model.Flow) error {
	tag, err := d.pool.Exec(ctx,
		`UPDATE flows SET name = $3, description = $4, schema_version = $5, nodes = $6, edges = $7,
		 is_active = $8, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2`,
		flow.TenantID, flow.ID, flow.Name, flow.Description,
		flow.Graph.SchemaVersion, flow.Graph.Nodes, flow.Graph.Edges, flow.IsActive)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "flow", ID: flow.ID}
	}
	return nil
}

func (d *flowDao) Get(ctx context.Context, tenantID, id string) (*model.Flow, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, description, schema_version, nodes, edges, is_active, created_at, updated_at
		 FROM flows WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	var f model.Flow
	err := row.Scan(&f.ID, &f.TenantID, &f.Name, &f.Description, &f.Graph.SchemaVersion,
		&f.Graph.Nodes, &f.Graph.Edges, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "flow", id)
	}
	return &f, nil
}

func (d *flowDao) List(ctx context.Context, tenantID string) ([]model.Flow, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT id, tenant_id, name, description, schema_version, nodes, edges, is_active, created_at, updated_at
		 FROM flows WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()
	var out []model.Flow
	for rows.Next() {
		var f model.Flow
		err := rows.Scan(&f.ID, &f.TenantID, &f.Name, &f.Description, &f.Graph.SchemaVersion,
			&f.Graph.Nodes, &f.Graph.Edges, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (d *flowDao) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM flows WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "flow", ID: id}
	}
	return nil
}
