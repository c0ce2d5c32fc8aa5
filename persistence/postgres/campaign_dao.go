package postgres

import (
	"context"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
)

type campaignDao struct {
	*baseDao
}

var _ persistence.CampaignStorage = new(campaignDao)

func (d *campaignDao) Save(ctx context.Context, campaign *model.Campaign) error {
	row := d.pool.QueryRow(ctx,
		`INSERT INTO campaigns (id, tenant_id, name, channel_id, template_id, list_id, status, scheduled_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8)
		 RETURNING created_at, updated_at`,
		campaign.ID, campaign.TenantID, campaign.Name, campaign.ChannelID,
		campaign.TemplateID, campaign.ListID, campaign.Status, campaign.ScheduledAt)
	if err := row.Scan(&campaign.CreatedAt, &campaign.UpdatedAt); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *campaignDao) Update(ctx context.Context, campaign *model.Campaign) error {
	tag, err := d.pool.Exec(ctx,
		`UPDATE campaigns SET name = $3, channel_id = NULLIF($4, ''), template_id = NULLIF($5, ''),
		 list_id = NULLIF($6, ''), status = $7, scheduled_at = $8, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2`,
		campaign.TenantID, campaign.ID, campaign.Name, campaign.ChannelID,
		campaign.TemplateID, campaign.ListID, campaign.Status, campaign.ScheduledAt)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "campaign", ID: campaign.ID}
	}
	return nil
}

func (d *campaignDao) Get(ctx context.Context, tenantID, id string) (*model.Campaign, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, COALESCE(channel_id, ''), COALESCE(template_id, ''),
		 COALESCE(list_id, ''), status, scheduled_at, created_at, updated_at
		 FROM campaigns WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	var c model.Campaign
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.ChannelID, &c.TemplateID, &c.ListID, &c.Status, &c.ScheduledAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "campaign", id)
	}
	return &c, nil
}

func (d *campaignDao) List(ctx context.Context, tenantID string) ([]model.Campaign, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT id, tenant_id, name, COALESCE(channel_id, ''), COALESCE(template_id, ''),
		 COALESCE(list_id, ''), status, scheduled_at, created_at, updated_at
		 FROM campaigns WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()
	var out []model.Campaign
	for rows.Next() {
		var c model.Campaign
		err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.ChannelID, &c.TemplateID, &c.ListID, &c.Status, &c.ScheduledAt, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (d *campaignDao) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM campaigns WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "campaign", ID: id}
	}
	return nil
}
