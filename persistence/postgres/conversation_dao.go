package postgres

import (
	"context"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
)

type conversationDao struct {
	*baseDao
}

var _ persistence.ConversationStorage = new(conversationDao)

func (d *conversationDao) Save(ctx context.Context, conversation *model.Conversation) error {
	row := d.pool.QueryRow(ctx,
		`INSERT INTO conversations (id, tenant_id, contact_id, channel_id, status, assigned_to)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		 RETURNING created_at, updated_at`,
		conversation.ID, conversation.TenantID, conversation.ContactID,
		conversation.ChannelID, conversation.Status, conversation.AssignedTo)
	if err := row.Scan(&conversation.CreatedAt, &conversation.UpdatedAt); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *conversationDao) Update(ctx context.Context, conversation *model.Conversation) error {
	tag, err := d.pool.Exec(ctx,
		`UPDATE conversations SET status = $3, assigned_to = NULLIF($4, ''), updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2`,
		conversation.TenantID, conversation.ID, conversation.Status, conversation.AssignedTo)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if tag.RowsAffected() == 0 {
		return persistence.NotFoundError{Entity: "conversation", ID: conversation.ID}
	}
	return nil
}

func (d *conversationDao) Get(ctx context.Context, tenantID, id string) (*model.Conversation, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT id, tenant_id, contact_id, channel_id, status, COALESCE(assigned_to, ''), created_at, updated_at
		 FROM conversations WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	var c model.Conversation
	err := row.Scan(&c.ID, &c.TenantID, &c.ContactID, &c.ChannelID, &c.Status, &c.AssignedTo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "conversation", id)
	}
	return &c, nil
}

func (d *conversationDao) List(ctx context.Context, tenantID string) ([]model.Conversation, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT id, tenant_id, contact_id, channel_id, status, COALESCE(assigned_to, ''), created_at, updated_at
		 FROM conversations WHERE tenant_id = $1 ORDER BY updated_at DESC`, tenantID)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()
	var out []model.Conversation
	for rows.Next() {
		var c model.Conversation
		err := rows.Scan(&c.ID, &c.TenantID, &c.ContactID, &c.ChannelID, &c.Status, &c.AssignedTo, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (d *conversationDao) AppendMessage(ctx context.Context, msg *model.Message) error {
	row := d.pool.QueryRow(ctx,
		`INSERT INTO messages (id, conversation_id, direction, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		msg.ID, msg.ConversationID, msg.Direction, msg.Body)
	if err := row.Scan(&msg.CreatedAt); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (d *conversationDao) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT id, conversation_id, direction, body, created_at
		 FROM messages WHERE conversation_id = $1 ORDER BY created_at`, conversationID)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()
	var out []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Direction, &m.Body, &m.CreatedAt); err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
