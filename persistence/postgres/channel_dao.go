package postgres

import (
	"context"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
)

type channelDao struct {
	*baseDao
}

var _ persistence.ChannelStorage = new(channelDao)

func (d *channelDao) List(ctx context.Context) ([]model.Channel, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, type, name FROM channels ORDER BY id`)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	defer rows.Close()
	var out []model.Channel
	for rows.Next() {
		var c model.Channel
		if err := rows.Scan(&c.ID, &c.Type, &c.Name); err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (d *channelDao) Get(ctx context.Context, id string) (*model.Channel, error) {
	row := d.pool.QueryRow(ctx, `SELECT id, type, name FROM channels WHERE id = $1`, id)
	var c model.Channel
	if err := row.Scan(&c.ID, &c.Type, &c.Name); err != nil {
		return nil, notFound(err, "channel", id)
	}
	return &c, nil
}
