// Package rediscache layers a read-through cache over FlowStorage.
// Flow definitions are the hot read path for the editor, so they are
// kept in redis keyed by namespace:FLOW_DEF:<tenant>:<id> and
// invalidated on every write.
package rediscache

import (
	"context"
	"strings"
	"time"

	rd "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/omnirelay/console/config"
	"github.com/omnirelay/console/logger"
	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
	"github.com/omnirelay/console/util"
)

const FLOW_DEF string = "FLOW_DEF"

const flowTTL = 30 * time.Minute

type baseDao struct {
	redisClient rd.UniversalClient
	namespace   string
}

func newBaseDao(conf config.RedisCacheConfig) *baseDao {
	redisClient := rd.NewUniversalClient(&rd.UniversalOptions{
		Addrs: conf.Addrs,
	})
	return &baseDao{
		redisClient: redisClient,
		namespace:   conf.Namespace,
	}
}

func (bs *baseDao) getNamespaceKey(args ...string) string {
	return bs.namespace + ":" + strings.Join(args, ":")
}

type CachedFlowStorage struct {
	baseDao
	delegate       persistence.FlowStorage
	encoderDecoder util.EncoderDecoder[model.Flow]
}

var _ persistence.FlowStorage = new(CachedFlowStorage)

func NewCachedFlowStorage(conf config.RedisCacheConfig, delegate persistence.FlowStorage) *CachedFlowStorage {
	return &CachedFlowStorage{
		baseDao:        *newBaseDao(conf),
		delegate:       delegate,
		encoderDecoder: util.NewJsonEncoderDecoder[model.Flow](),
	}
}

func (c *CachedFlowStorage) Save(ctx context.Context, flow *model.Flow) error {
	if err := c.delegate.Save(ctx, flow); err != nil {
		return err
	}
	c.put(ctx, flow)
	return nil
}

func (c *CachedFlowStorage) Update(ctx context.Context, flow *model.Flow) error {
	if err := c.delegate.Update(ctx, flow); err != nil {
		return err
	}
	c.invalidate(ctx, flow.TenantID, flow.ID)
	return nil
}

func (c *CachedFlowStorage) Get(ctx context.Context, tenantID, id string) (*model.Flow, error) {
	key := c.getNamespaceKey(FLOW_DEF, tenantID, id)
	val, err := c.redisClient.Get(ctx, key).Result()
	if err == nil {
		flow, decErr := c.encoderDecoder.Decode([]byte(val))
		if decErr == nil {
			return flow, nil
		}
		// cached value is unreadable, fall back to the delegate
		logger.Warn("dropping unreadable cached flow", zap.String("key", key), zap.Error(decErr))
		c.redisClient.Del(ctx, key)
	}
	flow, err := c.delegate.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	c.put(ctx, flow)
	return flow, nil
}

func (c *CachedFlowStorage) List(ctx context.Context, tenantID string) ([]model.Flow, error) {
	return c.delegate.List(ctx, tenantID)
}

func (c *CachedFlowStorage) Delete(ctx context.Context, tenantID, id string) error {
	if err := c.delegate.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	c.invalidate(ctx, tenantID, id)
	return nil
}

func (c *CachedFlowStorage) put(ctx context.Context, flow *model.Flow) {
	data, err := c.encoderDecoder.Encode(*flow)
	if err != nil {
		return
	}
	key := c.getNamespaceKey(FLOW_DEF, flow.TenantID, flow.ID)
	if err := c.redisClient.Set(ctx, key, data, flowTTL).Err(); err != nil {
		logger.Warn("failed to cache flow", zap.String("key", key), zap.Error(err))
	}
}

func (c *CachedFlowStorage) invalidate(ctx context.Context, tenantID, id string) {
	key := c.getNamespaceKey(FLOW_DEF, tenantID, id)
	if err := c.redisClient.Del(ctx, key).Err(); err != nil {
		logger.Warn("failed to invalidate cached flow", zap.String("key", key), zap.Error(err))
	}
}
