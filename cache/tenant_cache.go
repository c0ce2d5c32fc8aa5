package cache

import (
	"time"

	"github.com/omnirelay/console/model"
	c "github.com/patrickmn/go-cache"
)

// TenantCache keeps recently resolved tenants in process. Auth runs on
// every request and the tenant row changes rarely, so a short TTL is
// enough.
type TenantCache struct {
	cache *c.Cache
}

func NewTenantCache() *TenantCache {
	return &TenantCache{
		cache: c.New(1*time.Minute, 10*time.Minute),
	}
}

func (ch *TenantCache) Put(tenant *model.Tenant) {
	ch.cache.Set(tenant.ID, *tenant, c.DefaultExpiration)
}

func (ch *TenantCache) Get(tenantID string) (*model.Tenant, bool) {
	v, found := ch.cache.Get(tenantID)
	if !found {
		return nil, false
	}
	t := v.(model.Tenant)
	return &t, true
}

func (ch *TenantCache) Invalidate(tenantID string) {
	ch.cache.Delete(tenantID)
}
