package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/omnirelay/console/config"
	"github.com/omnirelay/console/persistence"
	"github.com/omnirelay/console/persistence/inmem"
	"github.com/omnirelay/console/persistence/postgres"
	"github.com/omnirelay/console/persistence/rediscache"
	"github.com/omnirelay/console/rest"
	"github.com/omnirelay/console/service"
)

type Agent struct {
	Config         config.Config
	storage        persistence.Storage
	flowStorage    persistence.FlowStorage
	authService    *service.AuthService
	flowService    *service.FlowService
	billingService *service.BillingService
	contactService *service.ContactService
	httpServer     *rest.Server
}

func New(conf config.Config) (*Agent, error) {
	a := &Agent{Config: conf}
	setup := []func() error{
		a.setupStorage,
		a.setupServices,
		a.setupHttpServer,
	}
	for _, fn := range setup {
		if err := fn(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Agent) setupStorage() error {
	switch a.Config.StorageType {
	case config.STORAGE_TYPE_POSTGRES:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		storage, err := postgres.NewStorage(ctx, a.Config.PostgresConfig)
		if err != nil {
			return err
		}
		a.storage = storage
	case config.STORAGE_TYPE_INMEM:
		a.storage = inmem.NewStorage()
	default:
		return fmt.Errorf("unknown storage type %q", a.Config.StorageType)
	}
	a.flowStorage = a.storage.Flows()
	if len(a.Config.RedisConfig.Addrs) > 0 {
		a.flowStorage = rediscache.NewCachedFlowStorage(a.Config.RedisConfig, a.flowStorage)
	}
	return nil
}

func (a *Agent) setupServices() error {
	ttl := time.Duration(a.Config.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	a.authService = service.NewAuthService(a.storage.Users(), a.Config.JwtSecret, ttl)
	a.flowService = service.NewFlowService(a.flowStorage)
	a.billingService = service.NewBillingService(a.storage.Tenants(), a.storage.Transactions(), service.NewMockPaymentProvider())
	a.contactService = service.NewContactService(a.storage.Contacts())
	return nil
}

func (a *Agent) setupHttpServer() error {
	var err error
	a.httpServer, err = rest.NewServer(a.Config, a.storage, a.authService, a.flowService, a.billingService, a.contactService)
	return err
}

func (a *Agent) Start() error {
	return a.httpServer.Start()
}

func (a *Agent) Shutdown() error {
	err := a.httpServer.Stop()
	a.storage.Close()
	return err
}
