package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omnirelay/console/config"
	"github.com/omnirelay/console/persistence"
)

type baseDao struct {
	pool *pgxpool.Pool
}

func newBaseDao(pool *pgxpool.Pool) *baseDao {
	return &baseDao{pool: pool}
}

type Storage struct {
	pool          *baseDao
	tenants       *tenantDao
	users         *userDao
	contacts      *contactDao
	contactLists  *contactListDao
	channels      *channelDao
	templates     *templateDao
	campaigns     *campaignDao
	flows         *flowDao
	conversations *conversationDao
	transactions  *transactionDao
	integrations  *integrationDao
}

var _ persistence.Storage = new(Storage)

func NewStorage(ctx context.Context, conf config.PostgresConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(conf.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if conf.MaxConns > 0 {
		poolConfig.MaxConns = int32(conf.MaxConns)
	}
	if conf.MinConns > 0 {
		poolConfig.MinConns = int32(conf.MinConns)
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	base := newBaseDao(pool)
	s := &Storage{
		pool:          base,
		tenants:       &tenantDao{base},
		users:         &userDao{base},
		contacts:      &contactDao{base},
		contactLists:  &contactListDao{base},
		channels:      &channelDao{base},
		templates:     &templateDao{base},
		campaigns:     &campaignDao{base},
		flows:         &flowDao{base},
		conversations: &conversationDao{base},
		transactions:  &transactionDao{base},
		integrations:  &integrationDao{base},
	}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Storage) Tenants() persistence.TenantStorage             { return s.tenants }
func (s *Storage) Users() persistence.UserStorage                 { return s.users }
func (s *Storage) Contacts() persistence.ContactStorage           { return s.contacts }
func (s *Storage) ContactLists() persistence.ContactListStorage   { return s.contactLists }
func (s *Storage) Channels() persistence.ChannelStorage           { return s.channels }
func (s *Storage) Templates() persistence.TemplateStorage         { return s.templates }
func (s *Storage) Campaigns() persistence.CampaignStorage         { return s.campaigns }
func (s *Storage) Flows() persistence.FlowStorage                 { return s.flows }
func (s *Storage) Conversations() persistence.ConversationStorage { return s.conversations }
func (s *Storage) Transactions() persistence.TransactionStorage   { return s.transactions }
func (s *Storage) Integrations() persistence.IntegrationStorage   { return s.integrations }

func (s *Storage) Close() {
	s.pool.pool.Close()
}

// notFound maps pgx's no-rows sentinel to the storage error taxonomy.
func notFound(err error, entity string, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return persistence.NotFoundError{Entity: entity, ID: id}
	}
	return persistence.StorageLayerError{Message: err.Error()}
}
