// Package inmem implements persistence.Storage with guarded maps. It
// backs the memory storage type for development and the handler tests.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
	"github.com/shopspring/decimal"
)

type Storage struct {
	mu            sync.RWMutex
	tenants       map[string]model.Tenant
	users         map[string]model.User
	contacts      map[string]model.Contact
	contactLists  map[string]model.ContactList
	channels      []model.Channel
	templates     map[string]model.Template
	campaigns     map[string]model.Campaign
	flows         map[string]model.Flow
	conversations map[string]model.Conversation
	messages      map[string][]model.Message
	transactions  map[string][]model.Transaction
	integrations  map[string]model.ApiIntegration
}

var _ persistence.Storage = new(Storage)

func NewStorage() *Storage {
	return &Storage{
		tenants:       make(map[string]model.Tenant),
		users:         make(map[string]model.User),
		contacts:      make(map[string]model.Contact),
		contactLists:  make(map[string]model.ContactList),
		templates:     make(map[string]model.Template),
		campaigns:     make(map[string]model.Campaign),
		flows:         make(map[string]model.Flow),
		conversations: make(map[string]model.Conversation),
		messages:      make(map[string][]model.Message),
		transactions:  make(map[string][]model.Transaction),
		integrations:  make(map[string]model.ApiIntegration),
		channels: []model.Channel{
			{ID: "rcs", Type: model.CHANNEL_TYPE_RCS, Name: "RCS"},
			{ID: "sms", Type: model.CHANNEL_TYPE_SMS, Name: "SMS"},
			{ID: "voip", Type: model.CHANNEL_TYPE_VOIP, Name: "VOIP"},
			{ID: "whatsapp", Type: model.CHANNEL_TYPE_WHATSAPP, Name: "WhatsApp"},
		},
	}
}

func (s *Storage) Tenants() persistence.TenantStorage             { return (*tenantStore)(s) }
func (s *Storage) Users() persistence.UserStorage                 { return (*userStore)(s) }
func (s *Storage) Contacts() persistence.ContactStorage           { return (*contactStore)(s) }
func (s *Storage) ContactLists() persistence.ContactListStorage   { return (*contactListStore)(s) }
func (s *Storage) Channels() persistence.ChannelStorage           { return (*channelStore)(s) }
func (s *Storage) Templates() persistence.TemplateStorage         { return (*templateStore)(s) }
func (s *Storage) Campaigns() persistence.CampaignStorage         { return (*campaignStore)(s) }
func (s *Storage) Flows() persistence.FlowStorage                 { return (*flowStore)(s) }
func (s *Storage) Conversations() persistence.ConversationStorage { return (*conversationStore)(s) }
func (s *Storage) Transactions() persistence.TransactionStorage   { return (*transactionStore)(s) }
func (s *Storage) Integrations() persistence.IntegrationStorage   { return (*integrationStore)(s) }

func (s *Storage) Close() {}

type tenantStore Storage

func (s *tenantStore) Save(ctx context.Context, tenant *model.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	tenant.Balance = decimal.Zero
	tenant.CurrencyCode = "USD"
	tenant.IsActive = true
	tenant.CreatedAt = now
	tenant.UpdatedAt = now
	s.tenants[tenant.ID] = *tenant
	return nil
}

func (s *tenantStore) Update(ctx context.Context, tenant *model.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.tenants[tenant.ID]
	if !ok {
		return persistence.NotFoundError{Entity: "tenant", ID: tenant.ID}
	}
	tenant.Balance = existing.Balance
	tenant.CurrencyCode = existing.CurrencyCode
	tenant.CreatedAt = existing.CreatedAt
	tenant.UpdatedAt = time.Now().UTC()
	s.tenants[tenant.ID] = *tenant
	return nil
}

func (s *tenantStore) Get(ctx context.Context, id string) (*model.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tenants[id]
	if !ok {
		return nil, persistence.NotFoundError{Entity: "tenant", ID: id}
	}
	return &t, nil
}

func (s *tenantStore) List(ctx context.Context) ([]model.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		out = append(out, t)
	}
	sortByCreated(out, func(t model.Tenant) time.Time { return t.CreatedAt })
	return out, nil
}

func (s *tenantStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[id]; !ok {
		return persistence.NotFoundError{Entity: "tenant", ID: id}
	}
	delete(s.tenants, id)
	return nil
}

type userStore Storage

func (s *userStore) Save(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, persistence.NotFoundError{Entity: "user", ID: email}
}

func (s *userStore) Get(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, persistence.NotFoundError{Entity: "user", ID: id}
	}
	return &u, nil
}

type contactStore Storage

func (s *contactStore) Save(ctx context.Context, contact *model.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	s.contacts[contact.ID] = *contact
	return nil
}

func (s *contactStore) Update(ctx context.Context, contact *model.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.contacts[contact.ID]
	if !ok || existing.TenantID != contact.TenantID {
		return persistence.NotFoundError{Entity: "contact", ID: contact.ID}
	}
	contact.CreatedAt = existing.CreatedAt
	contact.UpdatedAt = time.Now().UTC()
	s.contacts[contact.ID] = *contact
	return nil
}

func (s *contactStore) Get(ctx context.Context, tenantID, id string) (*model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contacts[id]
	if !ok || c.TenantID != tenantID {
		return nil, persistence.NotFoundError{Entity: "contact", ID: id}
	}
	return &c, nil
}

func (s *contactStore) List(ctx context.Context, tenantID string) ([]model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Contact
	for _, c := range s.contacts {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	sortByCreated(out, func(c model.Contact) time.Time { return c.CreatedAt })
	return out, nil
}

func (s *contactStore) Delete(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok || c.TenantID != tenantID {
		return persistence.NotFoundError{Entity: "contact", ID: id}
	}
	delete(s.contacts, id)
	return nil
}

type contactListStore Storage

func (s *contactListStore) Save(ctx context.Context, list *model.ContactList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	list.CreatedAt = now
	list.UpdatedAt = now
	s.contactLists[list.ID] = *list
	return nil
}

func (s *contactListStore) Update(ctx context.Context, list *model.ContactList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.contactLists[list.ID]
	if !ok || existing.TenantID != list.TenantID {
		return persistence.NotFoundError{Entity: "contact list", ID: list.ID}
	}
	list.CreatedAt = existing.CreatedAt
	list.UpdatedAt = time.Now().UTC()
	s.contactLists[list.ID] = *list
	return nil
}

func (s *contactListStore) Get(ctx context.Context, tenantID, id string) (*model.ContactList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.contactLists[id]
	if !ok || l.TenantID != tenantID {
		return nil, persistence.NotFoundError{Entity: "contact list", ID: id}
	}
	return &l, nil
}

func (s *contactListStore) List(ctx context.Context, tenantID string) ([]model.ContactList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.ContactList
	for _, l := range s.contactLists {
		if l.TenantID == tenantID {
			out = append(out, l)
		}
	}
	sortByCreated(out, func(l model.ContactList) time.Time { return l.CreatedAt })
	return out, nil
}

func (s *contactListStore) Delete(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.contactLists[id]
	if !ok || l.TenantID != tenantID {
		return persistence.NotFoundError{Entity: "contact list", ID: id}
	}
	delete(s.contactLists, id)
	return nil
}

type channelStore Storage

func (s *channelStore) List(ctx context.Context) ([]model.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Channel, len(s.channels))
	copy(out, s.channels)
	return out, nil
}

func (s *channelStore) Get(ctx context.Context, id string) (*model.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.channels {
		if c.ID == id {
			ch := c
			return &ch, nil
		}
	}
	return nil, persistence.NotFoundError{Entity: "channel", ID: id}
}

type templateStore Storage

func (s *templateStore) Save(ctx context.Context, template *model.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now
	s.templates[template.ID] = *template
	return nil
}

func (s *templateStore) Update(ctx context.Context, template *model.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.templates[template.ID]
	if !ok || existing.TenantID != template.TenantID {
		return persistence.NotFoundError{Entity: "template", ID: template.ID}
	}
	template.CreatedAt = existing.CreatedAt
	template.UpdatedAt = time.Now().UTC()
	s.templates[template.ID] = *template
	return nil
}

func (s *templateStore) Get(ctx context.Context, tenantID, id string) (*model.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[id]
	if !ok || t.TenantID != tenantID {
		return nil, persistence.NotFoundError{Entity: "template", ID: id}
	}
	return &t, nil
}

func (s *templateStore) List(ctx context.Context, tenantID string) ([]model.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Template
	for _, t := range s.templates {
		if t.TenantID == tenantID {
			out = append(out, t)
		}
	}
	sortByCreated(out, func(t model.Template) time.Time { return t.CreatedAt })
	return out, nil
}

func (s *templateStore) Delete(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.templates[id]
	if !ok || t.TenantID != tenantID {
		return persistence.NotFoundError{Entity: "template", ID: id}
	}
	delete(s.templates, id)
	return nil
}

type campaignStore Storage

func (s *campaignStore) Save(ctx context.Context, campaign *model.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	s.campaigns[campaign.ID] = *campaign
	return nil
}

func (s *campaignStore) Update(ctx context.Context, campaign *model.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.campaigns[campaign.ID]
	if !ok || existing.TenantID != campaign.TenantID {
		return persistence.NotFoundError{Entity: "campaign", ID: campaign.ID}
	}
	campaign.CreatedAt = existing.CreatedAt
	campaign.UpdatedAt = time.Now().UTC()
	s.campaigns[campaign.ID] = *campaign
	return nil
}

func (s *campaignStore) Get(ctx context.Context, tenantID, id string) (*model.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[id]
	if !ok || c.TenantID != tenantID {
		return nil, persistence.NotFoundError{Entity: "campaign", ID: id}
	}
	return &c, nil
}

func (s *campaignStore) List(ctx context.Context, tenantID string) ([]model.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Campaign
	for _, c := range s.campaigns {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	sortByCreated(out, func(c model.Campaign) time.Time { return c.CreatedAt })
	return out, nil
}

func (s *campaignStore) Delete(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok || c.TenantID != tenantID {
		return persistence.NotFoundError{Entity: "campaign", ID: id}
	}
	delete(s.campaigns, id)
	return nil
}

type flowStore Storage

func (s *flowStore) Save(ctx context.Context, flow *model.Flow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	flow.CreatedAt = now
	flow.UpdatedAt = now
	s.flows[flow.ID] = *flow
	return nil
}

func (s *flowStore) Update(ctx context.Context, flow *model.Flow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.flows[flow.ID]
	if !ok || existing.TenantID != flow.TenantID {
		return persistence.NotFoundError{Entity: "flow", ID: flow.ID}
	}
	flow.CreatedAt = existing.CreatedAt
	flow.UpdatedAt = time.Now().UTC()
	s.flows[flow.ID] = *flow
	return nil
}

func (s *flowStore) Get(ctx context.Context, tenantID, id string) (*model.Flow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.flows[id]
	if !ok || f.TenantID != tenantID {
		return nil, persistence.NotFoundError{Entity: "flow", ID: id}
	}
	return &f, nil
}

func (s *flowStore) List(ctx context.Context, tenantID string) ([]model.Flow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Flow
	for _, f := range s.flows {
		if f.TenantID == tenantID {
			out = append(out, f)
		}
	}
	sortByCreated(out, func(f model.Flow) time.Time { return f.CreatedAt })
	return out, nil
}

func (s *flowStore) Delete(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[id]
	if !ok || f.TenantID != tenantID {
		return persistence.NotFoundError{Entity: "flow", ID: id}
	}
	delete(s.flows, id)
	return nil
}

type conversationStore Storage

func (s *conversationStore) Save(ctx context.Context, conversation *model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	s.conversations[conversation.ID] = *conversation
	return nil
}

func (s *conversationStore) Update(ctx context.Context, conversation *model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.conversations[conversation.ID]
	if !ok || existing.TenantID != conversation.TenantID {
		return persistence.NotFoundError{Entity: "conversation", ID: conversation.ID}
	}
	conversation.CreatedAt = existing.CreatedAt
	conversation.UpdatedAt = time.Now().UTC()
	s.conversations[conversation.ID] = *conversation
	return nil
}

func (s *conversationStore) Get(ctx context.Context, tenantID, id string) (*model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conversations[id]
	if !ok || c.TenantID != tenantID {
		return nil, persistence.NotFoundError{Entity: "conversation", ID: id}
	}
	return &c, nil
}

func (s *conversationStore) List(ctx context.Context, tenantID string) ([]model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Conversation
	for _, c := range s.conversations {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	sortByCreated(out, func(c model.Conversation) time.Time { return c.CreatedAt })
	return out, nil
}

func (s *conversationStore) AppendMessage(ctx context.Context, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.CreatedAt = time.Now().UTC()
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], *msg)
	return nil
}

func (s *conversationStore) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[conversationID]
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

type transactionStore Storage

func (s *transactionStore) Apply(ctx context.Context, txn *model.Transaction) (*model.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenant, ok := s.tenants[txn.TenantID]
	if !ok {
		return nil, persistence.NotFoundError{Entity: "tenant", ID: txn.TenantID}
	}
	delta := txn.Amount
	if txn.Type == model.TRANSACTION_TYPE_CHARGE {
		delta = delta.Neg()
	}
	newBalance := tenant.Balance.Add(delta)
	if newBalance.IsNegative() {
		return nil, persistence.InsufficientBalanceError{TenantID: txn.TenantID}
	}
	if txn.Currency == "" {
		txn.Currency = tenant.CurrencyCode
	}
	txn.CreatedAt = time.Now().UTC()
	s.transactions[txn.TenantID] = append(s.transactions[txn.TenantID], *txn)
	tenant.Balance = newBalance
	tenant.UpdatedAt = txn.CreatedAt
	s.tenants[txn.TenantID] = tenant
	return &tenant, nil
}

func (s *transactionStore) List(ctx context.Context, tenantID string) ([]model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txns := s.transactions[tenantID]
	out := make([]model.Transaction, len(txns))
	copy(out, txns)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type integrationStore Storage

func (s *integrationStore) Save(ctx context.Context, integration *model.ApiIntegration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	integration.CreatedAt = now
	integration.UpdatedAt = now
	s.integrations[integration.ID] = *integration
	return nil
}

func (s *integrationStore) Update(ctx context.Context, integration *model.ApiIntegration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.integrations[integration.ID]
	if !ok || existing.TenantID != integration.TenantID {
		return persistence.NotFoundError{Entity: "integration", ID: integration.ID}
	}
	integration.CreatedAt = existing.CreatedAt
	integration.UpdatedAt = time.Now().UTC()
	s.integrations[integration.ID] = *integration
	return nil
}

func (s *integrationStore) Get(ctx context.Context, tenantID, id string) (*model.ApiIntegration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.integrations[id]
	if !ok || a.TenantID != tenantID {
		return nil, persistence.NotFoundError{Entity: "integration", ID: id}
	}
	return &a, nil
}

func (s *integrationStore) List(ctx context.Context, tenantID string) ([]model.ApiIntegration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.ApiIntegration
	for _, a := range s.integrations {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	sortByCreated(out, func(a model.ApiIntegration) time.Time { return a.CreatedAt })
	return out, nil
}

func (s *integrationStore) Delete(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.integrations[id]
	if !ok || a.TenantID != tenantID {
		return persistence.NotFoundError{Entity: "integration", ID: id}
	}
	delete(s.integrations, id)
	return nil
}

func sortByCreated[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).Before(createdAt(items[j]))
	})
}
