package persistence

import (
	"context"
	"fmt"

	"github.com/omnirelay/console/model"
)

type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

type StorageLayerError struct {
	Message string
}

func (e StorageLayerError) Error() string {
	return fmt.Sprintf("storage layer error %s", e.Message)
}

type InsufficientBalanceError struct {
	TenantID string
}

func (e InsufficientBalanceError) Error() string {
	return fmt.Sprintf("tenant %s has insufficient balance", e.TenantID)
}

type TenantStorage interface {
	Save(ctx context.Context, tenant *model.Tenant) error
	Update(ctx context.Context, tenant *model.Tenant) error
	Get(ctx context.Context, id string) (*model.Tenant, error)
	List(ctx context.Context) ([]model.Tenant, error)
	Delete(ctx context.Context, id string) error
}

type UserStorage interface {
	Save(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
}

type ContactStorage interface {
	Save(ctx context.Context, contact *model.Contact) error
	Update(ctx context.Context, contact *model.Contact) error
	Get(ctx context.Context, tenantID, id string) (*model.Contact, error)
	List(ctx context.Context, tenantID string) ([]model.Contact, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type ContactListStorage interface {
	Save(ctx context.Context, list *model.ContactList) error
	Update(ctx context.Context, list *model.ContactList) error
	Get(ctx context.Context, tenantID, id string) (*model.ContactList, error)
	List(ctx context.Context, tenantID string) ([]model.ContactList, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type ChannelStorage interface {
	List(ctx context.Context) ([]model.Channel, error)
	Get(ctx context.Context, id string) (*model.Channel, error)
}

type TemplateStorage interface {
	Save(ctx context.Context, template *model.Template) error
	Update(ctx context.Context, template *model.Template) error
	Get(ctx context.Context, tenantID, id string) (*model.Template, error)
	List(ctx context.Context, tenantID string) ([]model.Template, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type CampaignStorage interface {
	Save(ctx context.Context, campaign *model.Campaign) error
	Update(ctx context.Context, campaign *model.Campaign) error
	Get(ctx context.Context, tenantID, id string) (*model.Campaign, error)
	List(ctx context.Context, tenantID string) ([]model.Campaign, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type FlowStorage interface {
	Save(ctx context.Context, flow *model.Flow) error
	Update(ctx context.Context, flow *model.Flow) error
	Get(ctx context.Context, tenantID, id string) (*model.Flow, error)
	List(ctx context.Context, tenantID string) ([]model.Flow, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type ConversationStorage interface {
	Save(ctx context.Context, conversation *model.Conversation) error
	Update(ctx context.Context, conversation *model.Conversation) error
	Get(ctx context.Context, tenantID, id string) (*model.Conversation, error)
	List(ctx context.Context, tenantID string) ([]model.Conversation, error)
	AppendMessage(ctx context.Context, msg *model.Message) error
	Messages(ctx context.Context, conversationID string) ([]model.Message, error)
}

type TransactionStorage interface {
	// Apply inserts the ledger row and adjusts the tenant balance in a
	// single database transaction. Charges that would take the balance
	// below zero fail with InsufficientBalanceError and write nothing.
	Apply(ctx context.Context, txn *model.Transaction) (*model.Tenant, error)
	List(ctx context.Context, tenantID string) ([]model.Transaction, error)
}

type IntegrationStorage interface {
	Save(ctx context.Context, integration *model.ApiIntegration) error
	Update(ctx context.Context, integration *model.ApiIntegration) error
	Get(ctx context.Context, tenantID, id string) (*model.ApiIntegration, error)
	List(ctx context.Context, tenantID string) ([]model.ApiIntegration, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// Storage aggregates the per-resource stores behind one handle.
type Storage interface {
	Tenants() TenantStorage
	Users() UserStorage
	Contacts() ContactStorage
	ContactLists() ContactListStorage
	Channels() ChannelStorage
	Templates() TemplateStorage
	Campaigns() CampaignStorage
	Flows() FlowStorage
	Conversations() ConversationStorage
	Transactions() TransactionStorage
	Integrations() IntegrationStorage
	Close()
}
