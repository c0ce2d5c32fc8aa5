package model

import "time"

type ContactStatus string

const CONTACT_STATUS_ACTIVE ContactStatus = "active"
const CONTACT_STATUS_INACTIVE ContactStatus = "inactive"
const CONTACT_STATUS_BLOCKED ContactStatus = "blocked"

type Contact struct {
	ID        string        `json:"id"`
	TenantID  string        `json:"tenantId"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName,omitempty"`
	Email     string        `json:"email,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	Whatsapp  string        `json:"whatsapp,omitempty"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type ContactRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Whatsapp  string `json:"whatsapp"`
	Status    string `json:"status" validate:"omitempty,oneof=active inactive blocked"`
}

type ContactList struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ContactListRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// ImportResult reports a bulk contact import. Rows that fail validation
// are skipped and reported by line number; rows already inserted stay.
type ImportResult struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Total    int      `json:"total,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}
