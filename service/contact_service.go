package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/omnirelay/console/imports"
	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence"
)

type ContactService struct {
	contacts persistence.ContactStorage
}

func NewContactService(contacts persistence.ContactStorage) *ContactService {
	return &ContactService{contacts: contacts}
}

// Import inserts the valid rows and reports the invalid ones by line
// number. Rows inserted before a failure stay inserted; partial results
// are the contract, not an accident, and the counts in the result add
// up: Imported + len(Errors) == Total.
func (s *ContactService) Import(ctx context.Context, tenantID string, rows []imports.Row) (*model.ImportResult, error) {
	result := &model.ImportResult{Total: len(rows)}
	for _, row := range rows {
		if row.FirstName == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: first name is required", row.Line))
			continue
		}
		status, ok := importStatus(row.Status)
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: unknown status %q", row.Line, row.Status))
			continue
		}
		contact := &model.Contact{
			ID:        uuid.NewString(),
			TenantID:  tenantID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
			Phone:     row.Phone,
			Whatsapp:  row.Whatsapp,
			Status:    status,
		}
		if err := s.contacts.Save(ctx, contact); err != nil {
			// storage fault, not a bad row: stop here and report what made it in
			result.Success = false
			return result, err
		}
		result.Imported++
	}
	result.Success = true
	return result, nil
}

// importStatus holds imported rows to the same status set the API accepts.
// A blank column means active.
func importStatus(raw string) (model.ContactStatus, bool) {
	switch model.ContactStatus(strings.ToLower(raw)) {
	case "":
		return model.CONTACT_STATUS_ACTIVE, true
	case model.CONTACT_STATUS_ACTIVE:
		return model.CONTACT_STATUS_ACTIVE, true
	case model.CONTACT_STATUS_INACTIVE:
		return model.CONTACT_STATUS_INACTIVE, true
	case model.CONTACT_STATUS_BLOCKED:
		return model.CONTACT_STATUS_BLOCKED, true
	}
	return "", false
}
