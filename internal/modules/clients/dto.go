package clients

import (
	"strings"

	"agencyops/internal/domain"
	"agencyops/internal/pkg/validator"
)

// CreateClientRequest accepts the client name as either "name" or
// "clientName"; intake forms send the latter.
type CreateClientRequest struct {
	Name         string              `json:"name" validate:"max=160"`
	ClientName   string              `json:"clientName" validate:"max=160"`
	ContactName  string              `json:"contactName" validate:"max=120"`
	ContactEmail string              `json:"contactEmail" validate:"required,email,max=254"`
	ContactPhone string              `json:"contactPhone" validate:"max=40"`
	Country      string              `json:"country" validate:"max=80"`
	Industry     string              `json:"industry" validate:"max=80"`
	Status       domain.ClientStatus `json:"status" validate:"omitempty,oneof=LEAD ACTIVE PAUSED CLOSED"`
	Notes        string              `json:"notes" validate:"max=5000"`
	Services     []string            `json:"services" validate:"max=16,dive,oneof=web ecommerce seo ads marketing support branding app"`
}

func (r CreateClientRequest) DisplayName() string {
	if n := strings.TrimSpace(r.ClientName); n != "" {
		return n
	}
	return strings.TrimSpace(r.Name)
}

// Check covers the rules struct tags cannot express.
func (r CreateClientRequest) Check() []validator.Issue {
	if r.DisplayName() == "" {
		return []validator.Issue{{Field: "clientName", Message: "is required"}}
	}
	return nil
}

type UpdateClientRequest struct {
	Name         *string              `json:"name" validate:"omitempty,min=1,max=160"`
	ClientName   *string              `json:"clientName" validate:"omitempty,min=1,max=160"`
	ContactName  *string              `json:"contactName" validate:"omitempty,max=120"`
	ContactEmail *string              `json:"contactEmail" validate:"omitempty,email,max=254"`
	ContactPhone *string              `json:"contactPhone" validate:"omitempty,max=40"`
	Country      *string              `json:"country" validate:"omitempty,max=80"`
	Industry     *string              `json:"industry" validate:"omitempty,max=80"`
	Status       *domain.ClientStatus `json:"status" validate:"omitempty,oneof=LEAD ACTIVE PAUSED CLOSED"`
	Notes        *string              `json:"notes" validate:"omitempty,max=5000"`
	Services     []string             `json:"services" validate:"max=16,dive,oneof=web ecommerce seo ads marketing support branding app"`
}

func (r UpdateClientRequest) fields() map[string]any {
	f := map[string]any{}
	switch {
	case r.ClientName != nil:
		f["name"] = strings.TrimSpace(*r.ClientName)
	case r.Name != nil:
		f["name"] = strings.TrimSpace(*r.Name)
	}
	if r.ContactName != nil {
		f["contact_name"] = strings.TrimSpace(*r.ContactName)
	}
	if r.ContactEmail != nil {
		f["contact_email"] = strings.ToLower(strings.TrimSpace(*r.ContactEmail))
	}
	if r.ContactPhone != nil {
		f["contact_phone"] = strings.TrimSpace(*r.ContactPhone)
	}
	if r.Country != nil {
		f["country"] = strings.TrimSpace(*r.Country)
	}
	if r.Industry != nil {
		f["industry"] = strings.TrimSpace(*r.Industry)
	}
	if r.Status != nil {
		f["status"] = *r.Status
	}
	if r.Notes != nil {
		f["notes"] = *r.Notes
	}
	return f
}

type CreateAccessRequest struct {
	Service  string `json:"service" validate:"required,max=120"`
	Username string `json:"username" validate:"max=160"`
	Password string `json:"password" validate:"max=500"`
	URL      string `json:"url" validate:"omitempty,url,max=500"`
	Notes    string `json:"notes" validate:"max=5000"`
}

type ClientFilter struct {
	Status domain.ClientStatus
	Query  string
}
