package partners

import "agencyops/internal/domain"

type CreatePartnerRequest struct {
	Name           string               `json:"name" validate:"required,max=160"`
	Type           domain.PartnerType   `json:"type" validate:"required,oneof=AGENCY FREELANCER AFFILIATE INTERNAL_SALES"`
	Status         domain.PartnerStatus `json:"status" validate:"omitempty,oneof=ACTIVE PAUSED INACTIVE"`
	ContactName    string               `json:"contactName" validate:"max=120"`
	Email          string               `json:"email" validate:"omitempty,email,max=254"`
	Phone          string               `json:"phone" validate:"max=40"`
	TrackingCode   string               `json:"trackingCode" validate:"max=64"`
	CommissionRate float64              `json:"commissionRate" validate:"gte=0,lte=100"`
	Notes          string               `json:"notes" validate:"max=5000"`
}

type UpdatePartnerRequest struct {
	Name           *string               `json:"name" validate:"omitempty,min=1,max=160"`
	Type           *domain.PartnerType   `json:"type" validate:"omitempty,oneof=AGENCY FREELANCER AFFILIATE INTERNAL_SALES"`
	Status         *domain.PartnerStatus `json:"status" validate:"omitempty,oneof=ACTIVE PAUSED INACTIVE"`
	ContactName    *string               `json:"contactName" validate:"omitempty,max=120"`
	Email          *string               `json:"email" validate:"omitempty,email,max=254"`
	Phone          *string               `json:"phone" validate:"omitempty,max=40"`
	TrackingCode   *string               `json:"trackingCode" validate:"omitempty,max=64"`
	CommissionRate *float64              `json:"commissionRate" validate:"omitempty,gte=0,lte=100"`
	Notes          *string               `json:"notes" validate:"omitempty,max=5000"`
}

// CreateReferralRequest falls back to the partner's rate when commissionRate
// is absent, and derives commissionAmount from base and rate when absent.
type CreateReferralRequest struct {
	ClientID         *string               `json:"clientId"`
	ProjectID        *string               `json:"projectId"`
	Status           domain.ReferralStatus `json:"status" validate:"omitempty,oneof=PENDING WON LOST"`
	CommissionRate   *float64              `json:"commissionRate" validate:"omitempty,gte=0,lte=100"`
	CommissionBase   float64               `json:"commissionBase" validate:"gte=0"`
	CommissionAmount *float64              `json:"commissionAmount" validate:"omitempty,gte=0"`
	Currency         string                `json:"currency" validate:"omitempty,len=3,alpha"`
	Notes            string                `json:"notes" validate:"max=5000"`
}

type UpdateReferralRequest struct {
	ClientID         *string                `json:"clientId"`
	ProjectID        *string                `json:"projectId"`
	Status           *domain.ReferralStatus `json:"status" validate:"omitempty,oneof=PENDING WON LOST"`
	CommissionRate   *float64               `json:"commissionRate" validate:"omitempty,gte=0,lte=100"`
	CommissionBase   *float64               `json:"commissionBase" validate:"omitempty,gte=0"`
	CommissionAmount *float64               `json:"commissionAmount" validate:"omitempty,gte=0"`
	Currency         *string                `json:"currency" validate:"omitempty,len=3,alpha"`
	Notes            *string                `json:"notes" validate:"omitempty,max=5000"`
}

type CreatePayoutRequest struct {
	ReferralID *string             `json:"referralId"`
	Amount     float64             `json:"amount" validate:"gte=0"`
	Currency   string              `json:"currency" validate:"omitempty,len=3,alpha"`
	Status     domain.PayoutStatus `json:"status" validate:"omitempty,oneof=PENDING PAID CANCELLED"`
	PayoutDate *string             `json:"payoutDate"`
	Method     string              `json:"method" validate:"max=40"`
	Notes      string              `json:"notes" validate:"max=5000"`
}

type UpdatePayoutRequest struct {
	ReferralID *string              `json:"referralId"`
	Amount     *float64             `json:"amount" validate:"omitempty,gte=0"`
	Currency   *string              `json:"currency" validate:"omitempty,len=3,alpha"`
	Status     *domain.PayoutStatus `json:"status" validate:"omitempty,oneof=PENDING PAID CANCELLED"`
	PayoutDate *string              `json:"payoutDate"`
	Method     *string              `json:"method" validate:"omitempty,max=40"`
	Notes      *string              `json:"notes" validate:"omitempty,max=5000"`
}

type PartnerFilter struct {
	Status domain.PartnerStatus
	Type   domain.PartnerType
	Query  string
}

// Totals: earned is the commission of WON referrals, paid the sum of PAID
// payouts, pending the difference.
type Totals struct {
	Earned  float64 `json:"earned"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
}

type PartnerDetail struct {
	*domain.Partner
	Totals Totals `json:"totals"`
}
