package domain

import (
	"time"

	"gorm.io/gorm"
)

type PartnerType string

const (
	PartnerAgency        PartnerType = "AGENCY"
	PartnerFreelancer    PartnerType = "FREELANCER"
	PartnerAffiliate     PartnerType = "AFFILIATE"
	PartnerInternalSales PartnerType = "INTERNAL_SALES"
)

type PartnerStatus string

const (
	PartnerActive   PartnerStatus = "ACTIVE"
	PartnerPaused   PartnerStatus = "PAUSED"
	PartnerInactive PartnerStatus = "INACTIVE"
)

type Partner struct {
	Base
	Name           string        `json:"name" gorm:"size:160;not null;index"`
	Type           PartnerType   `json:"type" gorm:"size:24;not null"`
	Status         PartnerStatus `json:"status" gorm:"size:16;not null;default:'ACTIVE';index"`
	ContactName    string        `json:"contactName" gorm:"size:120"`
	Email          string        `json:"email" gorm:"size:254"`
	Phone          string        `json:"phone" gorm:"size:40"`
	TrackingCode   *string       `json:"trackingCode" gorm:"size:64;uniqueIndex"`
	CommissionRate float64       `json:"commissionRate" gorm:"not null;default:0"`
	Notes          string        `json:"notes" gorm:"type:text"`

	Referrals []PartnerReferral `json:"referrals,omitempty" gorm:"foreignKey:PartnerID;constraint:OnDelete:CASCADE"`
	Payouts   []PartnerPayout   `json:"payouts,omitempty" gorm:"foreignKey:PartnerID;constraint:OnDelete:CASCADE"`

	TypeLabel   string `json:"typeLabel" gorm:"-"`
	StatusLabel string `json:"statusLabel" gorm:"-"`
}

func (p *Partner) AfterFind(_ *gorm.DB) error { p.fillLabels(); return nil }
func (p *Partner) AfterSave(_ *gorm.DB) error { p.fillLabels(); return nil }

func (p *Partner) fillLabels() {
	p.TypeLabel = PartnerTypeLabels.Label(p.Type)
	p.StatusLabel = PartnerStatusLabels.Label(p.Status)
}

type ReferralStatus string

const (
	ReferralPending ReferralStatus = "PENDING"
	ReferralWon     ReferralStatus = "WON"
	ReferralLost    ReferralStatus = "LOST"
)

type PartnerReferral struct {
	Base
	PartnerID        string         `json:"partnerId" gorm:"type:varchar(36);not null;index"`
	ClientID         *string        `json:"clientId" gorm:"type:varchar(36);index"`
	ProjectID        *string        `json:"projectId" gorm:"type:varchar(36);index"`
	Status           ReferralStatus `json:"status" gorm:"size:16;not null;default:'PENDING'"`
	CommissionRate   float64        `json:"commissionRate"`
	CommissionBase   float64        `json:"commissionBase"`
	CommissionAmount float64        `json:"commissionAmount"`
	Currency         string         `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Notes            string         `json:"notes" gorm:"type:text"`

	Client  *Client  `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL"`
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL"`

	StatusLabel string `json:"statusLabel" gorm:"-"`
}

func (r *PartnerReferral) AfterFind(_ *gorm.DB) error { r.fillLabels(); return nil }
func (r *PartnerReferral) AfterSave(_ *gorm.DB) error { r.fillLabels(); return nil }

func (r *PartnerReferral) fillLabels() {
	r.StatusLabel = ReferralStatusLabels.Label(r.Status)
}

type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "PENDING"
	PayoutPaid      PayoutStatus = "PAID"
	PayoutCancelled PayoutStatus = "CANCELLED"
)

type PartnerPayout struct {
	Base
	PartnerID  string       `json:"partnerId" gorm:"type:varchar(36);not null;index"`
	ReferralID *string      `json:"referralId" gorm:"type:varchar(36);index"`
	Amount     float64      `json:"amount" gorm:"not null"`
	Currency   string       `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Status     PayoutStatus `json:"status" gorm:"size:16;not null;default:'PENDING'"`
	PayoutDate *time.Time   `json:"payoutDate" gorm:"index"`
	Method     string       `json:"method" gorm:"size:40"`
	Notes      string       `json:"notes" gorm:"type:text"`

	Referral *PartnerReferral `json:"referral,omitempty" gorm:"foreignKey:ReferralID;constraint:OnDelete:SET NULL"`

	StatusLabel string `json:"statusLabel" gorm:"-"`
}

func (p *PartnerPayout) AfterFind(_ *gorm.DB) error { p.fillLabels(); return nil }
func (p *PartnerPayout) AfterSave(_ *gorm.DB) error { p.fillLabels(); return nil }

func (p *PartnerPayout) fillLabels() {
	p.StatusLabel = PayoutStatusLabels.Label(p.Status)
}
