package domain

// LabelTable maps stored enum values to the text shown to staff.
type LabelTable[T ~string] map[T]string

// Label falls back to the raw value for anything not in the table.
func (t LabelTable[T]) Label(v T) string {
	if l, ok := t[v]; ok {
		return l
	}
	return string(v)
}

func (t LabelTable[T]) Has(v T) bool {
	_, ok := t[v]
	return ok
}

var UserRoleLabels = LabelTable[UserRole]{
	RoleOwner:          "Owner",
	RoleAdmin:          "Administrator",
	RoleProjectManager: "Project manager",
	RoleDeveloper:      "Developer",
	RoleSupport:        "Support",
	RoleFinance:        "Finance",
	RolePartnerManager: "Partner manager",
}

var ClientStatusLabels = LabelTable[ClientStatus]{
	ClientLead:   "Lead",
	ClientActive: "Active",
	ClientPaused: "Paused",
	ClientClosed: "Closed",
}

var ProjectTypeLabels = LabelTable[ProjectType]{
	ProjectWebsite:   "Website",
	ProjectEcommerce: "E-commerce",
	ProjectSEO:       "SEO",
	ProjectMarketing: "Digital marketing",
	ProjectSupport:   "Support & maintenance",
	ProjectBranding:  "Branding",
	ProjectApp:       "App development",
	ProjectOther:     "Other",
}

var ProjectStatusLabels = LabelTable[ProjectStatus]{
	ProjectDiscovery:  "Discovery",
	ProjectInProgress: "In progress",
	ProjectReview:     "In review",
	ProjectProduction: "In production",
	ProjectPaused:     "Paused",
	ProjectClosed:     "Closed",
}

var ProjectUpdateTypeLabels = LabelTable[ProjectUpdateType]{
	ProjectUpdateNote:         "Note",
	ProjectUpdateStatusChange: "Status change",
	ProjectUpdateMilestone:    "Milestone",
}

var TicketStatusLabels = LabelTable[TicketStatus]{
	TicketNew:           "New",
	TicketInProgress:    "In progress",
	TicketWaitingClient: "Waiting on client",
	TicketResolved:      "Resolved",
	TicketClosed:        "Closed",
}

var TicketPriorityLabels = LabelTable[TicketPriority]{
	PriorityLow:      "Low",
	PriorityMedium:   "Medium",
	PriorityHigh:     "High",
	PriorityCritical: "Critical",
}

var TicketUpdateTypeLabels = LabelTable[TicketUpdateType]{
	TicketUpdateNote:         "Note",
	TicketUpdateStatusChange: "Status change",
	TicketUpdateIncident:     "Incident",
}

var InvoiceStatusLabels = LabelTable[InvoiceStatus]{
	InvoiceDraft:   "Draft",
	InvoiceSent:    "Sent",
	InvoicePaid:    "Paid",
	InvoiceOverdue: "Overdue",
}

var PartnerTypeLabels = LabelTable[PartnerType]{
	PartnerAgency:        "Agency",
	PartnerFreelancer:    "Freelancer",
	PartnerAffiliate:     "Affiliate",
	PartnerInternalSales: "Internal sales",
}

var PartnerStatusLabels = LabelTable[PartnerStatus]{
	PartnerActive:   "Active",
	PartnerPaused:   "Paused",
	PartnerInactive: "Inactive",
}

var ReferralStatusLabels = LabelTable[ReferralStatus]{
	ReferralPending: "Pending",
	ReferralWon:     "Won",
	ReferralLost:    "Lost",
}

var PayoutStatusLabels = LabelTable[PayoutStatus]{
	PayoutPending:   "Pending",
	PayoutPaid:      "Paid",
	PayoutCancelled: "Cancelled",
}
