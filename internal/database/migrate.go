package database

import (
	"gorm.io/gorm"

	"agencyops/internal/domain"
)

// Models lists every table of the entity store in dependency order.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Client{},
		&domain.ClientAccess{},
		&domain.Project{},
		&domain.ProjectUpdate{},
		&domain.Ticket{},
		&domain.TicketWatcher{},
		&domain.TicketUpdate{},
		&domain.Invoice{},
		&domain.Partner{},
		&domain.PartnerReferral{},
		&domain.PartnerPayout{},
		&domain.TeamRole{},
		&domain.TeamMember{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
