package domain

import "gorm.io/gorm"

type UserRole string

const (
	RoleOwner          UserRole = "OWNER"
	RoleAdmin          UserRole = "ADMIN"
	RoleProjectManager UserRole = "PROJECT_MANAGER"
	RoleDeveloper      UserRole = "DEVELOPER"
	RoleSupport        UserRole = "SUPPORT"
	RoleFinance        UserRole = "FINANCE"
	RolePartnerManager UserRole = "PARTNER_MANAGER"
)

// User is an internal staff account.
type User struct {
	Base
	Name         string   `json:"name" gorm:"size:120;not null"`
	Email        string   `json:"email" gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"not null"`
	Role         UserRole `json:"role" gorm:"size:32;not null;default:'DEVELOPER'"`
	Timezone     string   `json:"timezone" gorm:"size:64;not null;default:'UTC'"`

	RoleLabel string `json:"roleLabel" gorm:"-"`
}

func (u *User) AfterFind(_ *gorm.DB) error { u.fillLabels(); return nil }
func (u *User) AfterSave(_ *gorm.DB) error { u.fillLabels(); return nil }

func (u *User) fillLabels() {
	u.RoleLabel = UserRoleLabels.Label(u.Role)
}
