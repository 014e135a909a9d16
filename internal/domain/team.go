package domain

// TeamRole groups directory entries. Deleting a role detaches its members.
type TeamRole struct {
	Base
	Name  string `json:"name" gorm:"size:80;uniqueIndex;not null"`
	Color string `json:"color" gorm:"size:7;not null;default:'#64748B'"`

	Members     []TeamMember `json:"members,omitempty" gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL"`
	MemberCount int64        `json:"memberCount" gorm:"-"`
}

// TeamMember is a directory entry, independent from login accounts.
type TeamMember struct {
	Base
	Name                string   `json:"name" gorm:"size:120;not null"`
	Email               string   `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Phone               string   `json:"phone" gorm:"size:40"`
	Title               string   `json:"title" gorm:"size:120"`
	Location            string   `json:"location" gorm:"size:120"`
	Timezone            string   `json:"timezone" gorm:"size:64"`
	Availability        string   `json:"availability" gorm:"size:120"`
	Responsibilities    []string `json:"responsibilities" gorm:"type:text;serializer:json"`
	FocusAreas          []string `json:"focusAreas" gorm:"type:text;serializer:json"`
	IsEscalationContact bool     `json:"isEscalationContact"`
	RoleID              *string  `json:"roleId" gorm:"type:varchar(36);index"`

	Role *TeamRole `json:"role,omitempty"`
}
