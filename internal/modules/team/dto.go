package team

type CreateMemberRequest struct {
	Name                string   `json:"name" validate:"required,max=120"`
	Email               string   `json:"email" validate:"required,email,max=254"`
	Phone               string   `json:"phone" validate:"max=40"`
	Title               string   `json:"title" validate:"max=120"`
	Location            string   `json:"location" validate:"max=120"`
	Timezone            string   `json:"timezone" validate:"max=64"`
	Availability        string   `json:"availability" validate:"max=120"`
	Responsibilities    []string `json:"responsibilities" validate:"max=32,dive,min=1,max=200"`
	FocusAreas          []string `json:"focusAreas" validate:"max=32,dive,min=1,max=200"`
	IsEscalationContact bool     `json:"isEscalationContact"`
	RoleID              *string  `json:"roleId"`
}

type UpdateMemberRequest struct {
	Name                *string   `json:"name" validate:"omitempty,min=1,max=120"`
	Email               *string   `json:"email" validate:"omitempty,email,max=254"`
	Phone               *string   `json:"phone" validate:"omitempty,max=40"`
	Title               *string   `json:"title" validate:"omitempty,max=120"`
	Location            *string   `json:"location" validate:"omitempty,max=120"`
	Timezone            *string   `json:"timezone" validate:"omitempty,max=64"`
	Availability        *string   `json:"availability" validate:"omitempty,max=120"`
	Responsibilities    *[]string `json:"responsibilities" validate:"omitempty,max=32,dive,min=1,max=200"`
	FocusAreas          *[]string `json:"focusAreas" validate:"omitempty,max=32,dive,min=1,max=200"`
	IsEscalationContact *bool     `json:"isEscalationContact"`
	RoleID              *string   `json:"roleId"`
}

type MemberFilter struct {
	RoleID string
	Query  string
}

type CreateRoleRequest struct {
	Name  string `json:"name" validate:"required,max=80"`
	Color string `json:"color" validate:"omitempty,len=7,hexcolor"`
}

type UpdateRoleRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=80"`
	Color *string `json:"color" validate:"omitempty,len=7,hexcolor"`
}
