package team

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"agencyops/internal/database"
	"agencyops/internal/domain"
	"agencyops/internal/pkg/validator"
)

const defaultRoleColor = "#64748B"

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Members(ctx context.Context, f MemberFilter) ([]domain.TeamMember, error) {
	q := s.db.WithContext(ctx).Preload("Role")
	if f.RoleID != "" {
		q = q.Where("role_id = ?", f.RoleID)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(title) LIKE ?", like, like, like)
	}

	list := []domain.TeamMember{}
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Member(ctx context.Context, id string) (*domain.TeamMember, error) {
	var m domain.TeamMember
	if err := s.db.WithContext(ctx).Preload("Role").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *Service) CreateMember(ctx context.Context, req CreateMemberRequest) (*domain.TeamMember, error) {
	roleID, err := s.roleRef(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	m := &domain.TeamMember{
		Name:                strings.TrimSpace(req.Name),
		Email:               strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:               strings.TrimSpace(req.Phone),
		Title:               strings.TrimSpace(req.Title),
		Location:            strings.TrimSpace(req.Location),
		Timezone:            strings.TrimSpace(req.Timezone),
		Availability:        strings.TrimSpace(req.Availability),
		Responsibilities:    nonNil(req.Responsibilities),
		FocusAreas:          nonNil(req.FocusAreas),
		IsEscalationContact: req.IsEscalationContact,
		RoleID:              roleID,
	}
	if err := s.db.WithContext(ctx).Omit("Role").Create(m).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return s.Member(ctx, m.ID)
}

// UpdateMember saves the whole row so the json-serialized list columns go
// through the field serializer.
func (s *Service) UpdateMember(ctx context.Context, id string, req UpdateMemberRequest) (*domain.TeamMember, error) {
	var m domain.TeamMember
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if req.RoleID != nil {
		roleID, err := s.roleRef(ctx, req.RoleID)
		if err != nil {
			return nil, err
		}
		m.RoleID = roleID
	}
	assign(&m.Name, req.Name)
	if req.Email != nil {
		m.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	assign(&m.Phone, req.Phone)
	assign(&m.Title, req.Title)
	assign(&m.Location, req.Location)
	assign(&m.Timezone, req.Timezone)
	assign(&m.Availability, req.Availability)
	if req.Responsibilities != nil {
		m.Responsibilities = nonNil(*req.Responsibilities)
	}
	if req.FocusAreas != nil {
		m.FocusAreas = nonNil(*req.FocusAreas)
	}
	if req.IsEscalationContact != nil {
		m.IsEscalationContact = *req.IsEscalationContact
	}

	if err := s.db.WithContext(ctx).Omit("Role").Save(&m).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return s.Member(ctx, id)
}

func (s *Service) DeleteMember(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&domain.TeamMember{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

type roleCount struct {
	RoleID string
	N      int64
}

func (s *Service) Roles(ctx context.Context) ([]domain.TeamRole, error) {
	roles := []domain.TeamRole{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&roles).Error; err != nil {
		return nil, err
	}

	var counts []roleCount
	err := s.db.WithContext(ctx).Model(&domain.TeamMember{}).
		Select("role_id, COUNT(*) AS n").
		Where("role_id IS NOT NULL").
		Group("role_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	byRole := make(map[string]int64, len(counts))
	for _, c := range counts {
		byRole[c.RoleID] = c.N
	}
	for i := range roles {
		roles[i].MemberCount = byRole[roles[i].ID]
	}
	return roles, nil
}

func (s *Service) CreateRole(ctx context.Context, req CreateRoleRequest) (*domain.TeamRole, error) {
	r := &domain.TeamRole{Name: strings.TrimSpace(req.Name), Color: strings.ToUpper(req.Color)}
	if r.Color == "" {
		r.Color = defaultRoleColor
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrRoleNameExists
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*domain.TeamRole, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		fields["color"] = strings.ToUpper(*req.Color)
	}

	if len(fields) > 0 {
		tx := s.db.WithContext(ctx).Model(&domain.TeamRole{}).Where("id = ?", id).Updates(fields)
		if tx.Error != nil {
			if database.IsUniqueViolation(tx.Error) {
				return nil, ErrRoleNameExists
			}
			return nil, tx.Error
		}
		if tx.RowsAffected == 0 {
			return nil, ErrRoleNotFound
		}
	}

	var r domain.TeamRole
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&domain.TeamMember{}).Where("role_id = ?", id).Count(&r.MemberCount).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRole detaches the role's members before removing it.
func (s *Service) DeleteRole(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.TeamMember{}).Where("role_id = ?", id).Update("role_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.TeamRole{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoleNotFound
		}
		return nil
	})
}

// roleRef maps a blank id to nil and rejects ids with no role behind them.
func (s *Service) roleRef(ctx context.Context, id *string) (*string, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*id)
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.TeamRole{}).Where("id = ?", v).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, validator.InvalidField("roleId", "does not match an existing role")
	}
	return &v, nil
}

func assign(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
