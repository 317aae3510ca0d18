package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/access"
	"github.com/emontalvo/fincaops/internal/model"
)

// AdminRepository backs farm and user administration. Getters return
// (nil, nil) when the id is absent.
type AdminRepository interface {
	ListFarms(ctx context.Context) ([]model.Farm, error)
	GetFarm(ctx context.Context, id uuid.UUID) (*model.Farm, error)
	GetFarmByName(ctx context.Context, name model.FarmName) (*model.Farm, error)
	CreateFarm(ctx context.Context, f *model.Farm) error
	UpdateFarm(ctx context.Context, f *model.Farm) error
	DeleteFarm(ctx context.Context, id uuid.UUID) error

	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	UpdateUser(ctx context.Context, u *model.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	CountActiveAdmins(ctx context.Context) (int, error)
}

type AdminService struct {
	repo AdminRepository
}

func NewAdminService(repo AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

func (s *AdminService) requireView(p model.Principal) error {
	if !access.CanAccess(p.Role, model.ModuleConfiguration, access.ActionView) {
		return fmt.Errorf("%w: configuracion view", ErrPermissionDenied)
	}
	return nil
}

func (s *AdminService) requireEdit(p model.Principal) error {
	if !access.CanAccess(p.Role, model.ModuleConfiguration, access.ActionEdit) {
		return fmt.Errorf("%w: configuracion edit", ErrPermissionDenied)
	}
	return nil
}

// Farms

type CreateFarmInput struct {
	Name        model.FarmName
	Location    string
	Hectares    float64
	TotalPlants int
	Variety     model.BananaVariety
	Responsible string
	Phone       string
	Geometry    string
}

type UpdateFarmInput struct {
	Location    *string
	Hectares    *float64
	TotalPlants *int
	Variety     *model.BananaVariety
	Responsible *string
	Phone       *string
	Geometry    *string
	Active      *bool
}

// ListFarms is readable by every authenticated role: farm names are
// reference data the other modules resolve against.
func (s *AdminService) ListFarms(ctx context.Context, p model.Principal) ([]model.Farm, error) {
	if _, ok := model.ParseRole(string(p.Role)); !ok {
		return nil, fmt.Errorf("%w: unknown role", ErrPermissionDenied)
	}
	return s.repo.ListFarms(ctx)
}

func (s *AdminService) CreateFarm(ctx context.Context, p model.Principal, in CreateFarmInput) (*model.Farm, error) {
	if err := s.requireEdit(p); err != nil {
		return nil, err
	}
	if _, ok := model.ParseFarmName(string(in.Name)); !ok {
		return nil, fmt.Errorf("%w: unknown farm name %q", ErrInvalidState, in.Name)
	}
	if in.Hectares <= 0 {
		return nil, fmt.Errorf("%w: hectares must be positive", ErrInvalidState)
	}
	existing, err := s.repo.GetFarmByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: farm %s already exists", ErrConflict, in.Name)
	}

	f := &model.Farm{
		ID:          uuid.New(),
		Name:        in.Name,
		Location:    in.Location,
		Hectares:    in.Hectares,
		TotalPlants: in.TotalPlants,
		Variety:     in.Variety,
		Responsible: in.Responsible,
		Phone:       in.Phone,
		Geometry:    in.Geometry,
		Active:      true,
	}
	if err := s.repo.CreateFarm(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *AdminService) UpdateFarm(ctx context.Context, p model.Principal, id uuid.UUID, in UpdateFarmInput) (*model.Farm, error) {
	if err := s.requireEdit(p); err != nil {
		return nil, err
	}
	f, err := s.repo.GetFarm(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: farm %s", ErrNotFound, id)
	}

	if in.Location != nil {
		f.Location = *in.Location
	}
	if in.Hectares != nil {
		if *in.Hectares <= 0 {
			return nil, fmt.Errorf("%w: hectares must be positive", ErrInvalidState)
		}
		f.Hectares = *in.Hectares
	}
	if in.TotalPlants != nil {
		f.TotalPlants = *in.TotalPlants
	}
	if in.Variety != nil {
		f.Variety = *in.Variety
	}
	if in.Responsible != nil {
		f.Responsible = *in.Responsible
	}
	if in.Phone != nil {
		f.Phone = *in.Phone
	}
	if in.Geometry != nil {
		f.Geometry = *in.Geometry
	}
	if in.Active != nil {
		f.Active = *in.Active
	}

	if err := s.repo.UpdateFarm(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *AdminService) DeleteFarm(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if err := s.requireEdit(p); err != nil {
		return err
	}
	f, err := s.repo.GetFarm(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("%w: farm %s", ErrNotFound, id)
	}
	return s.repo.DeleteFarm(ctx, id)
}

// Users

type CreateUserInput struct {
	Email          string
	Name           string
	Role           model.Role
	AssignedFarmID *uuid.UUID
	Phone          string
}

type UpdateUserInput struct {
	Email          *string
	Name           *string
	Role           *model.Role
	AssignedFarmID *uuid.UUID
	Phone          *string
	Active         *bool
}

func (s *AdminService) ListUsers(ctx context.Context, p model.Principal) ([]model.User, error) {
	if err := s.requireView(p); err != nil {
		return nil, err
	}
	return s.repo.ListUsers(ctx)
}

func (s *AdminService) CreateUser(ctx context.Context, p model.Principal, in CreateUserInput) (*model.User, error) {
	if err := s.requireEdit(p); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: email and name are required", ErrInvalidState)
	}
	if _, ok := model.ParseRole(string(in.Role)); !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidState, in.Role)
	}
	if in.Role == model.RoleFarmSupervisor && in.AssignedFarmID == nil {
		return nil, fmt.Errorf("%w: a farm supervisor needs an assigned farm", ErrInvalidState)
	}
	if in.AssignedFarmID != nil {
		farm, err := s.repo.GetFarm(ctx, *in.AssignedFarmID)
		if err != nil {
			return nil, err
		}
		if farm == nil {
			return nil, fmt.Errorf("%w: farm %s", ErrNotFound, *in.AssignedFarmID)
		}
	}
	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s already registered", ErrConflict, email)
	}

	u := &model.User{
		ID:             uuid.New(),
		Email:          email,
		Name:           in.Name,
		Role:           in.Role,
		AssignedFarmID: in.AssignedFarmID,
		Phone:          in.Phone,
		Active:         true,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, p model.Principal, id uuid.UUID, in UpdateUserInput) (*model.User, error) {
	if err := s.requireEdit(p); err != nil {
		return nil, err
	}
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}

	wasActiveAdmin := u.Active && u.Role == model.RoleAdministrator

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		other, err := s.repo.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != u.ID {
			return nil, fmt.Errorf("%w: email %s already registered", ErrConflict, email)
		}
		u.Email = email
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Role != nil {
		if _, ok := model.ParseRole(string(*in.Role)); !ok {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidState, *in.Role)
		}
		u.Role = *in.Role
	}
	if in.AssignedFarmID != nil {
		farm, err := s.repo.GetFarm(ctx, *in.AssignedFarmID)
		if err != nil {
			return nil, err
		}
		if farm == nil {
			return nil, fmt.Errorf("%w: farm %s", ErrNotFound, *in.AssignedFarmID)
		}
		u.AssignedFarmID = in.AssignedFarmID
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if u.Role == model.RoleFarmSupervisor && u.AssignedFarmID == nil {
		return nil, fmt.Errorf("%w: a farm supervisor needs an assigned farm", ErrInvalidState)
	}

	// The system must never mutate itself into zero active admins.
	losesAdmin := wasActiveAdmin && (!u.Active || u.Role != model.RoleAdministrator)
	if losesAdmin {
		count, err := s.repo.CountActiveAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, fmt.Errorf("%w: cannot remove the last active administrator", ErrInvalidState)
		}
	}

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if err := s.requireEdit(p); err != nil {
		return err
	}
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	if u.Active && u.Role == model.RoleAdministrator {
		count, err := s.repo.CountActiveAdmins(ctx)
		if err != nil {
			return err
		}
		if count <= 1 {
			return fmt.Errorf("%w: cannot delete the last active administrator", ErrInvalidState)
		}
	}
	return s.repo.DeleteUser(ctx, id)
}
