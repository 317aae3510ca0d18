package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/model"
)

type fakeAdminRepo struct {
	farms map[uuid.UUID]model.Farm
	users map[uuid.UUID]model.User
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{
		farms: map[uuid.UUID]model.Farm{},
		users: map[uuid.UUID]model.User{},
	}
}

func (f *fakeAdminRepo) addFarm(name model.FarmName) uuid.UUID {
	id := uuid.New()
	f.farms[id] = model.Farm{ID: id, Name: name, Hectares: 10, Active: true}
	return id
}

func (f *fakeAdminRepo) addUser(email string, role model.Role, active bool) uuid.UUID {
	id := uuid.New()
	f.users[id] = model.User{ID: id, Email: email, Name: "Usuario", Role: role, Active: active}
	return id
}

func (f *fakeAdminRepo) ListFarms(context.Context) ([]model.Farm, error) {
	out := make([]model.Farm, 0, len(f.farms))
	for _, farm := range f.farms {
		out = append(out, farm)
	}
	return out, nil
}

func (f *fakeAdminRepo) GetFarm(_ context.Context, id uuid.UUID) (*model.Farm, error) {
	if farm, ok := f.farms[id]; ok {
		return &farm, nil
	}
	return nil, nil
}

func (f *fakeAdminRepo) GetFarmByName(_ context.Context, name model.FarmName) (*model.Farm, error) {
	for _, farm := range f.farms {
		if farm.Name == name {
			return &farm, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) CreateFarm(_ context.Context, farm *model.Farm) error {
	f.farms[farm.ID] = *farm
	return nil
}

func (f *fakeAdminRepo) UpdateFarm(_ context.Context, farm *model.Farm) error {
	f.farms[farm.ID] = *farm
	return nil
}

func (f *fakeAdminRepo) DeleteFarm(_ context.Context, id uuid.UUID) error {
	delete(f.farms, id)
	return nil
}

func (f *fakeAdminRepo) ListUsers(context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeAdminRepo) GetUser(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeAdminRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) CreateUser(_ context.Context, u *model.User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeAdminRepo) UpdateUser(_ context.Context, u *model.User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeAdminRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeAdminRepo) CountActiveAdmins(context.Context) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.Active && u.Role == model.RoleAdministrator {
			n++
		}
	}
	return n, nil
}

func TestCreateFarmRejectsUnknownName(t *testing.T) {
	svc := NewAdminService(newFakeAdminRepo())
	_, err := svc.CreateFarm(context.Background(), admin(), CreateFarmInput{
		Name: "HACIENDA X", Hectares: 10,
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
}

func TestCreateFarmDuplicateName(t *testing.T) {
	repo := newFakeAdminRepo()
	repo.addFarm(model.FarmBaby)
	svc := NewAdminService(repo)

	_, err := svc.CreateFarm(context.Background(), admin(), CreateFarmInput{
		Name: model.FarmBaby, Hectares: 10,
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestOnlyAdminEditsConfiguration(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewAdminService(repo)
	ctx := context.Background()

	for _, p := range []model.Principal{manager(), accountant(), clerk()} {
		if _, err := svc.CreateFarm(ctx, p, CreateFarmInput{Name: model.FarmSolo, Hectares: 10}); !errors.Is(err, ErrPermissionDenied) {
			t.Errorf("%s create farm err = %v, want ErrPermissionDenied", p.Role, err)
		}
		if _, err := svc.ListUsers(ctx, p); !errors.Is(err, ErrPermissionDenied) {
			t.Errorf("%s list users err = %v, want ErrPermissionDenied", p.Role, err)
		}
	}

	// Farm names stay readable everywhere: the other modules resolve
	// records against them.
	if _, err := svc.ListFarms(ctx, clerk()); err != nil {
		t.Errorf("clerk list farms: %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	repo := newFakeAdminRepo()
	farm := repo.addFarm(model.FarmBaby)
	repo.addUser("ana@finca.ec", model.RoleManager, true)
	svc := NewAdminService(repo)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, admin(), CreateUserInput{
		Email: "Ana@Finca.EC", Name: "Ana", Role: model.RoleManager,
	}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate email err = %v, want ErrConflict", err)
	}

	if _, err := svc.CreateUser(ctx, admin(), CreateUserInput{
		Email: "sup@finca.ec", Name: "Sup", Role: model.RoleFarmSupervisor,
	}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("supervisor without farm err = %v, want ErrInvalidState", err)
	}

	u, err := svc.CreateUser(ctx, admin(), CreateUserInput{
		Email: "sup@finca.ec", Name: "Sup", Role: model.RoleFarmSupervisor, AssignedFarmID: &farm,
	})
	if err != nil {
		t.Fatalf("create supervisor: %v", err)
	}
	if u.AssignedFarmID == nil || *u.AssignedFarmID != farm {
		t.Errorf("assigned farm = %v, want %s", u.AssignedFarmID, farm)
	}
}

func TestLastActiveAdminGuard(t *testing.T) {
	repo := newFakeAdminRepo()
	only := repo.addUser("root@finca.ec", model.RoleAdministrator, true)
	svc := NewAdminService(repo)
	ctx := context.Background()
	inactive := false
	demoted := model.RoleManager

	if _, err := svc.UpdateUser(ctx, admin(), only, UpdateUserInput{Active: &inactive}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("deactivate last admin err = %v, want ErrInvalidState", err)
	}
	if _, err := svc.UpdateUser(ctx, admin(), only, UpdateUserInput{Role: &demoted}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("demote last admin err = %v, want ErrInvalidState", err)
	}
	if err := svc.DeleteUser(ctx, admin(), only); !errors.Is(err, ErrInvalidState) {
		t.Errorf("delete last admin err = %v, want ErrInvalidState", err)
	}

	// With a second active administrator the same mutations go through.
	repo.addUser("root2@finca.ec", model.RoleAdministrator, true)
	if _, err := svc.UpdateUser(ctx, admin(), only, UpdateUserInput{Role: &demoted}); err != nil {
		t.Errorf("demote with backup admin: %v", err)
	}
	if got := repo.users[only].Role; got != model.RoleManager {
		t.Errorf("role after demotion = %s, want gerente", got)
	}
}
