package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emontalvo/fincaops/internal/model"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) ListFarms(ctx context.Context) ([]model.Farm, error) {
	var farms []model.Farm
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, location, hectares, total_plants, variety, responsible, phone, geometry, active, created_at
		FROM farms
		ORDER BY name
	`).Scan(&farms).Error
	if err != nil {
		return nil, err
	}
	return farms, nil
}

func (r *AdminRepository) GetFarm(ctx context.Context, id uuid.UUID) (*model.Farm, error) {
	return getFarm(ctx, r.db, id)
}

func (r *AdminRepository) GetFarmByName(ctx context.Context, name model.FarmName) (*model.Farm, error) {
	var farm model.Farm
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, location, hectares, total_plants, variety, responsible, phone, geometry, active, created_at
		FROM farms
		WHERE name = ?
		LIMIT 1
	`, name).Scan(&farm).Error
	if err != nil {
		return nil, err
	}
	if farm.ID == uuid.Nil {
		return nil, nil
	}
	return &farm, nil
}

func (r *AdminRepository) CreateFarm(ctx context.Context, f *model.Farm) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO farms (id, name, location, hectares, total_plants, variety, responsible, phone, geometry, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, f.ID, f.Name, f.Location, f.Hectares, f.TotalPlants, f.Variety, f.Responsible, f.Phone, f.Geometry, f.Active).Error
}

func (r *AdminRepository) UpdateFarm(ctx context.Context, f *model.Farm) error {
	return exactlyOne(r.db.WithContext(ctx).Exec(`
		UPDATE farms
		SET name = ?, location = ?, hectares = ?, total_plants = ?, variety = ?,
			responsible = ?, phone = ?, geometry = ?, active = ?
		WHERE id = ?
	`, f.Name, f.Location, f.Hectares, f.TotalPlants, f.Variety,
		f.Responsible, f.Phone, f.Geometry, f.Active, f.ID))
}

func (r *AdminRepository) DeleteFarm(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM farms WHERE id = ?`, id).Error
}

const userColumns = `
	u.id, u.email, u.name, u.role, u.assigned_farm_id,
	COALESCE(f.name, '') AS farm_name, u.phone, u.active, u.created_at`

func (r *AdminRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+userColumns+`
		FROM users u
		LEFT JOIN farms f ON f.id = u.assigned_farm_id
		ORDER BY u.name
	`).Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *AdminRepository) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+userColumns+`
		FROM users u
		LEFT JOIN farms f ON f.id = u.assigned_farm_id
		WHERE u.id = ?
		LIMIT 1
	`, id).Scan(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == uuid.Nil {
		return nil, nil
	}
	return &u, nil
}

func (r *AdminRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+userColumns+`
		FROM users u
		LEFT JOIN farms f ON f.id = u.assigned_farm_id
		WHERE u.email = ?
		LIMIT 1
	`, email).Scan(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == uuid.Nil {
		return nil, nil
	}
	return &u, nil
}

func (r *AdminRepository) CreateUser(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO users (id, email, name, role, assigned_farm_id, phone, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`, u.ID, u.Email, u.Name, u.Role, u.AssignedFarmID, u.Phone, u.Active).Error
}

func (r *AdminRepository) UpdateUser(ctx context.Context, u *model.User) error {
	return exactlyOne(r.db.WithContext(ctx).Exec(`
		UPDATE users
		SET email = ?, name = ?, role = ?, assigned_farm_id = ?, phone = ?, active = ?
		WHERE id = ?
	`, u.Email, u.Name, u.Role, u.AssignedFarmID, u.Phone, u.Active, u.ID))
}

func (r *AdminRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM users WHERE id = ?`, id).Error
}

func (r *AdminRepository) CountActiveAdmins(ctx context.Context) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM users WHERE role = ? AND active = TRUE
	`, model.RoleAdministrator).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
