package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emontalvo/fincaops/internal/model"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) GetFarm(ctx context.Context, id uuid.UUID) (*model.Farm, error) {
	return getFarm(ctx, r.db, id)
}

const supplyColumns = `
	s.id, s.farm_id, COALESCE(f.name, 'Bodega central') AS farm_name,
	s.name, s.category, s.supplier, s.unit,
	s.current_stock, s.minimum_stock, s.maximum_stock, s.unit_price,
	s.expiry_date, s.order_placed, s.created_at`

func (r *InventoryRepository) ListSupplies(ctx context.Context) ([]model.Supply, error) {
	var supplies []model.Supply
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+supplyColumns+`
		FROM supplies s
		LEFT JOIN farms f ON f.id = s.farm_id
		ORDER BY s.name
	`).Scan(&supplies).Error
	if err != nil {
		return nil, err
	}
	return supplies, nil
}

func (r *InventoryRepository) GetSupply(ctx context.Context, id uuid.UUID) (*model.Supply, error) {
	var s model.Supply
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+supplyColumns+`
		FROM supplies s
		LEFT JOIN farms f ON f.id = s.farm_id
		WHERE s.id = ?
		LIMIT 1
	`, id).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == uuid.Nil {
		return nil, nil
	}
	return &s, nil
}

func (r *InventoryRepository) CreateSupply(ctx context.Context, s *model.Supply) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO supplies (
			id, farm_id, name, category, supplier, unit,
			current_stock, minimum_stock, maximum_stock, unit_price,
			expiry_date, order_placed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, s.ID, s.FarmID, s.Name, s.Category, s.Supplier, s.Unit,
		s.CurrentStock, s.MinimumStock, s.MaximumStock, s.UnitPrice,
		s.ExpiryDate, s.OrderPlaced).Error
}

func (r *InventoryRepository) UpdateSupply(ctx context.Context, s *model.Supply) error {
	return exactlyOne(r.db.WithContext(ctx).Exec(updateSupplySQL, updateSupplyArgs(s)...))
}

func (r *InventoryRepository) DeleteSupply(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM supplies WHERE id = ?`, id).Error
}

const movementColumns = `
	m.id, m.supply_id, COALESCE(s.name, 'Sin asignar') AS supply_name,
	m.farm_id, COALESCE(f.name, 'Bodega central') AS farm_name,
	m.type, m.quantity, m.date, m.reason,
	m.responsible_id, COALESCE(u.name, '') AS responsible, m.created_at`

func (r *InventoryRepository) ListMovements(ctx context.Context) ([]model.InventoryMovement, error) {
	var movements []model.InventoryMovement
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+movementColumns+`
		FROM inventory_movements m
		LEFT JOIN supplies s ON s.id = m.supply_id
		LEFT JOIN farms f ON f.id = m.farm_id
		LEFT JOIN users u ON u.id = m.responsible_id
		ORDER BY m.date DESC, m.created_at DESC
	`).Scan(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// ApplyMovement records the movement and the stock level it produced
// in one transaction, so a crash cannot leave the ledger and the
// balance disagreeing.
func (r *InventoryRepository) ApplyMovement(ctx context.Context, mv *model.InventoryMovement, s *model.Supply) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(`
			INSERT INTO inventory_movements (
				id, supply_id, farm_id, type, quantity, date, reason, responsible_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
		`, mv.ID, mv.SupplyID, mv.FarmID, mv.Type, mv.Quantity, mv.Date, mv.Reason, mv.ResponsibleID).Error
		if err != nil {
			return err
		}
		return exactlyOne(tx.Exec(updateSupplySQL, updateSupplyArgs(s)...))
	})
}

const updateSupplySQL = `
	UPDATE supplies
	SET farm_id = ?, name = ?, category = ?, supplier = ?, unit = ?,
		current_stock = ?, minimum_stock = ?, maximum_stock = ?, unit_price = ?,
		expiry_date = ?, order_placed = ?
	WHERE id = ?`

func updateSupplyArgs(s *model.Supply) []any {
	return []any{
		s.FarmID, s.Name, s.Category, s.Supplier, s.Unit,
		s.CurrentStock, s.MinimumStock, s.MaximumStock, s.UnitPrice,
		s.ExpiryDate, s.OrderPlaced,
		s.ID,
	}
}
