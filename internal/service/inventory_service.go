package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emontalvo/fincaops/internal/access"
	"github.com/emontalvo/fincaops/internal/alerts"
	"github.com/emontalvo/fincaops/internal/model"
)

// InventoryRepository drives supplies and their movements. Getters
// return (nil, nil) when the id is absent. ApplyMovement persists the
// movement row and the new stock level in one transaction.
type InventoryRepository interface {
	GetFarm(ctx context.Context, id uuid.UUID) (*model.Farm, error)

	ListSupplies(ctx context.Context) ([]model.Supply, error)
	GetSupply(ctx context.Context, id uuid.UUID) (*model.Supply, error)
	CreateSupply(ctx context.Context, s *model.Supply) error
	UpdateSupply(ctx context.Context, s *model.Supply) error
	DeleteSupply(ctx context.Context, id uuid.UUID) error

	ListMovements(ctx context.Context) ([]model.InventoryMovement, error)
	ApplyMovement(ctx context.Context, mv *model.InventoryMovement, s *model.Supply) error
}

// AlertRefresher is the deriver pass re-run after every supply
// mutation. Its failures degrade the command instead of failing it.
type AlertRefresher interface {
	RefreshSupply(ctx context.Context, s model.Supply, now time.Time) error
	DropSupply(ctx context.Context, supplyID uuid.UUID) error
}

// AlertWriter covers the direct alert writes the purchase-order flow
// performs on top of the deriver.
type AlertWriter interface {
	UpsertAlert(ctx context.Context, alert *model.Alert) error
}

type InventoryService struct {
	repo      InventoryRepository
	refresher AlertRefresher
	alertRepo AlertWriter
	now       func() time.Time
	log       zerolog.Logger
}

func NewInventoryService(repo InventoryRepository, refresher AlertRefresher, alertRepo AlertWriter, log zerolog.Logger) *InventoryService {
	return &InventoryService{
		repo:      repo,
		refresher: refresher,
		alertRepo: alertRepo,
		now:       time.Now,
		log:       log,
	}
}

// SupplyResult reports a successful supply mutation. AlertErr is set
// when the business write landed but the alert refresh did not.
type SupplyResult struct {
	Supply   *model.Supply
	AlertErr error
}

// MovementResult is the movement analogue of SupplyResult.
type MovementResult struct {
	Movement *model.InventoryMovement
	Supply   *model.Supply
	AlertErr error
}

func (s *InventoryService) requireView(p model.Principal) error {
	if !access.CanAccess(p.Role, model.ModuleInventory, access.ActionView) {
		return fmt.Errorf("%w: inventario view", ErrPermissionDenied)
	}
	return nil
}

func (s *InventoryService) requireEdit(p model.Principal, farmID *uuid.UUID) error {
	if !access.CanAccess(p.Role, model.ModuleInventory, access.ActionEdit) {
		return fmt.Errorf("%w: inventario edit", ErrPermissionDenied)
	}
	if !access.Visible(p, model.ModuleInventory, farmID) {
		return fmt.Errorf("%w: farm outside principal scope", ErrPermissionDenied)
	}
	return nil
}

// Supplies

type CreateSupplyInput struct {
	FarmID       *uuid.UUID
	Name         string
	Category     model.SupplyCategory
	Supplier     string
	Unit         model.MeasureUnit
	CurrentStock float64
	MinimumStock float64
	MaximumStock float64
	UnitPrice    float64
	ExpiryDate   *time.Time
}

type UpdateSupplyInput struct {
	Name         *string
	Category     *model.SupplyCategory
	Supplier     *string
	Unit         *model.MeasureUnit
	CurrentStock *float64
	MinimumStock *float64
	MaximumStock *float64
	UnitPrice    *float64
	ExpiryDate   *time.Time
}

func (s *InventoryService) ListSupplies(ctx context.Context, p model.Principal) ([]model.Supply, error) {
	if err := s.requireView(p); err != nil {
		return nil, err
	}
	supplies, err := s.repo.ListSupplies(ctx)
	if err != nil {
		return nil, err
	}
	visible := supplies[:0]
	for _, item := range supplies {
		if access.Visible(p, model.ModuleInventory, item.FarmID) {
			visible = append(visible, item)
		}
	}
	return visible, nil
}

func (s *InventoryService) CreateSupply(ctx context.Context, p model.Principal, in CreateSupplyInput) (*SupplyResult, error) {
	if err := s.requireEdit(p, in.FarmID); err != nil {
		return nil, err
	}
	if err := validateSupplyLevels(in.CurrentStock, in.MinimumStock, in.MaximumStock, in.UnitPrice); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: supply name is required", ErrInvalidState)
	}
	if in.FarmID != nil {
		farm, err := s.repo.GetFarm(ctx, *in.FarmID)
		if err != nil {
			return nil, err
		}
		if farm == nil {
			return nil, fmt.Errorf("%w: farm %s", ErrNotFound, *in.FarmID)
		}
	}

	item := &model.Supply{
		ID:           uuid.New(),
		FarmID:       in.FarmID,
		Name:         in.Name,
		Category:     in.Category,
		Supplier:     in.Supplier,
		Unit:         in.Unit,
		CurrentStock: in.CurrentStock,
		MinimumStock: in.MinimumStock,
		MaximumStock: in.MaximumStock,
		UnitPrice:    in.UnitPrice,
		ExpiryDate:   in.ExpiryDate,
	}
	if err := s.repo.CreateSupply(ctx, item); err != nil {
		return nil, err
	}
	return &SupplyResult{Supply: item, AlertErr: s.refresh(ctx, *item)}, nil
}

func (s *InventoryService) UpdateSupply(ctx context.Context, p model.Principal, id uuid.UUID, in UpdateSupplyInput) (*SupplyResult, error) {
	item, err := s.repo.GetSupply(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: supply %s", ErrNotFound, id)
	}
	if err := s.requireEdit(p, item.FarmID); err != nil {
		return nil, err
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.CurrentStock != nil {
		item.CurrentStock = *in.CurrentStock
	}
	if in.MinimumStock != nil {
		item.MinimumStock = *in.MinimumStock
	}
	if in.MaximumStock != nil {
		item.MaximumStock = *in.MaximumStock
	}
	if in.UnitPrice != nil {
		item.UnitPrice = *in.UnitPrice
	}
	if in.ExpiryDate != nil {
		item.ExpiryDate = in.ExpiryDate
	}
	if err := validateSupplyLevels(item.CurrentStock, item.MinimumStock, item.MaximumStock, item.UnitPrice); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSupply(ctx, item); err != nil {
		return nil, err
	}
	return &SupplyResult{Supply: item, AlertErr: s.refresh(ctx, *item)}, nil
}

func (s *InventoryService) DeleteSupply(ctx context.Context, p model.Principal, id uuid.UUID) error {
	item, err := s.repo.GetSupply(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: supply %s", ErrNotFound, id)
	}
	if err := s.requireEdit(p, item.FarmID); err != nil {
		return err
	}
	if err := s.repo.DeleteSupply(ctx, id); err != nil {
		return err
	}
	if err := s.refresher.DropSupply(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("supply_id", id.String()).Msg("alert cleanup failed after supply delete")
	}
	return nil
}

func validateSupplyLevels(current, minimum, maximum, price float64) error {
	if current < 0 {
		return fmt.Errorf("%w: current stock must not be negative", ErrInvalidState)
	}
	if minimum < 0 {
		return fmt.Errorf("%w: minimum stock must not be negative", ErrInvalidState)
	}
	if maximum <= minimum {
		return fmt.Errorf("%w: maximum stock must exceed minimum stock", ErrInvalidState)
	}
	if price < 0 {
		return fmt.Errorf("%w: unit price must not be negative", ErrInvalidState)
	}
	return nil
}

// Movements

type CreateMovementInput struct {
	SupplyID uuid.UUID
	Type     model.MovementType
	Quantity float64
	Date     time.Time
	Reason   string
}

func (s *InventoryService) ListMovements(ctx context.Context, p model.Principal) ([]model.InventoryMovement, error) {
	if err := s.requireView(p); err != nil {
		return nil, err
	}
	movements, err := s.repo.ListMovements(ctx)
	if err != nil {
		return nil, err
	}
	visible := movements[:0]
	for _, m := range movements {
		if access.Visible(p, model.ModuleInventory, m.FarmID) {
			visible = append(visible, m)
		}
	}
	return visible, nil
}

// CreateMovement applies a stock movement. Outbound movements larger
// than the current stock are rejected before anything is written. An
// inbound movement that restores stock to the minimum closes the
// pending purchase order.
func (s *InventoryService) CreateMovement(ctx context.Context, p model.Principal, in CreateMovementInput) (*MovementResult, error) {
	item, err := s.repo.GetSupply(ctx, in.SupplyID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: supply %s", ErrNotFound, in.SupplyID)
	}
	if err := s.requireEdit(p, item.FarmID); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: movement quantity must be positive", ErrInvalidState)
	}

	switch in.Type {
	case model.MovementIn:
		item.CurrentStock += in.Quantity
		if item.OrderPlaced && item.CurrentStock >= item.MinimumStock {
			item.OrderPlaced = false
		}
	case model.MovementOut:
		if in.Quantity > item.CurrentStock {
			return nil, fmt.Errorf("%w: outbound quantity %v exceeds stock %v", ErrInvalidState, in.Quantity, item.CurrentStock)
		}
		item.CurrentStock -= in.Quantity
	default:
		return nil, fmt.Errorf("%w: unknown movement type %q", ErrInvalidState, in.Type)
	}

	responsibleID := p.UserID
	mv := &model.InventoryMovement{
		ID:            uuid.New(),
		SupplyID:      item.ID,
		SupplyName:    item.Name,
		FarmID:        item.FarmID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Date:          in.Date,
		Reason:        in.Reason,
		ResponsibleID: &responsibleID,
	}
	if err := s.repo.ApplyMovement(ctx, mv, item); err != nil {
		return nil, err
	}
	return &MovementResult{Movement: mv, Supply: item, AlertErr: s.refresh(ctx, *item)}, nil
}

// GeneratePurchaseOrder flags the supply as ordered, which parks its
// stock alert, and leaves an informational trail alert.
func (s *InventoryService) GeneratePurchaseOrder(ctx context.Context, p model.Principal, supplyID uuid.UUID) (*SupplyResult, error) {
	item, err := s.repo.GetSupply(ctx, supplyID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: supply %s", ErrNotFound, supplyID)
	}
	if err := s.requireEdit(p, item.FarmID); err != nil {
		return nil, err
	}
	if item.OrderPlaced {
		return nil, fmt.Errorf("%w: purchase order already placed for %s", ErrConflict, item.Name)
	}

	item.OrderPlaced = true
	if err := s.repo.UpdateSupply(ctx, item); err != nil {
		return nil, err
	}

	var alertErr error
	info := &model.Alert{
		ID:             "inv-orden-" + item.ID.String(),
		Type:           model.AlertInfo,
		Module:         model.ModuleInventory,
		Title:          "Orden de compra generada",
		Description:    fmt.Sprintf("%s - pedido enviado", item.Name),
		Date:           s.now(),
		RequiredAction: "Seguimiento de compra",
		FarmID:         item.FarmID,
		FarmName:       item.FarmName,
		AllowedRoles:   access.RolesWithEdit(model.ModuleInventory),
	}
	if err := s.alertRepo.UpsertAlert(ctx, info); err != nil {
		alertErr = err
	}
	if err := s.refresh(ctx, *item); err != nil && alertErr == nil {
		alertErr = err
	}
	return &SupplyResult{Supply: item, AlertErr: alertErr}, nil
}

func (s *InventoryService) refresh(ctx context.Context, item model.Supply) error {
	if err := s.refresher.RefreshSupply(ctx, item, s.now()); err != nil {
		s.log.Warn().Err(err).Str("supply_id", item.ID.String()).Msg("alert refresh failed")
		return err
	}
	return nil
}

var _ AlertRefresher = (*alerts.Deriver)(nil)
