package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emontalvo/fincaops/internal/model"
)

type fakeInventoryRepo struct {
	farms     map[uuid.UUID]model.Farm
	supplies  map[uuid.UUID]model.Supply
	movements map[uuid.UUID]model.InventoryMovement
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		farms:     map[uuid.UUID]model.Farm{},
		supplies:  map[uuid.UUID]model.Supply{},
		movements: map[uuid.UUID]model.InventoryMovement{},
	}
}

func (f *fakeInventoryRepo) addFarm(name model.FarmName) uuid.UUID {
	id := uuid.New()
	f.farms[id] = model.Farm{ID: id, Name: name, Hectares: 10, Active: true}
	return id
}

func (f *fakeInventoryRepo) addSupply(farmID *uuid.UUID, name string, current, minimum, maximum float64) uuid.UUID {
	id := uuid.New()
	f.supplies[id] = model.Supply{
		ID: id, FarmID: farmID, Name: name, Category: model.CategoryFertilizer,
		Unit: model.UnitSack, CurrentStock: current, MinimumStock: minimum,
		MaximumStock: maximum, UnitPrice: 12.5,
	}
	return id
}

func (f *fakeInventoryRepo) GetFarm(_ context.Context, id uuid.UUID) (*model.Farm, error) {
	if farm, ok := f.farms[id]; ok {
		return &farm, nil
	}
	return nil, nil
}

func (f *fakeInventoryRepo) ListSupplies(context.Context) ([]model.Supply, error) {
	out := make([]model.Supply, 0, len(f.supplies))
	for _, s := range f.supplies {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeInventoryRepo) GetSupply(_ context.Context, id uuid.UUID) (*model.Supply, error) {
	if s, ok := f.supplies[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeInventoryRepo) CreateSupply(_ context.Context, s *model.Supply) error {
	f.supplies[s.ID] = *s
	return nil
}

func (f *fakeInventoryRepo) UpdateSupply(_ context.Context, s *model.Supply) error {
	f.supplies[s.ID] = *s
	return nil
}

func (f *fakeInventoryRepo) DeleteSupply(_ context.Context, id uuid.UUID) error {
	delete(f.supplies, id)
	return nil
}

func (f *fakeInventoryRepo) ListMovements(context.Context) ([]model.InventoryMovement, error) {
	out := make([]model.InventoryMovement, 0, len(f.movements))
	for _, m := range f.movements {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeInventoryRepo) ApplyMovement(_ context.Context, mv *model.InventoryMovement, s *model.Supply) error {
	f.movements[mv.ID] = *mv
	f.supplies[s.ID] = *s
	return nil
}

type fakeRefresher struct {
	refreshed []uuid.UUID
	dropped   []uuid.UUID
	err       error
}

func (f *fakeRefresher) RefreshSupply(_ context.Context, s model.Supply, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.refreshed = append(f.refreshed, s.ID)
	return nil
}

func (f *fakeRefresher) DropSupply(_ context.Context, supplyID uuid.UUID) error {
	f.dropped = append(f.dropped, supplyID)
	return nil
}

type fakeAlertWriter struct {
	upserts []model.Alert
}

func (f *fakeAlertWriter) UpsertAlert(_ context.Context, alert *model.Alert) error {
	f.upserts = append(f.upserts, *alert)
	return nil
}

func clerk() model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.RoleWarehouseClerk}
}

func newInventoryFixture() (*fakeInventoryRepo, *fakeRefresher, *fakeAlertWriter, *InventoryService) {
	repo := newFakeInventoryRepo()
	refresher := &fakeRefresher{}
	writer := &fakeAlertWriter{}
	svc := NewInventoryService(repo, refresher, writer, zerolog.Nop())
	return repo, refresher, writer, svc
}

func TestMovementOutRejectsOverdraw(t *testing.T) {
	repo, refresher, _, svc := newInventoryFixture()
	supply := repo.addSupply(nil, "Urea", 10, 5, 100)

	_, err := svc.CreateMovement(context.Background(), clerk(), CreateMovementInput{
		SupplyID: supply, Type: model.MovementOut, Quantity: 11, Date: time.Now(), Reason: "Aplicación",
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
	if got := repo.supplies[supply].CurrentStock; got != 10 {
		t.Errorf("stock after rejected movement = %v, want 10", got)
	}
	if len(repo.movements) != 0 {
		t.Errorf("movements recorded = %d, want 0", len(repo.movements))
	}
	if len(refresher.refreshed) != 0 {
		t.Errorf("alert refreshes = %d, want 0", len(refresher.refreshed))
	}
}

func TestMovementOutUpdatesStock(t *testing.T) {
	repo, refresher, _, svc := newInventoryFixture()
	supply := repo.addSupply(nil, "Urea", 10, 5, 100)

	res, err := svc.CreateMovement(context.Background(), clerk(), CreateMovementInput{
		SupplyID: supply, Type: model.MovementOut, Quantity: 4, Date: time.Now(), Reason: "Aplicación",
	})
	if err != nil {
		t.Fatalf("create movement: %v", err)
	}
	if res.AlertErr != nil {
		t.Errorf("alert err = %v, want nil", res.AlertErr)
	}
	if got := repo.supplies[supply].CurrentStock; got != 6 {
		t.Errorf("stock = %v, want 6", got)
	}
	if len(repo.movements) != 1 {
		t.Fatalf("movements recorded = %d, want 1", len(repo.movements))
	}
	if len(refresher.refreshed) != 1 || refresher.refreshed[0] != supply {
		t.Errorf("refreshed = %v, want [%s]", refresher.refreshed, supply)
	}
}

func TestMovementInClosesPurchaseOrder(t *testing.T) {
	repo, _, _, svc := newInventoryFixture()
	supply := repo.addSupply(nil, "Urea", 2, 5, 100)
	s := repo.supplies[supply]
	s.OrderPlaced = true
	repo.supplies[supply] = s

	res, err := svc.CreateMovement(context.Background(), clerk(), CreateMovementInput{
		SupplyID: supply, Type: model.MovementIn, Quantity: 10, Date: time.Now(), Reason: "Compra",
	})
	if err != nil {
		t.Fatalf("create movement: %v", err)
	}
	if res.Supply.OrderPlaced {
		t.Error("order flag still set after restock above minimum")
	}
	if got := repo.supplies[supply].CurrentStock; got != 12 {
		t.Errorf("stock = %v, want 12", got)
	}
}

func TestMovementDegradedWhenAlertRefreshFails(t *testing.T) {
	repo, refresher, _, svc := newInventoryFixture()
	supply := repo.addSupply(nil, "Urea", 10, 5, 100)
	refresher.err = errors.New("alert store down")

	res, err := svc.CreateMovement(context.Background(), clerk(), CreateMovementInput{
		SupplyID: supply, Type: model.MovementOut, Quantity: 3, Date: time.Now(), Reason: "Aplicación",
	})
	if err != nil {
		t.Fatalf("create movement: %v", err)
	}
	if res.AlertErr == nil {
		t.Error("alert err not reported")
	}
	if got := repo.supplies[supply].CurrentStock; got != 7 {
		t.Errorf("stock = %v, want 7: the business write must survive the alert failure", got)
	}
}

func TestGeneratePurchaseOrder(t *testing.T) {
	repo, _, writer, svc := newInventoryFixture()
	supply := repo.addSupply(nil, "Urea", 1, 5, 100)
	ctx := context.Background()

	res, err := svc.GeneratePurchaseOrder(ctx, clerk(), supply)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !res.Supply.OrderPlaced {
		t.Error("order flag not set")
	}
	if len(writer.upserts) != 1 {
		t.Fatalf("info alerts written = %d, want 1", len(writer.upserts))
	}
	info := writer.upserts[0]
	if want := "inv-orden-" + supply.String(); info.ID != want {
		t.Errorf("alert id = %s, want %s", info.ID, want)
	}
	if info.Type != model.AlertInfo {
		t.Errorf("alert type = %s, want info", info.Type)
	}

	if _, err := svc.GeneratePurchaseOrder(ctx, clerk(), supply); !errors.Is(err, ErrConflict) {
		t.Errorf("second order err = %v, want ErrConflict", err)
	}
}

func TestCreateSupplyValidatesLevels(t *testing.T) {
	_, _, _, svc := newInventoryFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateSupplyInput
	}{
		{"negative stock", CreateSupplyInput{Name: "Urea", Unit: model.UnitSack, CurrentStock: -1, MinimumStock: 0, MaximumStock: 10}},
		{"max below min", CreateSupplyInput{Name: "Urea", Unit: model.UnitSack, CurrentStock: 5, MinimumStock: 10, MaximumStock: 10}},
		{"negative price", CreateSupplyInput{Name: "Urea", Unit: model.UnitSack, CurrentStock: 5, MinimumStock: 1, MaximumStock: 10, UnitPrice: -1}},
		{"missing name", CreateSupplyInput{Unit: model.UnitSack, CurrentStock: 5, MinimumStock: 1, MaximumStock: 10}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateSupply(ctx, clerk(), tc.in); !errors.Is(err, ErrInvalidState) {
			t.Errorf("%s: err = %v, want ErrInvalidState", tc.name, err)
		}
	}
}

func TestDeleteSupplyDropsAlerts(t *testing.T) {
	repo, refresher, _, svc := newInventoryFixture()
	supply := repo.addSupply(nil, "Urea", 10, 5, 100)

	if err := svc.DeleteSupply(context.Background(), clerk(), supply); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.supplies[supply]; ok {
		t.Error("supply still present")
	}
	if len(refresher.dropped) != 1 || refresher.dropped[0] != supply {
		t.Errorf("dropped = %v, want [%s]", refresher.dropped, supply)
	}
}

func TestInventoryVisibility(t *testing.T) {
	repo, _, _, svc := newInventoryFixture()
	baby := repo.addFarm(model.FarmBaby)
	solo := repo.addFarm(model.FarmSolo)
	repo.addSupply(&baby, "Urea", 10, 5, 100)
	repo.addSupply(&solo, "Cintas", 10, 5, 100)
	repo.addSupply(nil, "Cartón", 10, 5, 100)
	ctx := context.Background()

	all, err := svc.ListSupplies(ctx, clerk())
	if err != nil {
		t.Fatalf("clerk list: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("clerk sees %d supplies, want 3", len(all))
	}

	scoped, err := svc.ListSupplies(ctx, supervisorOf(baby))
	if err != nil {
		t.Fatalf("supervisor list: %v", err)
	}
	if len(scoped) != 2 {
		t.Errorf("supervisor sees %d supplies, want 2 (assigned farm plus central warehouse)", len(scoped))
	}

	if _, err := svc.ListSupplies(ctx, accountant()); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("accountant list err = %v, want ErrPermissionDenied", err)
	}
}
