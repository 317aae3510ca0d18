package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/model"
)

type fakeProductionRepo struct {
	farms      map[uuid.UUID]model.Farm
	baggings   map[uuid.UUID]model.BaggingRecord
	harvests   map[uuid.UUID]model.HarvestRecord
	recoveries map[uuid.UUID]model.TapeRecovery
}

func newFakeProductionRepo() *fakeProductionRepo {
	return &fakeProductionRepo{
		farms:      map[uuid.UUID]model.Farm{},
		baggings:   map[uuid.UUID]model.BaggingRecord{},
		harvests:   map[uuid.UUID]model.HarvestRecord{},
		recoveries: map[uuid.UUID]model.TapeRecovery{},
	}
}

func (f *fakeProductionRepo) addFarm(name model.FarmName) uuid.UUID {
	id := uuid.New()
	f.farms[id] = model.Farm{ID: id, Name: name, Hectares: 10, Active: true}
	return id
}

func (f *fakeProductionRepo) GetFarm(_ context.Context, id uuid.UUID) (*model.Farm, error) {
	if farm, ok := f.farms[id]; ok {
		return &farm, nil
	}
	return nil, nil
}

func (f *fakeProductionRepo) ListBagging(context.Context) ([]model.BaggingRecord, error) {
	out := make([]model.BaggingRecord, 0, len(f.baggings))
	for _, r := range f.baggings {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeProductionRepo) GetBagging(_ context.Context, id uuid.UUID) (*model.BaggingRecord, error) {
	if r, ok := f.baggings[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeProductionRepo) CreateBagging(_ context.Context, r *model.BaggingRecord) error {
	f.baggings[r.ID] = *r
	return nil
}

func (f *fakeProductionRepo) UpdateBagging(_ context.Context, r *model.BaggingRecord) error {
	f.baggings[r.ID] = *r
	return nil
}

func (f *fakeProductionRepo) DeleteBagging(_ context.Context, id uuid.UUID) error {
	delete(f.baggings, id)
	return nil
}

func (f *fakeProductionRepo) ListHarvests(context.Context) ([]model.HarvestRecord, error) {
	out := make([]model.HarvestRecord, 0, len(f.harvests))
	for _, r := range f.harvests {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeProductionRepo) GetHarvest(_ context.Context, id uuid.UUID) (*model.HarvestRecord, error) {
	if r, ok := f.harvests[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeProductionRepo) CreateHarvest(_ context.Context, r *model.HarvestRecord) error {
	f.harvests[r.ID] = *r
	return nil
}

func (f *fakeProductionRepo) UpdateHarvest(_ context.Context, r *model.HarvestRecord) error {
	f.harvests[r.ID] = *r
	return nil
}

func (f *fakeProductionRepo) DeleteHarvest(_ context.Context, id uuid.UUID) error {
	delete(f.harvests, id)
	return nil
}

func (f *fakeProductionRepo) ListTapeRecoveries(context.Context) ([]model.TapeRecovery, error) {
	out := make([]model.TapeRecovery, 0, len(f.recoveries))
	for _, r := range f.recoveries {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeProductionRepo) GetTapeRecovery(_ context.Context, id uuid.UUID) (*model.TapeRecovery, error) {
	if r, ok := f.recoveries[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeProductionRepo) CreateTapeRecovery(_ context.Context, r *model.TapeRecovery) error {
	f.recoveries[r.ID] = *r
	return nil
}

func (f *fakeProductionRepo) UpdateTapeRecovery(_ context.Context, r *model.TapeRecovery) error {
	f.recoveries[r.ID] = *r
	return nil
}

func (f *fakeProductionRepo) DeleteTapeRecovery(_ context.Context, id uuid.UUID) error {
	delete(f.recoveries, id)
	return nil
}

func supervisorOf(farmID uuid.UUID) model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.RoleFarmSupervisor, AssignedFarmID: &farmID}
}

func manager() model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.RoleManager}
}

func admin() model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.RoleAdministrator}
}

func TestSupervisorListsOnlyAssignedFarm(t *testing.T) {
	repo := newFakeProductionRepo()
	baby := repo.addFarm(model.FarmBaby)
	solo := repo.addFarm(model.FarmSolo)
	svc := NewProductionService(repo)

	ctx := context.Background()
	adminP := admin()
	for _, farmID := range []uuid.UUID{baby, solo} {
		if _, err := svc.CreateHarvest(ctx, adminP, CreateHarvestInput{
			FarmID: farmID, Week: 10, Year: 2025,
			BunchesCut: 100, BunchesRejected: 5, BoxesProduced: 90,
			Date: time.Now(),
		}); err != nil {
			t.Fatalf("create harvest: %v", err)
		}
	}

	got, err := svc.ListHarvests(ctx, supervisorOf(baby))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("supervisor sees %d records, want 1", len(got))
	}
	if got[0].FarmID != baby {
		t.Errorf("supervisor sees farm %s, want %s", got[0].FarmID, baby)
	}

	all, err := svc.ListHarvests(ctx, manager())
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("manager sees %d records, want 2", len(all))
	}
}

func TestSupervisorCannotMutateOtherFarm(t *testing.T) {
	repo := newFakeProductionRepo()
	baby := repo.addFarm(model.FarmBaby)
	solo := repo.addFarm(model.FarmSolo)
	svc := NewProductionService(repo)
	ctx := context.Background()

	rec, err := svc.CreateHarvest(ctx, admin(), CreateHarvestInput{
		FarmID: solo, Week: 10, Year: 2025,
		BunchesCut: 100, BunchesRejected: 5, BoxesProduced: 90,
		Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	babySupervisor := supervisorOf(baby)
	if _, err := svc.CreateHarvest(ctx, babySupervisor, CreateHarvestInput{
		FarmID: solo, Week: 11, Year: 2025, BunchesCut: 10, Date: time.Now(),
	}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("create on foreign farm: err = %v, want ErrPermissionDenied", err)
	}

	week := 12
	if _, err := svc.UpdateHarvest(ctx, babySupervisor, rec.ID, UpdateHarvestInput{Week: &week}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("update on foreign farm: err = %v, want ErrPermissionDenied", err)
	}

	if err := svc.DeleteHarvest(ctx, babySupervisor, rec.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("delete on foreign farm: err = %v, want ErrPermissionDenied", err)
	}
	if _, ok := repo.harvests[rec.ID]; !ok {
		t.Error("record was deleted despite denied permission")
	}
}

func TestClerkCannotTouchProduction(t *testing.T) {
	repo := newFakeProductionRepo()
	baby := repo.addFarm(model.FarmBaby)
	svc := NewProductionService(repo)
	ctx := context.Background()
	clerk := model.Principal{UserID: uuid.New(), Role: model.RoleWarehouseClerk}

	if _, err := svc.ListHarvests(ctx, clerk); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("list: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.CreateBagging(ctx, clerk, CreateBaggingInput{
		FarmID: baby, Week: 1, Year: 2025, TapeColor: model.TapeBlue, BagCount: 10, Date: time.Now(),
	}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("create: err = %v, want ErrPermissionDenied", err)
	}
}

func TestCreateHarvestDerivesMetrics(t *testing.T) {
	repo := newFakeProductionRepo()
	baby := repo.addFarm(model.FarmBaby)
	svc := NewProductionService(repo)

	rec, err := svc.CreateHarvest(context.Background(), admin(), CreateHarvestInput{
		FarmID: baby, Week: 30, Year: 2025,
		BunchesCut: 200, BunchesRejected: 20, BoxesProduced: 170,
		Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.BunchesRecovered != 180 {
		t.Errorf("recovered = %d, want 180", rec.BunchesRecovered)
	}
	if got, want := rec.Ratio, 170.0/180.0; absDiff(got, want) > 1e-9 {
		t.Errorf("ratio = %v, want %v", got, want)
	}
	if got, want := rec.WastePct, 10.0; absDiff(got, want) > 1e-9 {
		t.Errorf("waste = %v, want %v", got, want)
	}
}

func TestCreateHarvestRejectsInvalidCounts(t *testing.T) {
	repo := newFakeProductionRepo()
	baby := repo.addFarm(model.FarmBaby)
	svc := NewProductionService(repo)
	ctx := context.Background()

	if _, err := svc.CreateHarvest(ctx, admin(), CreateHarvestInput{
		FarmID: baby, Week: 30, Year: 2025,
		BunchesCut: 10, BunchesRejected: 20,
		Date: time.Now(),
	}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("rejected > cut: err = %v, want ErrInvalidState", err)
	}
	if len(repo.harvests) != 0 {
		t.Error("invalid harvest was persisted")
	}

	if _, err := svc.CreateHarvest(ctx, admin(), CreateHarvestInput{
		FarmID: baby, Week: 54, Year: 2025, BunchesCut: 10,
		Date: time.Now(),
	}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("week 54: err = %v, want ErrInvalidState", err)
	}
}

func TestCreateBaggingUnknownFarm(t *testing.T) {
	repo := newFakeProductionRepo()
	svc := NewProductionService(repo)

	_, err := svc.CreateBagging(context.Background(), admin(), CreateBaggingInput{
		FarmID: uuid.New(), Week: 2, Year: 2025, TapeColor: model.TapeRed, BagCount: 50, Date: time.Now(),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateTapeRecoveryRecomputesPct(t *testing.T) {
	repo := newFakeProductionRepo()
	baby := repo.addFarm(model.FarmBaby)
	svc := NewProductionService(repo)
	ctx := context.Background()

	rec, err := svc.CreateTapeRecovery(ctx, admin(), CreateTapeRecoveryInput{
		FarmID: baby, Week: 7, Year: 2025, InitialBags: 100,
		FirstCalHarvest: 40, SecondCalHarvest: 30, Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got, want := rec.RecoveryPct, 70.0; absDiff(got, want) > 1e-9 {
		t.Fatalf("recovery = %v, want %v", got, want)
	}

	sweep := 20
	updated, err := svc.UpdateTapeRecovery(ctx, admin(), rec.ID, UpdateTapeRecoveryInput{FinalSweep: &sweep})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got, want := updated.RecoveryPct, 90.0; absDiff(got, want) > 1e-9 {
		t.Errorf("recovery after update = %v, want %v", got, want)
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
