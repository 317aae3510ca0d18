package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/model"
)

type fakeAlertRepo struct {
	alerts map[string]model.Alert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: map[string]model.Alert{}}
}

func (f *fakeAlertRepo) add(a model.Alert) {
	f.alerts[a.ID] = a
}

func (f *fakeAlertRepo) ListAlerts(context.Context) ([]model.Alert, error) {
	out := make([]model.Alert, 0, len(f.alerts))
	for _, a := range f.alerts {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAlertRepo) GetAlert(_ context.Context, id string) (*model.Alert, error) {
	if a, ok := f.alerts[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (f *fakeAlertRepo) UpsertAlert(_ context.Context, a *model.Alert) error {
	f.alerts[a.ID] = *a
	return nil
}

func stockAlert(id string, farmID *uuid.UUID, roles []model.Role) model.Alert {
	return model.Alert{
		ID:           id,
		Type:         model.AlertWarning,
		Module:       model.ModuleInventory,
		Title:        "Stock bajo",
		Date:         time.Now(),
		FarmID:       farmID,
		AllowedRoles: roles,
	}
}

func TestListAlertsFiltersByAudienceAndFarm(t *testing.T) {
	repo := newFakeAlertRepo()
	baby := uuid.New()
	solo := uuid.New()
	clerkOnly := []model.Role{model.RoleAdministrator, model.RoleWarehouseClerk}

	repo.add(stockAlert("inv-stock-a", &baby, clerkOnly))
	repo.add(stockAlert("inv-stock-b", &solo, clerkOnly))
	repo.add(stockAlert("inv-stock-central", nil, clerkOnly))
	svc := NewAlertService(repo)
	ctx := context.Background()

	got, err := svc.ListAlerts(ctx, clerk())
	if err != nil {
		t.Fatalf("clerk list: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("clerk sees %d alerts, want 3", len(got))
	}

	// The accountant is outside the audience and outside the module.
	got, err = svc.ListAlerts(ctx, accountant())
	if err != nil {
		t.Fatalf("accountant list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("accountant sees %d alerts, want 0", len(got))
	}

	clerkAudience := append(clerkOnly, model.RoleFarmSupervisor)
	repo.alerts = map[string]model.Alert{}
	repo.add(stockAlert("inv-stock-a", &baby, clerkAudience))
	repo.add(stockAlert("inv-stock-b", &solo, clerkAudience))

	got, err = svc.ListAlerts(ctx, supervisorOf(baby))
	if err != nil {
		t.Fatalf("supervisor list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("supervisor sees %d alerts, want 1", len(got))
	}
	if got[0].ID != "inv-stock-a" {
		t.Errorf("supervisor sees %s, want inv-stock-a", got[0].ID)
	}
}

func TestMarkRead(t *testing.T) {
	repo := newFakeAlertRepo()
	baby := uuid.New()
	audience := []model.Role{model.RoleAdministrator, model.RoleWarehouseClerk}
	repo.add(stockAlert("inv-stock-a", &baby, audience))
	svc := NewAlertService(repo)
	ctx := context.Background()

	a, err := svc.MarkRead(ctx, clerk(), "inv-stock-a")
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !a.Read {
		t.Error("alert not flagged read")
	}
	if !repo.alerts["inv-stock-a"].Read {
		t.Error("read flag not persisted")
	}

	// Idempotent on a second call.
	if _, err := svc.MarkRead(ctx, clerk(), "inv-stock-a"); err != nil {
		t.Errorf("second mark read: %v", err)
	}

	if _, err := svc.MarkRead(ctx, accountant(), "inv-stock-a"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("out-of-audience err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.MarkRead(ctx, clerk(), "inv-stock-zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing alert err = %v, want ErrNotFound", err)
	}
}
