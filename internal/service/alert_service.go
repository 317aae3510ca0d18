package service

import (
	"context"
	"fmt"

	"github.com/emontalvo/fincaops/internal/access"
	"github.com/emontalvo/fincaops/internal/model"
)

// AlertRepository reads and flags alerts; the engine itself writes
// them through the deriver.
type AlertRepository interface {
	ListAlerts(ctx context.Context) ([]model.Alert, error)
	GetAlert(ctx context.Context, id string) (*model.Alert, error)
	UpsertAlert(ctx context.Context, alert *model.Alert) error
}

type AlertService struct {
	repo AlertRepository
}

func NewAlertService(repo AlertRepository) *AlertService {
	return &AlertService{repo: repo}
}

// ListAlerts returns the alerts the principal's role is in the
// audience of, farm-scoped like the data they derive from.
func (s *AlertService) ListAlerts(ctx context.Context, p model.Principal) ([]model.Alert, error) {
	if _, ok := model.ParseRole(string(p.Role)); !ok {
		return nil, fmt.Errorf("%w: unknown role", ErrPermissionDenied)
	}
	all, err := s.repo.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	visible := all[:0]
	for _, a := range all {
		if !a.VisibleTo(p.Role) {
			continue
		}
		if !access.Visible(p, a.Module, a.FarmID) {
			continue
		}
		visible = append(visible, a)
	}
	return visible, nil
}

func (s *AlertService) MarkRead(ctx context.Context, p model.Principal, id string) (*model.Alert, error) {
	a, err := s.repo.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: alert %s", ErrNotFound, id)
	}
	if !a.VisibleTo(p.Role) || !access.Visible(p, a.Module, a.FarmID) {
		return nil, fmt.Errorf("%w: alert outside principal scope", ErrPermissionDenied)
	}
	if a.Read {
		return a, nil
	}
	a.Read = true
	if err := s.repo.UpsertAlert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
