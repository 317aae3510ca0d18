// Package alerts derives inventory alerts from supply records. The
// deriver runs only in reaction to mutations of its source record,
// never on a timer, and upserts under a stable per-supply key so a
// re-evaluation of unchanged state is a no-op.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/access"
	"github.com/emontalvo/fincaops/internal/model"
)

// StockState classifies current stock against the live minimum.
type StockState int

const (
	StockNormal StockState = iota
	StockLow
	StockCritical
)

func (s StockState) String() string {
	switch s {
	case StockLow:
		return "low"
	case StockCritical:
		return "critical"
	default:
		return "normal"
	}
}

// criticalFactor: below half the minimum the shortage is critical.
const criticalFactor = 0.5

// Expiry windows, in days.
const (
	expiryWarningDays  = 15
	expiryCriticalDays = 7
)

// ClassifyStock assigns exactly one state to a supply record.
func ClassifyStock(s model.Supply) StockState {
	switch {
	case s.CurrentStock >= s.MinimumStock:
		return StockNormal
	case s.CurrentStock < s.MinimumStock*criticalFactor:
		return StockCritical
	default:
		return StockLow
	}
}

func StockAlertID(supplyID uuid.UUID) string  { return "inv-stock-" + supplyID.String() }
func ExpiryAlertID(supplyID uuid.UUID) string { return "inv-cad-" + supplyID.String() }

// Repository is the slice of the store the deriver needs.
type Repository interface {
	GetAlert(ctx context.Context, id string) (*model.Alert, error)
	UpsertAlert(ctx context.Context, alert *model.Alert) error
	DeleteAlert(ctx context.Context, id string) error
}

type Deriver struct {
	repo Repository
}

func NewDeriver(repo Repository) *Deriver {
	return &Deriver{repo: repo}
}

// RefreshSupply re-evaluates one supply record and reconciles its
// derived alerts. Stale alerts are removed rather than resurfaced; an
// existing alert keeps its read flag across refreshes.
func (d *Deriver) RefreshSupply(ctx context.Context, s model.Supply, now time.Time) error {
	if err := d.refreshStock(ctx, s, now); err != nil {
		return fmt.Errorf("refresh stock alert: %w", err)
	}
	if err := d.refreshExpiry(ctx, s, now); err != nil {
		return fmt.Errorf("refresh expiry alert: %w", err)
	}
	return nil
}

// DropSupply removes the derived alerts of a deleted supply.
func (d *Deriver) DropSupply(ctx context.Context, supplyID uuid.UUID) error {
	if err := d.repo.DeleteAlert(ctx, StockAlertID(supplyID)); err != nil {
		return err
	}
	return d.repo.DeleteAlert(ctx, ExpiryAlertID(supplyID))
}

func (d *Deriver) refreshStock(ctx context.Context, s model.Supply, now time.Time) error {
	id := StockAlertID(s.ID)
	state := ClassifyStock(s)

	// Normal stock or a placed order ends the alert's life; the order
	// keeps showing in pending-order views, not here.
	if state == StockNormal || s.OrderPlaced {
		return d.repo.DeleteAlert(ctx, id)
	}

	existing, err := d.repo.GetAlert(ctx, id)
	if err != nil {
		return err
	}

	alert := &model.Alert{
		ID:     id,
		Type:   model.AlertWarning,
		Module: model.ModuleInventory,
		Title:  "Stock Bajo",
		Description: fmt.Sprintf("%s - Stock %s %s / Mínimo %s %s",
			s.Name, trimNumber(s.CurrentStock), s.Unit, trimNumber(s.MinimumStock), s.Unit),
		Date:         now,
		FarmID:       s.FarmID,
		FarmName:     s.FarmName,
		AllowedRoles: access.RolesWithEdit(model.ModuleInventory),
	}
	if state == StockCritical {
		alert.Type = model.AlertCritical
		alert.Title = "Stock Crítico"
		alert.RequiredAction = fmt.Sprintf("Reponer %s %s", trimNumber(s.MinimumStock-s.CurrentStock), s.Unit)
	}
	if existing != nil {
		alert.Read = existing.Read
	}

	return d.repo.UpsertAlert(ctx, alert)
}

func (d *Deriver) refreshExpiry(ctx context.Context, s model.Supply, now time.Time) error {
	id := ExpiryAlertID(s.ID)
	if s.ExpiryDate == nil {
		return d.repo.DeleteAlert(ctx, id)
	}
	days := daysUntil(now, *s.ExpiryDate)
	if days > expiryWarningDays {
		return d.repo.DeleteAlert(ctx, id)
	}

	existing, err := d.repo.GetAlert(ctx, id)
	if err != nil {
		return err
	}

	alert := &model.Alert{
		ID:           id,
		Type:         model.AlertWarning,
		Module:       model.ModuleInventory,
		Title:        "Caducidad Próxima",
		Description:  fmt.Sprintf("%s - %d días para vencer", s.Name, days),
		Date:         now,
		FarmID:       s.FarmID,
		FarmName:     s.FarmName,
		AllowedRoles: access.RolesWithEdit(model.ModuleInventory),
	}
	if days <= expiryCriticalDays {
		alert.Type = model.AlertCritical
		alert.RequiredAction = "Retirar o usar antes del vencimiento"
	}
	if existing != nil {
		alert.Read = existing.Read
	}

	return d.repo.UpsertAlert(ctx, alert)
}

func daysUntil(now, expiry time.Time) int {
	d := expiry.Sub(now)
	days := int(d.Hours() / 24)
	if d > 0 && d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// trimNumber renders stock quantities without trailing zeros.
func trimNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
