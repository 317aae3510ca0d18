package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emontalvo/fincaops/internal/model"
)

// AlertRepository stores derived alerts. The primary key is the
// deriver's stable string id, so a refresh upserts in place.
type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

type alertRow struct {
	ID             string
	Type           model.AlertType
	Module         model.Module
	Title          string
	Description    string
	Date           time.Time
	Read           bool
	RequiredAction string
	FarmID         *uuid.UUID
	FarmName       string
	Roles          string
}

func (r *AlertRepository) ListAlerts(ctx context.Context) ([]model.Alert, error) {
	var rows []alertRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.id, a.type, a.module, a.title, a.description, a.date, a.read,
			a.required_action, a.farm_id, COALESCE(f.name, '') AS farm_name,
			a.allowed_roles AS roles
		FROM alerts a
		LEFT JOIN farms f ON f.id = a.farm_id
		ORDER BY a.date DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	alerts := make([]model.Alert, 0, len(rows))
	for _, row := range rows {
		alerts = append(alerts, row.toAlert())
	}
	return alerts, nil
}

func (r *AlertRepository) GetAlert(ctx context.Context, id string) (*model.Alert, error) {
	var row alertRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.id, a.type, a.module, a.title, a.description, a.date, a.read,
			a.required_action, a.farm_id, COALESCE(f.name, '') AS farm_name,
			a.allowed_roles AS roles
		FROM alerts a
		LEFT JOIN farms f ON f.id = a.farm_id
		WHERE a.id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, nil
	}
	a := row.toAlert()
	return &a, nil
}

func (r *AlertRepository) UpsertAlert(ctx context.Context, a *model.Alert) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO alerts (id, type, module, title, description, date, read, required_action, farm_id, allowed_roles)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			module = EXCLUDED.module,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			date = EXCLUDED.date,
			read = EXCLUDED.read,
			required_action = EXCLUDED.required_action,
			farm_id = EXCLUDED.farm_id,
			allowed_roles = EXCLUDED.allowed_roles
	`, a.ID, a.Type, a.Module, a.Title, a.Description, a.Date, a.Read,
		a.RequiredAction, a.FarmID, joinRoles(a.AllowedRoles)).Error
}

func (r *AlertRepository) DeleteAlert(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM alerts WHERE id = ?`, id).Error
}

func (row alertRow) toAlert() model.Alert {
	return model.Alert{
		ID:             row.ID,
		Type:           row.Type,
		Module:         row.Module,
		Title:          row.Title,
		Description:    row.Description,
		Date:           row.Date,
		Read:           row.Read,
		RequiredAction: row.RequiredAction,
		FarmID:         row.FarmID,
		FarmName:       row.FarmName,
		AllowedRoles:   splitRoles(row.Roles),
	}
}

func joinRoles(roles []model.Role) string {
	parts := make([]string, 0, len(roles))
	for _, r := range roles {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ",")
}

func splitRoles(raw string) []model.Role {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	roles := make([]model.Role, 0, len(parts))
	for _, p := range parts {
		if role, ok := model.ParseRole(strings.TrimSpace(p)); ok {
			roles = append(roles, role)
		}
	}
	return roles
}
