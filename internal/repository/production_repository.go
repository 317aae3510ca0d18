// Package repository implements the store contracts of the service
// layer on PostgreSQL through GORM. Getters return (nil, nil) for an
// absent id; dangling farm references resolve to a labeled placeholder
// instead of failing the query.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emontalvo/fincaops/internal/model"
)

const unresolvedLabel = "Sin asignar"

type ProductionRepository struct {
	db *gorm.DB
}

func NewProductionRepository(db *gorm.DB) *ProductionRepository {
	return &ProductionRepository{db: db}
}

func (r *ProductionRepository) GetFarm(ctx context.Context, id uuid.UUID) (*model.Farm, error) {
	return getFarm(ctx, r.db, id)
}

func getFarm(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Farm, error) {
	var farm model.Farm
	err := db.WithContext(ctx).Raw(`
		SELECT id, name, location, hectares, total_plants, variety, responsible, phone, geometry, active, created_at
		FROM farms
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&farm).Error
	if err != nil {
		return nil, err
	}
	if farm.ID == uuid.Nil {
		return nil, nil
	}
	return &farm, nil
}

func (r *ProductionRepository) ListBagging(ctx context.Context) ([]model.BaggingRecord, error) {
	var records []model.BaggingRecord
	err := r.db.WithContext(ctx).Raw(`
		SELECT b.id, b.farm_id, COALESCE(f.name, ?) AS farm_name,
			b.week, b.year, b.tape_color, b.bag_count, b.fallen_plants, b.date, b.notes, b.created_at
		FROM bagging_records b
		LEFT JOIN farms f ON f.id = b.farm_id
		ORDER BY b.date DESC
	`, unresolvedLabel).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ProductionRepository) GetBagging(ctx context.Context, id uuid.UUID) (*model.BaggingRecord, error) {
	var rec model.BaggingRecord
	err := r.db.WithContext(ctx).Raw(`
		SELECT b.id, b.farm_id, COALESCE(f.name, ?) AS farm_name,
			b.week, b.year, b.tape_color, b.bag_count, b.fallen_plants, b.date, b.notes, b.created_at
		FROM bagging_records b
		LEFT JOIN farms f ON f.id = b.farm_id
		WHERE b.id = ?
		LIMIT 1
	`, unresolvedLabel, id).Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == uuid.Nil {
		return nil, nil
	}
	return &rec, nil
}

func (r *ProductionRepository) CreateBagging(ctx context.Context, rec *model.BaggingRecord) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO bagging_records (id, farm_id, week, year, tape_color, bag_count, fallen_plants, date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, rec.ID, rec.FarmID, rec.Week, rec.Year, rec.TapeColor, rec.BagCount, rec.FallenPlants, rec.Date, rec.Notes).Error
}

func (r *ProductionRepository) UpdateBagging(ctx context.Context, rec *model.BaggingRecord) error {
	return exactlyOne(r.db.WithContext(ctx).Exec(`
		UPDATE bagging_records
		SET week = ?, year = ?, tape_color = ?, bag_count = ?, fallen_plants = ?, date = ?, notes = ?
		WHERE id = ?
	`, rec.Week, rec.Year, rec.TapeColor, rec.BagCount, rec.FallenPlants, rec.Date, rec.Notes, rec.ID))
}

func (r *ProductionRepository) DeleteBagging(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM bagging_records WHERE id = ?`, id).Error
}

func (r *ProductionRepository) ListHarvests(ctx context.Context) ([]model.HarvestRecord, error) {
	var records []model.HarvestRecord
	err := r.db.WithContext(ctx).Raw(`
		SELECT h.id, h.farm_id, COALESCE(f.name, ?) AS farm_name,
			h.week, h.year, h.bunches_cut, h.bunches_rejected, h.bunches_recovered,
			h.boxes_produced, h.average_weight, h.caliber, h.hands, h.ratio, h.waste_pct,
			h.date, h.created_at
		FROM harvest_records h
		LEFT JOIN farms f ON f.id = h.farm_id
		ORDER BY h.date DESC
	`, unresolvedLabel).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ProductionRepository) GetHarvest(ctx context.Context, id uuid.UUID) (*model.HarvestRecord, error) {
	var rec model.HarvestRecord
	err := r.db.WithContext(ctx).Raw(`
		SELECT h.id, h.farm_id, COALESCE(f.name, ?) AS farm_name,
			h.week, h.year, h.bunches_cut, h.bunches_rejected, h.bunches_recovered,
			h.boxes_produced, h.average_weight, h.caliber, h.hands, h.ratio, h.waste_pct,
			h.date, h.created_at
		FROM harvest_records h
		LEFT JOIN farms f ON f.id = h.farm_id
		WHERE h.id = ?
		LIMIT 1
	`, unresolvedLabel, id).Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == uuid.Nil {
		return nil, nil
	}
	return &rec, nil
}

func (r *ProductionRepository) CreateHarvest(ctx context.Context, rec *model.HarvestRecord) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO harvest_records (
			id, farm_id, week, year, bunches_cut, bunches_rejected, bunches_recovered,
			boxes_produced, average_weight, caliber, hands, ratio, waste_pct, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, rec.ID, rec.FarmID, rec.Week, rec.Year, rec.BunchesCut, rec.BunchesRejected, rec.BunchesRecovered,
		rec.BoxesProduced, rec.AverageWeight, rec.Caliber, rec.Hands, rec.Ratio, rec.WastePct, rec.Date).Error
}

func (r *ProductionRepository) UpdateHarvest(ctx context.Context, rec *model.HarvestRecord) error {
	return exactlyOne(r.db.WithContext(ctx).Exec(`
		UPDATE harvest_records
		SET week = ?, year = ?, bunches_cut = ?, bunches_rejected = ?, bunches_recovered = ?,
			boxes_produced = ?, average_weight = ?, caliber = ?, hands = ?, ratio = ?, waste_pct = ?, date = ?
		WHERE id = ?
	`, rec.Week, rec.Year, rec.BunchesCut, rec.BunchesRejected, rec.BunchesRecovered,
		rec.BoxesProduced, rec.AverageWeight, rec.Caliber, rec.Hands, rec.Ratio, rec.WastePct, rec.Date, rec.ID))
}

func (r *ProductionRepository) DeleteHarvest(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM harvest_records WHERE id = ?`, id).Error
}

func (r *ProductionRepository) ListTapeRecoveries(ctx context.Context) ([]model.TapeRecovery, error) {
	var records []model.TapeRecovery
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.id, t.farm_id, COALESCE(f.name, ?) AS farm_name,
			t.week, t.year, t.initial_bags,
			t.first_cal_harvest, t.first_cal_balance,
			t.second_cal_harvest, t.second_cal_balance,
			t.third_cal_harvest, t.third_cal_balance,
			t.final_sweep, t.recovery_pct, t.date, t.created_at
		FROM tape_recoveries t
		LEFT JOIN farms f ON f.id = t.farm_id
		ORDER BY t.date DESC
	`, unresolvedLabel).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ProductionRepository) GetTapeRecovery(ctx context.Context, id uuid.UUID) (*model.TapeRecovery, error) {
	var rec model.TapeRecovery
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.id, t.farm_id, COALESCE(f.name, ?) AS farm_name,
			t.week, t.year, t.initial_bags,
			t.first_cal_harvest, t.first_cal_balance,
			t.second_cal_harvest, t.second_cal_balance,
			t.third_cal_harvest, t.third_cal_balance,
			t.final_sweep, t.recovery_pct, t.date, t.created_at
		FROM tape_recoveries t
		LEFT JOIN farms f ON f.id = t.farm_id
		WHERE t.id = ?
		LIMIT 1
	`, unresolvedLabel, id).Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == uuid.Nil {
		return nil, nil
	}
	return &rec, nil
}

func (r *ProductionRepository) CreateTapeRecovery(ctx context.Context, rec *model.TapeRecovery) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO tape_recoveries (
			id, farm_id, week, year, initial_bags,
			first_cal_harvest, first_cal_balance, second_cal_harvest, second_cal_balance,
			third_cal_harvest, third_cal_balance, final_sweep, recovery_pct, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, rec.ID, rec.FarmID, rec.Week, rec.Year, rec.InitialBags,
		rec.FirstCalHarvest, rec.FirstCalBalance, rec.SecondCalHarvest, rec.SecondCalBalance,
		rec.ThirdCalHarvest, rec.ThirdCalBalance, rec.FinalSweep, rec.RecoveryPct, rec.Date).Error
}

func (r *ProductionRepository) UpdateTapeRecovery(ctx context.Context, rec *model.TapeRecovery) error {
	return exactlyOne(r.db.WithContext(ctx).Exec(`
		UPDATE tape_recoveries
		SET week = ?, year = ?, initial_bags = ?,
			first_cal_harvest = ?, first_cal_balance = ?,
			second_cal_harvest = ?, second_cal_balance = ?,
			third_cal_harvest = ?, third_cal_balance = ?,
			final_sweep = ?, recovery_pct = ?, date = ?
		WHERE id = ?
	`, rec.Week, rec.Year, rec.InitialBags,
		rec.FirstCalHarvest, rec.FirstCalBalance,
		rec.SecondCalHarvest, rec.SecondCalBalance,
		rec.ThirdCalHarvest, rec.ThirdCalBalance,
		rec.FinalSweep, rec.RecoveryPct, rec.Date, rec.ID))
}

func (r *ProductionRepository) DeleteTapeRecovery(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM tape_recoveries WHERE id = ?`, id).Error
}

// exactlyOne surfaces a missed UPDATE as a conflict so a lost race
// with a concurrent delete is visible to the caller.
func exactlyOne(tx *gorm.DB) error {
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("no row updated")
	}
	return nil
}
