package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/access"
	"github.com/emontalvo/fincaops/internal/metrics"
	"github.com/emontalvo/fincaops/internal/model"
)

// ProductionRepository is the store slice the production service
// drives. Getters return (nil, nil) when the id is absent.
type ProductionRepository interface {
	GetFarm(ctx context.Context, id uuid.UUID) (*model.Farm, error)

	ListBagging(ctx context.Context) ([]model.BaggingRecord, error)
	GetBagging(ctx context.Context, id uuid.UUID) (*model.BaggingRecord, error)
	CreateBagging(ctx context.Context, rec *model.BaggingRecord) error
	UpdateBagging(ctx context.Context, rec *model.BaggingRecord) error
	DeleteBagging(ctx context.Context, id uuid.UUID) error

	ListHarvests(ctx context.Context) ([]model.HarvestRecord, error)
	GetHarvest(ctx context.Context, id uuid.UUID) (*model.HarvestRecord, error)
	CreateHarvest(ctx context.Context, rec *model.HarvestRecord) error
	UpdateHarvest(ctx context.Context, rec *model.HarvestRecord) error
	DeleteHarvest(ctx context.Context, id uuid.UUID) error

	ListTapeRecoveries(ctx context.Context) ([]model.TapeRecovery, error)
	GetTapeRecovery(ctx context.Context, id uuid.UUID) (*model.TapeRecovery, error)
	CreateTapeRecovery(ctx context.Context, rec *model.TapeRecovery) error
	UpdateTapeRecovery(ctx context.Context, rec *model.TapeRecovery) error
	DeleteTapeRecovery(ctx context.Context, id uuid.UUID) error
}

type ProductionService struct {
	repo ProductionRepository
}

func NewProductionService(repo ProductionRepository) *ProductionService {
	return &ProductionService{repo: repo}
}

func (s *ProductionService) requireView(p model.Principal) error {
	if !access.CanAccess(p.Role, model.ModuleProduction, access.ActionView) {
		return fmt.Errorf("%w: produccion view", ErrPermissionDenied)
	}
	return nil
}

func (s *ProductionService) requireEdit(p model.Principal, farmID uuid.UUID) error {
	if !access.CanAccess(p.Role, model.ModuleProduction, access.ActionEdit) {
		return fmt.Errorf("%w: produccion edit", ErrPermissionDenied)
	}
	if !access.Visible(p, model.ModuleProduction, &farmID) {
		return fmt.Errorf("%w: farm outside principal scope", ErrPermissionDenied)
	}
	return nil
}

func (s *ProductionService) farmMustExist(ctx context.Context, farmID uuid.UUID) error {
	farm, err := s.repo.GetFarm(ctx, farmID)
	if err != nil {
		return err
	}
	if farm == nil {
		return fmt.Errorf("%w: farm %s", ErrNotFound, farmID)
	}
	return nil
}

func validWeek(week int) bool { return week >= 1 && week <= 53 }

// Bagging

type CreateBaggingInput struct {
	FarmID       uuid.UUID
	Week         int
	Year         int
	TapeColor    model.TapeColor
	BagCount     int
	FallenPlants int
	Date         time.Time
	Notes        string
}

type UpdateBaggingInput struct {
	Week         *int
	Year         *int
	TapeColor    *model.TapeColor
	BagCount     *int
	FallenPlants *int
	Date         *time.Time
	Notes        *string
}

func (s *ProductionService) ListBagging(ctx context.Context, p model.Principal) ([]model.BaggingRecord, error) {
	if err := s.requireView(p); err != nil {
		return nil, err
	}
	records, err := s.repo.ListBagging(ctx)
	if err != nil {
		return nil, err
	}
	visible := records[:0]
	for _, r := range records {
		if access.Visible(p, model.ModuleProduction, &r.FarmID) {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

func (s *ProductionService) CreateBagging(ctx context.Context, p model.Principal, in CreateBaggingInput) (*model.BaggingRecord, error) {
	if err := s.requireEdit(p, in.FarmID); err != nil {
		return nil, err
	}
	if err := validateBagging(in.Week, in.BagCount, in.FallenPlants); err != nil {
		return nil, err
	}
	if err := s.farmMustExist(ctx, in.FarmID); err != nil {
		return nil, err
	}

	rec := &model.BaggingRecord{
		ID:           uuid.New(),
		FarmID:       in.FarmID,
		Week:         in.Week,
		Year:         in.Year,
		TapeColor:    in.TapeColor,
		BagCount:     in.BagCount,
		FallenPlants: in.FallenPlants,
		Date:         in.Date,
		Notes:        in.Notes,
	}
	if err := s.repo.CreateBagging(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ProductionService) UpdateBagging(ctx context.Context, p model.Principal, id uuid.UUID, in UpdateBaggingInput) (*model.BaggingRecord, error) {
	rec, err := s.repo.GetBagging(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: bagging record %s", ErrNotFound, id)
	}
	if err := s.requireEdit(p, rec.FarmID); err != nil {
		return nil, err
	}

	if in.Week != nil {
		rec.Week = *in.Week
	}
	if in.Year != nil {
		rec.Year = *in.Year
	}
	if in.TapeColor != nil {
		rec.TapeColor = *in.TapeColor
	}
	if in.BagCount != nil {
		rec.BagCount = *in.BagCount
	}
	if in.FallenPlants != nil {
		rec.FallenPlants = *in.FallenPlants
	}
	if in.Date != nil {
		rec.Date = *in.Date
	}
	if in.Notes != nil {
		rec.Notes = *in.Notes
	}
	if err := validateBagging(rec.Week, rec.BagCount, rec.FallenPlants); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateBagging(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ProductionService) DeleteBagging(ctx context.Context, p model.Principal, id uuid.UUID) error {
	rec, err := s.repo.GetBagging(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%w: bagging record %s", ErrNotFound, id)
	}
	if err := s.requireEdit(p, rec.FarmID); err != nil {
		return err
	}
	return s.repo.DeleteBagging(ctx, id)
}

func validateBagging(week, bags, fallen int) error {
	if !validWeek(week) {
		return fmt.Errorf("%w: week must be 1-53", ErrInvalidState)
	}
	if bags < 0 {
		return fmt.Errorf("%w: bag count must not be negative", ErrInvalidState)
	}
	if fallen < 0 {
		return fmt.Errorf("%w: fallen plant count must not be negative", ErrInvalidState)
	}
	return nil
}

// Harvest

type CreateHarvestInput struct {
	FarmID          uuid.UUID
	Week            int
	Year            int
	BunchesCut      int
	BunchesRejected int
	BoxesProduced   int
	AverageWeight   float64
	Caliber         float64
	Hands           int
	Date            time.Time
}

type UpdateHarvestInput struct {
	Week            *int
	Year            *int
	BunchesCut      *int
	BunchesRejected *int
	BoxesProduced   *int
	AverageWeight   *float64
	Caliber         *float64
	Hands           *int
	Date            *time.Time
}

func (s *ProductionService) ListHarvests(ctx context.Context, p model.Principal) ([]model.HarvestRecord, error) {
	if err := s.requireView(p); err != nil {
		return nil, err
	}
	records, err := s.repo.ListHarvests(ctx)
	if err != nil {
		return nil, err
	}
	visible := records[:0]
	for _, r := range records {
		if access.Visible(p, model.ModuleProduction, &r.FarmID) {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

func (s *ProductionService) CreateHarvest(ctx context.Context, p model.Principal, in CreateHarvestInput) (*model.HarvestRecord, error) {
	if err := s.requireEdit(p, in.FarmID); err != nil {
		return nil, err
	}
	if err := validateHarvest(in.Week, in.BunchesCut, in.BunchesRejected, in.BoxesProduced); err != nil {
		return nil, err
	}
	if err := s.farmMustExist(ctx, in.FarmID); err != nil {
		return nil, err
	}

	derived, err := metrics.Harvest(metrics.HarvestInput{
		BunchesCut:      in.BunchesCut,
		BunchesRejected: in.BunchesRejected,
		BoxesProduced:   in.BoxesProduced,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	rec := &model.HarvestRecord{
		ID:               uuid.New(),
		FarmID:           in.FarmID,
		Week:             in.Week,
		Year:             in.Year,
		BunchesCut:       in.BunchesCut,
		BunchesRejected:  in.BunchesRejected,
		BunchesRecovered: derived.BunchesRecovered,
		BoxesProduced:    in.BoxesProduced,
		AverageWeight:    in.AverageWeight,
		Caliber:          in.Caliber,
		Hands:            in.Hands,
		Ratio:            derived.Ratio,
		WastePct:         derived.WastePct,
		Date:             in.Date,
	}
	if err := s.repo.CreateHarvest(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ProductionService) UpdateHarvest(ctx context.Context, p model.Principal, id uuid.UUID, in UpdateHarvestInput) (*model.HarvestRecord, error) {
	rec, err := s.repo.GetHarvest(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: harvest record %s", ErrNotFound, id)
	}
	if err := s.requireEdit(p, rec.FarmID); err != nil {
		return nil, err
	}

	if in.Week != nil {
		rec.Week = *in.Week
	}
	if in.Year != nil {
		rec.Year = *in.Year
	}
	if in.BunchesCut != nil {
		rec.BunchesCut = *in.BunchesCut
	}
	if in.BunchesRejected != nil {
		rec.BunchesRejected = *in.BunchesRejected
	}
	if in.BoxesProduced != nil {
		rec.BoxesProduced = *in.BoxesProduced
	}
	if in.AverageWeight != nil {
		rec.AverageWeight = *in.AverageWeight
	}
	if in.Caliber != nil {
		rec.Caliber = *in.Caliber
	}
	if in.Hands != nil {
		rec.Hands = *in.Hands
	}
	if in.Date != nil {
		rec.Date = *in.Date
	}
	if err := validateHarvest(rec.Week, rec.BunchesCut, rec.BunchesRejected, rec.BoxesProduced); err != nil {
		return nil, err
	}

	derived, err := metrics.Harvest(metrics.HarvestInput{
		BunchesCut:      rec.BunchesCut,
		BunchesRejected: rec.BunchesRejected,
		BoxesProduced:   rec.BoxesProduced,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	rec.BunchesRecovered = derived.BunchesRecovered
	rec.Ratio = derived.Ratio
	rec.WastePct = derived.WastePct

	if err := s.repo.UpdateHarvest(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ProductionService) DeleteHarvest(ctx context.Context, p model.Principal, id uuid.UUID) error {
	rec, err := s.repo.GetHarvest(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%w: harvest record %s", ErrNotFound, id)
	}
	if err := s.requireEdit(p, rec.FarmID); err != nil {
		return err
	}
	return s.repo.DeleteHarvest(ctx, id)
}

func validateHarvest(week, cut, rejected, boxes int) error {
	if !validWeek(week) {
		return fmt.Errorf("%w: week must be 1-53", ErrInvalidState)
	}
	if cut < 0 || rejected < 0 || boxes < 0 {
		return fmt.Errorf("%w: harvest counts must not be negative", ErrInvalidState)
	}
	if rejected > cut {
		return fmt.Errorf("%w: %v", ErrInvalidState, metrics.ErrRejectedExceedsCut)
	}
	return nil
}

// Tape recovery

type CreateTapeRecoveryInput struct {
	FarmID           uuid.UUID
	Week             int
	Year             int
	InitialBags      int
	FirstCalHarvest  int
	FirstCalBalance  int
	SecondCalHarvest int
	SecondCalBalance int
	ThirdCalHarvest  int
	ThirdCalBalance  int
	FinalSweep       int
	Date             time.Time
}

func (s *ProductionService) ListTapeRecoveries(ctx context.Context, p model.Principal) ([]model.TapeRecovery, error) {
	if err := s.requireView(p); err != nil {
		return nil, err
	}
	records, err := s.repo.ListTapeRecoveries(ctx)
	if err != nil {
		return nil, err
	}
	visible := records[:0]
	for _, r := range records {
		if access.Visible(p, model.ModuleProduction, &r.FarmID) {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

func (s *ProductionService) CreateTapeRecovery(ctx context.Context, p model.Principal, in CreateTapeRecoveryInput) (*model.TapeRecovery, error) {
	if err := s.requireEdit(p, in.FarmID); err != nil {
		return nil, err
	}
	if !validWeek(in.Week) {
		return nil, fmt.Errorf("%w: week must be 1-53", ErrInvalidState)
	}
	if in.InitialBags < 0 || in.FirstCalHarvest < 0 || in.SecondCalHarvest < 0 || in.ThirdCalHarvest < 0 || in.FinalSweep < 0 {
		return nil, fmt.Errorf("%w: recovery counts must not be negative", ErrInvalidState)
	}
	if err := s.farmMustExist(ctx, in.FarmID); err != nil {
		return nil, err
	}

	rec := &model.TapeRecovery{
		ID:               uuid.New(),
		FarmID:           in.FarmID,
		Week:             in.Week,
		Year:             in.Year,
		InitialBags:      in.InitialBags,
		FirstCalHarvest:  in.FirstCalHarvest,
		FirstCalBalance:  in.FirstCalBalance,
		SecondCalHarvest: in.SecondCalHarvest,
		SecondCalBalance: in.SecondCalBalance,
		ThirdCalHarvest:  in.ThirdCalHarvest,
		ThirdCalBalance:  in.ThirdCalBalance,
		FinalSweep:       in.FinalSweep,
		RecoveryPct: metrics.TapeRecoveryPct(
			in.InitialBags, in.FirstCalHarvest, in.SecondCalHarvest, in.ThirdCalHarvest, in.FinalSweep),
		Date: in.Date,
	}
	if err := s.repo.CreateTapeRecovery(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

type UpdateTapeRecoveryInput struct {
	Week             *int
	Year             *int
	InitialBags      *int
	FirstCalHarvest  *int
	FirstCalBalance  *int
	SecondCalHarvest *int
	SecondCalBalance *int
	ThirdCalHarvest  *int
	ThirdCalBalance  *int
	FinalSweep       *int
	Date             *time.Time
}

func (s *ProductionService) UpdateTapeRecovery(ctx context.Context, p model.Principal, id uuid.UUID, in UpdateTapeRecoveryInput) (*model.TapeRecovery, error) {
	rec, err := s.repo.GetTapeRecovery(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: tape recovery %s", ErrNotFound, id)
	}
	if err := s.requireEdit(p, rec.FarmID); err != nil {
		return nil, err
	}

	if in.Week != nil {
		rec.Week = *in.Week
	}
	if in.Year != nil {
		rec.Year = *in.Year
	}
	if in.InitialBags != nil {
		rec.InitialBags = *in.InitialBags
	}
	if in.FirstCalHarvest != nil {
		rec.FirstCalHarvest = *in.FirstCalHarvest
	}
	if in.FirstCalBalance != nil {
		rec.FirstCalBalance = *in.FirstCalBalance
	}
	if in.SecondCalHarvest != nil {
		rec.SecondCalHarvest = *in.SecondCalHarvest
	}
	if in.SecondCalBalance != nil {
		rec.SecondCalBalance = *in.SecondCalBalance
	}
	if in.ThirdCalHarvest != nil {
		rec.ThirdCalHarvest = *in.ThirdCalHarvest
	}
	if in.ThirdCalBalance != nil {
		rec.ThirdCalBalance = *in.ThirdCalBalance
	}
	if in.FinalSweep != nil {
		rec.FinalSweep = *in.FinalSweep
	}
	if in.Date != nil {
		rec.Date = *in.Date
	}
	if !validWeek(rec.Week) {
		return nil, fmt.Errorf("%w: week must be 1-53", ErrInvalidState)
	}
	if rec.InitialBags < 0 || rec.FirstCalHarvest < 0 || rec.SecondCalHarvest < 0 || rec.ThirdCalHarvest < 0 || rec.FinalSweep < 0 {
		return nil, fmt.Errorf("%w: recovery counts must not be negative", ErrInvalidState)
	}
	rec.RecoveryPct = metrics.TapeRecoveryPct(
		rec.InitialBags, rec.FirstCalHarvest, rec.SecondCalHarvest, rec.ThirdCalHarvest, rec.FinalSweep)

	if err := s.repo.UpdateTapeRecovery(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ProductionService) DeleteTapeRecovery(ctx context.Context, p model.Principal, id uuid.UUID) error {
	rec, err := s.repo.GetTapeRecovery(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%w: tape recovery %s", ErrNotFound, id)
	}
	if err := s.requireEdit(p, rec.FarmID); err != nil {
		return err
	}
	return s.repo.DeleteTapeRecovery(ctx, id)
}
