package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Macro-Tracker-Platform/intake-service/apperr"
	"github.com/Macro-Tracker-Platform/intake-service/logger"
	"github.com/Macro-Tracker-Platform/intake-service/models"
)

// deleteBatchSize bounds how many rows one user-deletion step removes; a full
// batch means more rows may remain and the event is republished.
const deleteBatchSize = 1000

type IntakeService struct {
	db       *gorm.DB
	cache    IntakeCache
	foods    FoodCatalog
	producer UserEventProducer
}

func NewIntakeService(db *gorm.DB, cache IntakeCache, foods FoodCatalog, producer UserEventProducer) *IntakeService {
	return &IntakeService{db: db, cache: cache, foods: foods, producer: producer}
}

type IntakeRequest struct {
	FoodID   string              `json:"foodId"`
	Date     time.Time           `json:"date"`
	Period   models.IntakePeriod `json:"period"`
	Amount   int                 `json:"amount"`
	UnitType *models.UnitType    `json:"unitType"`
}

type UpdateIntakeRequest struct {
	Date     *time.Time           `json:"date"`
	Period   *models.IntakePeriod `json:"period"`
	Amount   *int                 `json:"amount"`
	UnitType *models.UnitType     `json:"unitType"`
}

// Save records a new intake: the food's baselines come from the catalog, the
// totals are computed for the requested amount, and the (user, date) cache
// entry is evicted together with the write.
func (s *IntakeService) Save(ctx context.Context, req IntakeRequest, userID uint) (*models.Intake, error) {
	logger.Info("saving intake", "userId", userID, "foodId", req.FoodID)

	food, err := s.foods.GetByID(ctx, req.FoodID)
	if err != nil {
		return nil, err
	}
	unit := resolveUnitType(req.UnitType)
	if err := validateUnitSupported(food, unit); err != nil {
		return nil, err
	}

	intake := &models.Intake{
		UserID:   userID,
		FoodID:   food.ID,
		FoodName: food.ProductName,
		Date:     normalizeDate(req.Date),
		Period:   req.Period,
		Amount:   req.Amount,
		UnitType: unit,
	}
	calc, err := CalculatorFor(unit)
	if err != nil {
		return nil, err
	}
	intake.Nutriments, err = calc.Calculate(food.BaselineNutriments(), req.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(intake).Error; err != nil {
		return nil, err
	}
	s.cache.EvictIntakes(ctx, userID, intake.DateKey())
	logger.Debug("intake saved", "userId", userID, "intakeId", intake.ID)
	return intake, nil
}

// FindByDate lists a user's intakes for the date, read-through cached per
// (user, date). A nil date lists everything for the user, uncached.
func (s *IntakeService) FindByDate(ctx context.Context, date *time.Time, userID uint) ([]models.Intake, error) {
	if date == nil {
		var intakes []models.Intake
		err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&intakes).Error
		return intakes, err
	}

	key := normalizeDate(*date).Format("2006-01-02")
	if cached, ok := s.cache.GetIntakes(ctx, userID, key); ok {
		return cached, nil
	}

	var intakes []models.Intake
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, normalizeDate(*date)).
		Find(&intakes).Error
	if err != nil {
		return nil, err
	}
	s.cache.SetIntakes(ctx, userID, key, intakes)
	return intakes, nil
}

// Update applies field changes to an existing intake, recomputing totals when
// the amount or unit changed. A date change evicts both the pre-update and the
// post-update cache entries.
func (s *IntakeService) Update(ctx context.Context, id uint, req UpdateIntakeRequest, userID uint) (*models.Intake, error) {
	logger.Info("updating intake", "intakeId", id, "userId", userID)

	var intake models.Intake
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&intake).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("intake not found")
	}
	if err != nil {
		return nil, err
	}

	s.cache.EvictIntakes(ctx, userID, intake.DateKey())

	oldAmount := intake.Amount
	oldUnit := intake.UnitType
	dateChanged := false

	if req.Date != nil && !normalizeDate(*req.Date).Equal(intake.Date) {
		intake.Date = normalizeDate(*req.Date)
		dateChanged = true
	}
	if req.Period != nil {
		intake.Period = *req.Period
	}
	if req.Amount != nil {
		intake.Amount = *req.Amount
	}
	if req.UnitType != nil {
		intake.UnitType = *req.UnitType
	}

	if intake.Amount != oldAmount || intake.UnitType != oldUnit {
		if intake.UnitType != oldUnit && !intake.Nutriments.SupportsUnit(intake.UnitType) {
			return nil, apperr.Validation(
				"unit type '%s' is not available for this food, available units: %v",
				intake.UnitType, intake.Nutriments.AvailableUnits())
		}
		calc, err := CalculatorFor(intake.UnitType)
		if err != nil {
			return nil, err
		}
		intake.Nutriments, err = calc.Calculate(intake.Nutriments, intake.Amount)
		if err != nil {
			return nil, err
		}
	}

	if dateChanged {
		s.cache.EvictIntakes(ctx, userID, intake.DateKey())
	}

	if err := s.db.WithContext(ctx).Save(&intake).Error; err != nil {
		return nil, err
	}
	logger.Debug("intake updated", "intakeId", id, "userId", userID)
	return &intake, nil
}

// DeleteByID removes one intake. A missing record is a silent no-op.
func (s *IntakeService) DeleteByID(ctx context.Context, id, userID uint) error {
	logger.Info("deleting intake", "intakeId", id, "userId", userID)

	var intake models.Intake
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&intake).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	s.cache.EvictIntakes(ctx, userID, intake.DateKey())
	return s.db.WithContext(ctx).Delete(&intake).Error
}

// UndoIntakeGroup bulk-removes every record created together under one group,
// e.g. a single template application. One representative record supplies the
// date whose cache entry must go.
func (s *IntakeService) UndoIntakeGroup(ctx context.Context, mealGroupID string, userID uint) error {
	logger.Info("reverting intake group", "mealGroupId", mealGroupID, "userId", userID)

	var representative models.Intake
	err := s.db.WithContext(ctx).
		Where("meal_group_id = ? AND user_id = ?", mealGroupID, userID).
		First(&representative).Error
	if err == nil {
		s.cache.EvictIntakes(ctx, userID, representative.DateKey())
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.db.WithContext(ctx).
		Where("meal_group_id = ? AND user_id = ?", mealGroupID, userID).
		Delete(&models.Intake{}).Error
}

// DeleteUserIntakesBatch removes up to one batch of the user's intake rows in
// a single atomic statement. A full batch republishes the deletion event so a
// later invocation continues the work; progress is implicit in "delete the
// next N remaining rows", which stays correct under event redelivery.
func (s *IntakeService) DeleteUserIntakesBatch(ctx context.Context, userID uint) (int64, error) {
	logger.Info("processing batch deletion", "userId", userID)

	sub := s.db.Model(&models.Intake{}).
		Select("id").
		Where("user_id = ?", userID).
		Limit(deleteBatchSize)
	res := s.db.WithContext(ctx).
		Where("id IN (?)", sub).
		Delete(&models.Intake{})
	if res.Error != nil {
		return 0, res.Error
	}

	deleted := res.RowsAffected
	logger.Info("deleted intake records", "userId", userID, "count", deleted)

	if deleted >= deleteBatchSize {
		logger.Info("user still has data, republishing deletion event", "userId", userID)
		if err := s.producer.SendUserDeletedEvent(ctx, UserDeletedEvent{UserID: userID}); err != nil {
			logger.Error("failed to republish user deletion event", "userId", userID, "error", err)
		}
	} else {
		logger.Info("data cleanup completed", "userId", userID)
	}
	return deleted, nil
}

func resolveUnitType(requested *models.UnitType) models.UnitType {
	if requested != nil {
		return *requested
	}
	return models.UnitGrams
}

func validateUnitSupported(food *Food, unit models.UnitType) error {
	if !food.SupportsUnit(unit) {
		return apperr.Validation(
			"food '%s' does not support unit type %s, available types: %v",
			food.ProductName, unit, food.AvailableUnits)
	}
	return nil
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
