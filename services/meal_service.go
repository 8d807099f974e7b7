package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Macro-Tracker-Platform/intake-service/apperr"
	"github.com/Macro-Tracker-Platform/intake-service/logger"
	"github.com/Macro-Tracker-Platform/intake-service/models"
)

type MealService struct {
	db    *gorm.DB
	cache IntakeCache
	foods FoodCatalog
}

func NewMealService(db *gorm.DB, cache IntakeCache, foods FoodCatalog) *MealService {
	return &MealService{db: db, cache: cache, foods: foods}
}

type MealTemplateRequest struct {
	Name  string                `json:"name"`
	Items []TemplateItemRequest `json:"items"`
}

type UpdateMealTemplateRequest struct {
	Name  *string               `json:"name"`
	Items []TemplateItemRequest `json:"items"`
}

// GetTemplates lists the user's meal templates, read-through cached per user.
func (s *MealService) GetTemplates(ctx context.Context, userID uint) ([]models.MealTemplate, error) {
	if cached, ok := s.cache.GetTemplates(ctx, userID); ok {
		return cached, nil
	}

	logger.Info("fetching meal templates from store", "userId", userID)
	var templates []models.MealTemplate
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	s.cache.SetTemplates(ctx, userID, templates)
	return templates, nil
}

// CreateTemplate builds a template from catalog data: every item's food must
// resolve, its unit must be advertised by the food, and its totals are
// computed for the template amount.
func (s *MealService) CreateTemplate(ctx context.Context, req MealTemplateRequest, userID uint) (uint, error) {
	logger.Info("creating meal template", "name", req.Name, "userId", userID)

	foodIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if err := validateNewItemFields(item); err != nil {
			return 0, err
		}
		foodIDs = append(foodIDs, item.FoodID)
	}
	foodMap, err := s.fetchAndValidateFoods(ctx, foodIDs)
	if err != nil {
		return 0, err
	}

	template := models.MealTemplate{UserID: userID, Name: req.Name}
	for _, item := range req.Items {
		built, err := buildTemplateItem(foodMap[item.FoodID], *item.Amount, *item.UnitType)
		if err != nil {
			return 0, err
		}
		template.Items = append(template.Items, built)
	}

	if err := s.db.WithContext(ctx).Create(&template).Error; err != nil {
		return 0, err
	}
	s.cache.EvictTemplates(ctx, userID)
	return template.ID, nil
}

// UpdateTemplate renames the template when a name is given and reconciles its
// items against the incoming list. Foods new to the template are fetched from
// the catalog in one batched call; any failure aborts the whole update with
// nothing persisted.
func (s *MealService) UpdateTemplate(ctx context.Context, templateID uint, req UpdateMealTemplateRequest, userID uint) error {
	logger.Info("updating meal template", "templateId", templateID, "userId", userID)

	var template models.MealTemplate
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", templateID, userID).
		First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("template not found")
	}
	if err != nil {
		return err
	}

	if req.Name != nil {
		template.Name = *req.Name
	}

	newFoods, err := s.resolveNewFoods(ctx, req.Items, &template)
	if err != nil {
		return err
	}
	removedIDs, err := syncTemplateItems(&template, req.Items, newFoods)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(removedIDs) > 0 {
			if err := tx.Delete(&models.MealTemplateItem{}, removedIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.MealTemplate{}).
			Where("id = ?", template.ID).
			Update("name", template.Name).Error; err != nil {
			return err
		}
		for i := range template.Items {
			template.Items[i].MealTemplateID = template.ID
			if err := tx.Save(&template.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.EvictTemplates(ctx, userID)
	logger.Debug("meal template updated", "templateId", templateID, "userId", userID)
	return nil
}

// DeleteTemplate removes the template and its items.
func (s *MealService) DeleteTemplate(ctx context.Context, templateID, userID uint) error {
	logger.Info("deleting meal template", "templateId", templateID, "userId", userID)

	var template models.MealTemplate
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", templateID, userID).
		First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("template not found or does not belong to user")
	}
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Select("Items").Delete(&template).Error; err != nil {
		return err
	}
	s.cache.EvictTemplates(ctx, userID)
	return nil
}

// ApplyTemplate copies every template item into an intake record on the given
// date. The records share a fresh meal group id so the application can be
// undone in one call.
func (s *MealService) ApplyTemplate(ctx context.Context, templateID uint, date time.Time,
	period models.IntakePeriod, userID uint) ([]models.Intake, error) {
	logger.Info("applying meal template", "templateId", templateID, "userId", userID, "date", date.Format("2006-01-02"))

	var template models.MealTemplate
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", templateID, userID).
		First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("template not found")
	}
	if err != nil {
		return nil, err
	}

	if period == "" {
		period = models.PeriodSnack
	}
	groupID := uuid.NewString()
	day := normalizeDate(date)

	intakes := make([]models.Intake, 0, len(template.Items))
	for _, item := range template.Items {
		intakes = append(intakes, models.Intake{
			UserID:      userID,
			FoodID:      item.FoodID,
			FoodName:    item.FoodName,
			Date:        day,
			Period:      period,
			Amount:      item.Amount,
			UnitType:    item.UnitType,
			MealGroupID: &groupID,
			Nutriments:  item.Nutriments,
		})
	}
	if len(intakes) > 0 {
		if err := s.db.WithContext(ctx).Create(&intakes).Error; err != nil {
			return nil, err
		}
	}

	s.cache.EvictIntakes(ctx, userID, day.Format("2006-01-02"))
	logger.Debug("template applied", "templateId", templateID, "created", len(intakes))
	return intakes, nil
}

// resolveNewFoods batch-fetches only the food ids the template does not
// already contain. Required fields on new entries are checked first so a
// malformed insert is rejected before any catalog round-trip; ids the catalog
// cannot return fail the whole call.
func (s *MealService) resolveNewFoods(ctx context.Context, incoming []TemplateItemRequest,
	template *models.MealTemplate) (map[string]Food, error) {
	existing := make(map[string]struct{}, len(template.Items))
	for _, item := range template.Items {
		existing[item.FoodID] = struct{}{}
	}
	var newIDs []string
	for _, req := range incoming {
		if _, ok := existing[req.FoodID]; !ok {
			if err := validateNewItemFields(req); err != nil {
				return nil, err
			}
			newIDs = append(newIDs, req.FoodID)
		}
	}
	return s.fetchAndValidateFoods(ctx, newIDs)
}

// fetchAndValidateFoods resolves the distinct ids in one batched catalog call.
// Fewer foods back than ids asked means some do not exist; those are reported
// by id in the error.
func (s *MealService) fetchAndValidateFoods(ctx context.Context, foodIDs []string) (map[string]Food, error) {
	unique := make([]string, 0, len(foodIDs))
	seen := make(map[string]struct{}, len(foodIDs))
	for _, id := range foodIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return map[string]Food{}, nil
	}

	foods, err := s.foods.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	foodMap := make(map[string]Food, len(foods))
	for _, f := range foods {
		foodMap[f.ID] = f
	}
	if len(foodMap) != len(unique) {
		var missing []string
		for _, id := range unique {
			if _, ok := foodMap[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, apperr.NotFound("foods not found: %v", missing)
	}
	return foodMap, nil
}
