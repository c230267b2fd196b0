package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/persistence/model"
)

// categoryRuleRepository implements the adapter.CategoryRuleRepository interface.
type categoryRuleRepository struct {
	db *gorm.DB
}

// NewCategoryRuleRepository creates a new category rule repository instance.
func NewCategoryRuleRepository(db *gorm.DB) adapter.CategoryRuleRepository {
	return &categoryRuleRepository{
		db: db,
	}
}

// Create creates a new category rule in the database.
func (r *categoryRuleRepository) Create(ctx context.Context, rule *entity.CategoryRule) error {
	ruleModel := model.CategoryRuleFromEntity(rule)
	result := r.db.WithContext(ctx).Omit("Category").Create(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a category rule by its ID.
func (r *categoryRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CategoryRule, error) {
	var ruleModel model.CategoryRuleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryRuleNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindByHousehold retrieves the rules of a household in evaluation order. Rules that
// point at a deleted category are skipped.
func (r *categoryRuleRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.CategoryRuleWithCategory, error) {
	var ruleModels []model.CategoryRuleModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Joins("JOIN categories ON categories.id = categorization_rules.category_id AND categories.deleted_at IS NULL").
		Where("categorization_rules.household_id = ?", householdID).
		Order("categorization_rules.priority ASC").
		Order("categorization_rules.created_at DESC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.CategoryRuleWithCategory, len(ruleModels))
	for i := range ruleModels {
		rules[i] = ruleModels[i].ToEntityWithCategory()
	}
	return rules, nil
}

// ExistsByMatch checks if the household already has a rule with the same match.
func (r *categoryRuleRepository) ExistsByMatch(ctx context.Context, householdID uuid.UUID, matchType entity.RuleMatchType, matchValue string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategoryRuleModel{}).
		Where("household_id = ? AND match_type = ? AND match_value = ?", householdID, string(matchType), matchValue).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Delete removes a category rule from the database.
func (r *categoryRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CategoryRuleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryRuleNotFound
	}
	return nil
}
