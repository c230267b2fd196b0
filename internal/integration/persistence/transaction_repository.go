package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create stores the transaction and its category assignments atomically.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel, assignments := model.TransactionFromEntity(transaction)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Create(transactionModel).Error; err != nil {
			return err
		}
		if len(assignments) == 0 {
			return nil
		}
		return tx.Create(&assignments).Error
	})
}

// FindByID retrieves a transaction with its category assignments.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Categories").
		Where("id = ?", id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// AssignCategoryIfUncategorized gives the whole transaction to the category when it
// has no assignment yet. It reports whether the assignment was written.
func (r *transactionRepository) AssignCategoryIfUncategorized(ctx context.Context, transactionID, categoryID uuid.UUID) (bool, error) {
	assigned := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.TransactionCategoryModel{}).
			Where("transaction_id = ?", transactionID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		assignment := model.TransactionCategoryModel{
			TransactionID: transactionID,
			CategoryID:    categoryID,
			Weight:        decimal.NewFromInt(1),
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}
		assigned = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return assigned, nil
}

// FindWithFilters retrieves transactions matching the filter, newest first.
func (r *transactionRepository) FindWithFilters(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("household_id = ?", filter.HouseholdID)

	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&model.TransactionCategoryModel{}).
				Select("transaction_id").
				Where("category_id = ?", *filter.CategoryID),
		)
	}
	if filter.DateFrom != nil {
		query = query.Where("occurred_at >= ?", filter.DateFrom.UTC())
	}
	if filter.DateTo != nil {
		query = query.Where("occurred_at <= ?", filter.DateTo.UTC())
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(description) LIKE ? OR LOWER(merchant) LIKE ?)", searchPattern, searchPattern)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var transactionModels []model.TransactionModel
	err := query.
		Preload("Categories").
		Order("occurred_at DESC, created_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&transactionModels).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}

	return &adapter.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Limit:        pagination.Limit,
		Offset:       pagination.Offset,
	}, nil
}
