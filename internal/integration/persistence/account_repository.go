package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/persistence/model"
)

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account in the database.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Create(model.AccountFromEntity(account)).Error
}

// FindByID retrieves an account by its ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// accountNetRow is the per-account sum of signed transaction amounts.
type accountNetRow struct {
	AccountID uuid.UUID       `gorm:"column:account_id"`
	Net       decimal.Decimal `gorm:"column:net"`
}

// FindByHouseholdWithBalances retrieves the household's accounts with current balances.
func (r *accountRepository) FindByHouseholdWithBalances(ctx context.Context, householdID uuid.UUID, includeArchived bool) ([]*entity.AccountWithBalance, error) {
	query := r.db.WithContext(ctx).Where("household_id = ?", householdID)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}

	var accountModels []model.AccountModel
	if err := query.Order("name ASC").Find(&accountModels).Error; err != nil {
		return nil, err
	}
	if len(accountModels) == 0 {
		return []*entity.AccountWithBalance{}, nil
	}

	var rows []accountNetRow
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select(`account_id,
			COALESCE(SUM(CASE WHEN direction = ? THEN amount ELSE -amount END), 0) AS net`,
			string(entity.TransactionDirectionInflow)).
		Where("household_id = ?", householdID).
		Group("account_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	net := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		net[row.AccountID] = row.Net
	}

	accounts := make([]*entity.AccountWithBalance, len(accountModels))
	for i, am := range accountModels {
		account := am.ToEntity()
		accounts[i] = &entity.AccountWithBalance{
			Account:        account,
			CurrentBalance: account.InitialBalance.Add(net[am.ID]).Round(2),
		}
	}
	return accounts, nil
}

// CurrentBalance sums the live transactions of one account on top of its initial balance.
func (r *accountRepository) CurrentBalance(ctx context.Context, account *entity.Account) (decimal.Decimal, error) {
	var row accountNetRow
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select(`account_id,
			COALESCE(SUM(CASE WHEN direction = ? THEN amount ELSE -amount END), 0) AS net`,
			string(entity.TransactionDirectionInflow)).
		Where("account_id = ?", account.ID).
		Group("account_id").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return account.InitialBalance.Add(row.Net).Round(2), nil
}

// Update updates an existing account in the database.
func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	result := r.db.WithContext(ctx).Save(model.AccountFromEntity(account))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// HasTransactions counts soft-deleted transactions too, since they still hold the foreign key.
func (r *accountRepository) HasTransactions(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Unscoped().
		Model(&model.TransactionModel{}).
		Where("account_id = ?", id).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Delete permanently removes an account.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.AccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}
