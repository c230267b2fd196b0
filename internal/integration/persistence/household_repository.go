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

// householdRepository implements the adapter.HouseholdRepository interface.
type householdRepository struct {
	db *gorm.DB
}

// NewHouseholdRepository creates a new household repository instance.
func NewHouseholdRepository(db *gorm.DB) adapter.HouseholdRepository {
	return &householdRepository{
		db: db,
	}
}

// CreateWithOwner stores a household and its owner membership in one database transaction.
func (r *householdRepository) CreateWithOwner(ctx context.Context, household *entity.Household, owner *entity.HouseholdMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.HouseholdFromEntity(household)).Error; err != nil {
			return err
		}
		return tx.Create(model.HouseholdMemberFromEntity(owner)).Error
	})
}

// FindByID retrieves a household by its ID.
func (r *householdRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Household, error) {
	var householdModel model.HouseholdModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&householdModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrHouseholdNotFound
		}
		return nil, result.Error
	}
	return householdModel.ToEntity(), nil
}

// FindByUser retrieves every household the user belongs to, ordered by name.
func (r *householdRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.HouseholdWithRole, error) {
	var members []model.HouseholdMemberModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&members).Error; err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []*entity.HouseholdWithRole{}, nil
	}

	roles := make(map[uuid.UUID]entity.HouseholdRole, len(members))
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		roles[m.HouseholdID] = entity.HouseholdRole(m.Role)
		ids = append(ids, m.HouseholdID)
	}

	var householdModels []model.HouseholdModel
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("name ASC").
		Find(&householdModels)
	if result.Error != nil {
		return nil, result.Error
	}

	households := make([]*entity.HouseholdWithRole, len(householdModels))
	for i, hm := range householdModels {
		households[i] = &entity.HouseholdWithRole{
			Household: hm.ToEntity(),
			Role:      roles[hm.ID],
		}
	}
	return households, nil
}

// FindMember retrieves the membership of a user in a household.
func (r *householdRepository) FindMember(ctx context.Context, householdID, userID uuid.UUID) (*entity.HouseholdMember, error) {
	var memberModel model.HouseholdMemberModel
	result := r.db.WithContext(ctx).
		Where("household_id = ? AND user_id = ?", householdID, userID).
		First(&memberModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrNotHouseholdMember
		}
		return nil, result.Error
	}
	return memberModel.ToEntity(), nil
}

// FindMembers retrieves the memberships of a household, oldest first.
func (r *householdRepository) FindMembers(ctx context.Context, householdID uuid.UUID) ([]*entity.HouseholdMember, error) {
	var memberModels []model.HouseholdMemberModel
	result := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("joined_at ASC").
		Find(&memberModels)
	if result.Error != nil {
		return nil, result.Error
	}

	members := make([]*entity.HouseholdMember, len(memberModels))
	for i := range memberModels {
		members[i] = memberModels[i].ToEntity()
	}
	return members, nil
}

// AddMember inserts a membership unless the user already belongs to the household.
func (r *householdRepository) AddMember(ctx context.Context, member *entity.HouseholdMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.HouseholdMemberModel{}).
			Where("household_id = ? AND user_id = ?", member.HouseholdID, member.UserID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domainerror.ErrMemberAlreadyExists
		}
		return tx.Create(model.HouseholdMemberFromEntity(member)).Error
	})
}
