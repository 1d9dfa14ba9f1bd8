package store

import (
	"context"
	"errors"
	"fmt"

	"custodyserver/common"
	"custodyserver/models"

	"gorm.io/gorm"
)

// GormStore persists users and items through gorm. The *gorm.DB must
// be opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return common.ErrDuplicateName
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormStore) FindUserByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("find user by name: %w", err)
	}
	return &user, nil
}

func (s *GormStore) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *GormStore) CreateItem(ctx context.Context, item *models.Item) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return common.ErrDuplicateName
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (s *GormStore) FindItemsByOwner(ctx context.Context, ownerID uint) ([]models.Item, error) {
	var items []models.Item
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("find items by owner: %w", err)
	}
	return items, nil
}

func (s *GormStore) FindItemByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("find item by id: %w", err)
	}
	return &item, nil
}

func (s *GormStore) UpdateItemOwner(ctx context.Context, id uint, newOwnerID uint) error {
	result := s.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Update("user_id", newOwnerID)
	if result.Error != nil {
		return fmt.Errorf("update item owner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteItem(ctx context.Context, id uint, ownerID uint) error {
	// Unscoped makes this a hard delete. A soft-deleted row would
	// still hold the unique name, so recreating a deleted item's
	// name would fail while the in-memory store allows it.
	result := s.db.WithContext(ctx).Unscoped().Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Item{})
	if result.Error != nil {
		return fmt.Errorf("delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}
