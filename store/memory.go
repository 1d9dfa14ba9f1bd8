package store

import (
	"context"
	"sync"

	"custodyserver/common"
	"custodyserver/models"
)

// MemoryStore is a mutex-guarded in-memory Store with the same
// uniqueness semantics as the gorm store. Used by tests.
type MemoryStore struct {
	mu          sync.Mutex
	users       map[uint]models.User
	items       map[uint]models.Item
	userNames   map[string]uint
	itemNames   map[string]uint
	nextUserID  uint
	nextItemID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[uint]models.User),
		items:      make(map[uint]models.Item),
		userNames:  make(map[string]uint),
		itemNames:  make(map[string]uint),
		nextUserID: 1,
		nextItemID: 1,
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.userNames[user.Name]; exists {
		return common.ErrDuplicateName
	}
	user.ID = s.nextUserID
	s.nextUserID++
	s.users[user.ID] = *user
	s.userNames[user.Name] = user.ID
	return nil
}

func (s *MemoryStore) FindUserByName(ctx context.Context, name string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.userNames[name]
	if !ok {
		return nil, common.ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (s *MemoryStore) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.users))
	for id := uint(1); id < s.nextUserID; id++ {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *MemoryStore) CreateItem(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.itemNames[item.Name]; exists {
		return common.ErrDuplicateName
	}
	item.ID = s.nextItemID
	s.nextItemID++
	s.items[item.ID] = *item
	s.itemNames[item.Name] = item.ID
	return nil
}

func (s *MemoryStore) FindItemsByOwner(ctx context.Context, ownerID uint) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := []models.Item{}
	for id := uint(1); id < s.nextItemID; id++ {
		if item, ok := s.items[id]; ok && item.UserID == ownerID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *MemoryStore) FindItemByID(ctx context.Context, id uint) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &item, nil
}

func (s *MemoryStore) UpdateItemOwner(ctx context.Context, id uint, newOwnerID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return common.ErrNotFound
	}
	item.UserID = newOwnerID
	s.items[id] = item
	return nil
}

func (s *MemoryStore) DeleteItem(ctx context.Context, id uint, ownerID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.UserID != ownerID {
		return common.ErrNotFound
	}
	delete(s.items, id)
	delete(s.itemNames, item.Name)
	return nil
}
