package database

import (
	"cafeapi/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Create inserts c and fills in its id. Duplicate names yield
// ErrDuplicateName, missing required fields ErrConstraintViolation.
func (s *Store) Create(ctx context.Context, c *model.Cafe) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create cafe: %w", classify(err))
	}
	return nil
}

// ListAll returns every cafe ordered by name.
func (s *Store) ListAll(ctx context.Context) ([]model.Cafe, error) {
	cafes := []model.Cafe{}
	if err := s.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("list cafes: %w", err)
	}
	return cafes, nil
}

// ListByLocation returns the cafes whose location equals loc exactly.
func (s *Store) ListByLocation(ctx context.Context, loc string) ([]model.Cafe, error) {
	cafes := []model.Cafe{}
	err := s.db.WithContext(ctx).
		Where("location = ?", loc).
		Order("name ASC").
		Order("id ASC").
		Find(&cafes).Error
	if err != nil {
		return nil, fmt.Errorf("list cafes by location: %w", err)
	}
	return cafes, nil
}

// GetRandom picks one cafe uniformly at random.
func (s *Store) GetRandom(ctx context.Context) (model.Cafe, error) {
	var cafe model.Cafe
	err := s.db.WithContext(ctx).Order("RANDOM()").Take(&cafe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cafe{}, ErrEmptyTable
	}
	if err != nil {
		return model.Cafe{}, fmt.Errorf("get random cafe: %w", err)
	}
	return cafe, nil
}

func (s *Store) GetByID(ctx context.Context, id uint) (model.Cafe, error) {
	var cafe model.Cafe
	err := s.db.WithContext(ctx).First(&cafe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cafe{}, ErrNotFound
	}
	if err != nil {
		return model.Cafe{}, fmt.Errorf("get cafe %d: %w", id, err)
	}
	return cafe, nil
}

// UpdatePrice sets coffee_price on the cafe with the given id. A nil price
// clears it.
func (s *Store) UpdatePrice(ctx context.Context, id uint, price *string) error {
	res := s.db.WithContext(ctx).
		Model(&model.Cafe{}).
		Where("id = ?", id).
		Update("coffee_price", price)
	if res.Error != nil {
		return fmt.Errorf("update price of cafe %d: %w", id, classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Cafe{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete cafe %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored cafes.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Cafe{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count cafes: %w", err)
	}
	return n, nil
}
