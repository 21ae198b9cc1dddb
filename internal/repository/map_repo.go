package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
)

// MapRepository map data access
type MapRepository interface {
	Create(ctx context.Context, m *model.Map) error
	GetByID(ctx context.Context, id string) (*model.Map, error)
	// GetDetail loads the map with its semesters (and their classes) and requirements
	GetDetail(ctx context.Context, id string) (*model.Map, error)
	ListByUser(ctx context.Context, userID, status string) ([]model.Map, error)
	ListIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, m *model.Map) error
	UpdateTotalCredits(ctx context.Context, id string, total int) error
	// Delete removes the map and everything it owns
	Delete(ctx context.Context, id string) error
}

type mapRepo struct {
	db *gorm.DB
}

// NewMapRepo creates a MapRepository
func NewMapRepo(db *gorm.DB) MapRepository {
	return &mapRepo{db: db}
}

func (r *mapRepo) Create(ctx context.Context, m *model.Map) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mapRepo) GetByID(ctx context.Context, id string) (*model.Map, error) {
	var m model.Map
	err := r.db.WithContext(ctx).
		Where("map_id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mapRepo) GetDetail(ctx context.Context, id string) (*model.Map, error) {
	var m model.Map
	err := r.db.WithContext(ctx).
		Preload("Semesters", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Semesters.Classes", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Requirements", func(db *gorm.DB) *gorm.DB {
			return db.Order("category ASC, name ASC")
		}).
		Where("map_id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mapRepo) ListByUser(ctx context.Context, userID, status string) ([]model.Map, error) {
	var maps []model.Map
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("updated_at DESC").Find(&maps).Error
	return maps, err
}

func (r *mapRepo) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Map{}).
		Order("created_at ASC").
		Pluck("map_id", &ids).Error
	return ids, err
}

func (r *mapRepo) Update(ctx context.Context, m *model.Map) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *mapRepo) UpdateTotalCredits(ctx context.Context, id string, total int) error {
	return r.db.WithContext(ctx).
		Model(&model.Map{}).
		Where("map_id = ?", id).
		UpdateColumn("total_credits", total).Error
}

func (r *mapRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("map_id = ?", id).Delete(&model.Class{}).Error; err != nil {
			return err
		}
		if err := tx.Where("map_id = ?", id).Delete(&model.Semester{}).Error; err != nil {
			return err
		}
		if err := tx.Where("map_id = ?", id).Delete(&model.Requirement{}).Error; err != nil {
			return err
		}
		return tx.Where("map_id = ?", id).Delete(&model.Map{}).Error
	})
}
