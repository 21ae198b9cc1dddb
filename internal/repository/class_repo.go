package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
)

// ClassRepository class data access
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	GetByID(ctx context.Context, id string) (*model.Class, error)
	ListByMap(ctx context.Context, mapID string) ([]model.Class, error)
	ListBySemester(ctx context.Context, semesterID string) ([]model.Class, error)
	CountBySemester(ctx context.Context, semesterID string) (int64, error)
	Update(ctx context.Context, class *model.Class) error
	UpdatePosition(ctx context.Context, id string, position int) error
	// UpdateTags overwrites only the tag set, leaving audit columns untouched
	UpdateTags(ctx context.Context, id string, tags model.StringArray) error
	Delete(ctx context.Context, id string) error
}

type classRepo struct {
	db *gorm.DB
}

// NewClassRepo creates a ClassRepository
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) Create(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) ListByMap(ctx context.Context, mapID string) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Where("map_id = ?", mapID).
		Order("semester_id ASC, position ASC").
		Find(&classes).Error
	return classes, err
}

func (r *classRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", semesterID).
		Order("position ASC").
		Find(&classes).Error
	return classes, err
}

func (r *classRepo) CountBySemester(ctx context.Context, semesterID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Class{}).
		Where("semester_id = ?", semesterID).
		Count(&count).Error
	return count, err
}

func (r *classRepo) Update(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *classRepo) UpdatePosition(ctx context.Context, id string, position int) error {
	return r.db.WithContext(ctx).
		Model(&model.Class{}).
		Where("class_id = ?", id).
		UpdateColumn("position", position).Error
}

func (r *classRepo) UpdateTags(ctx context.Context, id string, tags model.StringArray) error {
	return r.db.WithContext(ctx).
		Model(&model.Class{}).
		Where("class_id = ?", id).
		UpdateColumn("tags", tags).Error
}

func (r *classRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("class_id = ?", id).
		Delete(&model.Class{}).Error
}
