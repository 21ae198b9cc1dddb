package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
)

// RequirementRepository requirement data access
type RequirementRepository interface {
	Create(ctx context.Context, req *model.Requirement) error
	GetByID(ctx context.Context, id string) (*model.Requirement, error)
	GetByTag(ctx context.Context, mapID, tag string) (*model.Requirement, error)
	ListByMap(ctx context.Context, mapID string) ([]model.Requirement, error)
	Update(ctx context.Context, req *model.Requirement) error
	// UpdateCurrent writes the derived progress value only
	UpdateCurrent(ctx context.Context, id string, current int) error
	Delete(ctx context.Context, id string) error
}

type requirementRepo struct {
	db *gorm.DB
}

// NewRequirementRepo creates a RequirementRepository
func NewRequirementRepo(db *gorm.DB) RequirementRepository {
	return &requirementRepo{db: db}
}

func (r *requirementRepo) Create(ctx context.Context, req *model.Requirement) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *requirementRepo) GetByID(ctx context.Context, id string) (*model.Requirement, error) {
	var req model.Requirement
	err := r.db.WithContext(ctx).
		Where("requirement_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requirementRepo) GetByTag(ctx context.Context, mapID, tag string) (*model.Requirement, error) {
	var req model.Requirement
	err := r.db.WithContext(ctx).
		Where("map_id = ? AND tag = ?", mapID, tag).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requirementRepo) ListByMap(ctx context.Context, mapID string) ([]model.Requirement, error) {
	var reqs []model.Requirement
	err := r.db.WithContext(ctx).
		Where("map_id = ?", mapID).
		Order("category ASC, name ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *requirementRepo) Update(ctx context.Context, req *model.Requirement) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *requirementRepo) UpdateCurrent(ctx context.Context, id string, current int) error {
	return r.db.WithContext(ctx).
		Model(&model.Requirement{}).
		Where("requirement_id = ?", id).
		UpdateColumn("current", current).Error
}

func (r *requirementRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("requirement_id = ?", id).
		Delete(&model.Requirement{}).Error
}
