package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
)

// SemesterRepository semester data access
type SemesterRepository interface {
	Create(ctx context.Context, semester *model.Semester) error
	BatchCreate(ctx context.Context, semesters []model.Semester) error
	GetByID(ctx context.Context, id string) (*model.Semester, error)
	GetByTermYear(ctx context.Context, mapID, term string, year int) (*model.Semester, error)
	ListByMap(ctx context.Context, mapID string) ([]model.Semester, error)
	Update(ctx context.Context, semester *model.Semester) error
	UpdatePosition(ctx context.Context, id string, position int) error
	Delete(ctx context.Context, id string) error
}

type semesterRepo struct {
	db *gorm.DB
}

// NewSemesterRepo creates a SemesterRepository
func NewSemesterRepo(db *gorm.DB) SemesterRepository {
	return &semesterRepo{db: db}
}

func (r *semesterRepo) Create(ctx context.Context, semester *model.Semester) error {
	return r.db.WithContext(ctx).Create(semester).Error
}

func (r *semesterRepo) BatchCreate(ctx context.Context, semesters []model.Semester) error {
	if len(semesters) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&semesters).Error
}

func (r *semesterRepo) GetByID(ctx context.Context, id string) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", id).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) GetByTermYear(ctx context.Context, mapID, term string, year int) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Where("map_id = ? AND term = ? AND year = ?", mapID, term, year).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) ListByMap(ctx context.Context, mapID string) ([]model.Semester, error) {
	var semesters []model.Semester
	err := r.db.WithContext(ctx).
		Where("map_id = ?", mapID).
		Order("position ASC").
		Find(&semesters).Error
	return semesters, err
}

func (r *semesterRepo) Update(ctx context.Context, semester *model.Semester) error {
	return r.db.WithContext(ctx).Save(semester).Error
}

func (r *semesterRepo) UpdatePosition(ctx context.Context, id string, position int) error {
	return r.db.WithContext(ctx).
		Model(&model.Semester{}).
		Where("semester_id = ?", id).
		UpdateColumn("position", position).Error
}

func (r *semesterRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("semester_id = ?", id).
		Delete(&model.Semester{}).Error
}
