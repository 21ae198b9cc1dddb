package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
)

// CourseFilter course bank search criteria
type CourseFilter struct {
	Query    string // matches code or name
	Subject  string
	Tag      string
	Page     int
	PageSize int
}

// CourseRepository course bank data access
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	GetByCode(ctx context.Context, code string) (*model.Course, error)
	Search(ctx context.Context, filter CourseFilter) ([]model.Course, int64, error)
	Update(ctx context.Context, course *model.Course) error
	// Upsert inserts the course or overwrites the row with the same code
	Upsert(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id string) error
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo creates a CourseRepository
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) Search(ctx context.Context, filter CourseFilter) ([]model.Course, int64, error) {
	var (
		courses []model.Course
		total   int64
	)

	db := r.db.WithContext(ctx).Model(&model.Course{})
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToUpper(q) + "%"
		db = db.Where("UPPER(code) LIKE ? OR UPPER(name) LIKE ?", like, like)
	}
	if filter.Subject != "" {
		db = db.Where("subject = ?", strings.ToUpper(filter.Subject))
	}
	if filter.Tag != "" {
		// text[] on postgres, the {"a","b"} literal elsewhere
		if r.db.Dialector.Name() == "postgres" {
			db = db.Where("? = ANY(tags)", filter.Tag)
		} else {
			db = db.Where("tags LIKE ?", `%"`+filter.Tag+`"%`)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := db.Order("code ASC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&courses).Error
	return courses, total, err
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepo) Upsert(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"subject", "number", "name", "credits", "description",
				"prerequisites", "corequisites", "tags", "updated_at", "updated_by",
			}),
		}).
		Create(course).Error
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Course{}).Error
}
