package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregate entry point for all repositories
type Repository struct {
	db *gorm.DB

	User        UserRepository
	Map         MapRepository
	Semester    SemesterRepository
	Class       ClassRepository
	Course      CourseRepository
	Requirement RequirementRepository
}

// NewRepository builds the repository aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		User:        NewUserRepo(db),
		Map:         NewMapRepo(db),
		Semester:    NewSemesterRepo(db),
		Class:       NewClassRepo(db),
		Course:      NewCourseRepo(db),
		Requirement: NewRequirementRepo(db),
	}
}

// BeginTx opens a transaction. Returns a nil tx when the aggregate has no
// database attached (in-memory test doubles).
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx returns an aggregate whose repositories run on tx
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Transaction runs fn inside a transaction; fn must only use txRepo.
// Without a database fn runs directly against r.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
