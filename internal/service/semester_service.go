package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
)

// ── Semester errors ──

var (
	ErrSemesterNotFound  = errors.New("semester not found in this map")
	ErrSemesterDuplicate = errors.New("the map already has a semester for this term and year")
	ErrSemesterNotEmpty  = errors.New("semester still has classes")
)

// SemesterService term slots of a map
type SemesterService interface {
	List(ctx context.Context, mapID, callerID string) ([]dto.SemesterResponse, error)
	Create(ctx context.Context, mapID string, req *dto.CreateSemesterRequest, callerID string) (*dto.SemesterResponse, error)
	Update(ctx context.Context, mapID, semesterID string, req *dto.UpdateSemesterRequest, callerID string) (*dto.SemesterResponse, error)
	Delete(ctx context.Context, mapID, semesterID, callerID string) error
}

type semesterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSemesterService creates a SemesterService
func NewSemesterService(repo *repository.Repository, logger *zap.Logger) SemesterService {
	return &semesterService{repo: repo, logger: logger}
}

// loadMapSemester fetches a semester and checks it belongs to mapID
func loadMapSemester(ctx context.Context, repo *repository.Repository, logger *zap.Logger, mapID, semesterID string) (*model.Semester, error) {
	semester, err := repo.Semester.GetByID(ctx, semesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		logger.Error("failed to load semester", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}
	if semester.MapID != mapID {
		return nil, ErrSemesterNotFound
	}
	return semester, nil
}

// renumberSemesters rewrites positions so they follow chronological order
func renumberSemesters(ctx context.Context, repo *repository.Repository, mapID string) error {
	semesters, err := repo.Semester.ListByMap(ctx, mapID)
	if err != nil {
		return err
	}
	sortSemesters(semesters)
	for i, sem := range semesters {
		if sem.Position == i {
			continue
		}
		if err := repo.Semester.UpdatePosition(ctx, sem.SemesterID, i); err != nil {
			return err
		}
	}
	return nil
}

// ────────────────────── List ──────────────────────

func (s *semesterService) List(ctx context.Context, mapID, callerID string) ([]dto.SemesterResponse, error) {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return nil, err
	}

	semesters, err := s.repo.Semester.ListByMap(ctx, mapID)
	if err != nil {
		s.logger.Error("failed to list semesters", zap.String("map_id", mapID), zap.Error(err))
		return nil, err
	}
	classes, err := s.repo.Class.ListByMap(ctx, mapID)
	if err != nil {
		s.logger.Error("failed to list classes", zap.String("map_id", mapID), zap.Error(err))
		return nil, err
	}

	bySemester := make(map[string][]model.Class, len(semesters))
	for _, c := range classes {
		bySemester[c.SemesterID] = append(bySemester[c.SemesterID], c)
	}

	result := make([]dto.SemesterResponse, 0, len(semesters))
	for i := range semesters {
		semesters[i].Classes = sortClasses(bySemester[semesters[i].SemesterID])
		result = append(result, toSemesterResponse(&semesters[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *semesterService) Create(ctx context.Context, mapID string, req *dto.CreateSemesterRequest, callerID string) (*dto.SemesterResponse, error) {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return nil, err
	}

	if err := s.ensureTermFree(ctx, mapID, req.Term, req.Year, ""); err != nil {
		return nil, err
	}

	semester := &model.Semester{MapID: mapID, Term: req.Term, Year: req.Year}
	semester.CreatedBy = &callerID
	semester.UpdatedBy = &callerID

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Semester.Create(ctx, semester); err != nil {
			return err
		}
		return renumberSemesters(ctx, tx, mapID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSemesterDuplicate
		}
		s.logger.Error("failed to create semester", zap.String("map_id", mapID), zap.Error(err))
		return nil, err
	}

	return s.reload(ctx, semester.SemesterID)
}

// ────────────────────── Update ──────────────────────

func (s *semesterService) Update(ctx context.Context, mapID, semesterID string, req *dto.UpdateSemesterRequest, callerID string) (*dto.SemesterResponse, error) {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return nil, err
	}
	semester, err := loadMapSemester(ctx, s.repo, s.logger, mapID, semesterID)
	if err != nil {
		return nil, err
	}

	if req.Term != nil {
		semester.Term = *req.Term
	}
	if req.Year != nil {
		semester.Year = *req.Year
	}
	if err := s.ensureTermFree(ctx, mapID, semester.Term, semester.Year, semesterID); err != nil {
		return nil, err
	}
	semester.UpdatedBy = &callerID

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Semester.Update(ctx, semester); err != nil {
			return err
		}
		return renumberSemesters(ctx, tx, mapID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSemesterDuplicate
		}
		s.logger.Error("failed to update semester", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}

	return s.reload(ctx, semesterID)
}

// ────────────────────── Delete ──────────────────────

func (s *semesterService) Delete(ctx context.Context, mapID, semesterID, callerID string) error {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return err
	}
	if _, err := loadMapSemester(ctx, s.repo, s.logger, mapID, semesterID); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		n, err := tx.Class.CountBySemester(ctx, semesterID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrSemesterNotEmpty
		}
		if err := tx.Semester.Delete(ctx, semesterID); err != nil {
			return err
		}
		return renumberSemesters(ctx, tx, mapID)
	})
	if err != nil {
		if errors.Is(err, ErrSemesterNotEmpty) {
			return err
		}
		s.logger.Error("failed to delete semester", zap.String("semester_id", semesterID), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *semesterService) ensureTermFree(ctx context.Context, mapID, term string, year int, selfID string) error {
	existing, err := s.repo.Semester.GetByTermYear(ctx, mapID, term, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("failed to check semester", zap.String("map_id", mapID), zap.Error(err))
		return err
	}
	if existing.SemesterID != selfID {
		return ErrSemesterDuplicate
	}
	return nil
}

func (s *semesterService) reload(ctx context.Context, semesterID string) (*dto.SemesterResponse, error) {
	semester, err := s.repo.Semester.GetByID(ctx, semesterID)
	if err != nil {
		s.logger.Error("failed to reload semester", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}
	classes, err := s.repo.Class.ListBySemester(ctx, semesterID)
	if err != nil {
		s.logger.Error("failed to list classes", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}
	semester.Classes = classes

	resp := toSemesterResponse(semester)
	return &resp, nil
}

func toSemesterResponse(sem *model.Semester) dto.SemesterResponse {
	resp := dto.SemesterResponse{
		ID:       sem.SemesterID,
		MapID:    sem.MapID,
		Term:     sem.Term,
		Year:     sem.Year,
		Position: sem.Position,
		Classes:  make([]dto.ClassResponse, 0, len(sem.Classes)),
	}
	for i := range sem.Classes {
		resp.Credits += sem.Classes[i].Credits
		resp.Classes = append(resp.Classes, toClassResponse(&sem.Classes[i]))
	}
	return resp
}
