package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
)

// ── Map errors ──

var (
	ErrMapNotFound  = errors.New("map not found")
	ErrMapForbidden = errors.New("map belongs to another user")
)

// MapService academic plan use cases
type MapService interface {
	Create(ctx context.Context, req *dto.CreateMapRequest, callerID string) (*dto.MapDetailResponse, error)
	Get(ctx context.Context, id, callerID string) (*dto.MapDetailResponse, error)
	List(ctx context.Context, req *dto.MapListRequest, callerID string) ([]dto.MapResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateMapRequest, callerID string) (*dto.MapResponse, error)
	Delete(ctx context.Context, id, callerID string) error
}

type mapService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMapService creates a MapService
func NewMapService(repo *repository.Repository, logger *zap.Logger) MapService {
	return &mapService{repo: repo, logger: logger}
}

// loadOwnedMap fetches a map and checks that callerID owns it
func loadOwnedMap(ctx context.Context, repo *repository.Repository, logger *zap.Logger, mapID, callerID string) (*model.Map, error) {
	m, err := repo.Map.GetByID(ctx, mapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMapNotFound
		}
		logger.Error("failed to load map", zap.String("map_id", mapID), zap.Error(err))
		return nil, err
	}
	if m.UserID != callerID {
		return nil, ErrMapForbidden
	}
	return m, nil
}

// ────────────────────── Create ──────────────────────

func (s *mapService) Create(ctx context.Context, req *dto.CreateMapRequest, callerID string) (*dto.MapDetailResponse, error) {
	m := &model.Map{
		UserID:     callerID,
		Name:       req.Name,
		Degree:     req.Degree,
		University: req.University,
		StartTerm:  req.StartTerm,
		StartYear:  req.StartYear,
		Status:     model.MapStatusActive,
	}
	m.CreatedBy = &callerID
	m.UpdatedBy = &callerID

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Map.Create(ctx, m); err != nil {
			return err
		}
		semesters := generateSemesters(m.MapID, req.StartTerm, req.StartYear, req.SemesterCount, req.IncludeSummer)
		for i := range semesters {
			semesters[i].CreatedBy = &callerID
			semesters[i].UpdatedBy = &callerID
		}
		if err := tx.Semester.BatchCreate(ctx, semesters); err != nil {
			return err
		}
		m.Semesters = semesters
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create map", zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}

	return toMapDetailResponse(m), nil
}

// ────────────────────── Get ──────────────────────

func (s *mapService) Get(ctx context.Context, id, callerID string) (*dto.MapDetailResponse, error) {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, id, callerID); err != nil {
		return nil, err
	}

	m, err := s.repo.Map.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMapNotFound
		}
		s.logger.Error("failed to load map detail", zap.String("map_id", id), zap.Error(err))
		return nil, err
	}

	return toMapDetailResponse(m), nil
}

// ────────────────────── List ──────────────────────

func (s *mapService) List(ctx context.Context, req *dto.MapListRequest, callerID string) ([]dto.MapResponse, error) {
	maps, err := s.repo.Map.ListByUser(ctx, callerID, req.Status)
	if err != nil {
		s.logger.Error("failed to list maps", zap.String("user_id", callerID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MapResponse, 0, len(maps))
	for i := range maps {
		result = append(result, toMapResponse(&maps[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *mapService) Update(ctx context.Context, id string, req *dto.UpdateMapRequest, callerID string) (*dto.MapResponse, error) {
	m, err := loadOwnedMap(ctx, s.repo, s.logger, id, callerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Degree != nil {
		m.Degree = *req.Degree
	}
	if req.University != nil {
		m.University = *req.University
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	if req.StartTerm != nil {
		m.StartTerm = *req.StartTerm
	}
	if req.StartYear != nil {
		m.StartYear = *req.StartYear
	}
	m.UpdatedBy = &callerID

	if err := s.repo.Map.Update(ctx, m); err != nil {
		s.logger.Error("failed to update map", zap.String("map_id", id), zap.Error(err))
		return nil, err
	}

	resp := toMapResponse(m)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *mapService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, id, callerID); err != nil {
		return err
	}

	if err := s.repo.Map.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete map", zap.String("map_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── converters ──

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func toMapResponse(m *model.Map) dto.MapResponse {
	return dto.MapResponse{
		ID:           m.MapID,
		Name:         m.Name,
		Degree:       m.Degree,
		University:   m.University,
		StartTerm:    m.StartTerm,
		StartYear:    m.StartYear,
		Status:       m.Status,
		TotalCredits: m.TotalCredits,
		CreatedAt:    formatTime(m.CreatedAt),
		UpdatedAt:    formatTime(m.UpdatedAt),
	}
}

func toMapDetailResponse(m *model.Map) *dto.MapDetailResponse {
	resp := &dto.MapDetailResponse{
		MapResponse:  toMapResponse(m),
		Semesters:    make([]dto.SemesterResponse, 0, len(m.Semesters)),
		Requirements: make([]dto.RequirementResponse, 0, len(m.Requirements)),
	}
	for i := range m.Semesters {
		resp.Semesters = append(resp.Semesters, toSemesterResponse(&m.Semesters[i]))
	}
	for i := range m.Requirements {
		resp.Requirements = append(resp.Requirements, toRequirementResponse(&m.Requirements[i]))
	}
	return resp
}
