package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
)

// ── Requirement errors ──

var (
	ErrRequirementNotFound     = errors.New("requirement not found in this map")
	ErrRequirementDuplicateTag = errors.New("the map already has a requirement with this tag")
)

// RequirementService degree requirements of a map.
// Tag renames and deletions are carried over to the map's classes.
type RequirementService interface {
	List(ctx context.Context, mapID, callerID string) ([]dto.RequirementResponse, error)
	Create(ctx context.Context, mapID string, req *dto.CreateRequirementRequest, callerID string) (*dto.RequirementResponse, error)
	Update(ctx context.Context, mapID, requirementID string, req *dto.UpdateRequirementRequest, callerID string) (*dto.RequirementResponse, error)
	Delete(ctx context.Context, mapID, requirementID, callerID string) error
}

type requirementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRequirementService creates a RequirementService
func NewRequirementService(repo *repository.Repository, logger *zap.Logger) RequirementService {
	return &requirementService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *requirementService) List(ctx context.Context, mapID, callerID string) ([]dto.RequirementResponse, error) {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return nil, err
	}

	reqs, err := s.repo.Requirement.ListByMap(ctx, mapID)
	if err != nil {
		s.logger.Error("failed to list requirements", zap.String("map_id", mapID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.RequirementResponse, 0, len(reqs))
	for i := range reqs {
		result = append(result, toRequirementResponse(&reqs[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *requirementService) Create(ctx context.Context, mapID string, req *dto.CreateRequirementRequest, callerID string) (*dto.RequirementResponse, error) {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return nil, err
	}

	tag := normalizeTag(req.Tag)
	if err := s.ensureTagFree(ctx, mapID, tag, ""); err != nil {
		return nil, err
	}

	r := &model.Requirement{
		MapID:       mapID,
		Name:        strings.TrimSpace(req.Name),
		Tag:         tag,
		Type:        req.Type,
		Category:    req.Category,
		Goal:        req.Goal,
		IsCustom:    req.IsCustom,
		Description: req.Description,
	}
	r.CreatedBy = &callerID
	r.UpdatedBy = &callerID

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Requirement.Create(ctx, r); err != nil {
			return err
		}
		return recomputeProgress(ctx, tx, mapID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRequirementDuplicateTag
		}
		s.logger.Error("failed to create requirement", zap.String("map_id", mapID), zap.Error(err))
		return nil, err
	}

	return s.reload(ctx, r.RequirementID)
}

// ────────────────────── Update ──────────────────────

func (s *requirementService) Update(ctx context.Context, mapID, requirementID string, req *dto.UpdateRequirementRequest, callerID string) (*dto.RequirementResponse, error) {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return nil, err
	}
	r, err := s.load(ctx, mapID, requirementID)
	if err != nil {
		return nil, err
	}

	oldTag := r.Tag
	if req.Tag != nil {
		r.Tag = normalizeTag(*req.Tag)
		if r.Tag != oldTag {
			if err := s.ensureTagFree(ctx, mapID, r.Tag, requirementID); err != nil {
				return nil, err
			}
		}
	}
	if req.Name != nil {
		r.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		r.Type = *req.Type
	}
	if req.Category != nil {
		r.Category = *req.Category
	}
	if req.Goal != nil {
		r.Goal = *req.Goal
	}
	if req.IsCustom != nil {
		r.IsCustom = *req.IsCustom
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	r.UpdatedBy = &callerID

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Requirement.Update(ctx, r); err != nil {
			return err
		}
		if r.Tag != oldTag {
			if err := retagClasses(ctx, tx, mapID, oldTag, r.Tag); err != nil {
				return err
			}
		}
		return recomputeProgress(ctx, tx, mapID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRequirementDuplicateTag
		}
		s.logger.Error("failed to update requirement", zap.String("requirement_id", requirementID), zap.Error(err))
		return nil, err
	}

	return s.reload(ctx, requirementID)
}

// ────────────────────── Delete ──────────────────────

func (s *requirementService) Delete(ctx context.Context, mapID, requirementID, callerID string) error {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return err
	}
	r, err := s.load(ctx, mapID, requirementID)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := retagClasses(ctx, tx, mapID, r.Tag, ""); err != nil {
			return err
		}
		if err := tx.Requirement.Delete(ctx, requirementID); err != nil {
			return err
		}
		return recomputeProgress(ctx, tx, mapID)
	})
	if err != nil {
		s.logger.Error("failed to delete requirement", zap.String("requirement_id", requirementID), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

// retagClasses renames oldTag to newTag on every class of the map; an empty newTag prunes it
func retagClasses(ctx context.Context, repo *repository.Repository, mapID, oldTag, newTag string) error {
	classes, err := repo.Class.ListByMap(ctx, mapID)
	if err != nil {
		return err
	}
	for _, c := range classes {
		if !c.Tags.Contains(oldTag) {
			continue
		}
		tags := c.Tags.Without(oldTag)
		if newTag != "" {
			tags = c.Tags.Replace(oldTag, newTag)
		}
		if err := repo.Class.UpdateTags(ctx, c.ClassID, tags); err != nil {
			return err
		}
	}
	return nil
}

func normalizeTag(tag string) string {
	return strings.ToUpper(strings.TrimSpace(tag))
}

func (s *requirementService) ensureTagFree(ctx context.Context, mapID, tag, selfID string) error {
	existing, err := s.repo.Requirement.GetByTag(ctx, mapID, tag)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("failed to check requirement tag", zap.String("map_id", mapID), zap.Error(err))
		return err
	}
	if existing.RequirementID != selfID {
		return ErrRequirementDuplicateTag
	}
	return nil
}

func (s *requirementService) load(ctx context.Context, mapID, requirementID string) (*model.Requirement, error) {
	r, err := s.repo.Requirement.GetByID(ctx, requirementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequirementNotFound
		}
		s.logger.Error("failed to load requirement", zap.String("requirement_id", requirementID), zap.Error(err))
		return nil, err
	}
	if r.MapID != mapID {
		return nil, ErrRequirementNotFound
	}
	return r, nil
}

func (s *requirementService) reload(ctx context.Context, requirementID string) (*dto.RequirementResponse, error) {
	r, err := s.repo.Requirement.GetByID(ctx, requirementID)
	if err != nil {
		s.logger.Error("failed to reload requirement", zap.String("requirement_id", requirementID), zap.Error(err))
		return nil, err
	}
	resp := toRequirementResponse(r)
	return &resp, nil
}

func toRequirementResponse(r *model.Requirement) dto.RequirementResponse {
	remaining, percent, completed := progressFigures(r.Current, r.Goal)
	return dto.RequirementResponse{
		ID:          r.RequirementID,
		MapID:       r.MapID,
		Name:        r.Name,
		Tag:         r.Tag,
		Type:        r.Type,
		Category:    r.Category,
		Goal:        r.Goal,
		Current:     r.Current,
		Remaining:   remaining,
		Percent:     percent,
		Completed:   completed,
		IsCustom:    r.IsCustom,
		Description: r.Description,
	}
}
