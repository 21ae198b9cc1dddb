package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/metrics"
)

// ErrUnknownRequirementType a requirement carries a type that has no contribution rule
var ErrUnknownRequirementType = errors.New("unknown requirement type")

// ComputeRequirementProgress folds the classes of a map into each requirement's
// current value, keyed by requirement id.
//
// current(R) is the sum of contribution(C, R) over classes C whose tag set
// contains R.Tag: C.Credits for CREDIT_HOURS, 1 for CLASS_COUNT. A tag counts
// once per class. The result has an entry for every requirement.
func ComputeRequirementProgress(classes []model.Class, reqs []model.Requirement) (map[string]int, error) {
	byTag := make(map[string][]int, len(reqs))
	current := make(map[string]int, len(reqs))
	for i, r := range reqs {
		if r.Type != model.RequirementCreditHours && r.Type != model.RequirementClassCount {
			return nil, fmt.Errorf("%w: %q on requirement %s", ErrUnknownRequirementType, r.Type, r.RequirementID)
		}
		byTag[r.Tag] = append(byTag[r.Tag], i)
		current[r.RequirementID] = 0
	}

	for _, c := range classes {
		seen := make(map[string]struct{}, len(c.Tags))
		for _, tag := range c.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}

			for _, i := range byTag[tag] {
				r := reqs[i]
				switch r.Type {
				case model.RequirementCreditHours:
					current[r.RequirementID] += c.Credits
				case model.RequirementClassCount:
					current[r.RequirementID]++
				}
			}
		}
	}

	return current, nil
}

// TotalCredits sums the credit hours of every class
func TotalCredits(classes []model.Class) int {
	total := 0
	for _, c := range classes {
		total += c.Credits
	}
	return total
}

// ProgressService keeps the derived requirement and credit counters of a map in sync
type ProgressService interface {
	// Recompute reloads the map's classes and requirements and rewrites every derived value
	Recompute(ctx context.Context, mapID string) error
	// RecomputeAll runs Recompute for every map; returns the number of maps processed
	RecomputeAll(ctx context.Context) (int, error)
	Get(ctx context.Context, mapID, callerID string) (*dto.ProgressResponse, error)
}

type progressService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProgressService creates a ProgressService
func NewProgressService(repo *repository.Repository, logger *zap.Logger) ProgressService {
	return &progressService{repo: repo, logger: logger}
}

// ────────────────────── Recompute ──────────────────────

func (s *progressService) Recompute(ctx context.Context, mapID string) error {
	if _, err := s.repo.Map.GetByID(ctx, mapID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMapNotFound
		}
		s.logger.Error("failed to load map", zap.String("map_id", mapID), zap.Error(err))
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return recomputeProgress(ctx, tx, mapID)
	})
	if err != nil {
		s.logger.Error("failed to recompute progress", zap.String("map_id", mapID), zap.Error(err))
	}
	return err
}

// recomputeProgress runs on whatever repository it is given, so mutations call it
// with their transaction-bound aggregate.
func recomputeProgress(ctx context.Context, repo *repository.Repository, mapID string) error {
	classes, err := repo.Class.ListByMap(ctx, mapID)
	if err != nil {
		return fmt.Errorf("list classes: %w", err)
	}
	reqs, err := repo.Requirement.ListByMap(ctx, mapID)
	if err != nil {
		return fmt.Errorf("list requirements: %w", err)
	}

	current, err := ComputeRequirementProgress(classes, reqs)
	if err != nil {
		return err
	}

	for _, r := range reqs {
		v := current[r.RequirementID]
		if v == r.Current {
			continue
		}
		if err := repo.Requirement.UpdateCurrent(ctx, r.RequirementID, v); err != nil {
			return fmt.Errorf("update requirement %s: %w", r.RequirementID, err)
		}
	}

	if err := repo.Map.UpdateTotalCredits(ctx, mapID, TotalCredits(classes)); err != nil {
		return fmt.Errorf("update total credits: %w", err)
	}

	metrics.ProgressRecomputations.Inc()
	return nil
}

func (s *progressService) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := s.repo.Map.ListIDs(ctx)
	if err != nil {
		s.logger.Error("failed to list maps", zap.Error(err))
		return 0, err
	}

	for i, id := range ids {
		err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
			return recomputeProgress(ctx, tx, id)
		})
		if err != nil {
			s.logger.Error("failed to recompute progress", zap.String("map_id", id), zap.Error(err))
			return i, err
		}
	}
	return len(ids), nil
}

// ────────────────────── Get ──────────────────────

func (s *progressService) Get(ctx context.Context, mapID, callerID string) (*dto.ProgressResponse, error) {
	m, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID)
	if err != nil {
		return nil, err
	}

	reqs, err := s.repo.Requirement.ListByMap(ctx, mapID)
	if err != nil {
		s.logger.Error("failed to list requirements", zap.String("map_id", mapID), zap.Error(err))
		return nil, err
	}

	resp := &dto.ProgressResponse{
		MapID:        m.MapID,
		TotalCredits: m.TotalCredits,
		Requirements: make([]dto.RequirementResponse, 0, len(reqs)),
	}
	for i := range reqs {
		r := toRequirementResponse(&reqs[i])
		if r.Completed {
			resp.Completed++
		}
		resp.Requirements = append(resp.Requirements, r)
	}
	return resp, nil
}

// progressFigures derives remaining, percent and completion from current and goal
func progressFigures(current, goal int) (remaining, percent int, completed bool) {
	remaining = goal - current
	if remaining < 0 {
		remaining = 0
	}
	if goal > 0 {
		percent = current * 100 / goal
		if percent > 100 {
			percent = 100
		}
	}
	return remaining, percent, current >= goal
}
