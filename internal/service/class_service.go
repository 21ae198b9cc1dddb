package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
)

// ── Class errors ──

var (
	ErrClassNotFound         = errors.New("class not found in this map")
	ErrClassSemesterMismatch = errors.New("semester belongs to another map")
	ErrUnknownTag            = errors.New("tag does not match any requirement of this map")
	ErrClassIncomplete       = errors.New("subject, number and name are required")
)

// ClassService classes placed into the semesters of a map.
// Every mutation recomputes requirement progress in the same transaction.
type ClassService interface {
	List(ctx context.Context, mapID string, req *dto.ClassListRequest, callerID string) ([]dto.ClassResponse, error)
	Create(ctx context.Context, mapID string, req *dto.CreateClassRequest, callerID string) (*dto.ClassResponse, error)
	Update(ctx context.Context, mapID, classID string, req *dto.UpdateClassRequest, callerID string) (*dto.ClassResponse, error)
	Move(ctx context.Context, mapID, classID string, req *dto.MoveClassRequest, callerID string) (*dto.ClassResponse, error)
	Delete(ctx context.Context, mapID, classID, callerID string) error
}

type classService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassService creates a ClassService
func NewClassService(repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *classService) List(ctx context.Context, mapID string, req *dto.ClassListRequest, callerID string) ([]dto.ClassResponse, error) {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return nil, err
	}

	var (
		classes []model.Class
		err     error
	)
	if req.SemesterID != "" {
		if _, err := loadMapSemester(ctx, s.repo, s.logger, mapID, req.SemesterID); err != nil {
			return nil, err
		}
		classes, err = s.repo.Class.ListBySemester(ctx, req.SemesterID)
	} else {
		classes, err = s.repo.Class.ListByMap(ctx, mapID)
	}
	if err != nil {
		s.logger.Error("failed to list classes", zap.String("map_id", mapID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, toClassResponse(&classes[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *classService) Create(ctx context.Context, mapID string, req *dto.CreateClassRequest, callerID string) (*dto.ClassResponse, error) {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return nil, err
	}
	if _, err := s.targetSemester(ctx, mapID, req.SemesterID); err != nil {
		return nil, err
	}

	class := &model.Class{
		MapID:      mapID,
		SemesterID: req.SemesterID,
		Status:     model.ClassStatusPlanned,
	}

	if req.CourseID != nil && *req.CourseID != "" {
		course, err := s.repo.Course.GetByID(ctx, *req.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCourseNotFound
			}
			s.logger.Error("failed to load course", zap.String("course_id", *req.CourseID), zap.Error(err))
			return nil, err
		}
		class.CourseID = &course.CourseID
		class.Subject = course.Subject
		class.Number = course.Number
		class.Name = course.Name
		class.Credits = course.Credits
		class.Prerequisites = model.NewStringArray(course.Prerequisites)
		class.Corequisites = model.NewStringArray(course.Corequisites)
		class.Tags = model.NewStringArray(course.Tags)
	}

	if req.Subject != "" {
		class.Subject = strings.ToUpper(strings.TrimSpace(req.Subject))
	}
	if req.Number != "" {
		class.Number = strings.TrimSpace(req.Number)
	}
	if req.Name != "" {
		class.Name = strings.TrimSpace(req.Name)
	}
	if req.Credits != nil {
		class.Credits = *req.Credits
	}
	if req.Prerequisites != nil {
		class.Prerequisites = model.NewStringArray(req.Prerequisites)
	}
	if req.Corequisites != nil {
		class.Corequisites = model.NewStringArray(req.Corequisites)
	}
	if req.Tags != nil {
		class.Tags = model.NewStringArray(req.Tags)
	}
	if req.Status != "" {
		class.Status = req.Status
	}
	class.Grade = req.Grade
	class.CreatedBy = &callerID
	class.UpdatedBy = &callerID

	if class.Subject == "" || class.Number == "" || class.Name == "" {
		return nil, ErrClassIncomplete
	}
	// catalog tags with no matching requirement are dropped when copying from a course
	if err := s.checkTags(ctx, mapID, class, req.Tags != nil); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		n, err := tx.Class.CountBySemester(ctx, class.SemesterID)
		if err != nil {
			return err
		}
		class.Position = int(n)
		if err := tx.Class.Create(ctx, class); err != nil {
			return err
		}
		return recomputeProgress(ctx, tx, mapID)
	})
	if err != nil {
		s.logger.Error("failed to create class", zap.String("map_id", mapID), zap.Error(err))
		return nil, err
	}

	resp := toClassResponse(class)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *classService) Update(ctx context.Context, mapID, classID string, req *dto.UpdateClassRequest, callerID string) (*dto.ClassResponse, error) {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return nil, err
	}
	class, err := s.loadClass(ctx, mapID, classID)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil {
		class.Subject = strings.ToUpper(strings.TrimSpace(*req.Subject))
	}
	if req.Number != nil {
		class.Number = strings.TrimSpace(*req.Number)
	}
	if req.Name != nil {
		class.Name = strings.TrimSpace(*req.Name)
	}
	if req.Credits != nil {
		class.Credits = *req.Credits
	}
	if req.Prerequisites != nil {
		class.Prerequisites = model.NewStringArray(*req.Prerequisites)
	}
	if req.Corequisites != nil {
		class.Corequisites = model.NewStringArray(*req.Corequisites)
	}
	if req.Tags != nil {
		class.Tags = model.NewStringArray(*req.Tags)
		if err := s.checkTags(ctx, mapID, class, true); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		class.Status = *req.Status
	}
	if req.Grade != nil {
		if *req.Grade == "" {
			class.Grade = nil
		} else {
			class.Grade = req.Grade
		}
	}
	if class.Subject == "" || class.Number == "" || class.Name == "" {
		return nil, ErrClassIncomplete
	}
	class.UpdatedBy = &callerID

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Class.Update(ctx, class); err != nil {
			return err
		}
		return recomputeProgress(ctx, tx, mapID)
	})
	if err != nil {
		s.logger.Error("failed to update class", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	resp := toClassResponse(class)
	return &resp, nil
}

// ────────────────────── Move ──────────────────────

func (s *classService) Move(ctx context.Context, mapID, classID string, req *dto.MoveClassRequest, callerID string) (*dto.ClassResponse, error) {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return nil, err
	}
	class, err := s.loadClass(ctx, mapID, classID)
	if err != nil {
		return nil, err
	}
	if _, err := s.targetSemester(ctx, mapID, req.SemesterID); err != nil {
		return nil, err
	}

	source := class.SemesterID
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		siblings, err := tx.Class.ListBySemester(ctx, req.SemesterID)
		if err != nil {
			return err
		}
		order := make([]model.Class, 0, len(siblings)+1)
		for _, c := range sortClasses(siblings) {
			if c.ClassID != classID {
				order = append(order, c)
			}
		}

		at := len(order)
		if req.Position != nil && *req.Position < at {
			at = *req.Position
		}
		order = append(order[:at], append([]model.Class{*class}, order[at:]...)...)

		class.SemesterID = req.SemesterID
		class.Position = at
		class.UpdatedBy = &callerID
		if err := tx.Class.Update(ctx, class); err != nil {
			return err
		}
		if err := writePositions(ctx, tx, order); err != nil {
			return err
		}

		if source != req.SemesterID {
			if err := renumberClasses(ctx, tx, source); err != nil {
				return err
			}
		}
		return recomputeProgress(ctx, tx, mapID)
	})
	if err != nil {
		s.logger.Error("failed to move class", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	resp := toClassResponse(class)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *classService) Delete(ctx context.Context, mapID, classID, callerID string) error {
	if _, err := loadOwnedMap(ctx, s.repo, s.logger, mapID, callerID); err != nil {
		return err
	}
	class, err := s.loadClass(ctx, mapID, classID)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Class.Delete(ctx, classID); err != nil {
			return err
		}
		if err := renumberClasses(ctx, tx, class.SemesterID); err != nil {
			return err
		}
		return recomputeProgress(ctx, tx, mapID)
	})
	if err != nil {
		s.logger.Error("failed to delete class", zap.String("class_id", classID), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *classService) loadClass(ctx context.Context, mapID, classID string) (*model.Class, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("failed to load class", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}
	if class.MapID != mapID {
		return nil, ErrClassNotFound
	}
	return class, nil
}

// targetSemester resolves a semester a class is placed into
func (s *classService) targetSemester(ctx context.Context, mapID, semesterID string) (*model.Semester, error) {
	semester, err := s.repo.Semester.GetByID(ctx, semesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("failed to load semester", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}
	if semester.MapID != mapID {
		return nil, ErrClassSemesterMismatch
	}
	return semester, nil
}

// checkTags validates class tags against the map's requirement tags.
// When strict is false unknown tags are dropped instead of rejected.
func (s *classService) checkTags(ctx context.Context, mapID string, class *model.Class, strict bool) error {
	class.Tags = normalizeTags(class.Tags)
	if len(class.Tags) == 0 {
		return nil
	}
	reqs, err := s.repo.Requirement.ListByMap(ctx, mapID)
	if err != nil {
		s.logger.Error("failed to list requirements", zap.String("map_id", mapID), zap.Error(err))
		return err
	}
	known := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		known[r.Tag] = struct{}{}
	}

	kept := make(model.StringArray, 0, len(class.Tags))
	for _, tag := range class.Tags {
		if _, ok := known[tag]; ok {
			kept = append(kept, tag)
			continue
		}
		if strict {
			return fmt.Errorf("%w: %s", ErrUnknownTag, tag)
		}
	}
	class.Tags = kept
	return nil
}

// renumberClasses compacts the positions of a semester's classes to 0..n-1
func renumberClasses(ctx context.Context, repo *repository.Repository, semesterID string) error {
	classes, err := repo.Class.ListBySemester(ctx, semesterID)
	if err != nil {
		return err
	}
	return writePositions(ctx, repo, sortClasses(classes))
}

func writePositions(ctx context.Context, repo *repository.Repository, ordered []model.Class) error {
	for i, c := range ordered {
		if c.Position == i {
			continue
		}
		if err := repo.Class.UpdatePosition(ctx, c.ClassID, i); err != nil {
			return err
		}
	}
	return nil
}

// normalizeTags upper-cases tags the way requirement tags are stored
func normalizeTags(tags []string) model.StringArray {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, normalizeTag(t))
	}
	return model.NewStringArray(out)
}

func sortClasses(classes []model.Class) []model.Class {
	sort.SliceStable(classes, func(i, j int) bool { return classes[i].Position < classes[j].Position })
	return classes
}

func toClassResponse(c *model.Class) dto.ClassResponse {
	return dto.ClassResponse{
		ID:            c.ClassID,
		MapID:         c.MapID,
		SemesterID:    c.SemesterID,
		CourseID:      c.CourseID,
		Code:          c.Code(),
		Subject:       c.Subject,
		Number:        c.Number,
		Name:          c.Name,
		Credits:       c.Credits,
		Prerequisites: nonNil(c.Prerequisites),
		Corequisites:  nonNil(c.Corequisites),
		Tags:          nonNil(c.Tags),
		Status:        c.Status,
		Grade:         c.Grade,
		Position:      c.Position,
	}
}

func nonNil(a model.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return a
}
