package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/dto"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
)

// ── Course errors ──

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseDuplicateCode = errors.New("a course with this code already exists")
)

// CourseService the shared course bank
type CourseService interface {
	List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, int64, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string) error
	ParseImportFile(reader io.Reader) ([]ImportCourseRow, error)
	ImportCourses(ctx context.Context, rows []ImportCourseRow, callerID string) (*dto.ImportResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService creates a CourseService
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, int64, error) {
	courses, total, err := s.repo.Course.Search(ctx, repository.CourseFilter{
		Query:    req.Q,
		Subject:  req.Subject,
		Tag:      normalizeTag(req.Tag),
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("failed to search courses", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result, total, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course := &model.Course{
		Subject:       strings.ToUpper(strings.TrimSpace(req.Subject)),
		Number:        strings.ToUpper(strings.TrimSpace(req.Number)),
		Code:          model.CourseCode(req.Subject, req.Number),
		Name:          strings.TrimSpace(req.Name),
		Credits:       req.Credits,
		Description:   req.Description,
		Prerequisites: model.NewStringArray(req.Prerequisites),
		Corequisites:  model.NewStringArray(req.Corequisites),
		Tags:          normalizeTags(req.Tags),
	}
	course.CreatedBy = &callerID
	course.UpdatedBy = &callerID

	if _, err := s.repo.Course.GetByCode(ctx, course.Code); err == nil {
		return nil, ErrCourseDuplicateCode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to check course code", zap.String("code", course.Code), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCourseDuplicateCode
		}
		s.logger.Error("failed to create course", zap.String("code", course.Code), zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Prerequisites != nil {
		course.Prerequisites = model.NewStringArray(*req.Prerequisites)
	}
	if req.Corequisites != nil {
		course.Corequisites = model.NewStringArray(*req.Corequisites)
	}
	if req.Tags != nil {
		course.Tags = normalizeTags(*req.Tags)
	}
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("failed to update course", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

// Delete removes a course from the bank; classes copied from it keep their data.
func (s *courseService) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete course", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *courseService) load(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("failed to load course", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

func toCourseResponse(c *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:            c.CourseID,
		Code:          c.Code,
		Subject:       c.Subject,
		Number:        c.Number,
		Name:          c.Name,
		Credits:       c.Credits,
		Description:   c.Description,
		Prerequisites: nonNil(c.Prerequisites),
		Corequisites:  nonNil(c.Corequisites),
		Tags:          nonNil(c.Tags),
	}
}
