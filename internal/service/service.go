package service

import (
	"go.uber.org/zap"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/jwt"
)

// Service aggregate entry point for all services
type Service struct {
	Auth        AuthService
	User        UserService
	Map         MapService
	Semester    SemesterService
	Class       ClassService
	Course      CourseService
	Requirement RequirementService
	Progress    ProgressService
	Export      ExportService
}

// NewService builds the service aggregate. tokens may be nil.
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	tokens TokenStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, tokens, logger),
		User:        NewUserService(repo, logger),
		Map:         NewMapService(repo, logger),
		Semester:    NewSemesterService(repo, logger),
		Class:       NewClassService(repo, logger),
		Course:      NewCourseService(repo, logger),
		Requirement: NewRequirementService(repo, logger),
		Progress:    NewProgressService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}
