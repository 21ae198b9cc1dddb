package handler

import (
	"github.com/Vihaan004/Map-My-Major-sub000/config"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/service"
)

// Handler aggregates every HTTP handler
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Map         *MapHandler
	Semester    *SemesterHandler
	Class       *ClassHandler
	Requirement *RequirementHandler
	Course      *CourseHandler
}

// NewHandler creates the Handler aggregate
func NewHandler(svc *service.Service, cookie config.CookieConfig) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth, svc.User, cookie),
		User:        NewUserHandler(svc.User),
		Map:         NewMapHandler(svc.Map, svc.Progress, svc.Export),
		Semester:    NewSemesterHandler(svc.Semester),
		Class:       NewClassHandler(svc.Class),
		Requirement: NewRequirementHandler(svc.Requirement),
		Course:      NewCourseHandler(svc.Course),
	}
}
