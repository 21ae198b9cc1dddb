package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Vihaan004/Map-My-Major-sub000/config"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/api/handler"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/api/middleware"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/jwt"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/redis"
)

// Setup builds the gin engine. rdb may be nil, which disables token
// revocation checks and rate limiting.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	var (
		blacklist middleware.Blacklist
		limiter   middleware.Limiter
	)
	if rdb != nil {
		blacklist, limiter = rdb, rdb
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── operational ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := middleware.JWTAuth(jwtMgr, blacklist, logger)
	adminOnly := middleware.RoleAuth(model.RoleAdmin)
	authLimit := middleware.RateLimit(limiter, cfg.RateLimit.AuthPerMinute, time.Minute, logger)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authLimit, h.Auth.Register)
			auth.POST("/login", authLimit, h.Auth.Login)
			auth.POST("/refresh", authLimit, h.Auth.Refresh)

			auth.POST("/logout", authRequired, h.Auth.Logout)
			auth.GET("/me", authRequired, h.Auth.Me)
			auth.PUT("/me", authRequired, h.Auth.UpdateMe)
			auth.PUT("/me/password", authRequired, authLimit, h.Auth.ChangePassword)
		}

		authorized := v1.Group("")
		authorized.Use(authRequired)
		{
			users := authorized.Group("/users", adminOnly)
			{
				users.GET("/:id", h.User.GetUser)
				users.PUT("/:id/role", h.User.AssignRole)
			}

			// owner checks happen in the service layer
			maps := authorized.Group("/maps")
			{
				maps.GET("", h.Map.ListMaps)
				maps.POST("", h.Map.CreateMap)
				maps.GET("/:id", h.Map.GetMap)
				maps.PUT("/:id", h.Map.UpdateMap)
				maps.DELETE("/:id", h.Map.DeleteMap)
				maps.GET("/:id/progress", h.Map.GetProgress)
				maps.GET("/:id/export", h.Map.Export)

				maps.GET("/:id/semesters", h.Semester.ListSemesters)
				maps.POST("/:id/semesters", h.Semester.CreateSemester)
				maps.PUT("/:id/semesters/:semester_id", h.Semester.UpdateSemester)
				maps.DELETE("/:id/semesters/:semester_id", h.Semester.DeleteSemester)

				maps.GET("/:id/classes", h.Class.ListClasses)
				maps.POST("/:id/classes", h.Class.CreateClass)
				maps.PUT("/:id/classes/:class_id", h.Class.UpdateClass)
				maps.PUT("/:id/classes/:class_id/move", h.Class.MoveClass)
				maps.DELETE("/:id/classes/:class_id", h.Class.DeleteClass)

				maps.GET("/:id/requirements", h.Requirement.ListRequirements)
				maps.POST("/:id/requirements", h.Requirement.CreateRequirement)
				maps.PUT("/:id/requirements/:requirement_id", h.Requirement.UpdateRequirement)
				maps.DELETE("/:id/requirements/:requirement_id", h.Requirement.DeleteRequirement)
			}

			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.ListCourses)
				courses.GET("/:id", h.Course.GetCourse)
				courses.POST("", h.Course.CreateCourse)
				courses.PUT("/:id", h.Course.UpdateCourse)
				courses.DELETE("/:id", adminOnly, h.Course.DeleteCourse)
				courses.POST("/import", adminOnly, h.Course.ImportCourses)
			}
		}
	}

	return r
}
