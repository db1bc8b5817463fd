package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/engine"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
)

// NewRouter mounts the engine's HTTP surface. Every /api/v1 route is
// user-scoped via the X-User-ID header; authentication and sessions are the
// upstream gateway's problem.
func NewRouter(svc *engine.Service, log *logger.Logger) *gin.Engine {
	h := NewHandler(svc, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLog(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", userHeader},
		AllowCredentials: false,
	}))

	r.GET("/healthz", h.Health)

	api := r.Group("/api/v1")
	{
		api.POST("/attempts", h.SubmitAttempt)

		api.GET("/plan", h.GetPlan)
		api.POST("/plan/rebuild", h.RebuildPlan)

		api.GET("/reviews/due", h.DueReviews)
		api.GET("/reviews/forecast", h.ReviewForecast)
		api.POST("/reviews/:cardID", h.ReviewCard)

		api.POST("/cards", h.AddCard)
		api.DELETE("/cards/:cardID", h.RetireCard)

		api.GET("/skills/:skillID/gate", h.SkillGate)
		api.GET("/overview", h.Overview)

		api.PUT("/exam-profile", h.SaveExamProfile)
		api.POST("/onboarding", h.Onboard)
	}

	return r
}

// requestLog emits one structured line per request.
func requestLog(log *logger.Logger) gin.HandlerFunc {
	access := log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		access.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
