package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serenitysphere/core/internal/middleware"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/emotion"
	"github.com/serenitysphere/core/internal/modules/journal"
	"github.com/serenitysphere/core/internal/modules/mood"
	"github.com/serenitysphere/core/internal/modules/owner"
	"github.com/serenitysphere/core/internal/modules/recommendation"
	"github.com/serenitysphere/core/internal/modules/trend"
	"github.com/serenitysphere/core/internal/pkg/response"
	"github.com/serenitysphere/core/internal/pkg/tracing"
)

// idempotentRoutes already converge on repeats: a same-day resubmission
// replaces the entry, and a second analysis is absorbed by cooldowns. The
// Redis idempotence guard would turn those repeats into 409s.
var idempotentRoutes = []string{
	"/api/v1/journal",
	"/api/v1/trends/analyze",
}

func (a *App) registerRoutes() {
	r := a.router
	s := a.svc
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFoundMsg(c, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api/v1")
	api.GET("/health", a.health)

	owner.NewHandler(s.owners).RegisterRoutes(api, authMW)
	journal.NewHandler(s.journal, s.vocab).RegisterRoutes(api, authMW)
	emotion.NewHandler(s.classifier, func(scores []models.EmotionScore) (mood.Draft, bool) {
		return mood.Derive(s.vocab, scores)
	}).RegisterRoutes(api, authMW)
	mood.NewHandler(s.moods).RegisterRoutes(api, authMW)
	trend.NewHandler(s.trend).RegisterRoutes(api, authMW)
	recommendation.NewHandler(s.recommendations).RegisterRoutes(api, authMW)
}

func (a *App) health(c *gin.Context) {
	status := http.StatusOK
	db := "ok"
	if sqlDB, err := a.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		db, status = "unavailable", http.StatusServiceUnavailable
	}
	redis := "disabled"
	if a.rc != nil {
		redis = "ok"
		if err := a.rc.Raw().Ping(c.Request.Context()).Err(); err != nil {
			redis, status = "unavailable", http.StatusServiceUnavailable
		}
	}
	c.JSON(status, gin.H{
		"name":       tracing.ServiceName,
		"env":        a.cfg.Env,
		"uptime":     humanizeDuration(time.Since(a.startedAt)),
		"database":   db,
		"redis":      redis,
		"classifier": a.classifierTag,
		"trend_mode": a.cfg.Trend.Mode,
		"jobs":       a.sched.List(),
	})
}
