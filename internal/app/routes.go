package app

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hookfire/core/internal/middleware"
	"github.com/hookfire/core/internal/modules/auth/user"
	"github.com/hookfire/core/internal/modules/trigger"
	pkgredis "github.com/hookfire/core/internal/pkg/redis"
	"github.com/hookfire/core/internal/pkg/response"
	"github.com/hookfire/core/internal/pkg/schedules"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":     "hookfire-core",
		"version":  "1.0.0",
		"homepage": "https://github.com/hookfire/core",
	}

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(rc.Raw(), a.logger))
	r.Use(middleware.Idempotence(rc.Raw()))

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(db))

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptimeMs := time.Since(processStart).Milliseconds()
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptimeMs,
			"humanize":  humanizeDuration(time.Duration(uptimeMs) * time.Millisecond),
		})
	})

	// Cron job admin
	api.GET("/cron", authMW, func(c *gin.Context) {
		response.OK(c, a.sched.List())
	})
	api.POST("/cron/:name/run", authMW, func(c *gin.Context) {
		if err := a.sched.Run(context.Background(), c.Param("name")); err != nil {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.NoContent(c)
	})

	// Auth & User
	user.NewHandler(user.NewService(db)).RegisterRoutes(api, authMW)

	// Triggers and the firing lifecycle
	schedCfg := a.cfg.Scheduler
	tz := strings.TrimSpace(schedCfg.Timezone)
	if tz == "" {
		tz = strings.TrimSpace(a.cfg.Timezone)
	}
	client := schedules.New(schedCfg.BaseURL, tz)
	triggerSvc := trigger.NewService(db)
	orch := trigger.NewOrchestrator(triggerSvc, triggerSvc, client, a.logger.Named("Lifecycle"))
	if schedCfg.SettleMS > 0 {
		orch.SetSettle(time.Duration(schedCfg.SettleMS) * time.Millisecond)
	}
	trigger.NewHandler(triggerSvc, orch).RegisterRoutes(api, authMW)
}
