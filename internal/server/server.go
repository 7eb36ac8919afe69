package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	challengedomain "github.com/screenclash/screenclash/internal/challenge/domain"
	"github.com/screenclash/screenclash/internal/config"
	friendshipdomain "github.com/screenclash/screenclash/internal/friendship/domain"
	notificationdomain "github.com/screenclash/screenclash/internal/notification/domain"
	"github.com/screenclash/screenclash/internal/observability"
	obsmiddleware "github.com/screenclash/screenclash/internal/observability/logger"
	obsmetrics "github.com/screenclash/screenclash/internal/observability/metrics"
	obstracing "github.com/screenclash/screenclash/internal/observability/tracing"
	"github.com/screenclash/screenclash/internal/ratelimit"
	screentimedomain "github.com/screenclash/screenclash/internal/screentime/domain"
	userdomain "github.com/screenclash/screenclash/internal/user/domain"
	visiondomain "github.com/screenclash/screenclash/internal/vision/domain"
	"go.uber.org/fx"
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	userSvc         userdomain.Service
	friendshipSvc   friendshipdomain.Service
	screentimeSvc   screentimedomain.Service
	challengeSvc    challengedomain.Service
	notificationSvc notificationdomain.Service
	extractor       visiondomain.Extractor
	uploadLimiter   *ratelimit.UploadLimiter
	obsMetrics      *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	UserSvc         userdomain.Service
	FriendshipSvc   friendshipdomain.Service
	ScreentimeSvc   screentimedomain.Service
	ChallengeSvc    challengedomain.Service
	NotificationSvc notificationdomain.Service
	Extractor       visiondomain.Extractor
	UploadLimiter   *ratelimit.UploadLimiter `optional:"true"`
	ObsMetrics      *obsmetrics.Metrics      `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		userSvc:         p.UserSvc,
		friendshipSvc:   p.FriendshipSvc,
		screentimeSvc:   p.ScreentimeSvc,
		challengeSvc:    p.ChallengeSvc,
		notificationSvc: p.NotificationSvc,
		extractor:       p.Extractor,
		uploadLimiter:   p.UploadLimiter,
		obsMetrics:      p.ObsMetrics,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/users", s.UpsertUser)
	api.GET("/users", s.GetUser)

	api.GET("/friends", s.FriendsOverview)
	api.POST("/friends", s.SendFriendRequest)
	api.PUT("/friends/requests", s.RespondFriendRequest)

	api.POST("/screen-time", s.UploadRateLimit(), s.CreateScreenTime)
	api.GET("/screen-time", s.ListScreenTime)
	api.GET("/screen-time/check-today", s.CheckToday)

	api.GET("/leaderboard", s.DailyLeaderboard)
	api.GET("/friends/daily-activity", s.DailyActivity)
	api.GET("/friends/weekly-activity", s.WeeklyActivity)
	api.GET("/friends/monthly-activity", s.MonthlyActivity)

	api.POST("/vision/extract", s.ExtractScreenshot)
	api.POST("/notifications/send-reminder", s.SendReminder)
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
