package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/campus-roomgrid/api/swagger"
	"github.com/noah-isme/campus-roomgrid/internal/directory"
	"github.com/noah-isme/campus-roomgrid/internal/grid"
	"github.com/noah-isme/campus-roomgrid/internal/handler"
	"github.com/noah-isme/campus-roomgrid/internal/middleware"
	"github.com/noah-isme/campus-roomgrid/internal/repository"
	"github.com/noah-isme/campus-roomgrid/internal/service"
	"github.com/noah-isme/campus-roomgrid/internal/upstream"
	"github.com/noah-isme/campus-roomgrid/pkg/cache"
	"github.com/noah-isme/campus-roomgrid/pkg/config"
	"github.com/noah-isme/campus-roomgrid/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-roomgrid/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-roomgrid/pkg/middleware/requestid"
)

// @title Campus Room Grid API
// @version 0.1.0
// @description Room assignment grid for campus class scheduling
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, directory snapshot cache disabled", "error", err)
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	validate := validator.New()
	dir := directory.New()
	store := grid.NewStore()
	client := upstream.NewClient(cfg.Upstream, logr)
	metricsSvc := service.NewMetricsService()

	gridSvc := service.NewGridService(dir, store, client, metricsSvc, validate, logr)
	gestureSvc := service.NewGestureService(gridSvc, cfg.Grid.GestureTTL, validate, logr)
	bootstrapSvc := service.NewBootstrapService(client, cacheRepo, dir, gridSvc, cfg.Grid.Days, cfg.Grid.Shifts, cfg.Redis.TTL, logr)

	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := bootstrapSvc.Load(loadCtx); err != nil {
		cancel()
		logr.Sugar().Fatalw("initial load from campus backend failed", "error", err)
	}
	cancel()

	gridHandler := handler.NewGridHandler(gridSvc, dir, bootstrapSvc)
	mutationHandler := handler.NewMutationHandler(gridSvc)
	gestureHandler := handler.NewGestureHandler(gestureSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if _, err := client.ListRooms(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "upstream unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/grid", gridHandler.View)
		api.POST("/grid/reload", gridHandler.Reload)
		api.GET("/rooms", gridHandler.Rooms)
		api.GET("/classes/unassigned", gridHandler.UnassignedClasses)

		api.POST("/grid/assign", mutationHandler.Assign)
		api.POST("/grid/move", mutationHandler.Move)
		api.POST("/grid/swap", mutationHandler.Swap)
		api.POST("/grid/unassign", mutationHandler.Unassign)

		api.POST("/gestures/pickup/new", gestureHandler.PickUpNew)
		api.POST("/gestures/pickup/scheduled", gestureHandler.PickUpScheduled)
		api.POST("/gestures/:gestureId/hover", gestureHandler.Hover)
		api.POST("/gestures/:gestureId/drop", gestureHandler.Drop)
		api.POST("/gestures/:gestureId/drop-outside", gestureHandler.DropOutside)
		api.POST("/gestures/:gestureId/confirm-swap", gestureHandler.ConfirmSwap)
		api.DELETE("/gestures/:gestureId", gestureHandler.Cancel)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
