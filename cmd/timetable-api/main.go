package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campus-kit/timetable-api/api/swagger"
	"github.com/campus-kit/timetable-api/internal/handler"
	"github.com/campus-kit/timetable-api/internal/middleware"
	"github.com/campus-kit/timetable-api/internal/models"
	"github.com/campus-kit/timetable-api/internal/repository"
	"github.com/campus-kit/timetable-api/internal/scheduler"
	"github.com/campus-kit/timetable-api/internal/service"
	"github.com/campus-kit/timetable-api/internal/store"
	"github.com/campus-kit/timetable-api/pkg/config"
	"github.com/campus-kit/timetable-api/pkg/logger"
	corsmiddleware "github.com/campus-kit/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campus-kit/timetable-api/pkg/middleware/requestid"
)

// @title Campus Timetable API
// @version 0.1.0
// @description Course timetabling engine with conflict reporting
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

	entities := store.NewEntityStore()
	schedules := repository.NewScheduleRepository()
	engine := scheduler.New(scheduler.Config{
		GridMinutes:   cfg.Timetable.GridMinutes,
		Rooms:         cfg.Timetable.Rooms,
		FallbackDay:   models.Day(cfg.Timetable.FallbackDay),
		FallbackStart: cfg.Timetable.FallbackStart,
	})
	metricsSvc := service.NewMetricsService()
	timetableSvc := service.NewTimetableService(entities, schedules, engine, cfg.Timetable.GridMinutes, validator.New(), metricsSvc, logr)
	exportSvc := service.NewExportService(cfg.Export.MaxRows)

	professorHandler := handler.NewProfessorHandler(timetableSvc)
	courseHandler := handler.NewCourseHandler(timetableSvc)
	scheduleHandler := handler.NewScheduleHandler(timetableSvc, exportSvc)

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
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/professors", professorHandler.Create)
		api.GET("/professors", professorHandler.List)
		api.GET("/professors/:id", professorHandler.Get)
		api.DELETE("/professors/:id", professorHandler.Delete)

		api.POST("/courses", courseHandler.Create)
		api.GET("/courses", courseHandler.List)
		api.GET("/courses/:id", courseHandler.Get)
		api.DELETE("/courses/:id", courseHandler.Delete)

		api.POST("/schedules/generate", scheduleHandler.Generate)
		api.GET("/schedules", scheduleHandler.List)
		api.GET("/schedules/:index", scheduleHandler.Get)
		api.DELETE("/schedules/:index", scheduleHandler.Remove)
		api.GET("/schedules/:index/export", scheduleHandler.Export)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
