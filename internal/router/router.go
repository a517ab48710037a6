package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"achievement-board-api/internal/cache"
	"achievement-board-api/internal/handler"
	"achievement-board-api/internal/metrics"
	"achievement-board-api/internal/middleware"
	"achievement-board-api/internal/repository"
	"achievement-board-api/internal/service"
)

// Config holds router dependencies
type Config struct {
	DB          *gorm.DB
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Redis       *redis.Client
	Archiver    service.BoardArchiver
	BasePath    string
	CORSOrigins []string
	CacheTTL    time.Duration
}

// Setup creates and configures the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 30 * time.Second
	}

	// Wire dependencies
	boardRepo := repository.NewBoardRepository(cfg.DB)
	listCache := cache.NewBoardListCache(cfg.Redis, cacheTTL, cfg.Logger)
	boardService := service.NewBoardService(boardRepo, listCache, cfg.Archiver, cfg.Metrics, cfg.Logger)
	achievementService := service.NewAchievementService(boardRepo, listCache, cfg.Metrics, cfg.Logger)
	boardHandler := handler.NewBoardHandler(boardService, cfg.Logger)
	achievementHandler := handler.NewAchievementHandler(achievementService, cfg.Logger)

	root := r.Group(cfg.BasePath)

	root.GET("/", handler.Root)
	root.GET("/healthz", handler.Healthz)
	root.GET("/metrics", gin.WrapH(promhttp.Handler()))
	root.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := root.Group("/api")
	{
		api.GET("/_debug", boardHandler.Debug)

		boards := api.Group("/boards")
		{
			boards.GET("", boardHandler.ListBoards)
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("/:boardId", boardHandler.GetBoard)
			boards.PUT("/:boardId", boardHandler.ReplaceBoard)
			boards.DELETE("/:boardId", boardHandler.DeleteBoard)
			boards.POST("/:boardId/export", boardHandler.ExportBoard)

			achievements := boards.Group("/:boardId/achievements")
			{
				achievements.POST("", achievementHandler.CreateAchievement)
				achievements.PATCH("/:achievementId", achievementHandler.UpdateAchievement)
				achievements.DELETE("/:achievementId", achievementHandler.DeleteAchievement)
				achievements.POST("/:achievementId/progress", achievementHandler.RecordProgress)
			}
		}
	}

	return r
}
