package router

import (
	"net/http"

	"genset/api"
	"genset/config"
	_ "genset/docs"
	"genset/middleware"
	"genset/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由；notifier 可为 nil
func SetupRouter(cfg *config.Config, st service.Store, notifier service.ImportNotifier) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	histories := service.NewHistoryService(st)
	gensetHandler := api.NewGensetHandler(service.NewGensetService(st))
	historyHandler := api.NewHistoryHandler(histories)
	transferHandler := api.NewTransferHandler(
		service.NewTransferService(st, histories, notifier),
		cfg.Import.MaxUploadMB,
	)

	g := r.Group("/api")
	{
		// 发电机组
		g.GET("/units", gensetHandler.List)
		g.POST("/units", gensetHandler.Create)
		g.DELETE("/units/:id", gensetHandler.Delete)

		// 维护记录
		g.GET("/history", historyHandler.List)
		g.POST("/history", historyHandler.Create)
		g.PUT("/history/:id", historyHandler.Update)
		g.DELETE("/history/:id", historyHandler.Delete)

		// 导入导出
		g.GET("/export", transferHandler.Export)
		g.POST("/export/filtered", transferHandler.ExportFiltered)
		g.POST("/import", middleware.RateLimit(cfg.Import.RateLimit, cfg.Import.RateWindow), transferHandler.Import)

		// 示例数据只在开发模式开放
		if gin.Mode() == gin.DebugMode {
			g.POST("/seed", api.NewSeedHandler(st).Seed)
		}
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return r
}
