package router

import (
	"time"

	"finance-analysis/api"
	"finance-analysis/config"
	_ "finance-analysis/docs"
	"finance-analysis/middleware"
	"finance-analysis/models"
	"finance-analysis/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Services 路由依赖的业务服务
type Services struct {
	Stock    *service.StockAnalysisService
	News     *service.NewsAnalysisService
	Intraday *service.IntradayService
}

// NewServices 按配置组装上游绑定、webhook 客户端和历史存储
func NewServices(cfg *config.Config, db *gorm.DB) *Services {
	sa := cfg.Stock.Analysis
	na := cfg.News.Analysis

	stockClient := service.NewWebhookClient(sa.ConnectTimeout)
	newsClient := service.NewWebhookClient(na.ConnectTimeout)

	return &Services{
		Stock: service.NewStockAnalysisService(
			service.NewGormHistoryStore[models.StockAnalysisRecord](db),
			stockClient,
			service.NewStockBinding("comprehensive", sa.ComprehensiveURL, sa.ComprehensiveReadTimeout),
			service.NewStockBinding("structured", sa.StructuredURL, sa.StructuredReadTimeout),
		),
		News: service.NewNewsAnalysisService(
			service.NewGormHistoryStore[models.NewsAnalysisRecord](db),
			newsClient,
			service.NewNewsBinding(na.URL, na.ReadTimeout),
		),
		Intraday: service.NewIntradayService(service.IntradayConfig{
			BaseURL:     sa.AlphaVantageURL,
			APIKey:      sa.AlphaVantageAPIKey,
			OutputSize:  sa.IntradayOutputSize,
			ReadTimeout: sa.IntradayTimeout,
		}, sa.ConnectTimeout),
	}
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, svcs *Services) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)
	api.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(CORSMiddleware())

	r.GET("/", api.Home)
	r.GET("/health", api.Health)

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiGroup := r.Group("/api")
	apiGroup.GET("", api.Home)

	// 认证相关路由（无需登录）
	authHandler := api.NewAuthHandler(cfg)
	auth := apiGroup.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", middleware.LoginRateLimit(10, time.Minute), authHandler.Login)
		auth.GET("/me", middleware.JWTAuth(), authHandler.Me)
	}

	// 分析接口，auth.required 为 true 时需要 JWT
	analysis := apiGroup.Group("")
	if cfg.Auth.Required {
		analysis.Use(middleware.JWTAuth())
	}

	stockHandler := api.NewStockAnalysisHandler(svcs.Stock, svcs.Intraday)
	newsHandler := api.NewNewsAnalysisHandler(svcs.News)
	exportHandler := api.NewExportHandler(svcs.Stock, svcs.News)

	stocks := analysis.Group("/stocks")
	{
		stocks.POST("/analysis", stockHandler.Analyze)
		stocks.GET("/history", stockHandler.History)
		stocks.GET("/history/export", exportHandler.ExportStockHistory)
		stocks.GET("/analyze", stockHandler.AnalyzeRaw)
		stocks.GET("/intraday", stockHandler.Intraday)
	}

	news := analysis.Group("/news")
	{
		news.POST("/analysis", newsHandler.Analyze)
		news.GET("/history", newsHandler.History)
		news.GET("/history/export", exportHandler.ExportNewsHistory)
	}

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
