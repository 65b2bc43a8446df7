package main

import (
	"flag"
	"log"
	"strings"

	"finance-analysis/config"
	"finance-analysis/database"
	"finance-analysis/logger"
	"finance-analysis/middleware"
	"finance-analysis/router"

	"github.com/joho/godotenv"
)

// @title 金融分析 API
// @version 1.0
// @description 股票与新闻分析 webhook 代理服务，保存每次分析的原始结果并提供历史查询
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("金融分析服务 v1.0.0")
		return
	}

	// .env 可选，不存在时忽略
	if err := godotenv.Load(); err == nil {
		log.Println("已加载 .env 文件")
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖 + 环境变量）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}

	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		logger.Log.Fatalf("数据库初始化失败: %v", err)
	}

	middleware.InitJWT(cfg)

	r := router.SetupRouter(cfg, router.NewServices(cfg, database.GetDB()))

	logger.Log.Infof("服务已启动: http://localhost%s/", cfg.Server.Port)
	logger.Log.Infof("Swagger:   http://localhost%s/swagger/index.html", cfg.Server.Port)

	if err := r.Run(cfg.Server.Port); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}
