// @title SkillCheck 测评与推荐 API
// @version 1.0
// @description 学前测评、评分定级与学习推荐服务。

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"skillcheck_backend/internal/app"
	"skillcheck_backend/internal/config"
	"skillcheck_backend/pkg/database"
	"skillcheck_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件目录")
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移和种子数据，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	if cfg.MigrateOnly {
		if _, err := database.InitDB(&cfg.Database, cfg.Server.Mode); err != nil {
			logger.Log.Fatal("Database migration failed", zap.Error(err))
		}
		logger.Log.Info("数据库迁移完成，退出程序")
		return
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}

	if err := application.Run(); err != nil {
		logger.Log.Fatal("Server stopped with error", zap.Error(err))
	}
}
