// @title Training Portal 后端 API
// @version 1.0
// @description 企业培训门户的后端服务器：课程、学习路径、培训、日程与报表。
// @termsOfService http://swagger.io/terms/

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"training_portal_backend/internal/app"
	"training_portal_backend/internal/config"
	"training_portal_backend/pkg/logger"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	seed := flag.Bool("seed", false, "迁移后写入演示数据并退出")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置迁移标志
	cfg.ForceMigrate = *migrate || *migrateOnly || *seed
	cfg.MigrateOnly = *migrateOnly
	cfg.SeedOnly = *seed

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly || *seed {
		log.Println("数据库初始化完成，退出程序")
		return
	}

	application.Run()
}
