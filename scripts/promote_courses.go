// 手动触发课程开课检查脚本
//
// 该功能已集成到主应用的 cron 任务中（scheduler.course_promotion）。
// 此脚本仅用于手动触发，例如批量导入开课日期已过的课程之后。
//
// 用法: go run scripts/promote_courses.go

package main

import (
	"log"
	"os"
	"time"
	"training_portal_backend/internal/config"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/service"
	"training_portal_backend/pkg/database"
	"training_portal_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "training_portal.db"
	}

	// 脚本只输出到终端
	cfg.Log.File = ""
	cfg.Log.Console = true
	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	store := service.NewCourseStore(repository.NewCourseRepository(db))
	courses := service.NewCourseService(store)

	log.Println("手动触发课程开课检查...")
	n, err := courses.PromoteDueCourses(time.Now())
	if err != nil {
		log.Fatalf("开课检查失败: %v", err)
	}
	log.Printf("完成！%d 门课程已开课", n)
}
