package database

import (
	"strings"
	"time"

	"github.com/Kamesh-the-hacker/CTF/models"
	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open 按 DSN 选择方言建立连接。
// 带 tcp(...) 或 @ 的按 MySQL 处理，其余（文件路径、file: 前缀、:memory:）按 SQLite 处理，
// 与原始部署的本地 ctf.db 保持兼容。
func Open(dsn string) (*gorm.DB, error) {
	dialector := pickDialector(dsn)

	// TranslateError 让各驱动的唯一键冲突统一翻译成 gorm.ErrDuplicatedKey，
	// 提交引擎和注册逻辑都依赖这一点做冲突检测
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 连接池配置。MaxLifetime 用于规避 MySQL 的 wait_timeout 断连
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func pickDialector(dsn string) gorm.Dialector {
	if strings.Contains(dsn, "@tcp(") || strings.Contains(dsn, "@unix(") {
		return mysql.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// Migrate 建表并在 admin 表为空时播种默认管理员（admin / admin123）
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Challenge{},
		&models.Solve{},
	); err != nil {
		return err
	}
	return seedAdmin(db)
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	admin := models.Admin{Username: "admin", Password: "admin123"}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info("Database initialized with default admin (admin / admin123).")
	return nil
}
