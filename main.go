package main

import (
	"flag"

	"github.com/Kamesh-the-hacker/CTF/config"
	"github.com/Kamesh-the-hacker/CTF/database"
	"github.com/Kamesh-the-hacker/CTF/routes"
	"github.com/Kamesh-the-hacker/CTF/session"
	"github.com/Kamesh-the-hacker/CTF/utils"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.SetupLogger(cfg.Log)

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Info("Database connection successfully established.")

	tokens := utils.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.TTL)

	// Redis 不可用时退化为内存会话存储（单实例部署下足够），排行榜缓存同时停用
	var sessions session.Store
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, falling back to in-memory session store")
		rdb = nil
		sessions = session.NewMemoryStore()
	} else {
		sessions = session.NewRedisStore(rdb, cfg.Session.TTL)
	}

	r := routes.SetupRouter(routes.Deps{
		Cfg:      cfg,
		DB:       db,
		RDB:      rdb,
		Sessions: sessions,
		Tokens:   tokens,
	})

	log.Infof("Starting server on %s", cfg.Server.Addr)
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
