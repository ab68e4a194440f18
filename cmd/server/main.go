package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"gorm.io/gorm"

	"github.com/Mrgamji/Emsats-Backend/internal/config"
	"github.com/Mrgamji/Emsats-Backend/internal/db"
	"github.com/Mrgamji/Emsats-Backend/internal/email"
	"github.com/Mrgamji/Emsats-Backend/internal/routes"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		TimeFormat: time.Kitchen,
	})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DbDriver, cfg.DbDsn)
	if err != nil {
		slog.Error("db error", "err", err)
		os.Exit(1)
	}

	mailer := email.NewSMTPSender(email.Config{
		Host:     cfg.SmtpHost,
		Port:     cfg.SmtpPort,
		Username: cfg.SmtpUser,
		Password: cfg.SmtpPass,
		From:     cfg.SmtpFrom,
		Timeout:  time.Duration(cfg.SmtpTimeoutSecs) * time.Second,
	})

	if cfg.PurgeMinutes > 0 {
		go purgeLoop(database, cfg)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	routes.Register(router, database, cfg, mailer)

	slog.Info("server starting", "addr", cfg.Addr, "env", cfg.AppEnv)
	if err := router.Run(cfg.Addr); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

// purgeLoop trims expired pending registrations and stale reset tokens.
// Expiry is still enforced at read time; this only keeps the tables small.
func purgeLoop(database *gorm.DB, cfg config.Config) {
	ticker := time.NewTicker(time.Duration(cfg.PurgeMinutes) * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		if err := db.PurgeExpired(database, time.Duration(cfg.ResetMinutes)*time.Minute); err != nil {
			slog.Error("purge error", "err", err)
		}
	}
}
