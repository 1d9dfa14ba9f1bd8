package main

import (
	"time"

	"go.uber.org/zap"

	"custodyserver/auth"
	"custodyserver/database"
	"custodyserver/handlers"
	"custodyserver/models"
	"custodyserver/store"
	"custodyserver/transfer"
	"custodyserver/utils"
)

func main() {
	logger, err := utils.InitLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	config, err := database.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("failed to load config.json", zap.Error(err))
	}
	if config.SecretKey == "" {
		logger.Fatal("secret_key must be set in config.json")
	}

	db, err := database.InitPostgreSQL(config, logger)
	if err != nil {
		logger.Fatal("failed to initialize PostgreSQL", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.User{}, &models.Item{}); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis backs the voucher consumption ledger. Without it the
	// service still runs, with replayable vouchers.
	var ledger transfer.Ledger
	if rdb, err := database.InitRedis(logger); err != nil {
		logger.Warn("running without consumption ledger, vouchers are replayable", zap.Error(err))
	} else {
		retention := time.Duration(config.LedgerRetentionHours) * time.Hour
		ledger = transfer.NewRedisLedger(rdb, retention)
	}

	keys := auth.NewKeys(config.SecretKey)
	sessions := auth.NewSessionService(keys, time.Duration(config.SessionTTLMinutes)*time.Minute)
	vouchers := auth.NewVoucherService(keys)

	st := store.NewGormStore(db)
	svc := transfer.NewService(st, vouchers, ledger, logger)

	router := handlers.NewRouter(st, sessions, svc, logger)

	logger.Info("starting server", zap.String("addr", config.ListenAddr))
	if err := router.Run(config.ListenAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
