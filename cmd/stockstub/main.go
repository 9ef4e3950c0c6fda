package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/internal/stubserver"
	"github.com/suteetoe/stockmobile/pkg/config"
	"github.com/suteetoe/stockmobile/pkg/jwtutil"
	"github.com/suteetoe/stockmobile/pkg/logger"
	metrics "github.com/suteetoe/stockmobile/prometheus"
)

func main() {
	appConfig, err := config.Load("stockstub")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Env,
		ServiceName: appConfig.ServiceName,
		File:        appConfig.Log.File,
	})
	defer log.Sync()

	log.Info("Starting stockstub",
		zap.String("environment", appConfig.Env),
		zap.String("port", appConfig.Stub.Port))

	serverMetrics := metrics.NewServerMetrics(appConfig.Metrics.Prefix, prometheus.DefaultRegisterer)

	server := stubserver.New(stubserver.Options{
		Signer:         jwtutil.NewSigner(appConfig.Stub.JWTSigningKey, time.Duration(appConfig.Stub.JWTExpirationHours)*time.Hour),
		Logger:         log,
		Metrics:        serverMetrics,
		MetricsHandler: promhttp.Handler(),
	})

	if err := server.Start(":" + appConfig.Stub.Port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
