package main

import (
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/internal/screens"
	"github.com/suteetoe/stockmobile/pkg/apiclient"
	"github.com/suteetoe/stockmobile/pkg/config"
	"github.com/suteetoe/stockmobile/pkg/credential"
	"github.com/suteetoe/stockmobile/pkg/logger"
	"github.com/suteetoe/stockmobile/prometheus"
)

// app holds the wired components shared by every command
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	store    credential.Store
	closer   func() error
	registry *promclient.Registry

	auth     *apiclient.AuthClient
	products *apiclient.ProductClient
	images   *apiclient.ImageClient

	login    *screens.LoginScreen
	register *screens.RegisterScreen
	list     *screens.ProductsScreen
}

func newApp() (*app, error) {
	cfg, err := config.Load("stockmobile")
	if err != nil {
		return nil, err
	}

	log := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Env,
		ServiceName: cfg.ServiceName,
		File:        cfg.Log.File,
	})
	log.Debug("Configuration loaded", cfg.LogConfig()...)

	store, closer, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}

	registry := promclient.NewRegistry()
	opts := apiclient.Options{
		BaseURL:     cfg.API.BaseURL,
		HTTPClient:  &http.Client{Timeout: cfg.API.Timeout},
		Credentials: store,
		Logger:      log,
		Metrics:     prometheus.NewClientMetrics(cfg.Metrics.Prefix, registry),
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		closer:   closer,
		registry: registry,
		auth:     apiclient.NewAuthClient(opts),
		products: apiclient.NewProductClient(opts),
		images:   apiclient.NewImageClient(opts),
	}
	a.login = screens.NewLoginScreen(a.auth, store, log)
	a.register = screens.NewRegisterScreen(a.auth, log)
	a.list = screens.NewProductsScreen(a.products, a.images, log)
	return a, nil
}

func openStore(cfg *config.Config, log *zap.Logger) (credential.Store, func() error, error) {
	switch cfg.Credential.Backend {
	case config.BackendMemory:
		return credential.NewMemoryStore(), func() error { return nil }, nil
	case config.BackendRedis:
		s := credential.NewRedisStore(credential.RedisOptions{
			Addr:     cfg.Credential.RedisAddr,
			Password: cfg.Credential.RedisPassword,
			DB:       cfg.Credential.RedisDB,
		}, log)
		return s, s.Close, nil
	case config.BackendBolt:
		s, err := credential.OpenBoltStore(cfg.Credential.Path, log)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown credential backend %q", cfg.Credential.Backend)
}

func (a *app) Close() {
	a.logRequestStats()
	if err := a.closer(); err != nil {
		a.log.Warn("Failed to close credential store", zap.Error(err))
	}
	_ = a.log.Sync()
}

// logRequestStats reports the client metrics gathered during this run
func (a *app) logRequestStats() {
	families, err := a.registry.Gather()
	if err != nil {
		a.log.Debug("Failed to gather client metrics", zap.Error(err))
		return
	}

	for _, family := range families {
		for _, m := range family.GetMetric() {
			fields := []zap.Field{zap.String("metric", family.GetName())}
			for _, label := range m.GetLabel() {
				fields = append(fields, zap.String(label.GetName(), label.GetValue()))
			}
			if c := m.GetCounter(); c != nil {
				fields = append(fields, zap.Float64("value", c.GetValue()))
			}
			if h := m.GetHistogram(); h != nil {
				fields = append(fields, zap.Uint64("count", h.GetSampleCount()), zap.Float64("sum", h.GetSampleSum()))
			}
			a.log.Debug("Client metric", fields...)
		}
	}
}
