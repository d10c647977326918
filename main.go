package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"cleanup-be/config"
	"cleanup-be/controllers"
	"cleanup-be/middlewares"
	"cleanup-be/routes"
	"cleanup-be/store"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "", "[optional] path of configuration file")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal(err)
	}
	config.InitLog(cfg.LogLevel)
	initLog := log.WithField("prefix", "init")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			AttachStacktrace: true,
			Environment:      cfg.Environment,
		}); err != nil {
			initLog.Error(err)
		} else {
			initLog.Info("Initialized sentry")
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()

	mongoClient, err := config.ConnectDB(ctx, cfg.MongoURI, cfg.DBTimeout)
	if err != nil {
		initLog.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	initLog.Info("MongoDB connection established successfully!")

	indexCtx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	if err := store.EnsureIndexes(indexCtx, mongoClient.Database(cfg.MongoDatabase)); err != nil {
		initLog.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	mongoStore := store.NewMongoStore(mongoClient, cfg.MongoDatabase)
	defer mongoStore.Close()

	// the submission limit is skipped when redis is not configured or unreachable
	var counter middlewares.CounterStore
	if cfg.RedisAddress != "" {
		rdb, err := config.ConnectRedis(ctx, cfg.RedisAddress, cfg.RedisPassword)
		if err != nil {
			initLog.Warnf("Request rate limit disabled: %v", err)
		} else {
			defer rdb.Close()
			counter = rdb
		}
	}

	ctl := controllers.New(mongoStore, controllers.Options{
		JWTSecret:     []byte(cfg.JWTSecret),
		TokenTTL:      cfg.TokenTTL,
		ResetTokenTTL: cfg.ResetTokenTTL,
		DBTimeout:     cfg.DBTimeout,
		AdminEmails:   cfg.AdminEmails,
		Production:    cfg.IsProduction(),
		CookieDomain:  cfg.CookieDomain,
	})

	router := routes.NewRouter(ctl, routes.RouterOptions{
		JWTSecret:      []byte(cfg.JWTSecret),
		CORSOrigins:    cfg.CORSOrigins,
		RequestLimiter: middlewares.RequestRateLimiter(counter, cfg.RequestLimitKey, cfg.RequestDailyCap),
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		initLog.Infof("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 2)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Server is preparing to shutdown")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server Shutdown: ", err)
	}
}
