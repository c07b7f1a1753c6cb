package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/delesray/forum/docs"
	"github.com/delesray/forum/internal/config"
	"github.com/delesray/forum/internal/database"
	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/router"
	"github.com/delesray/forum/internal/services"
	"github.com/delesray/forum/internal/services/auth"
	"github.com/delesray/forum/internal/utils"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter `Bearer ` followed by your access token (e.g. "Bearer <token>")

func main() {
	cfg := config.Load()

	// Set Swagger base path dynamically
	docs.SwaggerInfo.BasePath = cfg.BasePath

	configureLogging(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	if utils.InitSentry(cfg.SentryDSN, cfg.SentryEnvironment) {
		defer sentry.Flush(2 * time.Second)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	events, closeEvents := services.NewEventPublisher(cfg.RabbitMQ)
	defer closeEvents()

	// Create admin user if not exists
	authService := auth.NewAuthService(repository.NewUserRepository(db), cfg.Auth)
	if err := authService.CreateAdminUser(cfg.Auth); err != nil {
		logrus.Warnf("Failed to create admin user: %v", err)
	} else {
		logrus.Info("Admin user check completed")
	}

	r, stopRouter := router.SetupRouter(db, cfg, events)
	defer stopRouter()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on port %s", cfg.Port)
		logrus.Infof("Health Check: http://localhost:%s/health", cfg.Port)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
		return
	}

	logrus.Info("Server exited properly")
}

func configureLogging(logLevel string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
