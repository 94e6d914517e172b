package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/tkmani91/khs-server/internal/api"
	"github.com/tkmani91/khs-server/internal/config"
	"github.com/tkmani91/khs-server/internal/github"
	"github.com/tkmani91/khs-server/internal/localstore"
	"github.com/tkmani91/khs-server/internal/models"
	"github.com/tkmani91/khs-server/internal/service"
	"github.com/tkmani91/khs-server/internal/store"
	"github.com/tkmani91/khs-server/internal/utils"
)

func main() {
	_ = godotenv.Load(".env")

	// Load configuration
	cfg := config.LoadConfig()
	logger := utils.NewLogger()

	// Seeded admin user for fresh or repaired aggregates
	if cfg.Auth.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD is not set; the seeded admin cannot log in")
	}
	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err).Fatal("Failed to hash admin password")
	}
	seed := models.User{
		ID:        "1",
		Username:  cfg.Auth.AdminUsername,
		Password:  string(adminHash),
		Role:      models.RoleAdmin,
		Name:      cfg.Auth.AdminName,
		CreatedAt: time.Now().UTC(),
	}

	// Persistence adapters
	local := localstore.New(cfg.Storage.DataDir, logger)
	remote := github.NewClient(cfg.GitHub, seed, local, logger)

	// State controller
	st := store.New(local, remote, seed, cfg.Sync, logger)
	st.Load(context.Background())
	st.StartAutoSync()

	// Create service
	svc := service.NewDefaultService(st, remote, cfg.Auth.JWTSecret)

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	if len(cfg.Server.AllowOrigins) == 1 && cfg.Server.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
	}
	router.Use(cors.New(corsConfig))

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{Addr: serverAddr, Handler: router}

	go func() {
		logger.WithField("addr", serverAddr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Flush pending changes before exiting
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server shutdown")
	}
}
