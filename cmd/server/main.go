package main

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/InMostCalmness-Rahul/skillswap/internal/config"
	"github.com/InMostCalmness-Rahul/skillswap/internal/database"
	postgresrepo "github.com/InMostCalmness-Rahul/skillswap/internal/repository/postgres"
	"github.com/InMostCalmness-Rahul/skillswap/internal/service"
	"github.com/InMostCalmness-Rahul/skillswap/internal/transport/http/handlers"
	"github.com/InMostCalmness-Rahul/skillswap/internal/transport/http/middleware"
	"github.com/InMostCalmness-Rahul/skillswap/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	if cfg.Production() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetLevel(log.DebugLevel)
	}

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer pool.Close()
	log.Info("connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	feedbackRepo := postgresrepo.NewFeedbackRepo(pool)
	swapRepo := postgresrepo.NewSwapRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := service.NewUserService(userRepo, feedbackRepo)
	swapService := service.NewSwapService(swapRepo, userRepo)
	adminService := service.NewAdminService(userRepo, swapRepo)

	// Real-time hub and notifier
	hub := ws.NewHub()
	notifier := ws.NewHubNotifier(hub)
	swapService.SetNotifier(notifier)
	userService.SetNotifier(notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.RefreshTokenTTL, cfg.Production())
	userHandler := handlers.NewUserHandler(userService, cfg.UploadDir)
	swapHandler := handlers.NewSwapHandler(swapService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Middleware
	auth := middleware.Auth(cfg.JWTSecret, userRepo)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.Handle("POST /api/auth/signup", limiter.Middleware(http.HandlerFunc(authHandler.Signup)))
	mux.Handle("POST /api/auth/login", limiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/auth/refresh", limiter.Middleware(http.HandlerFunc(authHandler.Refresh)))
	mux.Handle("POST /api/auth/logout", auth(http.HandlerFunc(authHandler.Logout)))

	// Protected - Users
	mux.Handle("GET /api/users/me", auth(http.HandlerFunc(userHandler.Me)))
	mux.Handle("PUT /api/users/me", auth(http.HandlerFunc(userHandler.UpdateMe)))
	mux.Handle("DELETE /api/users/me", auth(http.HandlerFunc(userHandler.DeleteMe)))
	mux.Handle("POST /api/users/upload-photo", auth(http.HandlerFunc(userHandler.UploadPhoto)))
	mux.Handle("GET /api/users", auth(http.HandlerFunc(userHandler.List)))
	mux.Handle("GET /api/users/{id}", auth(http.HandlerFunc(userHandler.GetByID)))
	mux.Handle("POST /api/users/{id}/feedback", auth(http.HandlerFunc(userHandler.AddFeedback)))

	// Protected - Swap requests
	mux.Handle("POST /api/swap", auth(http.HandlerFunc(swapHandler.Create)))
	mux.Handle("GET /api/swap", auth(http.HandlerFunc(swapHandler.List)))
	mux.Handle("GET /api/swap/{id}", auth(http.HandlerFunc(swapHandler.Get)))
	mux.Handle("PATCH /api/swap/{id}", auth(http.HandlerFunc(swapHandler.UpdateStatus)))
	mux.Handle("DELETE /api/swap/{id}", auth(http.HandlerFunc(swapHandler.Delete)))

	// Protected - Admin
	mux.Handle("GET /api/admin/users", auth(middleware.RequireAdmin(http.HandlerFunc(adminHandler.Users))))
	mux.Handle("GET /api/admin/swaps", auth(middleware.RequireAdmin(http.HandlerFunc(adminHandler.Swaps))))
	mux.Handle("GET /api/admin/stats", auth(middleware.RequireAdmin(http.HandlerFunc(adminHandler.Stats))))
	mux.Handle("GET /api/admin/reports", auth(middleware.RequireAdmin(http.HandlerFunc(adminHandler.Reports))))
	mux.Handle("PATCH /api/admin/user/{id}/ban", auth(middleware.RequireAdmin(http.HandlerFunc(adminHandler.Ban))))
	mux.Handle("DELETE /api/admin/user/{id}", auth(middleware.RequireAdmin(http.HandlerFunc(adminHandler.DeleteUser))))

	// WebSocket (token passed as query param, not a header)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret, userRepo, cfg.ClientOrigin))

	// Static profile photos
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.WithField("addr", addr).Info("starting server")
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(cfg.ClientOrigin)(mux)))
}
