package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmdesk/backend/internal/config"
	"github.com/farmdesk/backend/internal/handler"
	"github.com/farmdesk/backend/internal/logging"
	"github.com/farmdesk/backend/internal/repository"
	"github.com/farmdesk/backend/internal/service"
	"github.com/farmdesk/backend/pkg/auth"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)

	secret := auth.SecretBytes(cfg.TokenSecret)
	authService := service.NewAuthService(userRepo, secret, cfg.TokenTTL)
	messageService := service.NewMessageService(messageRepo)

	h := handler.New(userRepo, cfg.FrontendURL)
	authHandler := handler.NewAuthHandler(authService)
	meHandler := handler.NewMeHandler()
	messageHandler := handler.NewMessageHandler(messageService)

	// 公開フォームはスパム対策として IP 単位でレート制限する
	contactLimiter := handler.NewRateLimiter(cfg.ContactRatePerMinute)

	wrapAuth := auth.RequireAuth(secret, authService)
	wrapAdmin := func(next http.Handler) http.Handler {
		return wrapAuth(auth.RequireAdmin(next))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("GET /api/me", wrapAuth(http.HandlerFunc(meHandler.Me)))

	// メッセージ API（投稿は認証不要、閲覧・更新・削除は管理者のみ）
	mux.Handle("POST /api/messages", contactLimiter.Middleware(http.HandlerFunc(messageHandler.Create)))
	mux.Handle("GET /api/messages", wrapAdmin(http.HandlerFunc(messageHandler.List)))
	mux.Handle("PUT /api/messages/{id}/status", wrapAdmin(http.HandlerFunc(messageHandler.UpdateStatus)))
	mux.Handle("DELETE /api/messages/{id}", wrapAdmin(http.HandlerFunc(messageHandler.Delete)))

	mux.Handle("GET /metrics", promhttp.Handler())

	root := handler.Metrics(handler.SecurityHeaders(handler.RequestLogger(h.CORS(mux))))

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      root,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
