package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rit1708/Digital-menu/internal/config"
	"github.com/rit1708/Digital-menu/internal/db"
	"github.com/rit1708/Digital-menu/internal/goroutine"
	httpHandlers "github.com/rit1708/Digital-menu/internal/http/handlers"
	httpRouter "github.com/rit1708/Digital-menu/internal/http/router"
	"github.com/rit1708/Digital-menu/internal/logger"
	"github.com/rit1708/Digital-menu/internal/mail"
	"github.com/rit1708/Digital-menu/internal/repository"
	"github.com/rit1708/Digital-menu/internal/service"
	"github.com/rit1708/Digital-menu/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Отправка писем с кодами; в development её можно выключить,
	// тогда код возвращается прямо в ответе API.
	var mailer mail.Mailer
	if cfg.EmailEnabled {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	sessionRepo := repository.NewSessionRepository(dbConn)
	codeRepo := repository.NewVerificationRepository(dbConn)
	restaurantRepo := repository.NewRestaurantRepository(dbConn)
	categoryRepo := repository.NewCategoryRepository(dbConn)
	dishRepo := repository.NewDishRepository(dbConn)

	// Live-обновления открытых публичных меню.
	hub := ws.NewHub()
	goroutine.SafeGo(hub.Run)

	// Сервисы.
	authService := service.NewAuthService(userRepo, sessionRepo, codeRepo, mailer, cfg.CodeTTL, cfg.SessionTTL, !cfg.EmailEnabled)
	restaurantService := service.NewRestaurantService(restaurantRepo, hub)
	categoryService := service.NewCategoryService(categoryRepo, restaurantService, hub)
	dishService := service.NewDishService(dishRepo, categoryRepo, restaurantService, hub)
	menuService := service.NewMenuService(restaurantRepo, categoryRepo, dishRepo)

	// Фоновая чистка просроченных кодов и сессий.
	reaper := service.NewReaper(codeRepo, sessionRepo, cfg.ReaperInterval)
	goroutine.SafeGoWithContext(ctx, reaper.Run)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	restaurantHandler := httpHandlers.NewRestaurantHandler(restaurantService)
	categoryHandler := httpHandlers.NewCategoryHandler(categoryService)
	dishHandler := httpHandlers.NewDishHandler(dishService)
	menuHandler := httpHandlers.NewMenuHandler(menuService, hub)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, sessionRepo, authHandler, restaurantHandler, categoryHandler, dishHandler, menuHandler, healthHandler)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
