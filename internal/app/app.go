package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denmor86/ya-payrelay/internal/client"
	"github.com/denmor86/ya-payrelay/internal/config"
	"github.com/denmor86/ya-payrelay/internal/logger"
	"github.com/denmor86/ya-payrelay/internal/metrics"
	"github.com/denmor86/ya-payrelay/internal/network/router"
	"github.com/denmor86/ya-payrelay/internal/services"
	"github.com/denmor86/ya-payrelay/internal/storage"
)

// Run - сборка зависимостей и запуск HTTP сервера до получения сигнала остановки
func Run(config config.Config) {
	if config.Telegram.BotToken == "" {
		logger.Warn("BOT_TOKEN is not set, Telegram calls will fail")
	}
	if config.Telegram.AdminID == "" {
		logger.Warn("ADMIN_ID is not set, payments can't be delivered and decisions will be refused")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// хранилище балансов необязательно: без него подтверждение работает в упрощённом режиме
	balances, err := storage.NewBalanceStorage(ctx, config.Balance)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		logger.Warn("Balance storage is not configured, running without balances", "backend", config.Balance.Backend)
	case err != nil:
		logger.Error("Failed to initialize balance storage, running without balances", "backend", config.Balance.Backend, "error", err)
	default:
		defer func() {
			if err := balances.Close(); err != nil {
				logger.Error("error close balance storage", "error", err)
			}
		}()
	}

	httpClient := &http.Client{Timeout: config.Telegram.RequestTimeout}
	telegram := client.NewClient(config.Telegram.APIURL, config.Telegram.BotToken, config.Telegram.RequestTimeout, httpClient)
	relay := services.NewRelay(telegram, balances, services.NewFormatter(config.Telegram.CurrencySign), config.Telegram.AdminID)

	metrics.MustRegister()
	router := router.NewRouter(config, relay)

	server := &http.Server{
		Addr:              config.Server.ListenAddr,
		Handler:           router.HandleRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting server",
			"address", config.Server.ListenAddr,
			"telegram_api", config.Telegram.APIURL,
			"balance_backend", config.Balance.Backend,
			"webhook_secret", config.Server.WebhookSecret != "",
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("error listen server", "error", err)
			stop <- syscall.SIGTERM
		}
	}()

	<-stop
	logger.Info("Shutdown server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutdown server", "error", err)
	}
	logger.Info("Server stopped")
}
