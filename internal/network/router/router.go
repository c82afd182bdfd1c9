package router

import (
	"github.com/denmor86/ya-payrelay/internal/config"
	"github.com/denmor86/ya-payrelay/internal/network/handlers"
	"github.com/denmor86/ya-payrelay/internal/network/middleware"
	"github.com/denmor86/ya-payrelay/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Пути, принимающие вебхук. Кроме основного оставлены адреса, на которые настроены старые интеграции
var webhookPaths = []string{"/webhook", "/notify", "/notify_admin", "/confirm_balance"}

type Router struct {
	Config config.Config
	Relay  services.RelayService
}

func NewRouter(config config.Config, relay services.RelayService) *Router {
	return &Router{
		Config: config,
		Relay:  relay,
	}
}

func (router *Router) HandleRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.LogHandle)
	r.Use(middleware.Recover)

	r.Get("/", handlers.HealthHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.SecretToken(router.Config.Server.WebhookSecret))
		webhook := handlers.WebhookHandler(router.Relay)
		for _, path := range webhookPaths {
			r.Post(path, webhook)
		}
	})
	return r
}
