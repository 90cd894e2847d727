package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/weegigs/wee-commands-go/connectors/wehttp"
	"github.com/weegigs/wee-commands-go/samples/counter"
	"github.com/weegigs/wee-commands-go/support"
	"github.com/weegigs/wee-commands-go/we"
)

func NewDispatcher(registry *we.Registry) *we.Dispatcher {
	return we.NewDispatcher(registry)
}

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func NewCommandMetrics(registry *prometheus.Registry) (*wehttp.CommandMetrics, error) {
	return wehttp.NewCommandMetrics(registry)
}

func NewCommandStage(
	cfg support.Config,
	types *we.ContentTypes,
	dispatcher *we.Dispatcher,
	log *zerolog.Logger,
	metrics *wehttp.CommandMetrics,
) *wehttp.CommandStage {
	options := []wehttp.Option{
		wehttp.Logger(log),
		wehttp.Converter(we.DefaultExceptionConverter{IncludeDetails: cfg.ExceptionDetails}),
		wehttp.MaxBodyBytes(cfg.MaxBodyBytes),
		wehttp.Metrics(metrics),
	}

	if cfg.JWTSecret != "" {
		bearer := wehttp.BearerIdentity(wehttp.HMACKey([]byte(cfg.JWTSecret)))
		options = append(options, wehttp.Identity(wehttp.FirstIdentity(wehttp.ContextIdentity, bearer)))
	}

	return wehttp.NewCommandStage(types, dispatcher, options...)
}

func NewServer(cfg support.Config, stage *wehttp.CommandStage, store *counter.Counters, metrics *prometheus.Registry) *http.Server {
	handler := wehttp.NewHandler(stage, counterRoutes(store), metricsRoutes(metrics))

	return &http.Server{
		Addr:              cfg.Address,
		Handler:           withLogging(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func counterRoutes(store *counter.Counters) func(r chi.Router) {
	return func(r chi.Router) {
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/counters/{key}", func(w http.ResponseWriter, r *http.Request) {
			c, ok := store.Get(chi.URLParam(r, "key"))
			if !ok {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, map[string]string{"message": "counter not found"})
				return
			}

			render.JSON(w, r, c)
		})
	}
}

func metricsRoutes(registry *prometheus.Registry) func(r chi.Router) {
	return func(r chi.Router) {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
}

var service = wire.NewSet(
	counter.PseudoRandomizer,
	counter.NewCounters,
	counter.ContentTypes,
	counter.Handlers,
	NewDispatcher,
	NewMetricsRegistry,
	NewCommandMetrics,
	support.NewLogger,
	NewCommandStage,
	NewServer,
)

var Live = wire.NewSet(service)
