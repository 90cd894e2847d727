package wehttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewHandler mounts the command stage in front of a chi router. Routes adds any
// other endpoints; requests the stage does not claim are routed to them.
func NewHandler(stage *CommandStage, routes ...func(r chi.Router)) http.Handler {
	r := chi.NewRouter()

	r.Use(Middleware(stage))
	r.NotFound(http.NotFound)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, route := range routes {
		route(r)
	}

	return WithTelemetry(r, "we-commands")
}
