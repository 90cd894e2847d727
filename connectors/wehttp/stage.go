package wehttp

import "net/http"

// Stage is one link in a request pipeline. A stage either handles the request
// itself or passes it, untouched, to next.
type Stage interface {
	Handle(w http.ResponseWriter, r *http.Request, next http.Handler)
}

type StageFunc func(w http.ResponseWriter, r *http.Request, next http.Handler)

func (f StageFunc) Handle(w http.ResponseWriter, r *http.Request, next http.Handler) {
	f(w, r, next)
}

// Chain runs stages in order, ending with terminal. A nil terminal responds
// with 404.
func Chain(terminal http.Handler, stages ...Stage) http.Handler {
	if terminal == nil {
		terminal = http.NotFoundHandler()
	}

	h := terminal
	for i := len(stages) - 1; i >= 0; i-- {
		h = bind(stages[i], h)
	}
	return h
}

// Middleware adapts a stage to the func(http.Handler) http.Handler shape used
// by chi's Use.
func Middleware(stage Stage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return bind(stage, next)
	}
}

func bind(stage Stage, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stage.Handle(w, r, next)
	})
}
