package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"visitor-trivia-service/internal/app"
)

// RouterConfig wires the services and options behind the HTTP surface.
type RouterConfig struct {
	Visitors *app.VisitorService
	Trivia   *app.TriviaService
	Renderer Renderer
	Cookies  CookieOptions
	// TriviaRateLimit caps trivia requests per client IP per minute, and
	// questions per websocket connection per minute; 0 disables both.
	TriviaRateLimit int
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(Metrics)
	r.Use(SecurityHeaders)

	pages := NewPageHandler(cfg.Visitors, cfg.Trivia, cfg.Renderer, cfg.Cookies)
	ws := NewWSHandler(cfg.Trivia, cfg.TriviaRateLimit)

	r.Get("/", pages.Welcome)
	r.Get("/healthz", Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFiles()))))

	r.Group(func(r chi.Router) {
		if cfg.TriviaRateLimit > 0 {
			r.Use(httprate.LimitByIP(cfg.TriviaRateLimit, time.Minute))
		}
		r.Get("/trivia", pages.Trivia)
		r.Get("/trivia/ws", ws.ServeWS)
	})

	return r
}
