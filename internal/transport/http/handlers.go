package http

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"visitor-trivia-service/internal/app"
	"visitor-trivia-service/internal/domain"
	"visitor-trivia-service/internal/logger"
	"visitor-trivia-service/internal/metrics"
)

// AccessTimeLayout formats the access time shown on the welcome page.
const AccessTimeLayout = "1/2/2006, 3:04:05 PM"

// WelcomePage is the payload for the "welcome" view.
type WelcomePage struct {
	Name       string
	AccessTime string
	VisitorID  int64
	Visited    bool
	LastVisit  int64
}

// TriviaPage is the payload for the "trivia" view. Answers holds one markup
// fragment per entry of Options, in the same order.
type TriviaPage struct {
	Question   string
	Answers    []template.HTML
	Options    []domain.AnswerOption
	Category   string
	Difficulty string
}

// PageHandler serves the HTML pages.
type PageHandler struct {
	visitors *app.VisitorService
	trivia   *app.TriviaService
	renderer Renderer
	cookies  CookieOptions
}

func NewPageHandler(visitors *app.VisitorService, trivia *app.TriviaService, renderer Renderer, cookies CookieOptions) *PageHandler {
	return &PageHandler{
		visitors: visitors,
		trivia:   trivia,
		renderer: renderer,
		cookies:  cookies,
	}
}

// Welcome greets the caller and refreshes the visitor tracking cookies.
func (h *PageHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	log := logger.Ctx(r.Context())
	log.Info().Dict("cookies", cookieDict(r)).Msg("request_cookies")

	cookies := domain.ParseVisitCookies(
		cookieValue(r, domain.VisitedCookie),
		cookieValue(r, domain.VisitorIDCookie),
	)
	visit, err := h.visitors.Track(r.Context(), cookies)
	if err != nil {
		log.Error().Err(err).Msg("track_visit_failed")
		http.Error(w, "failed to assign visitor id", http.StatusInternalServerError)
		return
	}
	metrics.RecordVisit(visit.Visited)

	h.cookies.set(w, r, domain.VisitorIDCookie, strconv.FormatInt(visit.VisitorID, 10))
	h.cookies.set(w, r, domain.VisitedCookie, strconv.FormatInt(visit.Millis(), 10))

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "World"
	}

	h.render(w, r, "welcome", WelcomePage{
		Name:       name,
		AccessTime: visit.At.Local().Format(AccessTimeLayout),
		VisitorID:  visit.VisitorID,
		Visited:    visit.Visited,
		LastVisit:  visit.SecondsSinceLastVisit,
	})
}

// Trivia fetches one question from the upstream service and renders it.
func (h *PageHandler) Trivia(w http.ResponseWriter, r *http.Request) {
	_, view, err := h.trivia.Question(r.Context())
	if err != nil {
		metrics.RecordUpstreamError(err)
		logger.Ctx(r.Context()).Error().Err(err).Msg("trivia_fetch_failed")
		http.Error(w, "Failed to fetch trivia question: "+err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.QuestionsServed.Inc()

	answers := make([]template.HTML, len(view.Answers))
	for i, a := range view.Answers {
		answers[i] = answerMarkup(a)
	}

	h.render(w, r, "trivia", TriviaPage{
		Question:   view.Question,
		Answers:    answers,
		Options:    view.Answers,
		Category:   view.Category,
		Difficulty: view.Difficulty,
	})
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, view string, data any) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, view, data); err != nil {
		logger.Ctx(r.Context()).Error().Err(err).Str("view", view).Msg("render_failed")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// answerMarkup renders an answer as a button that reveals correctness when clicked.
func answerMarkup(a domain.AnswerOption) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<button type="button" class="answer" data-correct="%t">%s</button>`,
		a.Correct, html.EscapeString(a.Text),
	))
}

func cookieDict(r *http.Request) *zerolog.Event {
	d := zerolog.Dict()
	for _, c := range r.Cookies() {
		d.Str(c.Name, c.Value)
	}
	return d
}
