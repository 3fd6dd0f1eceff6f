package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"visitor-trivia-service/internal/app"
	"visitor-trivia-service/internal/domain"
	"visitor-trivia-service/internal/logger"
	"visitor-trivia-service/internal/metrics"
)

// WSHandler plays trivia over a websocket. Correctness stays on the server
// until the client submits an answer.
type WSHandler struct {
	trivia        *app.TriviaService
	nextPerMinute int
	upgrader      websocket.Upgrader
}

// maxMessageBytes caps a single inbound frame.
const maxMessageBytes = 4096

// NewWSHandler limits each connection to nextPerMinute questions; 0 disables the limit.
func NewWSHandler(trivia *app.TriviaService, nextPerMinute int) *WSHandler {
	return &WSHandler{
		trivia:        trivia,
		nextPerMinute: nextPerMinute,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type questionPayload struct {
	Question   string   `json:"question"`
	Answers    []string `json:"answers"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
}

type answerResult struct {
	Answer        string `json:"answer"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and answers "next" and "answer" messages until the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	log := logger.Ctx(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws_upgrade_failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageBytes)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if h.nextPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(h.nextPerMinute)), h.nextPerMinute)
	}

	var current *domain.TriviaQuestion

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}

		var out any
		switch inbound.Type {
		case "next":
			if !limiter.Allow() {
				out = errorMessage("rate limit exceeded, try again later")
				break
			}
			q, view, err := h.trivia.Question(r.Context())
			if err != nil {
				metrics.RecordUpstreamError(err)
				log.Error().Err(err).Msg("trivia_fetch_failed")
				out = errorMessage("Failed to fetch trivia question: " + err.Error())
				break
			}
			metrics.QuestionsServed.Inc()
			current = &q
			out = outboundMessage[questionPayload]{Type: "question", Payload: questionPayload{
				Question:   view.Question,
				Answers:    app.AnswerTexts(view),
				Category:   view.Category,
				Difficulty: view.Difficulty,
			}}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				out = errorMessage("invalid answer payload")
				break
			}
			if current == nil {
				out = errorMessage("no active question")
				break
			}
			out = outboundMessage[answerResult]{Type: "answerResult", Payload: answerResult{
				Answer:        payload.Answer,
				Correct:       payload.Answer == current.CorrectAnswer,
				CorrectAnswer: current.CorrectAnswer,
			}}
			current = nil
		default:
			out = errorMessage("unsupported message type")
		}

		if err := conn.WriteJSON(out); err != nil {
			log.Warn().Err(err).Msg("ws_write_failed")
			return
		}
	}
}

func errorMessage(msg string) outboundMessage[errorPayload] {
	return outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: msg}}
}
