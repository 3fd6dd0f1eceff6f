package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"visitor-trivia-service/internal/domain"
	"visitor-trivia-service/internal/logger"
)

// DefaultURL requests a single multiple-choice question.
const DefaultURL = "https://opentdb.com/api.php?amount=1&type=multiple"

// Response codes documented by the Open Trivia Database.
const (
	CodeSuccess   = 0
	CodeRateLimit = 5
)

type apiResponse struct {
	ResponseCode int         `json:"response_code"`
	Results      []apiResult `json:"results"`
}

type apiResult struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Client talks to the Open Trivia Database API.
type Client struct {
	httpClient *http.Client
	url        string
	timeout    time.Duration
}

// NewClient returns a client for url. A zero timeout leaves requests bounded
// only by the caller's context.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		httpClient: &http.Client{},
		url:        url,
		timeout:    timeout,
	}
}

// FetchQuestion retrieves one question. Text fields are HTML-entity decoded.
func (c *Client) FetchQuestion(ctx context.Context) (domain.TriviaQuestion, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.TriviaQuestion{}, fmt.Errorf("build trivia request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log := logger.Ctx(ctx)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Dur("duration", time.Since(start)).Msg("trivia_request_failed")
		return domain.TriviaQuestion{}, &domain.UpstreamTransportError{Err: err}
	}
	defer resp.Body.Close()

	log.Debug().Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("trivia_request_completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.TriviaQuestion{}, &domain.UpstreamTransportError{StatusCode: resp.StatusCode}
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.TriviaQuestion{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if body.ResponseCode == CodeRateLimit {
		log.Warn().Msg("trivia_rate_limited")
	}
	if body.ResponseCode != CodeSuccess {
		return domain.TriviaQuestion{}, &domain.UpstreamApplicationError{Code: body.ResponseCode}
	}
	if len(body.Results) == 0 {
		return domain.TriviaQuestion{}, domain.ErrNoQuestion
	}

	result := body.Results[0]
	log.Info().Interface("result", result).Msg("trivia_result")

	return toQuestion(result), nil
}

func toQuestion(r apiResult) domain.TriviaQuestion {
	incorrect := make([]string, len(r.IncorrectAnswers))
	for i, a := range r.IncorrectAnswers {
		incorrect[i] = html.UnescapeString(a)
	}
	return domain.TriviaQuestion{
		Question:         html.UnescapeString(r.Question),
		CorrectAnswer:    html.UnescapeString(r.CorrectAnswer),
		IncorrectAnswers: incorrect,
		Category:         html.UnescapeString(r.Category),
		Difficulty:       r.Difficulty,
	}
}
