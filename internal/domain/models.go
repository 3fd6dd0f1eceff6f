package domain

import (
	"math"
	"strconv"
	"time"
)

// maxMarkerMillis bounds accepted visit markers (year 9999) so elapsed time cannot overflow.
const maxMarkerMillis = 253402300799999

// Cookie names used to track visitors across requests.
const (
	VisitedCookie   = "visited"
	VisitorIDCookie = "visitorId"
)

// VisitCookies is the parsed form of the visitor tracking cookies.
type VisitCookies struct {
	LastVisitMillis int64
	VisitorID       int64
	valid           bool
}

// ParseVisitCookies converts raw cookie values into VisitCookies.
// Unparseable values fail closed: the result reports Returning() == false.
func ParseVisitCookies(visited, visitorID string) VisitCookies {
	if visited == "" || visitorID == "" {
		return VisitCookies{}
	}
	marker, err := strconv.ParseInt(visited, 10, 64)
	if err != nil || marker < 0 || marker > maxMarkerMillis {
		return VisitCookies{}
	}
	id, err := strconv.ParseInt(visitorID, 10, 64)
	if err != nil || id < 1 {
		return VisitCookies{}
	}
	return VisitCookies{LastVisitMillis: marker, VisitorID: id, valid: true}
}

// Returning reports whether the cookies identify a prior visit.
func (c VisitCookies) Returning() bool {
	return c.valid
}

// Visit is the outcome of tracking a single request.
type Visit struct {
	VisitorID             int64
	Visited               bool
	SecondsSinceLastVisit int64
	At                    time.Time
}

// Millis returns the visit time as epoch milliseconds, the visit marker value.
func (v Visit) Millis() int64 {
	return v.At.UnixMilli()
}

// ElapsedSeconds rounds the gap between two epoch millisecond timestamps to
// whole seconds. Halves round toward positive infinity, so -0.5s is 0 and
// -1.5s is -1. A marker in the future yields a negative result.
func ElapsedSeconds(nowMillis, previousMillis int64) int64 {
	return int64(math.Floor(float64(nowMillis-previousMillis)/1000 + 0.5))
}

// TriviaQuestion is a single multiple-choice question from the upstream service.
type TriviaQuestion struct {
	Question         string
	CorrectAnswer    string
	IncorrectAnswers []string
	Category         string
	Difficulty       string
}

// AnswerOption is one answer tagged with its correctness.
type AnswerOption struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// TriviaView is the display-ready form of a TriviaQuestion.
type TriviaView struct {
	Question   string
	Answers    []AnswerOption
	Category   string
	Difficulty string
}
