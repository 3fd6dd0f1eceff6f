package app

import (
	"context"
	"slices"
	"sort"
	"unicode/utf16"

	"visitor-trivia-service/internal/domain"
)

// TriviaSource fetches one multiple-choice question from a backing service.
type TriviaSource interface {
	FetchQuestion(ctx context.Context) (domain.TriviaQuestion, error)
}

// TriviaService turns upstream questions into display-ready views.
type TriviaService struct {
	source TriviaSource
}

func NewTriviaService(source TriviaSource) *TriviaService {
	return &TriviaService{source: source}
}

// Question fetches a question and shapes it for rendering.
func (s *TriviaService) Question(ctx context.Context) (domain.TriviaQuestion, domain.TriviaView, error) {
	q, err := s.source.FetchQuestion(ctx)
	if err != nil {
		return domain.TriviaQuestion{}, domain.TriviaView{}, err
	}
	return q, BuildView(q), nil
}

// BuildView merges the correct and incorrect answers into one list sorted
// lexicographically, so position never reveals the correct answer.
func BuildView(q domain.TriviaQuestion) domain.TriviaView {
	answers := make([]domain.AnswerOption, 0, len(q.IncorrectAnswers)+1)
	for _, a := range q.IncorrectAnswers {
		answers = append(answers, domain.AnswerOption{Text: a})
	}
	answers = append(answers, domain.AnswerOption{Text: q.CorrectAnswer, Correct: true})

	sort.SliceStable(answers, func(i, j int) bool {
		return compareUTF16(answers[i].Text, answers[j].Text) < 0
	})

	return domain.TriviaView{
		Question:   q.Question,
		Answers:    answers,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// AnswerTexts strips correctness from a view's answers.
func AnswerTexts(view domain.TriviaView) []string {
	texts := make([]string, len(view.Answers))
	for i, a := range view.Answers {
		texts[i] = a.Text
	}
	return texts
}

// compareUTF16 orders strings by UTF-16 code units, the ordering browsers use
// for string comparison. It differs from byte order only for characters above
// U+FFFF compared against U+E000 to U+FFFF.
func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
