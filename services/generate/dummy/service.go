// Package dummygen is a canned generator for tests and offline dev runs.
package dummygen

import (
	"context"
	"fmt"

	"github.com/fundalabs/funda/core/assignment"
)

type dummyService struct {
	// Err, when set, is returned by every call.
	Err error
}

var _ assignment.Generator = (*dummyService)(nil)

func NewService(err ...error) *dummyService {
	svc := &dummyService{}
	if len(err) > 0 {
		svc.Err = err[0]
	}
	return svc
}

func (svc *dummyService) Generate(_ context.Context, req assignment.GenerateRequest) (assignment.Content, error) {
	if svc.Err != nil {
		return assignment.Content{}, svc.Err
	}

	if req.OutputType.IsQuiz() {
		n := req.NumQuestions
		if n <= 0 {
			n = 5
		}
		questions := make([]assignment.QuizQuestion, 0, n)
		for i := 0; i < n; i++ {
			questions = append(questions, assignment.QuizQuestion{
				Question:           fmt.Sprintf("Question %d on %s", i+1, req.Topic),
				Options:            []string{"Option A", "Option B", "Option C", "Option D"},
				CorrectAnswerIndex: i % 4,
				Explanation:        "Because it is.",
			})
		}
		return assignment.QuizContent(questions), nil
	}

	text := fmt.Sprintf("# %s\n\nGenerated %s material for %s %s, in %s.",
		req.Topic, req.OutputType, req.GradeLevel, req.Subject, req.Language)
	return assignment.TextContent(text), nil
}
