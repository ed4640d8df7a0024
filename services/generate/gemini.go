// Package gensvc talks to the Gemini generative API to produce lesson
// material: Markdown text for narrative output types, a structured question
// list for quizzes.
package gensvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"

	"github.com/fundalabs/funda/core"
	"github.com/fundalabs/funda/core/assignment"
)

var (
	host  = "https://generativelanguage.googleapis.com"
	model = "gemini-2.5-flash"

	errMissingAPIKey = errors.New("GEMINI_API_KEY is not set")
)

type geminiService struct {
	key    string
	client *http.Client
	logger core.Logger
}

var _ assignment.Generator = (*geminiService)(nil)

func NewGeminiService(logger core.Logger) *geminiService {
	return &geminiService{
		key:    core.Conf.GeminiAPIKey,
		client: http.DefaultClient,
		logger: logger,
	}
}

// request/response wire types (the slice of the API we use)

type (
	generateRequest struct {
		Contents         []content         `json:"contents"`
		GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	}

	content struct {
		Role  string `json:"role"`
		Parts []part `json:"parts"`
	}

	part struct {
		Text string `json:"text"`
	}

	generationConfig struct {
		ResponseMimeType string      `json:"responseMimeType,omitempty"`
		ResponseSchema   interface{} `json:"responseSchema,omitempty"`
	}

	generateResponse struct {
		Candidates []struct {
			Content struct {
				Parts []part `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	quizEnvelope struct {
		Quiz []assignment.QuizQuestion `json:"quiz"`
	}
)

// quizSchema constrains quiz responses to the shape the scoring engine
// consumes: four options per question, a 0-based correct index, an explanation.
var quizSchema = map[string]interface{}{
	"type": "OBJECT",
	"properties": map[string]interface{}{
		"quiz": map[string]interface{}{
			"type":        "ARRAY",
			"description": "A list of quiz questions.",
			"items": map[string]interface{}{
				"type": "OBJECT",
				"properties": map[string]interface{}{
					"question":           map[string]interface{}{"type": "STRING", "description": "The text of the question."},
					"options":            map[string]interface{}{"type": "ARRAY", "description": "An array of four possible answers.", "items": map[string]interface{}{"type": "STRING"}},
					"correctAnswerIndex": map[string]interface{}{"type": "INTEGER", "description": "The 0-based index of the correct answer in the 'options' array."},
					"explanation":        map[string]interface{}{"type": "STRING", "description": "An explanation of why the correct answer is correct."},
				},
				"required": []string{"question", "options", "correctAnswerIndex", "explanation"},
			},
		},
	},
	"required": []string{"quiz"},
}

func (svc *geminiService) Generate(ctx context.Context, req assignment.GenerateRequest) (assignment.Content, error) {
	if svc.key == "" {
		return assignment.Content{}, core.NewGenerationError(errMissingAPIKey)
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: buildPrompt(req)}}}},
	}
	if req.OutputType.IsQuiz() {
		body.GenerationConfig = &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   quizSchema,
		}
	}

	text, err := svc.call(ctx, body)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("generating content: %v", err), err)
		return assignment.Content{}, core.NewGenerationError(err)
	}

	if req.OutputType.IsQuiz() {
		var envelope quizEnvelope
		if err = json.Unmarshal([]byte(text), &envelope); err != nil {
			svc.logger.Error(fmt.Sprintf("parsing quiz response: %v", err), err)
			return assignment.Content{}, core.NewGenerationError(errors.Wrap(err, "parsing quiz response"))
		}
		return assignment.QuizContent(envelope.Quiz), nil
	}
	return assignment.TextContent(text), nil
}

// call posts the request and returns the first candidate's text.
func (svc *geminiService) call(ctx context.Context, body generateRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", errors.Wrap(err, "marshalling request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", host, model, svc.key)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "building request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "calling generation API")
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading response")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return "", errors.Errorf("generation API returned %d: %s", res.StatusCode, raw)
	}

	var parsed generateResponse
	if err = json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.Wrap(err, "unmarshalling response")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("generation API returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
