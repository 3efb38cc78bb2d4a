package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
)

type openAI struct {
	http  *resty.Client
	model string
	log   *zap.Logger
}

// NewOpenAI talks to any OpenAI-compatible chat completions endpoint.
func NewOpenAI(endpoint, key, model string, log *zap.Logger) Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(endpoint, "/")).
		SetTimeout(25*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetAuthToken(key).
		SetHeader("Content-Type", "application/json")
	return &openAI{http: c, model: model, log: log}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatReq struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAI) Narrate(ctx context.Context, f *entities.Field, in evaluator.FieldHealthInsight) string {
	var out chatResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatReq{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: "You are a synthetic turf safety consultant. Write a concise plain-text summary (at most 5 sentences) for a facility manager. Do not invent numbers."},
				{Role: "user", Content: renderNarrativePrompt(f, in)},
			},
			Temperature: 0.2,
		}).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		c.log.Warn("narrative request failed", zap.Error(err))
		return fallbackNarrative(f, in)
	}
	if resp.IsError() {
		c.log.Warn("narrative request rejected", zap.Int("status_code", resp.StatusCode()))
		return fallbackNarrative(f, in)
	}
	if len(out.Choices) == 0 {
		return fallbackNarrative(f, in)
	}
	content := plainText(out.Choices[0].Message.Content)
	if content == "" {
		return fallbackNarrative(f, in)
	}
	return content
}

// plainText drops any markup the model adds; the narrative lands in a
// spreadsheet cell and an escaped email paragraph.
func plainText(s string) string {
	text := s
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " ")
}

func renderNarrativePrompt(f *entities.Field, in evaluator.FieldHealthInsight) string {
	facts, _ := json.Marshal(struct {
		Name        string                       `json:"name"`
		SurfaceType string                       `json:"surface_type"`
		Insight     evaluator.FieldHealthInsight `json:"insight"`
	}{Name: f.Name, SurfaceType: f.SurfaceType, Insight: in})
	return fmt.Sprintf(`Summarise the condition of this field for its manager.
- Lead with the overall status and what it means for play.
- Mention each primary concern and the first recommended action.
- State when the next test is due (0 days means before the next use).

FIELD EVALUATION (JSON):
%s
`, facts)
}
