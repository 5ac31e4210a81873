package planner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/finplan-go/internal/household"
)

const systemPrompt = "You are a financial planner for Indian retail investors. " +
	"Answer with a single JSON object only, amounts in INR."

// maxResponseBytes ограничивает размер ответа внешнего сервиса
const maxResponseBytes = 1 << 20

// AIGenerator запрашивает план у внешнего генеративного сервиса
// с API в стиле chat completions
type AIGenerator struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
	tracer   trace.Tracer
	log      logrus.FieldLogger
}

// NewAIGenerator создает генератор с таймаутом HTTP-клиента
func NewAIGenerator(endpoint, apiKey, model string, timeout time.Duration, tracer trace.Tracer, log logrus.FieldLogger) *AIGenerator {
	return &AIGenerator{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client: &http.Client{
			Timeout: timeout,
		},
		tracer: tracer,
		log:    log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate реализует PlanGenerator
func (g *AIGenerator) Generate(ctx context.Context, profile *household.Profile, opts household.Options) (*Plan, error) {
	ctx, span := g.tracer.Start(ctx, "ai_plan_generate")
	defer span.End()

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	prompt, err := buildPrompt(profile, opts)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    0.2,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	span.SetAttributes(attribute.String("model", g.model))

	resp, err := g.client.Do(req)
	if err != nil {
		span.SetAttributes(attribute.String("error", "request_failed"))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	span.SetAttributes(attribute.Int("status_code", resp.StatusCode))
	if len(raw) > maxResponseBytes {
		span.SetAttributes(attribute.String("error", "response_too_large"))
		return nil, fmt.Errorf("response exceeds %d bytes", maxResponseBytes)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	g.log.WithField("bytes", len(raw)).Debug("AI plan response received")

	plan, err := parsePlan(raw)
	if err != nil {
		span.SetAttributes(attribute.String("error", "invalid_plan"))
		return nil, err
	}
	return plan, nil
}

func buildPrompt(profile *household.Profile, opts household.Options) (string, error) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}

	var b strings.Builder
	b.WriteString("Build an investment plan for the following financial profile:\n")
	b.Write(payload)
	b.WriteString("\n\nRespond with JSON of the form ")
	b.WriteString(`{"assetAllocation": {"<category>": <percent>}, `)
	b.WriteString(`"suggestions": [{"category": "...", "description": "...", "suggestedAmount": <monthly INR>}], `)
	b.WriteString(`"reasoning": "..."}`)
	b.WriteString(". Percentages must sum to 100. Respect the risk percentage when choosing equity exposure.")
	if opts.IncludeSIPInCashflow {
		b.WriteString(" The monthly_sip is already committed: suggest only new amounts that fit the surplus left after it.")
	}
	return b.String(), nil
}

func parsePlan(raw []byte) (*Plan, error) {
	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidPlan, err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("%w: response has no choices", ErrInvalidPlan)
	}

	content := stripCodeFence(cr.Choices[0].Message.Content)

	var plan Plan
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		return nil, fmt.Errorf("%w: failed to decode plan: %v", ErrInvalidPlan, err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	plan.ID = uuid.NewString()
	plan.Source = SourceAI
	return &plan, nil
}

// stripCodeFence убирает markdown-обертку ```json ... ``` вокруг ответа модели
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
