package prompt

import (
	"context"
	"encoding/json"
	"net"
	"strings"

	genai "google.golang.org/genai"

	"github.com/matzehuels/dreamhouse/pkg/cache"
	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/render/styles"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

const instructions = `You read descriptions of houses and answer with a single JSON object.
Fields:
  "bedrooms", "bathrooms", "kitchens", "halls": non-negative integers
  "balcony", "garden", "parking": booleans ("garage" counts as parking)
  "style": one of "modern", "traditional", "minimal"
Count "N BHK" as N bedrooms. Use 0 and false for anything not mentioned.
Answer with JSON only.

[DESCRIPTION]
`

// Generator sends one prompt to a model and returns its text answer.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// GeminiParser asks a Gemini model for counts. Transport failures are
// retried with backoff; malformed answers are not.
type GeminiParser struct {
	gen Generator
}

// NewGeminiParser creates a parser backed by the Gemini API. An empty
// apiKey falls back to the GEMINI_API_KEY / GOOGLE_API_KEY environment
// variables read by the client.
func NewGeminiParser(ctx context.Context, apiKey, model string) (*GeminiParser, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "create gemini client")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return NewGeminiParserWith(&geminiGenerator{cli: cli, model: model}), nil
}

// NewGeminiParserWith creates a parser around any generator.
func NewGeminiParserWith(gen Generator) *GeminiParser {
	return &GeminiParser{gen: gen}
}

// Name implements [Parser].
func (*GeminiParser) Name() string { return ParserGemini }

// Parse implements [Parser].
func (p *GeminiParser) Parse(ctx context.Context, prompt string) (plan.Counts, error) {
	var answer string
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		answer, err = p.gen.GenerateJSON(ctx, instructions+prompt)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return plan.Counts{}, errors.Wrap(errors.ErrCodeTimeout, err, "gemini request")
		}
		return plan.Counts{}, errors.Wrap(errors.ErrCodeNetwork, err, "gemini request")
	}
	return DecodeCounts(answer)
}

// DecodeCounts parses a model answer. Markdown code fences are stripped,
// negative counts are clamped and unknown styles become modern.
func DecodeCounts(answer string) (plan.Counts, error) {
	answer = strings.TrimSpace(answer)
	answer = strings.TrimPrefix(answer, "```json")
	answer = strings.TrimPrefix(answer, "```")
	answer = strings.TrimSuffix(answer, "```")

	var c plan.Counts
	if err := json.Unmarshal([]byte(strings.TrimSpace(answer)), &c); err != nil {
		return plan.Counts{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "model answer is not counts JSON")
	}
	c = c.Sanitized()
	c.Style = strings.ToLower(strings.TrimSpace(c.Style))
	if !styles.Known(c.Style) {
		c.Style = styles.Modern
	}
	return c, nil
}

type geminiGenerator struct {
	cli   *genai.Client
	model string
}

func (g *geminiGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		var ne net.Error
		var apiErr genai.APIError
		switch {
		case errors.As(err, &ne):
			return "", cache.Retryable(err)
		case errors.As(err, &apiErr) && (apiErr.Code == 429 || apiErr.Code >= 500):
			return "", cache.Retryable(err)
		}
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New(errors.ErrCodeInvalidFormat, "empty model answer")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
