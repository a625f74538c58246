// File: services/voice/summary.go
package voice

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Summarizer turns a finished call transcript into a short summary for the
// tenant dashboard.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// GeminiSummarizer implements Summarizer with the Gemini API.
type GeminiSummarizer struct {
	model *genai.GenerativeModel
}

// NewGeminiSummarizer creates a Gemini-backed summarizer.
func NewGeminiSummarizer(apiKey string) (*GeminiSummarizer, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiSummarizer{model: model}, nil
}

const summaryPrompt = `Summarize this sales call transcript in 3 sentences or less.
State the customer's interest level and any follow-up the telecaller should take.
Transcript:
`

// Summarize generates a short summary of the transcript.
func (g *GeminiSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", nil
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(summaryPrompt+transcript))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
