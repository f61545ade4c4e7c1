package mapping

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"masterfile/internal/logger"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Suggestion is an AI-proposed mapping for a column the deterministic
// matcher could not place. Suggestions are reported to the operator and
// never applied automatically.
type Suggestion struct {
	ScannedColumn string  `json:"scanned_column"`
	TargetColumn  string  `json:"target_column"`
	Confidence    float64 `json:"confidence"`
}

// minConfidence is the cutoff below which AI suggestions are discarded.
const minConfidence = 0.8

// Suggester asks Gemini for mapping suggestions.
type Suggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewSuggester creates a Gemini-backed suggester.
func NewSuggester(apiKey, modelName string) (*Suggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		logger.Error("Failed to create Gemini client", "error", err)
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent results

	logger.Info("AI suggester initialized", "model", modelName)

	return &Suggester{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the suggester resources
func (s *Suggester) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Suggest proposes template columns for the unmatched onboarding headers.
// freeColumns are the template headers no entry was matched to.
func (s *Suggester) Suggest(ctx context.Context, unmatched, freeColumns []string) ([]Suggestion, error) {
	if len(unmatched) == 0 || len(freeColumns) == 0 {
		return nil, nil
	}

	logger.Info("Requesting AI mapping suggestions",
		"unmatched_count", len(unmatched),
		"free_count", len(freeColumns))

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := s.model.GenerateContent(ctx, genai.Text(buildSuggestionPrompt(unmatched, freeColumns)))
	if err != nil {
		logger.Error("Gemini request failed", "error", err, "duration", time.Since(start))
		return nil, fmt.Errorf("failed to generate AI response: %v", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response generated from AI")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			text += string(textPart)
		}
	}

	suggestions := parseSuggestions(text)
	logger.Info("AI suggestions received",
		"count", len(suggestions),
		"duration", time.Since(start))

	return suggestions, nil
}

// buildSuggestionPrompt creates a prompt for the AI to map onboarding
// columns to template columns.
func buildSuggestionPrompt(unmatched, freeColumns []string) string {
	var b strings.Builder

	b.WriteString(`You are an expert data analyst helping to map column names from vendor onboarding sheets to a standardized masterfile template.

TASK: Map each scanned column to the most appropriate target column, or mark as "NO_MATCH" if uncertain.

SCANNED COLUMNS (from the onboarding sheet):
`)
	for _, col := range unmatched {
		fmt.Fprintf(&b, "- %s\n", col)
	}

	b.WriteString(`
TARGET COLUMNS (masterfile template):
`)
	for _, col := range freeColumns {
		fmt.Fprintf(&b, "- %s\n", col)
	}

	b.WriteString(`
INSTRUCTIONS:
1. Only suggest mappings you are confident about (>80% certainty)
2. Consider semantic meaning, not just text similarity
3. Map each scanned column to AT MOST ONE target column
4. If uncertain or no clear match exists, use "NO_MATCH"

OUTPUT FORMAT (one line per scanned column):
ScannedColumn|TargetColumn|Confidence

EXAMPLES:
Item Name|Product Title|0.95
UPC/EAN|Barcode|0.90
Random_Data|NO_MATCH|0.00

Now provide mappings for the scanned columns:`)

	return b.String()
}

// parseSuggestions parses the AI response into structured suggestions,
// dropping NO_MATCH lines and anything below the confidence cutoff.
func parseSuggestions(response string) []Suggestion {
	var suggestions []Suggestion

	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "ScannedColumn|") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			continue
		}

		scanned := strings.TrimSpace(parts[0])
		target := strings.TrimSpace(parts[1])

		var confidence float64
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[2]), "%f", &confidence); err != nil {
			confidence = 0.0
		}

		if target == "NO_MATCH" || confidence < minConfidence {
			continue
		}

		suggestions = append(suggestions, Suggestion{
			ScannedColumn: scanned,
			TargetColumn:  target,
			Confidence:    confidence,
		})
	}

	return suggestions
}

// GeminiAPIKey gets the API key from the environment.
func GeminiAPIKey() string {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY environment variable not set")
	}
	return apiKey
}
