// Package summary produces a short natural-language description of a
// comparison via the Gemini API. The summary is strictly downstream of the
// comparison: a failed or unreachable generator never affects the computed
// result, it only degrades to a labeled fallback message.
package summary

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/coolbeans/stepdiff/pkg/align"
	"github.com/coolbeans/stepdiff/pkg/richtext"
	"github.com/coolbeans/stepdiff/pkg/table"
)

// SampleLimit caps how many changed pairs are sent to the generator.
const SampleLimit = 10

// Fallback replaces the generated text whenever the generator fails. It is
// clearly distinguishable from model output.
const Fallback = "(summary unavailable: the comparison completed, but the summary service could not be reached)"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Sample returns at most limit pairs whose status is not UNCHANGED, in
// document order.
func Sample(pairs []align.Pair, limit int) []align.Pair {
	var sampled []align.Pair
	for _, pair := range pairs {
		if pair.Status == align.StatusUnchanged {
			continue
		}
		sampled = append(sampled, pair)
		if len(sampled) == limit {
			break
		}
	}
	return sampled
}

// Generator wraps a Gemini client.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a generator backed by the Gemini API.
func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("summary: API key is required (set GEMINI_API_KEY)")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("summary: creating client: %w", err)
	}
	return &Generator{client: client, model: model}, nil
}

// Summarize produces a short description of the changes in a result. On any
// failure it logs the cause and returns the fallback text instead.
func (g *Generator) Summarize(ctx context.Context, result *align.Result) string {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(result)), nil)
	if err != nil {
		zap.S().Warnw("summary generation failed", "model", g.model, "error", err)
		return Fallback
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		zap.S().Warnw("summary generation returned no text", "model", g.model)
		return Fallback
	}
	return text
}

// buildPrompt bundles the aggregate counts with at most SampleLimit changed
// rows as the generator's sole input.
func buildPrompt(result *align.Result) string {
	var sb strings.Builder
	sb.WriteString("Two versions of a test-case specification were compared. ")
	fmt.Fprintf(&sb, "%d steps were added, %d deleted and %d modified.\n",
		result.Stats.Added, result.Stats.Deleted, result.Stats.Modified)
	sb.WriteString("A sample of the changed rows follows. Summarize the overall nature of the changes in two or three sentences for a test engineer.\n\n")

	for _, pair := range Sample(result.Pairs, SampleLimit) {
		fmt.Fprintf(&sb, "%s: %s\n", pair.Status, describe(pair))
	}
	return sb.String()
}

func describe(pair align.Pair) string {
	line := func(rec table.Record) string {
		parts := []string{
			richtext.Normalize(rec.Identifier()),
			richtext.Normalize(rec.Procedure()),
			richtext.Normalize(rec.Outcome()),
		}
		return strings.TrimSpace(strings.Join(parts, " / "))
	}

	switch pair.Status {
	case align.StatusAdded:
		return line(pair.Revised)
	case align.StatusDeleted:
		return line(pair.Original)
	default:
		return fmt.Sprintf("%s -> %s", line(pair.Original), line(pair.Revised))
	}
}
