// Package annotate sends a finished report's summary to Gemini and
// returns a plain-language assessment. The output is advisory and
// clearly labeled as such; the deterministic engine never consults it,
// and the annotator only runs when an API key is configured.
package annotate

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/reconcile"
)

// DefaultModel is the Gemini model the annotator queries.
const DefaultModel = "gemini-2.0-flash"

// Annotator produces advisory annotations for finished reports.
type Annotator struct {
	client *genai.Client
	model  string
}

// New creates an Annotator for the given API key.
func New(ctx context.Context, apiKey string) (*Annotator, error) {
	if apiKey == "" {
		return nil, errors.ErrAPIKeyRequired
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Annotator{client: client, model: DefaultModel}, nil
}

// Annotate sends the report's rendered text to the model and returns the
// assessment, prefixed so nobody mistakes it for engine output.
func (a *Annotator) Annotate(ctx context.Context, report *reconcile.ReconciliationReport) (string, error) {
	if report == nil {
		return "", errors.NewValidationError("report", nil, "report cannot be nil")
	}

	prompt := fmt.Sprintf(
		"You are reviewing a hockey statistics reconciliation report. "+
			"Summarize in plain language which sources disagree, how serious the disagreements are, "+
			"and which adapter a data engineer should look at first. Be concise.\n\n%s",
		report.Render())

	result, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("annotating report %s: %w", report.GameID, err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("annotating report %s: empty model response", report.GameID)
	}
	return "ADVISORY (model-generated, not part of the reconciliation):\n" + text, nil
}
