// Package sentiment classifies journal text into positive, neutral, or
// negative. A remote model does the real work; a keyword heuristic keeps
// the engine fully functional when the model is unreachable.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/phildaponte/senior-strength/internal/domain"
)

// Classifier maps journal text to a sentiment label.
type Classifier interface {
	Classify(ctx context.Context, text string) (domain.Sentiment, error)
}

// systemPrompt steers the model to a single-word answer.
const systemPrompt = `You are a sentiment analysis assistant. Analyze the sentiment of workout journal entries and respond with only one word: "positive", "negative", or "neutral". Focus on the overall emotional tone and physical feeling expressed.`

// RemoteClassifier calls an OpenAI-compatible chat completions endpoint.
type RemoteClassifier struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewRemoteClassifier creates a remote classifier. timeout bounds each call.
func NewRemoteClassifier(endpoint, apiKey, model string, timeout time.Duration) *RemoteClassifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteClassifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Classify asks the model for a one-word label.
func (c *RemoteClassifier) Classify(ctx context.Context, text string) (domain.Sentiment, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Analyze the sentiment of this workout journal entry: %q", text)},
		},
		MaxTokens:   10,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrClassifierUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", domain.ErrClassifierUnavailable)
	}

	label := domain.Sentiment(strings.ToLower(strings.TrimSpace(parsed.Choices[0].Message.Content)))
	if !label.Valid() {
		return "", fmt.Errorf("unexpected label %q", label)
	}
	return label, nil
}

// Analyzer combines the primary classifier with the keyword fallback.
// Analyze always returns a valid label — classification failure is
// recovered locally and never surfaced to callers.
type Analyzer struct {
	primary Classifier
}

// NewAnalyzer creates an analyzer. primary may be nil, in which case only
// the keyword heuristic runs.
func NewAnalyzer(primary Classifier) *Analyzer {
	return &Analyzer{primary: primary}
}

// Analyze classifies text, falling back to keywords when the primary
// classifier fails. Empty text is neutral.
func (a *Analyzer) Analyze(ctx context.Context, text string) domain.Sentiment {
	if strings.TrimSpace(text) == "" {
		return domain.SentimentNeutral
	}

	if a.primary != nil {
		label, err := a.primary.Classify(ctx, text)
		if err == nil {
			return label
		}
		log.Printf("[sentiment] classifier failed, using keyword fallback: %v", err)
	}

	return KeywordSentiment(text)
}
