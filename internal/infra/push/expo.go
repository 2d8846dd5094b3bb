// Package push sends push notifications through the Expo push service.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phildaponte/senior-strength/internal/domain"
)

// DefaultEndpoint is the Expo push API.
const DefaultEndpoint = "https://exp.host/--/api/v2/push/send"

// TicketStatus is the per-token outcome reported by the push service,
// parallel to the submitted message list.
type TicketStatus struct {
	OK      bool
	Message string // error detail when !OK
}

// ExpoClient is a thin JSON client for the Expo push API.
type ExpoClient struct {
	endpoint string
	client   *http.Client
}

// NewExpoClient creates an Expo push client. endpoint defaults to the
// public Expo API when empty.
func NewExpoClient(endpoint string, timeout time.Duration) *ExpoClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ExpoClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// expoMessage is the wire shape of one push message.
type expoMessage struct {
	To    string         `json:"to"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
	Sound string         `json:"sound"`
	Badge int            `json:"badge"`
}

type expoResponse struct {
	Data []struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

// SendBatch submits the messages in one request and returns per-token
// ticket statuses parallel to the input.
func (c *ExpoClient) SendBatch(ctx context.Context, msgs []domain.PushMessage) ([]TicketStatus, error) {
	if len(msgs) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	wire := make([]expoMessage, len(msgs))
	for i, m := range msgs {
		wire[i] = expoMessage{
			To:    m.Token,
			Title: m.Title,
			Body:  m.Body,
			Data:  m.Data,
			Sound: "default",
			Badge: 1,
		}
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("push send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("push send: status %d", resp.StatusCode)
	}

	var parsed expoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	if len(parsed.Data) != len(msgs) {
		return nil, fmt.Errorf("push send: %d tickets for %d messages", len(parsed.Data), len(msgs))
	}

	tickets := make([]TicketStatus, len(parsed.Data))
	for i, t := range parsed.Data {
		tickets[i] = TicketStatus{OK: t.Status == "ok", Message: t.Message}
	}
	return tickets, nil
}

// Send submits a single push message.
func (c *ExpoClient) Send(ctx context.Context, msg domain.PushMessage) error {
	tickets, err := c.SendBatch(ctx, []domain.PushMessage{msg})
	if err != nil {
		return err
	}
	if !tickets[0].OK {
		return fmt.Errorf("push rejected: %s", tickets[0].Message)
	}
	return nil
}
