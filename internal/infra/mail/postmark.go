// Package mail sends email through the Postmark transactional API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/phildaponte/senior-strength/internal/domain"
)

// DefaultEndpoint is the Postmark single-email API.
const DefaultEndpoint = "https://api.postmarkapp.com/email"

// PostmarkClient is a thin JSON client for the Postmark email API.
type PostmarkClient struct {
	endpoint    string
	serverToken string
	from        string
	client      *http.Client
}

// NewPostmarkClient creates a Postmark client. endpoint defaults to the
// public API when empty; from is the sender address on every message.
func NewPostmarkClient(endpoint, serverToken, from string, timeout time.Duration) *PostmarkClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &PostmarkClient{
		endpoint:    endpoint,
		serverToken: serverToken,
		from:        from,
		client:      &http.Client{Timeout: timeout},
	}
}

type postmarkMessage struct {
	From          string `json:"From"`
	To            string `json:"To"`
	Subject       string `json:"Subject"`
	HTMLBody      string `json:"HtmlBody"`
	TextBody      string `json:"TextBody"`
	MessageStream string `json:"MessageStream"`
}

// Send delivers one email with paired HTML and text bodies.
func (c *PostmarkClient) Send(ctx context.Context, msg domain.EmailMessage) error {
	body, err := json.Marshal(postmarkMessage{
		From:          c.from,
		To:            msg.To,
		Subject:       msg.Subject,
		HTMLBody:      msg.HTMLBody,
		TextBody:      msg.TextBody,
		MessageStream: "outbound",
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("email send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email send: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
