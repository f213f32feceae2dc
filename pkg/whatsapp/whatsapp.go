package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

// ErrTimeout marks a delivery failure caused by the gateway not answering in
// time. Callers use IsTimeout to decide whether a retry makes sense.
var ErrTimeout = errors.New("whatsapp: gateway timeout")

// Config holds the gateway connection settings.
type Config struct {
	BaseURL  string
	Token    string
	SenderID string
	Timeout  time.Duration
	Enabled  bool
}

// Client delivers rendered documents to a phone number through a WhatsApp
// business gateway. When the channel is disabled it logs and reports success
// so callers never block on a missing integration.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type outboundMessage struct {
	To       string            `json:"to"`
	From     string            `json:"from"`
	Type     string            `json:"type"`
	Document string            `json:"document"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Deliver posts the artifact to the gateway as a document message.
// Network timeouts and gateway timeout statuses are wrapped with ErrTimeout.
func (c *Client) Deliver(ctx context.Context, destination string, artifact []byte, metadata map[string]string) error {
	if !c.config.Enabled {
		log.Printf("WhatsApp channel disabled, skipping delivery to %s", destination)
		return nil
	}

	payload := outboundMessage{
		To:       destination,
		From:     c.config.SenderID,
		Type:     "document",
		Document: string(artifact),
		Metadata: metadata,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isNetworkTimeout(err) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("failed to reach gateway: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: gateway returned %d", ErrTimeout, resp.StatusCode)
	default:
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
}

// IsTimeout reports whether err was classified as a timeout by Deliver.
func IsTimeout(err error) bool {
	if errors.Is(err, ErrTimeout) {
		return true
	}
	return isNetworkTimeout(err)
}

func isNetworkTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
