package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client calls a remote relay over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// NewClient targets the relay at baseURL, e.g. "http://localhost:4000".
func NewClient(baseURL string, hc *http.Client, logger *slog.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/send-email",
		http:     hc,
		logger:   logger,
	}
}

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) Deliver(ctx context.Context, m Message) Outcome {
	resp, err := c.post(ctx, m)
	if err != nil {
		c.logger.Error("mail relay unreachable", "endpoint", c.endpoint, "error", err)
		return Outcome{Message: MsgUnavailable}
	}
	if resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = MsgSent
		}
		return Outcome{OK: true, Message: msg}
	}
	if resp.Error == "" {
		return Outcome{Message: MsgUnavailable}
	}
	return Outcome{Message: resp.Error}
}

func (c *Client) post(ctx context.Context, m Message) (relayResponse, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return relayResponse{}, fmt.Errorf("encode message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return relayResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return relayResponse{}, fmt.Errorf("post: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err != nil {
		return relayResponse{}, fmt.Errorf("read response: %w", err)
	}
	var out relayResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return relayResponse{}, fmt.Errorf("decode %d response: %w", res.StatusCode, err)
	}
	if res.StatusCode >= 300 {
		out.Success = false
	}
	return out, nil
}

var _ Relay = (*Client)(nil)
