package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/danispp/Task-Management/internal/application/ports"
)

const (
	HeaderEvent     = "X-Taskman-Event"
	HeaderSignature = "X-Taskman-Signature"
)

// Emitter POSTs audit events to one endpoint. With a secret, every body is signed with
// HMAC-SHA256 and the digest sent in HeaderSignature as "sha256=<hex>".
type Emitter struct {
	client *http.Client
	url    string
	secret []byte
	now    func() time.Time
}

type Option func(*Emitter)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(e *Emitter) { e.client = c }
}

func WithSecret(secret string) Option {
	return func(e *Emitter) { e.secret = []byte(secret) }
}

func NewEmitter(url string, opts ...Option) *Emitter {
	e := &Emitter{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type delivery struct {
	ports.AuditEvent
	DeliveredAt time.Time `json:"delivered_at"`
}

func (e *Emitter) Emit(ctx context.Context, event ports.AuditEvent) error {
	body, err := json.Marshal(delivery{AuditEvent: event, DeliveredAt: e.now().UTC()})
	if err != nil {
		return fmt.Errorf("webhook: marshal %s: %w", event.Event, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "taskman-webhook/1")
	req.Header.Set(HeaderEvent, event.Event)
	if len(e.secret) > 0 {
		req.Header.Set(HeaderSignature, "sha256="+Sign(e.secret, body))
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: deliver %s: %w", event.Event, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Status: resp.StatusCode}
	}
	return nil
}

// Sign returns the hex HMAC-SHA256 of body. Receivers recompute it to authenticate a delivery.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// StatusError is a non-2xx answer from the endpoint.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook: endpoint returned status %d", e.Status)
}

// Retryable is false for client errors other than 408 and 429; those will not succeed on retry.
func (e *StatusError) Retryable() bool {
	if e.Status == http.StatusRequestTimeout || e.Status == http.StatusTooManyRequests {
		return true
	}
	return e.Status < 400 || e.Status >= 500
}

var _ ports.WebhookEmitter = (*Emitter)(nil)
