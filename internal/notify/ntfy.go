package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

var _ domain.Notifier = (*Ntfy)(nil)

const (
	userAgent      = "recipebox/0.1.0"
	defaultTimeout = 10 * time.Second
	messageTitle   = "Recipe Box"
)

// Ntfy posts notifications to an ntfy topic URL.
type Ntfy struct {
	endpoint string
	client   *http.Client
	log      *logger.Logger
}

// NewNtfy builds a push notifier for topic. A non-positive timeout uses
// the default.
func NewNtfy(topic string, timeout time.Duration, log *logger.Logger) *Ntfy {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Ntfy{
		endpoint: strings.TrimSpace(topic),
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

// Notify sends a default priority push.
func (n *Ntfy) Notify(ctx context.Context, message string) error {
	return n.send(ctx, payload{
		title:   messageTitle,
		message: message,
		tags:    []string{"recipebox"},
	})
}

// NotifyUrgent sends a high priority push, used for finished timers.
func (n *Ntfy) NotifyUrgent(ctx context.Context, message string) error {
	return n.send(ctx, payload{
		title:    messageTitle + " - Timer",
		message:  message,
		tags:     []string{"recipebox", "timer", "alarm_clock"},
		priority: "high",
	})
}

func (n *Ntfy) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil || n.endpoint == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Error("ntfy send failed: %v", err)
		return fmt.Errorf("send ntfy notification: %w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(body)), domain.ErrTransport)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	n.log.Debug("ntfy delivered: %s", data.message)
	return nil
}
