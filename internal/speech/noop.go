package speech

import (
	"context"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

var (
	_ domain.Alerter = (*NoopAlerter)(nil)
	_ domain.Speaker = (*NoopSpeaker)(nil)
)

// NoopAlerter stands in when sound is disabled or no audio device exists.
type NoopAlerter struct {
	log *logger.Logger
}

// NewNoopAlerter creates a silent alerter.
func NewNoopAlerter(log *logger.Logger) *NoopAlerter {
	return &NoopAlerter{log: log}
}

// Alert does nothing.
func (n *NoopAlerter) Alert(ctx context.Context) error {
	n.log.Debug("alert no-op")
	return nil
}

// NoopSpeaker stands in when speech is disabled or unconfigured.
type NoopSpeaker struct {
	log *logger.Logger
}

// NewNoopSpeaker creates a silent speaker.
func NewNoopSpeaker(log *logger.Logger) *NoopSpeaker {
	return &NoopSpeaker{log: log}
}

// Speak returns ErrNotImplemented so callers can tell the user speech is off.
func (n *NoopSpeaker) Speak(ctx context.Context, text string) error {
	n.log.Debug("speech no-op: would say %q", truncateForLog(text, 40))
	return domain.ErrNotImplemented
}

// Stop does nothing.
func (n *NoopSpeaker) Stop() {}
