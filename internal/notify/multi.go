package notify

import (
	"context"
	"errors"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

var _ domain.Notifier = Multi(nil)

// Multi delivers every message to each notifier in order. A failing
// notifier does not stop the rest; the errors are joined.
type Multi []domain.Notifier

// Notify fans out a normal notification.
func (m Multi) Notify(ctx context.Context, message string) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NotifyUrgent fans out an urgent notification.
func (m Multi) NotifyUrgent(ctx context.Context, message string) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.NotifyUrgent(ctx, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
