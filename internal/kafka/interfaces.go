package kafka

import (
	"context"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

// Publisher delivers cart events to the events topic keyed by session, so all
// events of one cart land on the same partition in mutation order.
type Publisher interface {
	Publish(ctx context.Context, event *models.CartEvent) error
	Close() error
}
