package server

import (
	"context"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/poller"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}
