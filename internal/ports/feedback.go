package ports

import (
	"context"

	"github.com/xvierd/prodvana-cli/internal/domain"
)

// Feedback signals the player when a session completes. Failures are not
// fatal to the caller.
// This is a driven port (implemented by adapters).
type Feedback interface {
	Celebrate(ctx context.Context, session domain.GameSession) error
}
