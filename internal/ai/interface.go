// README: Bid-source contract; providers generate captain quotes for a request.
package ai

import (
	"context"

	"seabid/internal/modules/trip"
)

// Source generates captain bids for a trip request. Implementations may call
// a model provider or serve canned data; either way the orchestrator treats a
// failure the same as an empty result.
type Source interface {
	GenerateBids(ctx context.Context, req trip.Request) ([]trip.Bid, error)
}

var (
	_ Source = (*GeminiSource)(nil)
	_ Source = StaticSource{}
)
