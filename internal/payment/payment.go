// README: Deposit-capture collaborator; the simulator stands in for a real gateway.
package payment

import (
	"context"
	"log"
	"time"

	"seabid/internal/types"
)

// Simulator approves every capture after an optional settle delay. It exists
// so the trip lifecycle can be exercised end to end without a gateway
// account; swap in a real implementation behind the same method.
type Simulator struct {
	// Delay imitates gateway settle time. Zero means instant capture.
	Delay time.Duration
}

func (s Simulator) CaptureDeposit(ctx context.Context, orderID types.ID, amount types.Money) error {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	log.Printf("payment: captured deposit %s for order %s", amount, orderID)
	return nil
}
