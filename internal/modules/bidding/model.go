// README: Bidding session phases, snapshots, and event definitions.
package bidding

import (
	"context"
	"time"

	"seabid/internal/modules/trip"
	"seabid/internal/types"
)

// Phase is the lifecycle of one solicitation cycle.
type Phase string

const (
	// PhaseIdle means no active request.
	PhaseIdle Phase = "IDLE"
	// PhaseCollecting means generation has been dispatched and arrivals may
	// still be in flight.
	PhaseCollecting Phase = "COLLECTING"
	// PhaseDoneEmpty means generation finished with zero bids; the angler
	// must resubmit to try again.
	PhaseDoneEmpty Phase = "DONE_EMPTY"
	// PhaseDoneWithBids means every scheduled bid has arrived.
	PhaseDoneWithBids Phase = "DONE_WITH_BIDS"
)

// Snapshot is the read model handed to the bidding surface. Bids are always
// ordered by ascending price, whatever order they arrived in.
type Snapshot struct {
	Request      *trip.Request `json:"request,omitempty"`
	Bids         []trip.Bid    `json:"bids"`
	Phase        Phase         `json:"phase"`
	NewBidNotify bool          `json:"new_bid_notify"`
}

type EventKind string

const (
	EventBidArrived       EventKind = "BID_ARRIVED"
	EventBiddingDone      EventKind = "BIDDING_DONE"
	EventSessionCancelled EventKind = "SESSION_CANCELLED"
)

// Event is published on every observable session change so clients off the
// bidding surface still learn about arrivals.
type Event struct {
	Kind      EventKind `json:"kind"`
	RequestID types.ID  `json:"request_id"`
	Bid       *trip.Bid `json:"bid,omitempty"`
	BidCount  int       `json:"bid_count"`
	At        time.Time `json:"at"`
}

// Notifier fans session events out to interested clients. Publish must not
// block the session lock for long; failures are logged, never propagated.
type Notifier interface {
	Publish(ctx context.Context, e Event) error
}

// NopNotifier drops every event.
type NopNotifier struct{}

func (NopNotifier) Publish(ctx context.Context, e Event) error { return nil }
