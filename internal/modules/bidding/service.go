// README: Request/bid orchestrator; paces bid arrivals and guards stale timers.
package bidding

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	mrand "math/rand"
	"sort"
	"sync"
	"time"

	"seabid/internal/config"
	"seabid/internal/modules/trip"
	"seabid/internal/types"
)

var (
	ErrInvalidState = errors.New("no active request")
	ErrBidNotFound  = errors.New("bid not found")
	ErrBadRequest   = errors.New("bad request")
)

// Source is the bid-generation collaborator. Errors and malformed output are
// never surfaced to the angler; they degrade to an empty result.
type Source interface {
	GenerateBids(ctx context.Context, req trip.Request) ([]trip.Bid, error)
}

// Ledger is the slice of the trip module the orchestrator commits into.
type Ledger interface {
	CreateFromSelection(ctx context.Context, req trip.Request, bid trip.Bid) (*trip.Trip, error)
	CloseLostQuotes(ctx context.Context, requestID, winningBidID types.ID) error
}

// Service owns at most one live solicitation session. Every bid arrival is
// scheduled on its own timer tied to the session's context; a superseded or
// cancelled session invalidates all pending timers at once, and late
// callbacks additionally re-check the submission generation before touching
// shared state.
type Service struct {
	source   Source
	ledger   Ledger
	notifier Notifier
	cfg      config.BiddingConfig

	mu   sync.Mutex
	sess *session
	gen  uint64
}

type session struct {
	request trip.Request
	bids    []trip.Bid
	phase   Phase
	inRoom  bool
	newBid  bool
	pending int
	gen     uint64
	cancel  context.CancelFunc
}

func NewService(source Source, ledger Ledger, notifier Notifier, cfg config.BiddingConfig) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if cfg.FirstBidDelay <= 0 {
		cfg.FirstBidDelay = 300 * time.Millisecond
	}
	if cfg.ArrivalStep <= 0 {
		cfg.ArrivalStep = 600 * time.Millisecond
	}
	return &Service{source: source, ledger: ledger, notifier: notifier, cfg: cfg}
}

type SubmitCommand struct {
	Request trip.Request
}

type SelectCommand struct {
	BidID types.ID
}

// Submit starts a new solicitation cycle. Any prior session is superseded and
// its pending arrivals invalidated. Generation runs detached from the caller's
// context; the angler may leave the surface while bids trickle in.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (types.ID, error) {
	req := cmd.Request
	if req.City == "" || req.Date == "" || req.People < 1 {
		return "", ErrBadRequest
	}
	if req.ID == "" {
		req.ID = newRequestID()
	}
	req.CreatedAt = time.Now()

	sctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.sess != nil {
		s.sess.cancel()
	}
	s.gen++
	gen := s.gen
	s.sess = &session{
		request: req,
		phase:   PhaseCollecting,
		inRoom:  true,
		gen:     gen,
		cancel:  cancel,
	}
	s.mu.Unlock()

	go s.collect(sctx, gen, req)
	return req.ID, nil
}

// collect dispatches the one real suspension point (the bid source) and
// schedules the paced arrivals.
func (s *Service) collect(ctx context.Context, gen uint64, req trip.Request) {
	bids, err := s.source.GenerateBids(ctx, req)
	if err != nil {
		// Fallback-to-empty policy: the angler sees "no offers", never an error.
		log.Printf("bidding: bid source failed for %s, degrading to empty: %v", req.ID, err)
		s.finishEmpty(gen)
		return
	}
	if len(bids) == 0 {
		s.finishEmpty(gen)
		return
	}

	s.mu.Lock()
	if s.sess == nil || s.sess.gen != gen {
		s.mu.Unlock()
		log.Printf("bidding: request %s superseded before arrivals were scheduled", req.ID)
		return
	}
	s.sess.pending = len(bids)
	s.mu.Unlock()

	for i, bid := range bids {
		go s.arrive(ctx, gen, bid, s.arrivalDelay(i))
	}
}

// arrivalDelay implements the pacing protocol: index 0 lands after a fixed
// short delay for instant first feedback, index i after i steps plus uniform
// jitter.
func (s *Service) arrivalDelay(i int) time.Duration {
	if i == 0 {
		return s.cfg.FirstBidDelay
	}
	d := time.Duration(i) * s.cfg.ArrivalStep
	if s.cfg.ArrivalJitter > 0 {
		d += time.Duration(mrand.Int63n(int64(s.cfg.ArrivalJitter)))
	}
	return d
}

func (s *Service) arrive(ctx context.Context, gen uint64, bid trip.Bid, delay time.Duration) {
	select {
	case <-time.After(delay):
		s.deliver(gen, bid)
	case <-ctx.Done():
		// Session cancelled or superseded before this timer fired; a no-op,
		// not an error.
		log.Printf("bidding: dropped arrival timer for bid %s (session gone)", bid.ID)
	}
}

// deliver appends one bid to the live collection. The generation check is the
// stale-timer guard: a callback scheduled for an abandoned request must never
// mutate the current session.
func (s *Service) deliver(gen uint64, bid trip.Bid) {
	s.mu.Lock()
	sess := s.sess
	if sess == nil || sess.gen != gen {
		s.mu.Unlock()
		log.Printf("bidding: dropped stale bid %s for superseded request", bid.ID)
		return
	}

	insertByPrice(&sess.bids, bid)
	sess.pending--
	if !sess.inRoom {
		sess.newBid = true
	}
	done := sess.pending == 0
	if done {
		sess.phase = PhaseDoneWithBids
	}
	reqID := sess.request.ID
	count := len(sess.bids)
	s.mu.Unlock()

	s.publish(Event{Kind: EventBidArrived, RequestID: reqID, Bid: &bid, BidCount: count, At: time.Now()})
	if done {
		s.publish(Event{Kind: EventBiddingDone, RequestID: reqID, BidCount: count, At: time.Now()})
	}
}

func (s *Service) finishEmpty(gen uint64) {
	s.mu.Lock()
	sess := s.sess
	if sess == nil || sess.gen != gen {
		s.mu.Unlock()
		return
	}
	sess.phase = PhaseDoneEmpty
	reqID := sess.request.ID
	s.mu.Unlock()

	s.publish(Event{Kind: EventBiddingDone, RequestID: reqID, At: time.Now()})
}

// Select commits the chosen bid into the ledger and ends the cycle. The
// remaining unselected bids are discarded, not retained.
func (s *Service) Select(ctx context.Context, cmd SelectCommand) (*trip.Trip, error) {
	s.mu.Lock()
	sess := s.sess
	if sess == nil {
		s.mu.Unlock()
		return nil, ErrInvalidState
	}
	var chosen *trip.Bid
	for i := range sess.bids {
		if sess.bids[i].ID == cmd.BidID {
			b := sess.bids[i].Clone()
			chosen = &b
			break
		}
	}
	if chosen == nil {
		s.mu.Unlock()
		return nil, ErrBidNotFound
	}
	req := sess.request
	sess.cancel()
	s.sess = nil
	s.mu.Unlock()

	t, err := s.ledger.CreateFromSelection(ctx, req, *chosen)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.CloseLostQuotes(ctx, req.ID, chosen.ID); err != nil {
		log.Printf("bidding: closing lost quotes for %s failed: %v", req.ID, err)
	}
	return t, nil
}

// Cancel discards the request and every collected or pending bid.
func (s *Service) Cancel(ctx context.Context) error {
	s.mu.Lock()
	sess := s.sess
	if sess == nil {
		s.mu.Unlock()
		return ErrInvalidState
	}
	sess.cancel()
	reqID := sess.request.ID
	s.sess = nil
	s.mu.Unlock()

	s.publish(Event{Kind: EventSessionCancelled, RequestID: reqID, At: time.Now()})
	return nil
}

// OpenRoom marks the angler as watching the bidding surface and clears the
// new-bid notification flag.
func (s *Service) OpenRoom(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return ErrInvalidState
	}
	s.sess.inRoom = true
	s.sess.newBid = false
	return nil
}

// LeaveRoom re-arms the notification flag for arrivals while away.
func (s *Service) LeaveRoom(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return ErrInvalidState
	}
	s.sess.inRoom = false
	return nil
}

// Snapshot returns the current read model. With no session it reports an idle
// phase rather than an error, so polling surfaces stay simple.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return Snapshot{Phase: PhaseIdle, Bids: []trip.Bid{}}
	}
	out := Snapshot{
		Phase:        s.sess.phase,
		NewBidNotify: s.sess.newBid,
		Bids:         make([]trip.Bid, 0, len(s.sess.bids)),
	}
	req := s.sess.request
	out.Request = &req
	for _, b := range s.sess.bids {
		out.Bids = append(out.Bids, b.Clone())
	}
	return out
}

func (s *Service) publish(e Event) {
	if err := s.notifier.Publish(context.Background(), e); err != nil {
		log.Printf("bidding: publish %s failed: %v", e.Kind, err)
	}
}

// insertByPrice keeps the collection sorted ascending by price; equal prices
// keep arrival order.
func insertByPrice(bids *[]trip.Bid, bid trip.Bid) {
	i := sort.Search(len(*bids), func(i int) bool {
		return (*bids)[i].Price.Amount > bid.Price.Amount
	})
	*bids = append(*bids, trip.Bid{})
	copy((*bids)[i+1:], (*bids)[i:])
	(*bids)[i] = bid
}

func newRequestID() types.ID {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return types.ID("req-" + hex.EncodeToString(b[:]))
}
