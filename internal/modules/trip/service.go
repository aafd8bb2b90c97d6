// README: Trip service implements ledger state transitions and role queries.
package trip

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"strconv"
	"time"

	"seabid/internal/types"
)

var (
	ErrNotFound          = errors.New("trip not found")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrVerifyCode        = errors.New("verification code mismatch")
	ErrReasonRequired    = errors.New("cancel reason required")
	ErrBadRequest        = errors.New("bad request")
	ErrPaymentDeclined   = errors.New("deposit capture declined")
)

// Payments captures the trip deposit. The simulated implementation always
// succeeds; a declined capture leaves the trip in PENDING_PAYMENT.
type Payments interface {
	CaptureDeposit(ctx context.Context, orderID types.ID, amount types.Money) error
}

type Service struct {
	store    *Store
	payments Payments

	// payWindow is how long a trip may sit unpaid before the expiry ticker
	// auto-cancels it.
	payWindow  time.Duration
	expiryTick time.Duration
}

func NewService(store *Store, payments Payments, payWindow, expiryTick time.Duration) *Service {
	if payWindow <= 0 {
		payWindow = 15 * time.Minute
	}
	if expiryTick <= 0 {
		expiryTick = 30 * time.Second
	}
	return &Service{store: store, payments: payments, payWindow: payWindow, expiryTick: expiryTick}
}

type PayCommand struct {
	OrderID types.ID
}

type BoardCommand struct {
	OrderID types.ID
	Code    string
}

type CompleteCommand struct {
	OrderID types.ID
}

type CancelCommand struct {
	OrderID types.ID
	Reason  string
}

type ReviewCommand struct {
	OrderID types.ID
}

type QuoteCommand struct {
	Request Request
	Bid     Bid
}

// CreateFromSelection freezes the accepted bid into a committed order. The
// request/bid pair is deep-copied at this moment and never changes afterwards.
func (s *Service) CreateFromSelection(ctx context.Context, req Request, bid Bid) (*Trip, error) {
	t := &Trip{
		OrderID:    newOrderID(),
		Request:    req,
		Bid:        bid.Clone(),
		VerifyCode: newVerifyCode(),
		Status:     StatusPendingPayment,
		CreatedAt:  time.Now(),
	}
	if err := s.store.Upsert(ctx, t); err != nil {
		return nil, err
	}
	c := t.Clone()
	return &c, nil
}

// SubmitQuote records a captain's standing quote against an open request as a
// speculative BIDDING trip. A captain holds at most one live quote per
// request; resubmitting replaces the earlier one under the same order ID.
func (s *Service) SubmitQuote(ctx context.Context, cmd QuoteCommand) (*Trip, error) {
	if cmd.Request.ID == "" || cmd.Bid.CaptainID == "" || cmd.Bid.Price.Amount <= 0 {
		return nil, ErrBadRequest
	}
	orderID := newOrderID()
	if prev, err := s.store.FindQuote(ctx, cmd.Request.ID, cmd.Bid.CaptainID); err == nil {
		orderID = prev.OrderID
	}
	t := &Trip{
		OrderID:    orderID,
		Request:    cmd.Request,
		Bid:        cmd.Bid.Clone(),
		VerifyCode: newVerifyCode(),
		Status:     StatusBidding,
		CreatedAt:  time.Now(),
	}
	if err := s.store.Upsert(ctx, t); err != nil {
		return nil, err
	}
	c := t.Clone()
	return &c, nil
}

// CloseLostQuotes cancels every speculative quote on a request except the
// winner's. Called once when the angler commits to a bid.
func (s *Service) CloseLostQuotes(ctx context.Context, requestID types.ID, winningBidID types.ID) error {
	quotes, err := s.store.List(ctx, func(t *Trip) bool {
		return t.Status == StatusBidding && t.Request.ID == requestID && t.Bid.ID != winningBidID
	})
	if err != nil {
		return err
	}
	for _, q := range quotes {
		ok, err := s.store.UpdateStatus(ctx, q.OrderID, StatusBidding, StatusCancelled, func(t *Trip) {
			t.CancelReason = "竞标未中选"
			t.CancelledFrom = CancelledFromBidding
		})
		if err != nil {
			return err
		}
		if !ok {
			log.Printf("trip: quote %s changed state before close, skipped", q.OrderID)
		}
	}
	return nil
}

// Pay captures the deposit and moves the trip to PAID.
func (s *Service) Pay(ctx context.Context, cmd PayCommand) error {
	t, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if !CanTransition(t.Status, StatusPaid) {
		return ErrIllegalTransition
	}
	if s.payments != nil {
		if err := s.payments.CaptureDeposit(ctx, t.OrderID, t.Bid.Price); err != nil {
			return ErrPaymentDeclined
		}
	}
	ok, err := s.store.UpdateStatus(ctx, t.OrderID, StatusPendingPayment, StatusPaid, nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrIllegalTransition
	}
	return nil
}

// Board verifies the boarding code and starts the service leg. The code is
// the sole credential for PAID→IN_SERVICE; a mismatch changes nothing.
func (s *Service) Board(ctx context.Context, cmd BoardCommand) error {
	t, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if !CanTransition(t.Status, StatusInService) {
		return ErrIllegalTransition
	}
	if cmd.Code != t.VerifyCode {
		return ErrVerifyCode
	}
	ok, err := s.store.UpdateStatus(ctx, t.OrderID, StatusPaid, StatusInService, nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrIllegalTransition
	}
	return nil
}

// Complete ends the service leg; captain-side operation.
func (s *Service) Complete(ctx context.Context, cmd CompleteCommand) error {
	t, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if !CanTransition(t.Status, StatusCompleted) {
		return ErrIllegalTransition
	}
	ok, err := s.store.UpdateStatus(ctx, t.OrderID, StatusInService, StatusCompleted, nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrIllegalTransition
	}
	return nil
}

// Cancel closes the trip with a reason, canned or free text. The origin tag
// records whether the trip was still a speculative quote when it died.
func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	if cmd.Reason == "" {
		return ErrReasonRequired
	}
	t, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if !CanTransition(t.Status, StatusCancelled) {
		return ErrIllegalTransition
	}
	from := t.Status
	origin := CancelledFromCommitted
	if from == StatusBidding {
		origin = CancelledFromBidding
	}
	ok, err := s.store.UpdateStatus(ctx, t.OrderID, from, StatusCancelled, func(t *Trip) {
		t.CancelReason = cmd.Reason
		t.CancelledFrom = origin
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrIllegalTransition
	}
	return nil
}

// Review marks a completed trip as reviewed. Reviewing twice is a no-op.
func (s *Service) Review(ctx context.Context, cmd ReviewCommand) error {
	ok, err := s.store.SetReviewed(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrIllegalTransition
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Trip, error) {
	return s.store.Get(ctx, id)
}

// ListForAngler returns the angler's order history, newest first. Speculative
// BIDDING quotes never appear on the angler side.
func (s *Service) ListForAngler(ctx context.Context) ([]*Trip, error) {
	return s.store.List(ctx, func(t *Trip) bool {
		return t.Status != StatusBidding
	})
}

// ListForCaptain partitions the ledger into the captain's three tabs.
func (s *Service) ListForCaptain(ctx context.Context, tab Tab) ([]*Trip, error) {
	switch tab {
	case TabBidding:
		return s.store.List(ctx, func(t *Trip) bool {
			return t.Status == StatusBidding ||
				t.Status == StatusPendingPayment ||
				(t.Status == StatusCancelled && t.CancelledFrom == CancelledFromBidding)
		})
	case TabOngoing:
		return s.store.List(ctx, func(t *Trip) bool {
			return t.Status == StatusPaid || t.Status == StatusInService
		})
	case TabCompleted:
		return s.store.List(ctx, func(t *Trip) bool {
			return t.Status == StatusCompleted ||
				(t.Status == StatusCancelled && t.CancelledFrom == CancelledFromCommitted)
		})
	default:
		return nil, ErrBadRequest
	}
}

// RunPaymentExpiry auto-cancels trips that sat in PENDING_PAYMENT past the
// payment window. A pay racing the ticker either lands before the CAS or
// loses cleanly.
func (s *Service) RunPaymentExpiry(ctx context.Context) {
	ticker := time.NewTicker(s.expiryTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.expireUnpaid(ctx)
		}
	}
}

func (s *Service) expireUnpaid(ctx context.Context) {
	cutoff := time.Now().Add(-s.payWindow)
	stale, err := s.store.List(ctx, func(t *Trip) bool {
		return t.Status == StatusPendingPayment && t.CreatedAt.Before(cutoff)
	})
	if err != nil {
		log.Printf("trip: expiry scan failed: %v", err)
		return
	}
	for _, t := range stale {
		ok, err := s.store.UpdateStatus(ctx, t.OrderID, StatusPendingPayment, StatusCancelled, func(t *Trip) {
			t.CancelReason = "支付超时，订单自动关闭"
			t.CancelledFrom = CancelledFromCommitted
		})
		if err != nil {
			log.Printf("trip: expire %s failed: %v", t.OrderID, err)
			continue
		}
		if ok {
			log.Printf("trip: %s cancelled after unpaid window", t.OrderID)
		}
	}
}

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newOrderID mints order numbers in the platform's "HD" + base36 format.
func newOrderID() types.ID {
	b := make([]byte, 9)
	for i := range b {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(orderIDAlphabet))))
		b[i] = orderIDAlphabet[n.Int64()]
	}
	return types.ID("HD" + string(b))
}

// newVerifyCode mints the 6-digit boarding credential. Assigned once at trip
// creation and never rotated.
func newVerifyCode() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(900000))
	return strconv.FormatInt(100000+n.Int64(), 10)
}
