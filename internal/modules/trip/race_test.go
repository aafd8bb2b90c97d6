// README: Concurrency tests for ledger transitions (run with -race).
package trip

import (
	"context"
	"sync"
	"testing"
)

func TestConcurrentPayVsCancel(t *testing.T) {
	svc := NewService(NewStore(), nil, 0, 0)
	ctx := context.Background()

	tr := mustCreateTrip(t, svc)

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- svc.Pay(ctx, PayCommand{OrderID: tr.OrderID})
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- svc.Cancel(ctx, CancelCommand{OrderID: tr.OrderID, Reason: CannedCancelReasons[0]})
	}()

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil && err != ErrIllegalTransition {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// pay-then-cancel lands on CANCELLED (paid orders may still cancel);
	// cancel-then-pay leaves the pay rejected and the order CANCELLED; only a
	// lone pay leaves it PAID.
	got, err := svc.Get(ctx, tr.OrderID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusPaid && got.Status != StatusCancelled {
		t.Fatalf("unexpected final status: %s", got.Status)
	}
}

func TestConcurrentBoardSameOrder(t *testing.T) {
	svc := NewService(NewStore(), nil, 0, 0)
	ctx := context.Background()

	tr := mustCreateTrip(t, svc)
	if err := svc.Pay(ctx, PayCommand{OrderID: tr.OrderID}); err != nil {
		t.Fatalf("pay: %v", err)
	}

	const scanners = 5
	errs := make(chan error, scanners)
	start := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < scanners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs <- svc.Board(ctx, BoardCommand{OrderID: tr.OrderID, Code: tr.VerifyCode})
		}()
	}

	close(start)
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if err != ErrIllegalTransition {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 {
		t.Fatalf("expected exactly 1 boarding to win, got %d", success)
	}
	assertStatus(t, svc, tr.OrderID, StatusInService)
}

func TestConcurrentQuoteResubmit(t *testing.T) {
	svc := NewService(NewStore(), nil, 0, 0)
	ctx := context.Background()

	// seed so every resubmit reuses the same order ID
	first, err := svc.SubmitQuote(ctx, QuoteCommand{Request: sampleRequest("req-q"), Bid: sampleBid("b0", "c1", 500)})
	if err != nil {
		t.Fatalf("seed quote: %v", err)
	}

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(price int64) {
			defer wg.Done()
			_, _ = svc.SubmitQuote(ctx, QuoteCommand{Request: sampleRequest("req-q"), Bid: sampleBid("b", "c1", price)})
		}(int64(500 + i))
	}
	wg.Wait()

	quotes, _ := svc.ListForCaptain(ctx, TabBidding)
	if len(quotes) != 1 {
		t.Fatalf("expected 1 live quote after resubmits, got %d", len(quotes))
	}
	if quotes[0].OrderID != first.OrderID {
		t.Fatalf("resubmits moved to order %s, want %s", quotes[0].OrderID, first.OrderID)
	}
}
