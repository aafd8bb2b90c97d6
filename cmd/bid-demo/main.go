// README: Offline demo driving one full request→bids→select→pay→board→complete cycle.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"seabid/internal/ai"
	"seabid/internal/config"
	"seabid/internal/modules/bidding"
	"seabid/internal/modules/trip"
	"seabid/internal/payment"
)

func main() {
	ctx := context.Background()

	tripSvc := trip.NewService(trip.NewStore(), payment.Simulator{}, 15*time.Minute, 30*time.Second)
	biddingSvc := bidding.NewService(ai.StaticSource{}, tripSvc, bidding.NopNotifier{}, config.BiddingConfig{})

	reqID, err := biddingSvc.Submit(ctx, bidding.SubmitCommand{
		Request: trip.Request{
			City:    "三亚",
			Date:    "2025-12-25",
			People:  4,
			Style:   "近海路亚",
			Type:    trip.OrderShare,
			Remarks: "需要提供饮用水",
		},
	})
	if err != nil {
		log.Fatalf("submit: %v", err)
	}
	fmt.Printf("request %s submitted, waiting for bids...\n", reqID)

	var snap bidding.Snapshot
	for {
		snap = biddingSvc.Snapshot(ctx)
		if snap.Phase == bidding.PhaseDoneWithBids || snap.Phase == bidding.PhaseDoneEmpty {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if len(snap.Bids) == 0 {
		log.Fatal("no bids arrived")
	}
	for _, b := range snap.Bids {
		fmt.Printf("  %s / %s — %s (%.1fkm, rating %.1f)\n",
			b.CaptainName, b.BoatName, b.Price, b.DistanceKm, b.Rating)
	}

	t, err := biddingSvc.Select(ctx, bidding.SelectCommand{BidID: snap.Bids[0].ID})
	if err != nil {
		log.Fatalf("select: %v", err)
	}
	fmt.Printf("selected %s → order %s (%s), verify code %s\n",
		t.Bid.CaptainName, t.OrderID, t.Status, t.VerifyCode)

	if err := tripSvc.Pay(ctx, trip.PayCommand{OrderID: t.OrderID}); err != nil {
		log.Fatalf("pay: %v", err)
	}
	if err := tripSvc.Board(ctx, trip.BoardCommand{OrderID: t.OrderID, Code: t.VerifyCode}); err != nil {
		log.Fatalf("board: %v", err)
	}
	if err := tripSvc.Complete(ctx, trip.CompleteCommand{OrderID: t.OrderID}); err != nil {
		log.Fatalf("complete: %v", err)
	}
	if err := tripSvc.Review(ctx, trip.ReviewCommand{OrderID: t.OrderID}); err != nil {
		log.Fatalf("review: %v", err)
	}

	final, _ := tripSvc.Get(ctx, t.OrderID)
	fmt.Printf("order %s finished: %s, reviewed=%v\n", final.OrderID, final.Status, final.HasReviewed)
}
