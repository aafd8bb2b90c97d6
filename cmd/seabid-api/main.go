// README: Entry point; loads config, wires services, starts HTTP server and tickers.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"seabid/internal/ai"
	"seabid/internal/config"
	httptransport "seabid/internal/http"
	"seabid/internal/infra"
	"seabid/internal/modules/bidding"
	"seabid/internal/modules/routes"
	"seabid/internal/modules/trip"
	"seabid/internal/payment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var source bidding.Source
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiSource(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		source = gemini
	} else {
		log.Print("GEMINI_API_KEY not set; serving static bids")
		source = ai.StaticSource{}
	}

	var notifier bidding.Notifier = bidding.NopNotifier{}
	if cfg.Redis.Addr != "" {
		notifier = bidding.NewRedisNotifier(infra.NewRedis(cfg.Redis.Addr))
	}

	tripStore := trip.NewStore()
	tripSvc := trip.NewService(tripStore, payment.Simulator{}, cfg.Payment.Window, cfg.Payment.ExpiryTick)

	routeStore := routes.NewStore()
	routeSvc := routes.NewService(routeStore)

	biddingSvc := bidding.NewService(source, tripSvc, notifier, cfg.Bidding)

	handler := httptransport.NewRouter(biddingSvc, tripSvc, routeSvc)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go tripSvc.RunPaymentExpiry(ctx)

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
