// README: HTTP surface tests driving full flows through the gin router.
package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seabid/internal/ai"
	"seabid/internal/config"
	"seabid/internal/modules/bidding"
	"seabid/internal/modules/routes"
	"seabid/internal/modules/trip"
	"seabid/internal/payment"
)

// m is shorthand for JSON request bodies.
type m = map[string]any

func newTestRouter() http.Handler {
	trips := trip.NewService(trip.NewStore(), payment.Simulator{}, 0, 0)
	routeSvc := routes.NewService(routes.NewStore())
	bids := bidding.NewService(
		ai.StaticSource{Prices: []int64{580, 420, 900}},
		trips,
		bidding.NopNotifier{},
		config.BiddingConfig{FirstBidDelay: 5 * time.Millisecond, ArrivalStep: 15 * time.Millisecond},
	)
	return NewRouter(bids, trips, routeSvc)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func waitSnapshot(t *testing.T, h http.Handler, phase bidding.Phase) bidding.Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		w := doJSON(t, h, http.MethodGet, "/api/requests/active", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("snapshot status %d: %s", w.Code, w.Body.String())
		}
		var snap bidding.Snapshot
		decode(t, w, &snap)
		if snap.Phase == phase {
			return snap
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for phase %s", phase)
	return bidding.Snapshot{}
}

func TestFullTripFlowOverHTTP(t *testing.T) {
	h := newTestRouter()

	w := doJSON(t, h, http.MethodPost, "/api/requests", m{
		"city": "三亚", "date": "2025-12-25", "people": 4, "type": "SHARE",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("submit status %d: %s", w.Code, w.Body.String())
	}

	snap := waitSnapshot(t, h, bidding.PhaseDoneWithBids)
	if len(snap.Bids) != 3 || snap.Bids[0].Price.Amount != 420 {
		t.Fatalf("snapshot bids wrong: %d bids", len(snap.Bids))
	}

	w = doJSON(t, h, http.MethodPost, "/api/requests/select", m{"bid_id": snap.Bids[0].ID})
	if w.Code != http.StatusCreated {
		t.Fatalf("select status %d: %s", w.Code, w.Body.String())
	}
	var committed trip.Trip
	decode(t, w, &committed)
	if committed.Status != trip.StatusPendingPayment || committed.OrderID == "" {
		t.Fatalf("committed trip wrong: %s / %s", committed.OrderID, committed.Status)
	}

	base := fmt.Sprintf("/api/trips/%s", committed.OrderID)

	if w = doJSON(t, h, http.MethodPost, base+"/pay", nil); w.Code != http.StatusOK {
		t.Fatalf("pay status %d: %s", w.Code, w.Body.String())
	}

	// a wrong boarding code is forbidden and changes nothing
	if w = doJSON(t, h, http.MethodPost, base+"/board", m{"code": "000001"}); w.Code != http.StatusForbidden {
		t.Fatalf("wrong code status %d, want 403", w.Code)
	}
	if w = doJSON(t, h, http.MethodPost, base+"/board", m{"code": committed.VerifyCode}); w.Code != http.StatusOK {
		t.Fatalf("board status %d: %s", w.Code, w.Body.String())
	}
	if w = doJSON(t, h, http.MethodPost, base+"/complete", nil); w.Code != http.StatusOK {
		t.Fatalf("complete status %d: %s", w.Code, w.Body.String())
	}
	if w = doJSON(t, h, http.MethodPost, base+"/review", nil); w.Code != http.StatusOK {
		t.Fatalf("review status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, h, http.MethodGet, "/api/trips?role=angler", nil)
	var listResp struct {
		Trips []trip.Trip `json:"trips"`
	}
	decode(t, w, &listResp)
	if len(listResp.Trips) != 1 || listResp.Trips[0].Status != trip.StatusCompleted {
		t.Fatalf("angler list wrong: %d trips", len(listResp.Trips))
	}
	if !listResp.Trips[0].HasReviewed {
		t.Fatal("review not reflected in list")
	}
}

func TestCaptainPresetAndQuoteOverHTTP(t *testing.T) {
	h := newTestRouter()

	w := doJSON(t, h, http.MethodPost, "/api/captain/routes", m{
		"captain_id": "c1",
		"preset": m{
			"destination": "西鼓岛",
			"target_fish": "章红",
			"ocean_zone":  "FAR",
			"services":    []string{"gear", "bait"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save preset status %d: %s", w.Code, w.Body.String())
	}
	var preset trip.RoutePreset
	decode(t, w, &preset)
	if preset.Name != "西鼓岛钓章红" {
		t.Fatalf("preset name = %q", preset.Name)
	}

	w = doJSON(t, h, http.MethodGet, "/api/captain/routes?captain_id=c1", nil)
	var listResp struct {
		Presets []trip.RoutePreset `json:"presets"`
	}
	decode(t, w, &listResp)
	if len(listResp.Presets) != 1 {
		t.Fatalf("preset list = %d entries", len(listResp.Presets))
	}

	w = doJSON(t, h, http.MethodPost, "/api/captain/quotes", m{
		"request": m{"id": "req-open-1", "city": "三亚", "date": "2025-12-25", "people": 4},
		"bid": m{
			"id": "bid-c1", "captain_id": "c1", "captain_name": "老张船长",
			"price": m{"amount": 580, "currency": "CNY"},
		},
		"preset_id": preset.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("quote status %d: %s", w.Code, w.Body.String())
	}
	var quote trip.Trip
	decode(t, w, &quote)
	if quote.Status != trip.StatusBidding {
		t.Fatalf("quote status = %s", quote.Status)
	}
	if quote.Bid.Route == nil || quote.Bid.Route.ID != preset.ID {
		t.Fatal("preset not attached to the quote")
	}

	w = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/captain/routes/%s?captain_id=c1", preset.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete preset status %d: %s", w.Code, w.Body.String())
	}
}

func TestErrorStatusMapping(t *testing.T) {
	h := newTestRouter()

	if w := doJSON(t, h, http.MethodGet, "/api/trips/HD_MISSING", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown order status %d, want 404", w.Code)
	}
	if w := doJSON(t, h, http.MethodPost, "/api/requests/cancel", nil); w.Code != http.StatusConflict {
		t.Fatalf("cancel without session status %d, want 409", w.Code)
	}
	if w := doJSON(t, h, http.MethodPost, "/api/requests/select", m{}); w.Code != http.StatusBadRequest {
		t.Fatalf("select without bid_id status %d, want 400", w.Code)
	}
	if w := doJSON(t, h, http.MethodPost, "/api/requests", m{"city": "三亚"}); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid request status %d, want 400", w.Code)
	}
	if w := doJSON(t, h, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Fatalf("health status %d", w.Code)
	}
}
