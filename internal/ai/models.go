// README: Wire payloads and sanitation for generated bids.
package ai

import (
	"fmt"
	"strings"

	"seabid/internal/modules/trip"
	"seabid/internal/types"
)

// bidPayload mirrors the JSON schema the model is asked to produce.
type bidPayload struct {
	ID               string        `json:"id"`
	CaptainName      string        `json:"captainName"`
	BoatName         string        `json:"boatName"`
	BoatSpecs        string        `json:"boatSpecs"`
	Distance         float64       `json:"distance"`
	Price            float64       `json:"price"`
	Rating           float64       `json:"rating"`
	TripsCount       int           `json:"tripsCount"`
	IncludedServices []string      `json:"includedServices"`
	ManualIntro      string        `json:"manualIntro"`
	RouteInfo        *routePayload `json:"routeInfo"`
}

type routePayload struct {
	Name        string `json:"name"`
	OceanType   string `json:"oceanType"`
	Destination string `json:"destination"`
	TargetFish  string `json:"targetFish"`
}

// captainAvatars and catchImages are presentation asset keys rotated across
// generated bids, never model output.
var captainAvatars = []string{"captain-1", "captain-2", "captain-3"}

var catchImages = []string{"boat-near", "boat-far", "fishing-catch", "ocean-view", "luya-boat"}

// sanitizeBids converts model payloads into domain bids, dropping service
// tags outside the closed vocabulary, clamping numeric fields, and filling
// missing IDs and route names. Order is preserved.
func sanitizeBids(payloads []bidPayload) []trip.Bid {
	bids := make([]trip.Bid, 0, len(payloads))
	for i, p := range payloads {
		if p.Price <= 0 || p.CaptainName == "" {
			continue
		}
		b := trip.Bid{
			ID:          types.ID(p.ID),
			CaptainName: p.CaptainName,
			BoatName:    p.BoatName,
			BoatSpecs:   p.BoatSpecs,
			DistanceKm:  p.Distance,
			Price:       types.CNY(int64(p.Price)),
			Rating:      clampRating(p.Rating),
			TripsCount:  p.TripsCount,
			Avatar:      captainAvatars[i%len(captainAvatars)],
			CatchImages: []string{catchImages[i%len(catchImages)]},
			GearAdvice:  p.ManualIntro,
		}
		if b.ID == "" {
			b.ID = types.ID(fmt.Sprintf("bid-%d", i+1))
		}
		for _, tag := range p.IncludedServices {
			t := trip.ServiceTag(strings.ToLower(strings.TrimSpace(tag)))
			if trip.ValidServiceTags[t] {
				b.Services = append(b.Services, t)
			}
		}
		if p.RouteInfo != nil && p.RouteInfo.Destination != "" {
			b.Route = &trip.RoutePreset{
				ID:          types.ID(fmt.Sprintf("%s-route", b.ID)),
				Name:        routeName(*p.RouteInfo),
				OceanZone:   oceanZone(p.RouteInfo.OceanType),
				Destination: p.RouteInfo.Destination,
				TargetFish:  p.RouteInfo.TargetFish,
				Services:    append([]trip.ServiceTag(nil), b.Services...),
			}
		}
		bids = append(bids, b)
	}
	return bids
}

// routeName keeps the platform's "{destination}钓{targetFish}" display format.
func routeName(r routePayload) string {
	if r.Name != "" {
		return r.Name
	}
	return r.Destination + "钓" + r.TargetFish
}

func oceanZone(v string) trip.OceanZone {
	if strings.EqualFold(v, string(trip.ZoneFar)) {
		return trip.ZoneFar
	}
	return trip.ZoneNear
}

func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}
