// README: Deterministic bid source for demos and tests.
package ai

import (
	"context"

	"seabid/internal/modules/trip"
)

// StaticSource serves canned captain quotes without any network call. Prices
// default to a small spread around the request's order type; tests override
// them to drive specific orderings.
type StaticSource struct {
	// Prices, when set, fixes the per-bid prices (and the bid count).
	Prices []int64
}

var staticCaptains = []bidPayload{
	{
		ID:               "mock-1",
		CaptainName:      "老张船长",
		BoatName:         "逐浪1号",
		BoatSpecs:        "32尺专业钓艇",
		Distance:         1.2,
		Rating:           4.9,
		TripsCount:       125,
		IncludedServices: []string{"gear", "bait", "insurance", "guide"},
		ManualIntro:      "备好晕船贴，冬季海风大注意保暖。",
		RouteInfo:        &routePayload{OceanType: "FAR", Destination: "西鼓岛", TargetFish: "章红"},
	},
	{
		ID:               "mock-2",
		CaptainName:      "王大海",
		BoatName:         "海狼号",
		BoatSpecs:        "42尺专业快艇",
		Distance:         0.5,
		Rating:           4.8,
		TripsCount:       420,
		IncludedServices: []string{"gear", "bait", "drinks"},
		ManualIntro:      "可自带路亚装备，船上备有公竿。",
		RouteInfo:        &routePayload{OceanType: "NEAR", Destination: "分界洲岛", TargetFish: "石斑"},
	},
	{
		ID:               "mock-3",
		CaptainName:      "阿明",
		BoatName:         "南海渔神",
		BoatSpecs:        "11米铝合金快艇",
		Distance:         2.5,
		Rating:           4.6,
		TripsCount:       96,
		IncludedServices: []string{"insurance", "guide", "media"},
		ManualIntro:      "建议 PE3 以上主线，防晒必备。",
		RouteInfo:        &routePayload{OceanType: "FAR", Destination: "神州半岛", TargetFish: "金枪"},
	},
	{
		ID:               "mock-4",
		CaptainName:      "李船长",
		BoatName:         "晨曦号",
		BoatSpecs:        "32尺路亚艇",
		Distance:         0.8,
		Rating:           4.7,
		TripsCount:       210,
		IncludedServices: []string{"gear", "insurance", "drinks"},
		ManualIntro:      "近海小物为主，适合新手家庭。",
		RouteInfo:        &routePayload{OceanType: "NEAR", Destination: "海口湾", TargetFish: "综合鱼种"},
	},
}

func (s StaticSource) GenerateBids(ctx context.Context, req trip.Request) ([]trip.Bid, error) {
	prices := s.Prices
	if len(prices) == 0 {
		if req.Type == trip.OrderCharter {
			prices = []int64{3500, 5800, 4200}
		} else {
			prices = []int64{500, 580, 420}
		}
	}

	payloads := make([]bidPayload, 0, len(prices))
	for i, price := range prices {
		p := staticCaptains[i%len(staticCaptains)]
		p.Price = float64(price)
		payloads = append(payloads, p)
	}
	return sanitizeBids(payloads), nil
}
