// README: Trip aggregate, request/bid value objects, and status definitions.
package trip

import (
	"time"

	"seabid/internal/types"
)

type OrderType string

const (
	// OrderShare is pooled seating priced per person.
	OrderShare OrderType = "SHARE"
	// OrderCharter is whole-boat exclusive priced per boat.
	OrderCharter OrderType = "CHARTER"
)

type OceanZone string

const (
	ZoneNear OceanZone = "NEAR"
	ZoneFar  OceanZone = "FAR"
)

// ServiceTag is the closed vocabulary of services a captain may bundle into a
// quote. TagOther carries free text in Bid.CustomService.
type ServiceTag string

const (
	TagGear      ServiceTag = "gear"
	TagBait      ServiceTag = "bait"
	TagInsurance ServiceTag = "insurance"
	TagDrinks    ServiceTag = "drinks"
	TagGuide     ServiceTag = "guide"
	TagMedia     ServiceTag = "media"
	TagOther     ServiceTag = "other"
)

var ValidServiceTags = map[ServiceTag]bool{
	TagGear:      true,
	TagBait:      true,
	TagInsurance: true,
	TagDrinks:    true,
	TagGuide:     true,
	TagMedia:     true,
	TagOther:     true,
}

// BoatFilters narrows which boats a request is willing to receive quotes from.
type BoatFilters struct {
	MinLengthM float64  `json:"min_length_m"`
	MinWidthM  float64  `json:"min_width_m"`
	MinPower   string   `json:"min_power"`
	Amenities  []string `json:"amenities"`
}

// Request is an angler's trip solicitation. Immutable once bidding starts;
// CreatedAt is stamped by the orchestrator at submission.
type Request struct {
	ID           types.ID     `json:"id"`
	City         string       `json:"city"`
	Date         string       `json:"date"`
	People       int          `json:"people"`
	Style        string       `json:"style"`
	Remarks      string       `json:"remarks"`
	Type         OrderType    `json:"type"`
	Filters      *BoatFilters `json:"filters,omitempty"`
	ContactName  string       `json:"contact_name,omitempty"`
	ContactPhone string       `json:"contact_phone,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// RoutePreset is a captain's reusable quote template. Bids embed a value copy
// taken at quote time, so later edits never change historical bids.
type RoutePreset struct {
	ID           types.ID     `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	OceanZone    OceanZone    `json:"ocean_zone"`
	Destination  string       `json:"destination"`
	TargetFish   string       `json:"target_fish"`
	FishingSet   string       `json:"fishing_set"`
	GearIncluded string       `json:"gear_included"`
	BaitIncluded string       `json:"bait_included"`
	OtherItems   string       `json:"other_items"`
	SharePrice   types.Money  `json:"share_price"`
	CharterPrice types.Money  `json:"charter_price"`
	Services     []ServiceTag `json:"services"`
}

func (r RoutePreset) Clone() RoutePreset {
	c := r
	c.Services = append([]ServiceTag(nil), r.Services...)
	return c
}

// Bid is a captain's priced offer against exactly one Request. Price is per
// person for SHARE requests and per boat for CHARTER requests. Immutable once
// created.
type Bid struct {
	ID            types.ID     `json:"id"`
	CaptainID     types.ID     `json:"captain_id,omitempty"`
	CaptainName   string       `json:"captain_name"`
	BoatName      string       `json:"boat_name"`
	BoatSpecs     string       `json:"boat_specs"`
	DistanceKm    float64      `json:"distance_km"`
	Price         types.Money  `json:"price"`
	Rating        float64      `json:"rating"`
	TripsCount    int          `json:"trips_count"`
	Avatar        string       `json:"avatar,omitempty"`
	CatchImages   []string     `json:"catch_images,omitempty"`
	Services      []ServiceTag `json:"services"`
	CustomService string       `json:"custom_service,omitempty"`
	GearAdvice    string       `json:"gear_advice,omitempty"`
	Route         *RoutePreset `json:"route,omitempty"`
}

// Clone deep-copies the bid so that a selected bid frozen into a Trip cannot
// alias slices or the route snapshot held by the bidding session.
func (b Bid) Clone() Bid {
	c := b
	c.CatchImages = append([]string(nil), b.CatchImages...)
	c.Services = append([]ServiceTag(nil), b.Services...)
	if b.Route != nil {
		r := b.Route.Clone()
		c.Route = &r
	}
	return c
}

type Status string

const (
	// StatusBidding marks a captain's speculative quote that the angler has
	// not chosen. It is a candidate record, not a committed order.
	StatusBidding        Status = "BIDDING"
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusInService      Status = "IN_SERVICE"
	StatusCompleted      Status = "COMPLETED"
	StatusCancelled      Status = "CANCELLED"
)

// CancelOrigin records which side of the commitment line a cancellation
// happened on. It replaces the old "000000" verify-code sentinel.
type CancelOrigin string

const (
	CancelledFromBidding   CancelOrigin = "BIDDING"
	CancelledFromCommitted CancelOrigin = "COMMITTED"
)

// Trip is the durable order record created when an angler accepts a bid.
// Request and Bid are frozen at creation; only Status, HasReviewed,
// CancelReason and CancelledFrom may change afterwards.
type Trip struct {
	OrderID       types.ID     `json:"order_id"`
	Request       Request      `json:"request"`
	Bid           Bid          `json:"bid"`
	VerifyCode    string       `json:"verify_code"`
	Status        Status       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	HasReviewed   bool         `json:"has_reviewed,omitempty"`
	CancelReason  string       `json:"cancel_reason,omitempty"`
	CancelledFrom CancelOrigin `json:"cancelled_from,omitempty"`
}

func (t Trip) Clone() Trip {
	c := t
	c.Bid = t.Bid.Clone()
	if t.Request.Filters != nil {
		f := *t.Request.Filters
		f.Amenities = append([]string(nil), t.Request.Filters.Amenities...)
		c.Request.Filters = &f
	}
	return c
}

// AllowedTransitions represents the order state flow as code. The review edge
// (COMPLETED with HasReviewed set) is a field update, not a transition, and is
// deliberately absent here.
var AllowedTransitions = map[Status][]Status{
	StatusBidding:        {StatusCancelled},
	StatusPendingPayment: {StatusPaid, StatusCancelled},
	StatusPaid:           {StatusInService, StatusCancelled},
	StatusInService:      {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// CannedCancelReasons are the stock reasons offered in the cancel sheet.
// Free-text reasons are accepted as well; an empty reason is not.
var CannedCancelReasons = []string{
	"行程有变，无法出行",
	"天气恶劣，不宜出海",
	"价格不合适",
	"联系不上对方",
}

// Tab buckets a captain's order list.
type Tab string

const (
	TabBidding   Tab = "BIDDING"
	TabOngoing   Tab = "ONGOING"
	TabCompleted Tab = "COMPLETED"
)
