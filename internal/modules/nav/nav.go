// README: Role-scoped view router; one view per (identity, status), single-slot back.
package nav

import (
	"errors"
	"sync"
)

type Identity string

const (
	IdentityAngler  Identity = "ANGLER"
	IdentityCaptain Identity = "CAPTAIN"
)

// View enumerates every renderable surface. Each value belongs to exactly one
// identity; the router rejects views outside the active identity.
type View string

const (
	ViewHome            View = "HOME"
	ViewBidding         View = "BIDDING"
	ViewTrip            View = "TRIP"
	ViewOrders          View = "ORDERS"
	ViewFilter          View = "FILTER"
	ViewCaptainProfile  View = "CAPTAIN_PROFILE"
	ViewCaptainDynamics View = "CAPTAIN_DYNAMICS_LIST"
	ViewCaptainReviews  View = "CAPTAIN_REVIEWS_LIST"

	ViewCaptainHome        View = "CAPTAIN_HOME"
	ViewCaptainQuote       View = "CAPTAIN_QUOTE"
	ViewCaptainOrders      View = "CAPTAIN_ORDERS"
	ViewCaptainOrderDetail View = "CAPTAIN_ORDER_DETAIL"
	ViewCaptainWallet      View = "CAPTAIN_WALLET"
	ViewCaptainScan        View = "CAPTAIN_SCAN"
	ViewCaptainRoutes      View = "CAPTAIN_ROUTES"
	ViewCaptainRouteEditor View = "CAPTAIN_ROUTE_EDITOR"
	ViewCaptainMine        View = "CAPTAIN_MINE"
)

var anglerViews = map[View]bool{
	ViewHome:            true,
	ViewBidding:         true,
	ViewTrip:            true,
	ViewOrders:          true,
	ViewFilter:          true,
	ViewCaptainProfile:  true,
	ViewCaptainDynamics: true,
	ViewCaptainReviews:  true,
}

var captainViews = map[View]bool{
	ViewCaptainHome:        true,
	ViewCaptainQuote:       true,
	ViewCaptainOrders:      true,
	ViewCaptainOrderDetail: true,
	ViewCaptainWallet:      true,
	ViewCaptainScan:        true,
	ViewCaptainRoutes:      true,
	ViewCaptainRouteEditor: true,
	ViewCaptainMine:        true,
}

var ErrViewNotAllowed = errors.New("view not available for identity")

// Router tracks the active surface for one client. The previous-view slot is
// a single return address for cross-cutting detail views, not a stack; nested
// multi-level back navigation is out of scope.
type Router struct {
	mu       sync.Mutex
	identity Identity
	view     View
	prev     View
}

func NewRouter() *Router {
	return &Router{identity: IdentityAngler, view: ViewHome, prev: ViewHome}
}

func (r *Router) Identity() Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.identity
}

func (r *Router) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

// Go moves to a view within the active identity.
func (r *Router) Go(v View) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !allowed(r.identity, v) {
		return ErrViewNotAllowed
	}
	r.view = v
	return nil
}

// GoDetail enters a cross-cutting detail view, remembering the launching
// surface so Back can return to it.
func (r *Router) GoDetail(v View) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !allowed(r.identity, v) {
		return ErrViewNotAllowed
	}
	r.prev = r.view
	r.view = v
	return nil
}

// Back returns to the stored launching surface, defaulting to the identity's
// home when the slot is empty or cross-identity.
func (r *Router) Back() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	target := r.prev
	if !allowed(r.identity, target) {
		target = Home(r.identity)
	}
	r.view = target
	r.prev = Home(r.identity)
	return target
}

// ToggleIdentity switches roles and resets to the new identity's home view.
func (r *Router) ToggleIdentity() Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.identity == IdentityAngler {
		r.identity = IdentityCaptain
	} else {
		r.identity = IdentityAngler
	}
	r.view = Home(r.identity)
	r.prev = r.view
	return r.identity
}

func Home(id Identity) View {
	if id == IdentityCaptain {
		return ViewCaptainHome
	}
	return ViewHome
}

func allowed(id Identity, v View) bool {
	if id == IdentityCaptain {
		return captainViews[v]
	}
	return anglerViews[v]
}
