// README: Trip handlers for payment, boarding, completion, cancel, and review.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seabid/internal/modules/trip"
	"seabid/internal/types"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(svc *trip.Service) *TripHandler {
	return &TripHandler{trips: svc}
}

// List serves both roles: ?role=angler, or ?role=captain&tab=BIDDING|ONGOING|COMPLETED.
func (h *TripHandler) List(c *gin.Context) {
	var (
		out []*trip.Trip
		err error
	)
	switch c.Query("role") {
	case "captain":
		out, err = h.trips.ListForCaptain(c.Request.Context(), trip.Tab(c.DefaultQuery("tab", string(trip.TabBidding))))
	default:
		out, err = h.trips.ListForAngler(c.Request.Context())
	}
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": out})
}

func (h *TripHandler) Get(c *gin.Context) {
	t, err := h.trips.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TripHandler) Pay(c *gin.Context) {
	err := h.trips.Pay(c.Request.Context(), trip.PayCommand{OrderID: types.ID(c.Param("id"))})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": trip.StatusPaid})
}

type boardReq struct {
	Code string `json:"code"`
}

func (h *TripHandler) Board(c *gin.Context) {
	var req boardReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		writeError(c, http.StatusBadRequest, "missing code")
		return
	}
	err := h.trips.Board(c.Request.Context(), trip.BoardCommand{
		OrderID: types.ID(c.Param("id")),
		Code:    req.Code,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": trip.StatusInService})
}

func (h *TripHandler) Complete(c *gin.Context) {
	err := h.trips.Complete(c.Request.Context(), trip.CompleteCommand{OrderID: types.ID(c.Param("id"))})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": trip.StatusCompleted})
}

type cancelReq struct {
	Reason string `json:"reason"`
}

func (h *TripHandler) Cancel(c *gin.Context) {
	var req cancelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.trips.Cancel(c.Request.Context(), trip.CancelCommand{
		OrderID: types.ID(c.Param("id")),
		Reason:  req.Reason,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": trip.StatusCancelled})
}

func (h *TripHandler) Review(c *gin.Context) {
	err := h.trips.Review(c.Request.Context(), trip.ReviewCommand{OrderID: types.ID(c.Param("id"))})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": trip.StatusCompleted, "has_reviewed": true})
}
