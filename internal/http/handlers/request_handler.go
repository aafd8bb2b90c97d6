// README: Angler-side handlers for submitting requests and working the bidding room.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seabid/internal/modules/bidding"
	"seabid/internal/modules/trip"
	"seabid/internal/types"
)

type RequestHandler struct {
	bidding *bidding.Service
}

func NewRequestHandler(svc *bidding.Service) *RequestHandler {
	return &RequestHandler{bidding: svc}
}

type submitRequestReq struct {
	City         string            `json:"city"`
	Date         string            `json:"date"`
	People       int               `json:"people"`
	Style        string            `json:"style"`
	Remarks      string            `json:"remarks"`
	Type         string            `json:"type"`
	Filters      *trip.BoatFilters `json:"filters"`
	ContactName  string            `json:"contact_name"`
	ContactPhone string            `json:"contact_phone"`
}

func (h *RequestHandler) Submit(c *gin.Context) {
	var req submitRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	orderType := trip.OrderShare
	if req.Type == string(trip.OrderCharter) {
		orderType = trip.OrderCharter
	}
	id, err := h.bidding.Submit(c.Request.Context(), bidding.SubmitCommand{
		Request: trip.Request{
			City:         req.City,
			Date:         req.Date,
			People:       req.People,
			Style:        req.Style,
			Remarks:      req.Remarks,
			Type:         orderType,
			Filters:      req.Filters,
			ContactName:  req.ContactName,
			ContactPhone: req.ContactPhone,
		},
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request_id": id, "phase": bidding.PhaseCollecting})
}

func (h *RequestHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.bidding.Snapshot(c.Request.Context()))
}

func (h *RequestHandler) Cancel(c *gin.Context) {
	if err := h.bidding.Cancel(c.Request.Context()); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"phase": bidding.PhaseIdle})
}

type selectBidReq struct {
	BidID string `json:"bid_id"`
}

func (h *RequestHandler) Select(c *gin.Context) {
	var req selectBidReq
	if err := c.ShouldBindJSON(&req); err != nil || req.BidID == "" {
		writeError(c, http.StatusBadRequest, "missing bid_id")
		return
	}
	t, err := h.bidding.Select(c.Request.Context(), bidding.SelectCommand{BidID: types.ID(req.BidID)})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *RequestHandler) OpenRoom(c *gin.Context) {
	if err := h.bidding.OpenRoom(c.Request.Context()); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RequestHandler) LeaveRoom(c *gin.Context) {
	if err := h.bidding.LeaveRoom(c.Request.Context()); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
