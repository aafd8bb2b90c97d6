// README: Captain-side handlers for route presets and standing quotes.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seabid/internal/modules/routes"
	"seabid/internal/modules/trip"
	"seabid/internal/types"
)

type CaptainHandler struct {
	routes *routes.Service
	trips  *trip.Service
}

func NewCaptainHandler(routeSvc *routes.Service, tripSvc *trip.Service) *CaptainHandler {
	return &CaptainHandler{routes: routeSvc, trips: tripSvc}
}

type savePresetReq struct {
	CaptainID string           `json:"captain_id"`
	Preset    trip.RoutePreset `json:"preset"`
}

func (h *CaptainHandler) SavePreset(c *gin.Context) {
	var req savePresetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.routes.Save(c.Request.Context(), routes.SaveCommand{
		CaptainID: types.ID(req.CaptainID),
		Preset:    req.Preset,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CaptainHandler) ListPresets(c *gin.Context) {
	list, err := h.routes.List(c.Request.Context(), types.ID(c.Query("captain_id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": list})
}

func (h *CaptainHandler) DeletePreset(c *gin.Context) {
	err := h.routes.Delete(c.Request.Context(), types.ID(c.Query("captain_id")), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type submitQuoteReq struct {
	Request  trip.Request `json:"request"`
	Bid      trip.Bid     `json:"bid"`
	PresetID string       `json:"preset_id"`
}

// SubmitQuote records a captain's standing quote against an open demand. When
// a preset ID is given, the preset is snapshotted into the bid by value.
func (h *CaptainHandler) SubmitQuote(c *gin.Context) {
	var req submitQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PresetID != "" {
		if err := h.routes.Attach(c.Request.Context(), req.Bid.CaptainID, types.ID(req.PresetID), &req.Bid); err != nil {
			writeDomainError(c, err)
			return
		}
	}
	t, err := h.trips.SubmitQuote(c.Request.Context(), trip.QuoteCommand{
		Request: req.Request,
		Bid:     req.Bid,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}
